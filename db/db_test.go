package db

import (
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "kvstore.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGetMissingKey(t *testing.T) {
	store := openTemp(t)
	if v := store.Get("nope"); v != nil {
		t.Fatalf("Get() = %v; want nil", v)
	}
	if store.Is24HourMode() {
		t.Fatalf("Is24HourMode() = true with no setting")
	}
}

func TestSetAndGet(t *testing.T) {
	store := openTemp(t)
	if err := store.Set("FirmwareVersion", "1.0.0"); err != nil {
		t.Fatal(err)
	}
	if err := store.Set("FirmwareVersion", "1.0.1"); err != nil {
		t.Fatal(err)
	}
	if v := store.Get("FirmwareVersion"); v != "1.0.1" {
		t.Fatalf("Get() = %v; want 1.0.1", v)
	}
}

func TestSetOrCreateKeepsExisting(t *testing.T) {
	store := openTemp(t)
	if err := store.SetOrCreate(Use24HourKey, true); err != nil {
		t.Fatal(err)
	}
	if err := store.SetOrCreate(Use24HourKey, false); err != nil {
		t.Fatal(err)
	}
	if !store.Is24HourMode() {
		t.Fatalf("SetOrCreate() overwrote an existing value")
	}
}

func TestIs24HourModeReadsFresh(t *testing.T) {
	store := openTemp(t)
	if err := store.Set(Use24HourKey, true); err != nil {
		t.Fatal(err)
	}
	if !store.Is24HourMode() {
		t.Fatalf("Is24HourMode() = false; want true")
	}
	if err := store.Set(Use24HourKey, false); err != nil {
		t.Fatal(err)
	}
	if store.Is24HourMode() {
		t.Fatalf("Is24HourMode() did not pick up the change")
	}

	// Values of the wrong type mean 12-hour mode
	if err := store.Set(Use24HourKey, "yes"); err != nil {
		t.Fatal(err)
	}
	if store.Is24HourMode() {
		t.Fatalf("Is24HourMode() = true for a string value")
	}
}

func TestReopenKeepsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kvstore.db")
	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Set(Use24HourKey, true); err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	if !store.Is24HourMode() {
		t.Fatalf("setting lost across reopen")
	}
}
