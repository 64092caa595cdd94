package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.I2CAddress != 0x3c || cfg.Width != 128 || cfg.Height != 128 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Use24Hour || cfg.Debug {
		t.Fatalf("flags should default to false")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("CLOCK_DEBUG", "true")
	t.Setenv("CLOCK_24H", "1")
	t.Setenv("CLOCK_I2C_ADDRESS", "0x3d")
	t.Setenv("CLOCK_I2C_BUS", "1")
	t.Setenv("CLOCK_BRIGHTNESS", "0.5")
	t.Setenv("CLOCK_TIMEZONE", "UTC")
	t.Setenv("CLOCK_INDICATOR_PIN", "GPIO23")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug || !cfg.Use24Hour {
		t.Fatalf("flags not read: %+v", cfg)
	}
	if cfg.I2CAddress != 0x3d || cfg.I2CBus != 1 {
		t.Fatalf("i2c = %#x/%d; want 0x3d/1", cfg.I2CAddress, cfg.I2CBus)
	}
	if cfg.Brightness != 0.5 {
		t.Fatalf("brightness = %v; want 0.5", cfg.Brightness)
	}
	if cfg.Location.String() != "UTC" {
		t.Fatalf("location = %v; want UTC", cfg.Location)
	}
	if cfg.IndicatorPin != "GPIO23" {
		t.Fatalf("indicator pin = %q", cfg.IndicatorPin)
	}
}

func TestDebugBuildDefault(t *testing.T) {
	DefaultDebug = true
	t.Cleanup(func() { DefaultDebug = false })

	tcs := []struct {
		name  string
		value string
		set   bool
		want  bool
	}{
		{name: "unset keeps build default", want: true},
		{name: "empty keeps build default", value: "", set: true, want: true},
		{name: "env turns debug off", value: "false", set: true, want: false},
		{name: "env keeps debug on", value: "true", set: true, want: true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("CLOCK_DEBUG", tc.value)
			if !tc.set {
				os.Unsetenv("CLOCK_DEBUG")
			}
			cfg, err := FromEnv()
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Debug != tc.want {
				t.Fatalf("Debug = %v; want %v", cfg.Debug, tc.want)
			}
		})
	}
}

func TestFromEnvErrors(t *testing.T) {
	tcs := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bool", key: "CLOCK_24H", value: "maybe"},
		{name: "address", key: "CLOCK_I2C_ADDRESS", value: "0x300"},
		{name: "int", key: "CLOCK_WIDTH", value: "wide"},
		{name: "float", key: "CLOCK_BRIGHTNESS", value: "bright"},
		{name: "timezone", key: "CLOCK_TIMEZONE", value: "Nowhere/Special"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := FromEnv(); err == nil {
				t.Fatalf("FromEnv() accepted %s=%q", tc.key, tc.value)
			}
		})
	}
}

func TestLoadEnvFilesPrecedence(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, ".env.local")
	plain := filepath.Join(dir, ".env")
	if err := os.WriteFile(local, []byte("CLOCK_PREVIEW_PATH=local.png\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(plain, []byte("CLOCK_PREVIEW_PATH=plain.png\nCLOCK_WIDTH=64\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// Registers cleanup for variables the env file sets
	t.Setenv("CLOCK_PREVIEW_PATH", "")
	os.Unsetenv("CLOCK_PREVIEW_PATH")
	t.Setenv("CLOCK_WIDTH", "")
	os.Unsetenv("CLOCK_WIDTH")

	LoadEnvFiles(local, plain)
	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PreviewPath != "local.png" {
		t.Fatalf("preview path = %q; want local.png", cfg.PreviewPath)
	}
	if cfg.Width != 128 {
		t.Fatalf("width = %d; only the first env file should load", cfg.Width)
	}
}
