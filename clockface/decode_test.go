package clockface

import (
	"reflect"
	"testing"
)

func TestDisplayHour12(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		got := DisplayHour(hour, false)
		if got < 1 || got > 12 {
			t.Fatalf("DisplayHour(%d, false) = %d; want 1..12", hour, got)
		}
	}

	tcs := []struct {
		hour int
		want int
	}{
		{0, 12},
		{1, 1},
		{11, 11},
		{12, 12},
		{13, 1},
		{15, 3},
		{23, 11},
	}
	for _, tc := range tcs {
		if got := DisplayHour(tc.hour, false); got != tc.want {
			t.Fatalf("DisplayHour(%d, false) = %d; want %d", tc.hour, got, tc.want)
		}
	}
}

func TestDisplayHour24(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		if got := DisplayHour(hour, true); got != hour {
			t.Fatalf("DisplayHour(%d, true) = %d; want %d", hour, got, hour)
		}
	}
}

func TestDisplayYear(t *testing.T) {
	for _, y := range []int{0, 70, 99, 100, 124, 199} {
		if got := DisplayYear(y); got != y+1900 {
			t.Fatalf("DisplayYear(%d) = %d; want %d", y, got, y+1900)
		}
	}
}

func TestSplitDigits(t *testing.T) {
	tcs := []struct {
		name  string
		value int
		width int
		want  []int
	}{
		{name: "leading zero", value: 7, width: 2, want: []int{0, 7}},
		{name: "year", value: 2024, width: 4, want: []int{2, 0, 2, 4}},
		{name: "two nines", value: 99, width: 2, want: []int{9, 9}},
		{name: "zero", value: 0, width: 2, want: []int{0, 0}},
		{name: "truncated", value: 123, width: 2, want: []int{2, 3}},
		{name: "empty", value: 5, width: 0, want: []int{}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if got := SplitDigits(tc.value, tc.width); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("SplitDigits(%d, %d) = %v; want %v", tc.value, tc.width, got, tc.want)
			}
		})
	}
}

func TestSplitDigitsNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	SplitDigits(-1, 2)
}

func TestChangeMaskString(t *testing.T) {
	tcs := []struct {
		mask ChangeMask
		want string
	}{
		{0, "none"},
		{SecondUnit, "second"},
		{HourUnit | SecondUnit, "hour|second"},
		{AllUnits, "day|hour|minute|second"},
	}
	for _, tc := range tcs {
		if got := tc.mask.String(); got != tc.want {
			t.Fatalf("String() = %q; want %q", got, tc.want)
		}
	}
}
