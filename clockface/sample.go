package clockface

import "strings"

// ChangeMask tells which calendar units advanced since the previous tick.
type ChangeMask uint8

const (
	SecondUnit ChangeMask = 1 << iota
	MinuteUnit
	HourUnit
	DayUnit

	AllUnits = DayUnit | HourUnit | MinuteUnit | SecondUnit
)

func (m ChangeMask) Has(unit ChangeMask) bool {
	return m&unit != 0
}

func (m ChangeMask) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	for _, u := range []struct {
		unit ChangeMask
		name string
	}{
		{DayUnit, "day"},
		{HourUnit, "hour"},
		{MinuteUnit, "minute"},
		{SecondUnit, "second"},
	} {
		if m.Has(u.unit) {
			parts = append(parts, u.name)
		}
	}
	return strings.Join(parts, "|")
}

// CalendarSample is one reading of the clock, taken at tick time.
type CalendarSample struct {
	YearOffset int // years since 1900
	Month      int // 0-11
	Day        int // 1-31
	Weekday    int // 0-6, Sunday first
	Hour       int // 0-23
	Minute     int
	Second     int
}
