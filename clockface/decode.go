package clockface

import "fmt"

// The calendar source counts years from 1900.
const yearEpoch = 1900

// DisplayHour applies the 12/24-hour convention. In 12-hour mode midnight
// and noon both show as 12.
func DisplayHour(hour int, is24h bool) int {
	if is24h {
		return hour
	}
	display_hour := hour % 12
	if display_hour == 0 {
		return 12
	}
	return display_hour
}

func DisplayYear(yearOffset int) int {
	return yearEpoch + yearOffset
}

// SplitDigits returns the width lowest base-10 digits of value, most
// significant first. Short values come out zero padded.
func SplitDigits(value, width int) []int {
	if value < 0 || width < 0 {
		panic(fmt.Sprintf("SplitDigits(%d, %d): negative input", value, width))
	}
	split := make([]int, width)
	for i := width - 1; i >= 0; i-- {
		split[i] = value % 10
		value /= 10
	}
	return split
}
