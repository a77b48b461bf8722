package birthday

import "time"

// daysInMonth is the non-leap-year calendar. Day validation always runs
// against it, so February 29 is never a storable birthday and the daily
// check never has a date it cannot match in a common year.
var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// MaxDay returns the last valid day of the given month, or 0 for a month
// outside 1..12.
func MaxDay(month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	return daysInMonth[month]
}

// ValidDate reports whether (month, day) is a real date in a common year.
func ValidDate(month, day int) bool {
	max := MaxDay(month)
	return max > 0 && day >= 1 && day <= max
}

func monthName(month int) string {
	return time.Month(month).String()
}
