package utils

import "time"

// DayFormat is the calendar-day label layout used everywhere. A day is
// identified solely by its YYYY-MM-DD label in UTC, so timezone drift can
// never split or merge days.
const DayFormat = "2006-01-02"

// -----------------------------------------------------------------------------

// ParseDay parses a YYYY-MM-DD label into a UTC midnight time.
func ParseDay(label string) (time.Time, error) {
	return time.ParseInLocation(DayFormat, label, time.UTC)
}

// -----------------------------------------------------------------------------

// DayLabel formats t as its UTC calendar-day label.
func DayLabel(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

// -----------------------------------------------------------------------------

// TruncateToDay drops the time-of-day part, keeping the UTC calendar day.
func TruncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// -----------------------------------------------------------------------------

// InclusiveDayCount returns the number of calendar days in [start, end],
// counting both endpoints. start and end must already be UTC midnights.
func InclusiveDayCount(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// -----------------------------------------------------------------------------

// MonthsBetween returns (m, true) if target equals start advanced by exactly
// m calendar months for some m >= 1, per standard calendar-month addition
// rules (time.AddDate normalization included).
func MonthsBetween(start, target time.Time, maxMonths int) (int, bool) {
	for m := 1; m <= maxMonths; m++ {
		d := start.AddDate(0, m, 0)
		if d.Equal(target) {
			return m, true
		}
		if d.After(target) {
			return 0, false
		}
	}
	return 0, false
}
