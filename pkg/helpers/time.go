package helpers

import (
	"strconv"
	"time"
)

// FormatDate renders a timestamp in local time as DD.MM.YYYY HH:MM.
// Absent timestamps render as an empty string.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Local().Format("02.01.2006 15:04")
}

// DaysSince renders the number of days elapsed since t with one fractional
// digit, or "-" when the timestamp is absent.
func DaysSince(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	days := time.Since(*t).Hours() / 24
	return strconv.FormatFloat(days, 'f', 1, 64)
}
