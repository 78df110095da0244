package utils

import (
	"math"
	"time"
)

const DateLayout = "2006-01-02"

// DayStart truncates a time to local midnight. Calendar days are always
// compared in the user's local timezone, never UTC, so a late-evening
// check-in does not land on the wrong day.
func DayStart(t time.Time) time.Time {
	tt := t.In(time.Local)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, time.Local)
}

// DateKey formats a time as its YYYY-MM-DD calendar key.
func DateKey(t time.Time) string {
	return t.In(time.Local).Format(DateLayout)
}

// ParseDateKey parses a YYYY-MM-DD string into local midnight.
func ParseDateKey(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// DaysBetween returns the whole calendar days from a to b (positive
// when b is later). Rounded, not truncated: the 23- and 25-hour days
// around a DST change still count as one calendar day.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(DayStart(b).Sub(DayStart(a)).Hours() / 24))
}
