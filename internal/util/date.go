package util

import "time"

// DayFormat is the calendar-day key used throughout the ledger.
const DayFormat = "2006-01-02"

// FormatDay returns t's calendar day in UTC as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

// ParseDay parses a YYYY-MM-DD day key.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayFormat, s)
}

// IsDay reports whether s is a well-formed YYYY-MM-DD day key.
func IsDay(s string) bool {
	_, err := ParseDay(s)
	return err == nil
}
