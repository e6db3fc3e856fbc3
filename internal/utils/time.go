package utils

import (
	"strings"
	"time"
)

const (
	layoutDate = "2006-01-02"
	layoutTime = "15:04"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// ValidTimeOfDay reports whether s is HH:MM.
func ValidTimeOfDay(s string) bool {
	_, err := time.Parse(layoutTime, strings.TrimSpace(s))
	return err == nil
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// Today returns the current local date as YYYY-MM-DD.
func Today() string {
	return FormatDate(time.Now())
}
