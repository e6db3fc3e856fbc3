package utils

import "strings"

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizePhone strips spaces, dots and dashes from phone input.
func NormalizePhone(s string) string {
	replacer := strings.NewReplacer(" ", "", ".", "", "-", "")
	return replacer.Replace(strings.TrimSpace(s))
}
