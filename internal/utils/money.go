package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatCFA renders an integer XOF amount with thousand separators.
// XOF has no minor unit, so amounts are whole francs throughout.
func FormatCFA(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%s FCFA", sign, formatThousand(amount))
}

// ParseCFA parses "2 500", "2.500" or "2500 FCFA" into whole francs.
func ParseCFA(s string) (int64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimSuffix(s, "fcfa")
	s = strings.TrimSuffix(strings.TrimSpace(s), "cfa")
	replacer := strings.NewReplacer(".", "", ",", "", " ", "")
	s = replacer.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("invalid cfa amount")
	}
	return strconv.ParseInt(s, 10, 64)
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(' ')
		}
		out.WriteRune(c)
	}
	return out.String()
}
