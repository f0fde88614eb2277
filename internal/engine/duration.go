package engine

import (
	"strconv"
	"strings"
)

const (
	// DefaultHistoryDays is used when a duration filter cannot be parsed.
	DefaultHistoryDays = 7

	// MaxDurationDays bounds a duration filter at 100 years.
	MaxDurationDays = 100 * 365
)

var durationUnitDays = map[byte]int{
	'd': 1,
	'w': 7,
	'm': 30,
	'y': 365,
}

// ParseDuration parses "<n><unit>" with unit d, w, m or y (case-insensitive) into days.
// ok is false for anything else, including non-positive counts and spans longer
// than MaxDurationDays.
func ParseDuration(input string) (days int, ok bool) {
	s := strings.TrimSpace(input)
	if len(s) < 2 {
		return 0, false
	}
	unit, found := durationUnitDays[strings.ToLower(s[len(s)-1:])[0]]
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n <= 0 || n > MaxDurationDays/unit {
		return 0, false
	}
	return n * unit, true
}

// ParseDurationDays is ParseDuration with the lenient history default for bad input.
func ParseDurationDays(input string) int {
	if days, ok := ParseDuration(input); ok {
		return days
	}
	return DefaultHistoryDays
}
