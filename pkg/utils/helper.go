package utils

import (
	"strconv"
	"time"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// DateOnly truncates a moment to its calendar date in the same location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
