package utils

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date wire format used throughout the API.
const DateLayout = "2006-01-02"

// ClockLayout is the 24-hour wall-clock wire format ("HH:MM").
const ClockLayout = "15:04"

// ParseClock converts a 24-hour "HH:MM" string to minutes from midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes from midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
