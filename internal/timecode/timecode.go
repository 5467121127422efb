// Package timecode converts wall-clock samples into the record fields
// used by the datastore: a formatted HH:MM:SS string and the seconds
// since midnight sort key.
package timecode

import (
	"fmt"
	"time"
)

// SecondsSinceMidnight computes the canonical sort key for a time of day.
func SecondsSinceMidnight(hour, minute, second int) int {
	return 3600*hour + 60*minute + second
}

// Clock formats a time of day as zero-padded HH:MM:SS.
func Clock(hour, minute, second int) string {
	return fmt.Sprintf("%02d:%02d:%02d", hour, minute, second)
}

// Split is the inverse of SecondsSinceMidnight.
func Split(secToday int) (hour, minute, second int) {
	hour = secToday / 3600
	minute = (secToday - 3600*hour) / 60
	second = secToday - 3600*hour - 60*minute
	return
}

// FormatSeconds renders a seconds-since-midnight value as HH:MM:SS.
func FormatSeconds(secToday int) string {
	return Clock(Split(secToday))
}

// ValidClock reports whether the components form a valid time of day.
func ValidClock(hour, minute, second int) bool {
	return hour >= 0 && hour < 24 &&
		minute >= 0 && minute < 60 &&
		second >= 0 && second < 60
}

// Now samples the local wall clock.
func Now() (hour, minute, second int) {
	t := time.Now()
	return t.Hour(), t.Minute(), t.Second()
}

// ParseClock parses a HH:MM:SS string into its components. The whole
// input must be a clock value, trailing text is rejected.
func ParseClock(s string) (hour, minute, second int, err error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), t.Second(), nil
}
