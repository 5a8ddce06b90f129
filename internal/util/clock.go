package util

import (
	"fmt"
	"time"
)

// ParseClockTime parses "HH:MM" or "HH:MM:SS" on the zero date.
func ParseClockTime(s string) (time.Time, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q", s)
}
