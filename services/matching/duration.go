package matching

import (
	"strconv"
	"strings"
)

// ParseDuration converts an "H:MM" or "HH:MM" string into minutes.
// Malformed input yields 0 so a single corrupt record only degrades its own score.
func ParseDuration(duration string) int {
	hoursPart, minutesPart, ok := strings.Cut(strings.TrimSpace(duration), ":")
	if !ok || !allDigits(hoursPart) || len(minutesPart) != 2 || !allDigits(minutesPart) {
		return 0
	}
	hours, err := strconv.Atoi(hoursPart)
	if err != nil || hours < 0 {
		return 0
	}
	minutes, err := strconv.Atoi(minutesPart)
	if err != nil || minutes < 0 || minutes >= 60 {
		return 0
	}
	return hours*60 + minutes
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
