package normalize

import (
	"strings"
)

// Weekdays in timetable order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Day resolves a day entity to a canonical weekday name. Relative words are
// resolved against the injected clock; weekday names are title-cased.
// Unrecognized input is returned trimmed so the formatter can echo it back
// in an error message.
func (n *Normalizer) Day(value string) string {
	lower := strings.ToLower(strings.TrimSpace(value))

	switch lower {
	case "today", "now":
		return n.now().Weekday().String()
	case "tomorrow", "tommorow", "tmrw":
		return n.now().AddDate(0, 0, 1).Weekday().String()
	case "day after tomorrow", "day after", "overmorrow":
		return n.now().AddDate(0, 0, 2).Weekday().String()
	case "yesterday":
		return n.now().AddDate(0, 0, -1).Weekday().String()
	}

	for _, day := range Weekdays {
		full := strings.ToLower(day)
		if lower == full || lower == full[:3] {
			return day
		}
	}

	return strings.TrimSpace(value)
}

// IsWeekday reports whether value is a canonical weekday name.
func IsWeekday(value string) bool {
	for _, day := range Weekdays {
		if value == day {
			return true
		}
	}
	return false
}
