package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var clockPattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)

// ParseClockTime parses user-facing time strings ("3pm", "3:30pm", "15:00",
// bare "3") into minutes since midnight. A bare hour below 9 with no am/pm
// marker is assumed to be afternoon, since college hours run 9:00 to 16:30.
// Returns ok=false for anything unparseable.
func ParseClockTime(value string) (int, bool) {
	lower := strings.ToLower(strings.TrimSpace(value))
	m := clockPattern.FindStringSubmatch(lower)
	if m == nil {
		return 0, false
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil || hour > 23 {
		return 0, false
	}

	minute := 0
	if m[2] != "" {
		minute, err = strconv.Atoi(m[2])
		if err != nil || minute > 59 {
			return 0, false
		}
	}

	switch m[3] {
	case "pm":
		if hour > 12 {
			return 0, false
		}
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour > 12 {
			return 0, false
		}
		if hour == 12 {
			hour = 0
		}
	default:
		// No marker and no minutes: "3" almost certainly means 3pm
		// during college hours.
		if m[2] == "" && hour < 9 {
			hour += 12
		}
	}

	return hour*60 + minute, true
}

// FormatClockTime renders minutes since midnight as "03:00 PM".
func FormatClockTime(minuteOfDay int) string {
	hour := minuteOfDay / 60
	minute := minuteOfDay % 60

	suffix := "AM"
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour == 12:
		suffix = "PM"
	case hour > 12:
		display = hour - 12
		suffix = "PM"
	}

	return pad2(display) + ":" + pad2(minute) + " " + suffix
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
