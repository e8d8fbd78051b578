package respond

import (
	"strings"

	"github.com/campushq/campus-chatbot-go/internal/normalize"
	"github.com/campushq/campus-chatbot-go/internal/storage"
)

// Timetable renders joined timetable rows grouped by day. The filter the
// query ran with supplies the title so it reflects what the user asked,
// not what happened to come back.
func Timetable(entries []storage.TimetableEntry, filter storage.TimetableFilter) string {
	if len(entries) == 0 {
		return "I couldn't find any timetable entries matching your request."
	}

	title := timetableTitle(filter)

	var lines []string
	if filter.Day != "" {
		if title != "" {
			lines = append(lines, "Here is the schedule "+title+" on "+capitalize(filter.Day)+":")
		} else {
			lines = append(lines, "Here is the schedule on "+capitalize(filter.Day)+":")
		}
		lines = append(lines, "\n--- "+strings.ToUpper(filter.Day)+" ---")
	} else if title != "" {
		lines = append(lines, "Here is the schedule "+title+":")
	} else {
		lines = append(lines, "Here is the schedule:")
	}

	currentDay := ""
	for _, e := range entries {
		if filter.Day == "" && e.DayOfWeek != currentDay {
			currentDay = e.DayOfWeek
			lines = append(lines, "\n--- "+strings.ToUpper(currentDay)+" ---")
		}
		lines = append(lines, formatTimetableEntry(e), "")
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func timetableTitle(filter storage.TimetableFilter) string {
	var parts []string
	if filter.StudyYear > 0 {
		parts = append(parts, ordinalYear(filter.StudyYear)+" year")
	}
	if filter.Branch != "" {
		parts = append(parts, filter.Branch)
	}
	if filter.Section != "" {
		parts = append(parts, filter.Section)
	}
	switch {
	case filter.CourseName != "":
		parts = append(parts, "for "+filter.CourseName)
	case filter.CourseCode != "":
		parts = append(parts, "for "+filter.CourseCode)
	case len(parts) == 0 && filter.FacultyName != "":
		parts = append(parts, "for "+filter.FacultyName)
	}
	return strings.Join(parts, " ")
}

func formatTimetableEntry(e storage.TimetableEntry) string {
	course := e.CourseName
	if course == "" {
		course = "N/A"
	}
	parts := []string{clockRange(e.StartTime, e.EndTime) + ": " + course}
	if e.FacultyName != "" {
		parts = append(parts, "("+e.FacultyName+")")
	}
	var loc []string
	if e.RoomNo != "" {
		loc = append(loc, e.RoomNo)
	}
	if e.Location != "" {
		loc = append(loc, e.Location)
	}
	if len(loc) > 0 {
		parts = append(parts, "@ "+strings.Join(loc, " - "))
	}
	if e.ClassType != "" && !strings.EqualFold(e.ClassType, "lecture") {
		parts = append(parts, "["+e.ClassType+"]")
	}
	if e.LabBatch != "" {
		parts = append(parts, "(Batch "+e.LabBatch+")")
	}
	return strings.Join(parts, "\n")
}

// clockRange renders two stored "HH:MM" values as a 12-hour range.
// Unparseable values fall through as stored rather than as "N/A" noise.
func clockRange(start, end string) string {
	return clock12(start) + " - " + clock12(end)
}

func clock12(t string) string {
	minute, ok := normalize.ParseClockTime(t)
	if !ok {
		return t
	}
	return normalize.FormatClockTime(minute)
}

func ordinalYear(year int) string {
	switch year {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return "4th"
	}
}
