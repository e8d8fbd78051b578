package respond

import (
	"fmt"
	"sort"
	"strings"

	"github.com/campushq/campus-chatbot-go/internal/config"
	"github.com/campushq/campus-chatbot-go/internal/normalize"
	"github.com/campushq/campus-chatbot-go/internal/storage"
)

// FreeSlot is one open interval in a faculty member's day, in minutes
// since midnight.
type FreeSlot struct {
	StartMinute int
	EndMinute   int
}

// CalculateFreeSlots subtracts a faculty member's busy intervals and the
// fixed campus breaks from teaching hours. Busy slots with unparseable
// times are skipped rather than treated as all-day.
func CalculateFreeSlots(busy []storage.BusySlot) []FreeSlot {
	type interval struct{ start, end int }

	unavailable := []interval{
		{config.MorningBreakStartMinute, config.MorningBreakEndMinute},
		{config.LunchStartMinute, config.LunchEndMinute},
	}
	for _, b := range busy {
		start, okStart := normalize.ParseClockTime(b.StartTime)
		end, okEnd := normalize.ParseClockTime(b.EndTime)
		if !okStart || !okEnd || start >= end {
			continue
		}
		unavailable = append(unavailable, interval{start, end})
	}
	sort.Slice(unavailable, func(i, j int) bool {
		return unavailable[i].start < unavailable[j].start
	})

	var free []FreeSlot
	cursor := config.CollegeOpenMinute
	for _, iv := range unavailable {
		if cursor < iv.start {
			free = append(free, FreeSlot{cursor, iv.start})
		}
		if cursor < iv.end {
			cursor = iv.end
		}
	}
	if cursor < config.CollegeCloseMinute {
		free = append(free, FreeSlot{cursor, config.CollegeCloseMinute})
	}
	return free
}

// FacultyAvailability answers free/busy questions. With a time it gives a
// yes/no; without one it lists the day's free slots.
func FacultyAvailability(busy []storage.BusySlot, facultyName, day, timeOfDay string) string {
	if facultyName == "" {
		facultyName = "This faculty member"
	}

	if len(busy) == 0 {
		return fmt.Sprintf("%s has no classes scheduled on %s. They are likely not on campus.",
			bold(facultyName), capitalize(day))
	}

	free := CalculateFreeSlots(busy)

	if timeOfDay != "" {
		asked, ok := normalize.ParseClockTime(timeOfDay)
		if !ok {
			return fmt.Sprintf("I'm sorry, I couldn't understand the time '%s'. Please try a format like '3pm' or '15:00'.", timeOfDay)
		}
		for _, slot := range free {
			if slot.StartMinute <= asked && asked < slot.EndMinute {
				return fmt.Sprintf("%s, %s appears to be %s at %s on %s.",
					bold("Yes"), bold(facultyName), bold("free"), timeOfDay, capitalize(day))
			}
		}
		return fmt.Sprintf("%s, %s appears to be %s at %s on %s.",
			bold("No"), bold(facultyName), bold("busy"), timeOfDay, capitalize(day))
	}

	if len(free) == 0 {
		return fmt.Sprintf("%s appears to be busy for the entire day on %s.", bold(facultyName), capitalize(day))
	}

	lines := []string{fmt.Sprintf("Here are the %s slots for %s on %s:\n", bold("free"), bold(facultyName), capitalize(day))}
	for _, slot := range free {
		lines = append(lines, fmt.Sprintf("• %s to %s",
			bold(normalize.FormatClockTime(slot.StartMinute)),
			bold(normalize.FormatClockTime(slot.EndMinute))))
	}
	return strings.Join(lines, "\n")
}

// FacultySchedule lists a faculty member's classes for one day.
func FacultySchedule(entries []storage.TimetableEntry, facultyName, day string) string {
	if facultyName == "" {
		facultyName = "This faculty member"
	}
	if len(entries) == 0 {
		return fmt.Sprintf("%s has no classes scheduled on %s.", bold(facultyName), capitalize(day))
	}

	lines := []string{fmt.Sprintf("Here is the schedule for %s on %s:\n", bold(facultyName), capitalize(day))}
	for _, e := range entries {
		line := "• " + clockRange(e.StartTime, e.EndTime) + ": " + bold(e.CourseName)
		var loc []string
		if e.RoomNo != "" {
			loc = append(loc, e.RoomNo)
		}
		if e.Location != "" {
			loc = append(loc, e.Location)
		}
		if len(loc) > 0 {
			line += " @ " + strings.Join(loc, " - ")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// FacultyLocationOnDay answers "where is X on <day>". With a time it
// names the room of the class covering that time, or falls back to the
// office when the slot is free; without a time it lists where each class
// of the day happens.
func FacultyLocationOnDay(entries []storage.TimetableEntry, facultyName, day, timeOfDay, officeLocation string) string {
	if facultyName == "" {
		facultyName = "This faculty member"
	}
	if len(entries) == 0 {
		return fmt.Sprintf("%s has no classes scheduled on %s. They are likely not on campus.",
			bold(facultyName), capitalize(day))
	}

	if timeOfDay != "" {
		asked, ok := normalize.ParseClockTime(timeOfDay)
		if !ok {
			return fmt.Sprintf("I'm sorry, I couldn't understand the time '%s'. Please try a format like '3pm' or '15:00'.", timeOfDay)
		}
		for _, e := range entries {
			start, okStart := normalize.ParseClockTime(e.StartTime)
			end, okEnd := normalize.ParseClockTime(e.EndTime)
			if !okStart || !okEnd {
				continue
			}
			if start <= asked && asked < end {
				where := e.RoomNo
				if where == "" {
					where = e.Location
				}
				if where == "" {
					return fmt.Sprintf("%s is taking %s at %s on %s, but the room is not in my records.",
						bold(facultyName), bold(e.CourseName), timeOfDay, capitalize(day))
				}
				return fmt.Sprintf("At %s on %s, %s should be in %s for %s.",
					timeOfDay, capitalize(day), bold(facultyName), bold(where), bold(e.CourseName))
			}
		}
		if officeLocation != "" {
			return fmt.Sprintf("%s has no class at %s on %s. Try their office: %s.",
				bold(facultyName), timeOfDay, capitalize(day), bold(officeLocation))
		}
		return fmt.Sprintf("%s has no class at %s on %s. They may be in their office or the staff room.",
			bold(facultyName), timeOfDay, capitalize(day))
	}

	lines := []string{fmt.Sprintf("Here is where %s will be on %s:\n", bold(facultyName), capitalize(day))}
	for _, e := range entries {
		where := e.RoomNo
		if where == "" {
			where = e.Location
		}
		if where == "" {
			where = "room not recorded"
		}
		lines = append(lines, fmt.Sprintf("• %s: %s (%s)", clockRange(e.StartTime, e.EndTime), bold(where), e.CourseName))
	}
	return strings.Join(lines, "\n")
}

// FacultyCampusAvailability answers "is X on campus on <day>". A positive
// answer ends with the follow-up offer the caller arms as a pending
// action.
func FacultyCampusAvailability(busy []storage.BusySlot, facultyName, day string) string {
	if facultyName == "" {
		facultyName = "This faculty member"
	}
	if len(busy) == 0 {
		return fmt.Sprintf("%s has no classes scheduled on %s. They are likely not on campus.",
			bold(facultyName), capitalize(day))
	}
	return fmt.Sprintf("%s, %s has classes on %s, so they should be on campus. "+
		"Would you like their free slots, full schedule, or location?",
		bold("Yes"), bold(facultyName), capitalize(day))
}
