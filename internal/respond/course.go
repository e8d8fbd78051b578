package respond

import (
	"fmt"
	"strings"

	"github.com/campushq/campus-chatbot-go/internal/storage"
)

// CourseInstructors lists who teaches a course. The filter supplies the
// not-found wording; found rows name the course from the catalog, which
// is the source of truth for spelling.
func CourseInstructors(rows []storage.CourseInstructor, filter storage.InstructorFilter) string {
	if len(rows) == 0 {
		display := filter.CourseName
		if display == "" {
			display = filter.CourseCode
		}
		if display == "" {
			display = "that course"
		}
		if filter.Branch != "" || filter.Section != "" {
			return fmt.Sprintf("I couldn't find any instructors for %s in the %s section.",
				bold(display), bold(strings.TrimSpace(filter.Branch+" "+filter.Section)))
		}
		return fmt.Sprintf("I'm sorry, I couldn't find any instructors for %s.", bold(display))
	}

	courseName := rows[0].CourseName
	courseCode := rows[0].CourseCode

	var header string
	if filter.Branch != "" || filter.Section != "" {
		header = fmt.Sprintf("Here are the instructors for %s for %s:\n",
			bold(courseName+" ("+courseCode+")"),
			bold(strings.TrimSpace(filter.Branch+" "+filter.Section)))
	} else {
		header = fmt.Sprintf("Here are the instructors for %s:\n", bold(courseName+" ("+courseCode+")"))
	}

	lines := []string{header}
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("• %s teaches %s section.",
			bold(r.FacultyName), bold(r.Branch+" - "+r.Section)))
	}
	return strings.Join(lines, "\n")
}
