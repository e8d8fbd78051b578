package respond

import (
	"fmt"
	"strings"

	"github.com/campushq/campus-chatbot-go/internal/storage"
)

// FacultyInfo renders full faculty details. A single match gets the
// detail card (with photo when the record has one); several matches get
// a numbered list asking the user to pick.
func FacultyInfo(matches []storage.FacultyMatch) Reply {
	if len(matches) == 0 {
		return Text("I couldn't find information for that faculty member.")
	}

	if len(matches) == 1 {
		f := matches[0].Faculty
		lines := []string{fmt.Sprintf("Hello there! I found details for %s.", f.Name)}
		if f.Department != "" {
			lines = append(lines, "\n"+bold("Department/Role:")+" "+f.Department)
		}
		if f.Email != "" {
			lines = append(lines, bold("Email:")+" "+f.Email)
		}
		if f.OfficeLocation != "" {
			lines = append(lines, bold("Office Location:")+" "+f.OfficeLocation)
		}
		lines = append(lines, "\nLet me know if you need anything else!")
		return Reply{Text: strings.Join(lines, "\n"), MediaURL: f.ImageURL}
	}

	lines := []string{fmt.Sprintf("I found %d potential matches:", len(matches))}
	for i, m := range matches {
		lines = append(lines, fmt.Sprintf("\n%d. %s", i+1, bold(m.Name)))
		if m.Department != "" {
			lines = append(lines, "   Department/Role: "+m.Department)
		}
		if m.Email != "" {
			lines = append(lines, "   Email: "+m.Email)
		}
	}
	lines = append(lines, "\nCould you please specify which one you're interested in?")
	return Text(strings.Join(lines, "\n"))
}

// FacultyLocation answers "where is X's office". Multiple matches become
// a numbered pick list, which doubles as the clarification prompt when a
// name lookup is ambiguous.
func FacultyLocation(matches []storage.FacultyMatch) string {
	if len(matches) == 0 {
		return "I couldn't find a faculty member by that name."
	}

	if len(matches) == 1 {
		f := matches[0].Faculty
		if f.OfficeLocation != "" {
			return fmt.Sprintf("The office location for %s is %s.", bold(f.Name), bold(f.OfficeLocation))
		}
		return fmt.Sprintf("I found %s, but I'm sorry, their office location is not in my records right now.", bold(f.Name))
	}

	lines := []string{fmt.Sprintf("I found %d potential matches:", len(matches))}
	for i, m := range matches {
		lines = append(lines, fmt.Sprintf("\n%d. %s", i+1, bold(m.Name)))
	}
	lines = append(lines, "\nWhose office location would you like to know?")
	return strings.Join(lines, "\n")
}

// FacultyCourses lists the courses a faculty member teaches.
func FacultyCourses(courses []storage.Course, facultyName string) string {
	if len(courses) == 0 {
		return fmt.Sprintf("I'm sorry, I couldn't find any courses taught by '%s'.", facultyName)
	}

	lines := []string{fmt.Sprintf("Here are the courses taught by %s:\n", bold(facultyName))}
	for _, c := range courses {
		lines = append(lines, fmt.Sprintf("• %s (%s)", bold(c.Name), c.Code))
	}
	return strings.Join(lines, "\n")
}

// AntiRaggingSquad lists the anti-ragging contacts with phone numbers.
func AntiRaggingSquad(contacts []storage.AntiRaggingContact) string {
	if len(contacts) == 0 {
		return "I'm sorry, I couldn't find the anti-ragging squad details right now."
	}

	lines := []string{"Here are the Anti-Ragging Squad contacts:\n"}
	for _, c := range contacts {
		line := "• " + bold(c.Name)
		if c.Role != "" {
			line += " (" + c.Role + ")"
		}
		if c.Department != "" {
			line += " - " + c.Department
		}
		lines = append(lines, line)
		if c.ContactPhone != "" {
			lines = append(lines, "   Phone: "+c.ContactPhone)
		}
	}
	return strings.Join(lines, "\n")
}
