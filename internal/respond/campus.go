package respond

import (
	"fmt"
	"strings"

	"github.com/campushq/campus-chatbot-go/internal/storage"
)

// Clubs lists student clubs with contact details.
func Clubs(clubs []storage.Club, searchTerm string) string {
	if len(clubs) == 0 {
		if searchTerm != "" {
			return fmt.Sprintf("I couldn't find a club matching '%s'.", searchTerm)
		}
		return "I couldn't find any club information right now."
	}

	lines := []string{"Here are the clubs I found:\n"}
	if len(clubs) == 1 {
		lines = []string{}
	}
	for _, c := range clubs {
		lines = append(lines, "• "+bold(c.Name))
		if c.Description != "" {
			lines = append(lines, "   "+c.Description)
		}
		if c.ContactPerson != "" {
			contact := "   Contact: " + c.ContactPerson
			if c.ContactPhone != "" {
				contact += " (" + c.ContactPhone + ")"
			}
			lines = append(lines, contact)
		}
	}
	return strings.Join(lines, "\n")
}

// Hostels lists hostel records matching a name/gender/campus search.
func Hostels(hostels []storage.Hostel) string {
	if len(hostels) == 0 {
		return "I couldn't find any hostels matching your request."
	}

	lines := []string{"Here are the hostels I found:\n"}
	for _, h := range hostels {
		header := "• " + bold(h.Name)
		var tags []string
		if h.Gender != "" {
			tags = append(tags, capitalize(h.Gender))
		}
		if h.Campus != "" {
			tags = append(tags, h.Campus+" campus")
		}
		if len(tags) > 0 {
			header += " (" + strings.Join(tags, ", ") + ")"
		}
		lines = append(lines, header)
		if h.Facilities != "" {
			lines = append(lines, "   Facilities: "+h.Facilities)
		}
		if h.WardenName != "" {
			warden := "   Warden: " + h.WardenName
			if h.ContactPhone != "" {
				warden += " (" + h.ContactPhone + ")"
			}
			lines = append(lines, warden)
		}
	}
	return strings.Join(lines, "\n")
}

// TransportRoutes lists college bus routes.
func TransportRoutes(routes []storage.TransportRoute, searchTerm string) string {
	if len(routes) == 0 {
		if searchTerm != "" {
			return fmt.Sprintf("I couldn't find a bus route matching '%s'.", searchTerm)
		}
		return "I couldn't find any transport information right now."
	}

	lines := []string{"Here are the bus routes I found:\n"}
	for _, r := range routes {
		lines = append(lines, "• "+bold(r.RouteName))
		if r.Description != "" {
			lines = append(lines, "   "+r.Description)
		}
		if r.ContactPerson != "" {
			contact := "   Contact: " + r.ContactPerson
			if r.ContactPhone != "" {
				contact += " (" + r.ContactPhone + ")"
			}
			lines = append(lines, contact)
		}
	}
	return strings.Join(lines, "\n")
}

// Scholarships lists scholarship schemes and where to ask about them.
func Scholarships(scholarships []storage.Scholarship) string {
	if len(scholarships) == 0 {
		return "I couldn't find any scholarship information matching your request."
	}

	lines := []string{"Here is the scholarship information I found:\n"}
	for _, s := range scholarships {
		lines = append(lines, "• "+bold(s.Name))
		if s.Location != "" {
			lines = append(lines, "   Office: "+s.Location)
		}
		if s.MailID != "" {
			lines = append(lines, "   Email: "+s.MailID)
		}
	}
	return strings.Join(lines, "\n")
}

// Events lists upcoming campus events.
func Events(events []storage.Event, searchTerm string) string {
	if len(events) == 0 {
		if searchTerm != "" {
			return fmt.Sprintf("I couldn't find an event matching '%s'.", searchTerm)
		}
		return "There are no events in my records right now."
	}

	lines := []string{"Here are the events I found:\n"}
	for _, e := range events {
		lines = append(lines, fmt.Sprintf("• %s on %s", bold(e.Title), e.EventDate))
		if e.Description != "" {
			lines = append(lines, "   "+e.Description)
		}
	}
	return strings.Join(lines, "\n")
}

// Notices renders the recent notice board entries.
func Notices(notices []storage.Notice) string {
	if len(notices) == 0 {
		return "There are no notices on the board right now."
	}

	lines := []string{"Here are the latest notices:\n"}
	for _, n := range notices {
		lines = append(lines, fmt.Sprintf("• %s (%s)", n.NoticeText, n.PostedOn))
	}
	return strings.Join(lines, "\n")
}

// DressCode lists dress code rules, optionally narrowed to a category.
func DressCode(rules []storage.DressCodeRule, category string) string {
	if len(rules) == 0 {
		if category != "" {
			return fmt.Sprintf("I couldn't find a dress code for '%s'.", category)
		}
		return "I couldn't find the dress code details right now."
	}

	lines := []string{"Here is the dress code:\n"}
	for _, r := range rules {
		header := "• " + bold(capitalize(r.Category))
		if r.Type != "" {
			header += " (" + r.Type + ")"
		}
		lines = append(lines, header+": "+r.Items)
	}
	return strings.Join(lines, "\n")
}

// Location answers "where is X" from the facilities table.
func Location(facilities []storage.Facility, searchTerm string) string {
	if len(facilities) == 0 {
		if searchTerm != "" {
			return fmt.Sprintf("I'm not sure where '%s' is. Could you give me the full name of the room, lab, or office?", searchTerm)
		}
		return "What place are you looking for? A room number, lab, or office name works."
	}

	if len(facilities) == 1 {
		f := facilities[0]
		where := f.Building
		if f.Floor != "" {
			where = f.Floor + " of the " + f.Building
		}
		if where == "" {
			if f.Description != "" {
				return fmt.Sprintf("%s: %s", bold(f.Name), f.Description)
			}
			return fmt.Sprintf("I found %s, but its exact location is not in my records.", bold(f.Name))
		}
		return fmt.Sprintf("The %s is located on the %s.", bold(f.Name), bold(where))
	}

	lines := []string{fmt.Sprintf("I found %d places matching your search:\n", len(facilities))}
	for _, f := range facilities {
		line := "• " + bold(f.Name)
		if f.Building != "" {
			line += " - " + f.Building
			if f.Floor != "" {
				line += ", " + f.Floor
			}
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// OfficeContacts renders contact details for an administrative office,
// used for admissions and fees questions.
func OfficeContacts(contacts []storage.OfficeContact, office string) string {
	if len(contacts) == 0 {
		return fmt.Sprintf("I couldn't find contact details for the %s office right now.", office)
	}

	lines := []string{fmt.Sprintf("Here are the %s contacts:\n", capitalize(office))}
	for _, c := range contacts {
		header := "• " + bold(c.Office)
		if c.ContactPerson != "" {
			header += " - " + c.ContactPerson
		}
		lines = append(lines, header)
		if c.ContactPhone != "" {
			lines = append(lines, "   Phone: "+c.ContactPhone)
		}
		if c.Email != "" {
			lines = append(lines, "   Email: "+c.Email)
		}
		if c.Location != "" {
			lines = append(lines, "   Location: "+c.Location)
		}
	}
	return strings.Join(lines, "\n")
}
