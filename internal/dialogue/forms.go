// Package dialogue implements the multi-turn slot-filling conversation core:
// intent forms, the per-turn continue/pivot/reset policy, pending
// side-actions for name disambiguation, and the conversation store.
package dialogue

import "github.com/campushq/campus-chatbot-go/internal/nlu"

// Form declares the slot-filling behavior of one intent. Forms are static
// and shared across users; per-user mutable state lives in Manager.
type Form struct {
	// AllSlots is every slot the form accepts. Entities outside this set
	// are ignored, never stored.
	AllSlots []string

	// RequiredSlots, in prompt order. The manager copies this list per
	// conversation since requirements can relax mid-form.
	RequiredSlots []string

	// Prompts maps a slot to the question asked when it is missing.
	// Slots without an entry fall back to a generic question.
	Prompts map[string]string

	// Family groups related intents for mid-form pivoting. Empty means
	// the intent stands alone.
	Family string

	// StayOpen keeps the conversation active after the form completes so
	// bare follow-ups merge into a fresh query.
	StayOpen bool
}

// Intent families.
const (
	FamilyFacultyAvailability = "faculty_availability"
	FamilyCourseInfo          = "course_info"
	FamilyPlacementCTC        = "placement_ctc"
)

// forms is the static intent-to-form registry. Intents not listed here are
// formless: they execute directly off whatever entities one turn provides.
var forms = map[string]Form{
	nlu.IntentTimetable: {
		AllSlots:      []string{nlu.EntityDay, nlu.EntityBranch, nlu.EntitySection, nlu.EntityStudyYear},
		RequiredSlots: []string{nlu.EntityDay},
		Prompts: map[string]string{
			nlu.EntityDay:       "Sure, which day of the week?",
			nlu.EntityBranch:    "Which branch?",
			nlu.EntitySection:   "Which section?",
			nlu.EntityStudyYear: "Which year?",
		},
	},

	nlu.IntentFacultyAvailability: {
		AllSlots:      []string{nlu.EntityFacultyName, nlu.EntityDay, nlu.EntityTime},
		RequiredSlots: []string{nlu.EntityFacultyName, nlu.EntityDay},
		Prompts: map[string]string{
			nlu.EntityFacultyName: "Which faculty member are you asking about?",
			nlu.EntityDay:         "Sure, which day of the week?",
		},
		Family:   FamilyFacultyAvailability,
		StayOpen: true,
	},
	nlu.IntentFacultySchedule: {
		AllSlots:      []string{nlu.EntityFacultyName, nlu.EntityDay},
		RequiredSlots: []string{nlu.EntityFacultyName, nlu.EntityDay},
		Prompts: map[string]string{
			nlu.EntityFacultyName: "Which faculty member are you asking about?",
			nlu.EntityDay:         "Sure, which day of the week?",
		},
		Family:   FamilyFacultyAvailability,
		StayOpen: true,
	},
	nlu.IntentFacultyLocationOnDay: {
		AllSlots:      []string{nlu.EntityFacultyName, nlu.EntityDay, nlu.EntityTime},
		RequiredSlots: []string{nlu.EntityFacultyName, nlu.EntityDay},
		Prompts: map[string]string{
			nlu.EntityFacultyName: "Which faculty member are you asking about?",
			nlu.EntityDay:         "Sure, which day of the week?",
		},
		Family:   FamilyFacultyAvailability,
		StayOpen: true,
	},
	nlu.IntentFacultyCampusAvail: {
		AllSlots:      []string{nlu.EntityFacultyName, nlu.EntityDay},
		RequiredSlots: []string{nlu.EntityFacultyName},
		Prompts: map[string]string{
			nlu.EntityFacultyName: "Which faculty member are you asking about?",
		},
		Family:   FamilyFacultyAvailability,
		StayOpen: true,
	},

	nlu.IntentCourseInstructors: {
		AllSlots:      []string{nlu.EntityCourseName, nlu.EntityCourseCode, nlu.EntityBranch, nlu.EntitySection},
		RequiredSlots: []string{nlu.EntityCourseName},
		Prompts: map[string]string{
			nlu.EntityCourseName: "What is the course name?",
			nlu.EntityBranch:     "Which branch?",
			nlu.EntitySection:    "Which section?",
		},
		Family:   FamilyCourseInfo,
		StayOpen: true,
	},

	nlu.IntentPlacementCompaniesByCTC: {
		AllSlots:      []string{nlu.EntityOperator, nlu.EntityAmount},
		RequiredSlots: []string{nlu.EntityOperator, nlu.EntityAmount},
		Prompts: map[string]string{
			nlu.EntityOperator: "Are you looking for packages 'more than' or 'less than' a certain amount?",
			nlu.EntityAmount:   "What is the CTC amount (in LPA)?",
		},
		Family:   FamilyPlacementCTC,
		StayOpen: true,
	},
	nlu.IntentPlacementCountByCTC: {
		AllSlots:      []string{nlu.EntityOperator, nlu.EntityAmount},
		RequiredSlots: []string{nlu.EntityOperator, nlu.EntityAmount},
		Prompts: map[string]string{
			nlu.EntityOperator: "Are you looking for packages 'more than' or 'less than' a certain amount?",
			nlu.EntityAmount:   "What is the CTC amount (in LPA)?",
		},
		Family:   FamilyPlacementCTC,
		StayOpen: true,
	},
}

// FormFor returns the static form for an intent, if one is declared.
func FormFor(intent string) (Form, bool) {
	f, ok := forms[intent]
	return f, ok
}

// HasForm reports whether the intent declares a slot-filling form.
func HasForm(intent string) bool {
	_, ok := forms[intent]
	return ok
}

// SameFamily reports whether two intents declare the same non-empty family.
func SameFamily(a, b string) bool {
	fa, okA := forms[a]
	fb, okB := forms[b]
	return okA && okB && fa.Family != "" && fa.Family == fb.Family
}
