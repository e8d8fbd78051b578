// Package normalize canonicalizes classifier output before the dialogue
// manager consumes it: branch synonyms, relative day words, course code
// whitespace, and yes/no detection. Everything here is deterministic; the
// only ambient input is the clock, which callers inject for testability.
package normalize

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/campushq/campus-chatbot-go/internal/nlu"
)

// Normalizer cleans entity bags per turn. The zero value is not usable;
// construct with New.
type Normalizer struct {
	now func() time.Time
}

// New creates a Normalizer. now may be nil, in which case time.Now is used.
func New(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{now: now}
}

// Entities returns a cleaned copy of the entity bag for the given intent.
// Keys the intent never declared are dropped, values are trimmed, and
// per-key canonicalization is applied. Empty values are removed so the
// dialogue manager treats them as unfilled slots.
func (n *Normalizer) Entities(intent string, entities map[string]string) map[string]string {
	cleaned := make(map[string]string)
	if len(entities) == 0 {
		return cleaned
	}

	declared := nlu.IntentEntityKeys(intent)
	if len(declared) == 0 {
		// Unknown and parameterless intents carry no declaration, but a
		// follow-up like "monday" still needs its day to reach the form.
		declared = nlu.AllEntityKeys()
	}
	allowed := make(map[string]bool, len(declared))
	for _, key := range declared {
		allowed[key] = true
	}

	for key, value := range entities {
		if !allowed[key] {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if v, ok := n.normalizeValue(key, value); ok {
			cleaned[key] = v
		}
	}

	return cleaned
}

// normalizeValue canonicalizes one entity value. Returning ok=false drops
// the entity entirely.
func (n *Normalizer) normalizeValue(key, value string) (string, bool) {
	switch key {
	case nlu.EntityBranch:
		return branchSynonym(value), true
	case nlu.EntityCourseName:
		// A bare "cs"/"is" as a course name is really a branch word.
		return branchSynonym(value), true
	case nlu.EntityCourseCode:
		return CourseCode(value), true
	case nlu.EntityDay:
		return n.Day(value), true
	case nlu.EntityStudyYear:
		return studyYear(value)
	case nlu.EntityOperator:
		return ctcOperator(value)
	case nlu.EntityFacultyName:
		return facultyName(value), true
	case nlu.EntityGender:
		return strings.ToLower(value), true
	default:
		return value, true
	}
}

// branchSynonym maps the short branch forms onto the catalog's canonical
// abbreviations. Anything unrecognized is upper-cased as-is so "cse" and
// "CSE" compare equal downstream.
func branchSynonym(value string) string {
	upper := strings.ToUpper(strings.TrimSpace(value))
	switch upper {
	case "CS":
		return "CSE"
	case "IS":
		return "ISE"
	}
	// Only short abbreviations get upper-cased; full course titles like
	// "Operating Systems" must survive untouched.
	if len(upper) <= 4 && !strings.ContainsAny(upper, " ") {
		return upper
	}
	return value
}

// facultyName title-cases a typed name so "prof. anil kumar" echoes back
// the same way the catalog prints it. Lookups lower-case on their side, so
// this only affects what the user sees.
func facultyName(value string) string {
	return cases.Title(language.English).String(value)
}

// CourseCode upper-cases a course code and strips internal whitespace, so
// "cs 301" and "CS301" hit the same catalog row.
func CourseCode(value string) string {
	return strings.ToUpper(strings.Join(strings.Fields(value), ""))
}

// studyYear extracts the leading number from forms like "3", "3rd", or
// "third year". Unparseable values are dropped.
func studyYear(value string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(value))

	words := map[string]string{
		"first": "1", "second": "2", "third": "3", "fourth": "4", "final": "4",
	}
	for word, digit := range words {
		if strings.HasPrefix(lower, word) {
			return digit, true
		}
	}

	digits := strings.Builder{}
	for _, r := range lower {
		if r < '0' || r > '9' {
			break
		}
		digits.WriteRune(r)
	}
	if digits.Len() == 0 {
		return "", false
	}
	if _, err := strconv.Atoi(digits.String()); err != nil {
		return "", false
	}
	return digits.String(), true
}

// ctcOperator maps comparison words onto the repository's gt/lt whitelist.
func ctcOperator(value string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "gt", "above", "over", "more", "more than", "greater", "greater than":
		return "gt", true
	case "lt", "below", "under", "less", "less than":
		return "lt", true
	}
	return "", false
}
