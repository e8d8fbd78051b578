package normalize

import (
	"testing"
	"time"

	"github.com/campushq/campus-chatbot-go/internal/nlu"
)

// fixedClock pins the normalizer to Monday 2026-08-31 10:00.
func fixedClock() time.Time {
	return time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)
}

func newTestNormalizer() *Normalizer {
	return New(fixedClock)
}

func TestEntitiesBranchSynonyms(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		in   string
		want string
	}{
		{"CS", "CSE"},
		{"cs", "CSE"},
		{"IS", "ISE"},
		{"is", "ISE"},
		{"CSE", "CSE"},
		{"ece", "ECE"},
	}
	for _, tt := range tests {
		got := n.Entities(nlu.IntentTimetable, map[string]string{"branch": tt.in})
		if got["branch"] != tt.want {
			t.Errorf("branch %q normalized to %q, want %q", tt.in, got["branch"], tt.want)
		}
	}
}

func TestEntitiesCourseNameKeepsTitles(t *testing.T) {
	n := newTestNormalizer()

	got := n.Entities(nlu.IntentCourseInstructors, map[string]string{
		"course_name": "Operating Systems",
	})
	if got["course_name"] != "Operating Systems" {
		t.Errorf("course title mangled: %q", got["course_name"])
	}

	got = n.Entities(nlu.IntentCourseInstructors, map[string]string{"course_name": "is"})
	if got["course_name"] != "ISE" {
		t.Errorf("bare branch word = %q, want ISE", got["course_name"])
	}
}

func TestEntitiesCourseCode(t *testing.T) {
	n := newTestNormalizer()

	got := n.Entities(nlu.IntentCourseInstructors, map[string]string{
		"course_code": " cs 301 ",
	})
	if got["course_code"] != "CS301" {
		t.Errorf("course_code = %q, want CS301", got["course_code"])
	}
}

func TestEntitiesDropsUndeclaredKeys(t *testing.T) {
	n := newTestNormalizer()

	got := n.Entities(nlu.IntentFacultyLocation, map[string]string{
		"faculty_name": "Dr. Anil Kumar",
		"branch":       "CSE",     // not declared for this intent
		"favorite":     "metal",   // never declared anywhere
	})
	if got["faculty_name"] != "Dr. Anil Kumar" {
		t.Errorf("faculty_name = %q", got["faculty_name"])
	}
	if _, ok := got["branch"]; ok {
		t.Error("undeclared key branch survived")
	}
	if _, ok := got["favorite"]; ok {
		t.Error("unknown key favorite survived")
	}
}

func TestEntitiesDropsEmptyValues(t *testing.T) {
	n := newTestNormalizer()

	got := n.Entities(nlu.IntentTimetable, map[string]string{
		"branch":  "  ",
		"section": "A",
	})
	if _, ok := got["branch"]; ok {
		t.Error("blank value survived")
	}
	if got["section"] != "A" {
		t.Errorf("section = %q", got["section"])
	}
}

func TestEntitiesStudyYear(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		in    string
		want  string
		keeps bool
	}{
		{"3", "3", true},
		{"3rd", "3", true},
		{"third year", "3", true},
		{"final year", "4", true},
		{"second", "2", true},
		{"next", "", false},
	}
	for _, tt := range tests {
		got := n.Entities(nlu.IntentTimetable, map[string]string{"study_year": tt.in})
		v, ok := got["study_year"]
		if ok != tt.keeps || v != tt.want {
			t.Errorf("study_year %q = (%q, %v), want (%q, %v)", tt.in, v, ok, tt.want, tt.keeps)
		}
	}
}

func TestEntitiesOperator(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		in   string
		want string
	}{
		{"gt", "gt"},
		{"above", "gt"},
		{"more than", "gt"},
		{"lt", "lt"},
		{"below", "lt"},
		{"under", "lt"},
	}
	for _, tt := range tests {
		got := n.Entities(nlu.IntentPlacementCountByCTC, map[string]string{"operator": tt.in})
		if got["operator"] != tt.want {
			t.Errorf("operator %q = %q, want %q", tt.in, got["operator"], tt.want)
		}
	}

	got := n.Entities(nlu.IntentPlacementCountByCTC, map[string]string{"operator": "around"})
	if _, ok := got["operator"]; ok {
		t.Error("unmappable operator should be dropped")
	}
}

func TestDayResolution(t *testing.T) {
	n := newTestNormalizer() // Monday

	tests := []struct {
		in   string
		want string
	}{
		{"today", "Monday"},
		{"Tomorrow", "Tuesday"},
		{"day after tomorrow", "Wednesday"},
		{"yesterday", "Sunday"},
		{"monday", "Monday"},
		{"FRI", "Friday"},
		{"wednesday", "Wednesday"},
		{"someday", "someday"},
	}
	for _, tt := range tests {
		if got := n.Day(tt.in); got != tt.want {
			t.Errorf("Day(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDayResolutionThroughEntities(t *testing.T) {
	n := newTestNormalizer()

	got := n.Entities(nlu.IntentFacultySchedule, map[string]string{
		"faculty_name": "kumar",
		"day":          "tomorrow",
	})
	if got["day"] != "Tuesday" {
		t.Errorf("day = %q, want Tuesday", got["day"])
	}
}

func TestEntitiesTitleCasesFacultyName(t *testing.T) {
	n := newTestNormalizer()

	got := n.Entities(nlu.IntentFacultySchedule, map[string]string{
		"faculty_name": "prof. anil kumar",
	})
	if got["faculty_name"] != "Prof. Anil Kumar" {
		t.Errorf("faculty_name = %q, want Prof. Anil Kumar", got["faculty_name"])
	}
}

func TestEntitiesUnknownIntentKeepsKnownKeys(t *testing.T) {
	n := newTestNormalizer()

	got := n.Entities(nlu.IntentUnknown, map[string]string{
		"day":      "tomorrow",
		"favorite": "metal",
	})
	if got["day"] != "Tuesday" {
		t.Errorf("day = %q, want Tuesday", got["day"])
	}
	if _, ok := got["favorite"]; ok {
		t.Error("unknown key favorite survived")
	}
}

func TestIsWeekday(t *testing.T) {
	if !IsWeekday("Monday") || IsWeekday("today") || IsWeekday("monday") {
		t.Error("IsWeekday should accept canonical names only")
	}
}
