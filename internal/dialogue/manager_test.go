package dialogue

import (
	"reflect"
	"testing"

	"github.com/campushq/campus-chatbot-go/internal/nlu"
)

func TestFormRegistryWellFormed(t *testing.T) {
	for intent, form := range forms {
		if len(form.AllSlots) == 0 {
			t.Errorf("%s: no slots declared", intent)
		}
		for _, slot := range form.RequiredSlots {
			if !containsSlot(form.AllSlots, slot) {
				t.Errorf("%s: required slot %q not in AllSlots", intent, slot)
			}
		}
		for slot := range form.Prompts {
			if !containsSlot(form.AllSlots, slot) {
				t.Errorf("%s: prompt for undeclared slot %q", intent, slot)
			}
		}
		if !nlu.IsKnownIntent(intent) {
			t.Errorf("%s: form declared for unknown intent", intent)
		}
	}
}

func TestSameFamily(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{nlu.IntentFacultyAvailability, nlu.IntentFacultySchedule, true},
		{nlu.IntentFacultySchedule, nlu.IntentFacultyLocationOnDay, true},
		{nlu.IntentFacultyCampusAvail, nlu.IntentFacultyAvailability, true},
		{nlu.IntentPlacementCountByCTC, nlu.IntentPlacementCompaniesByCTC, true},
		{nlu.IntentFacultyAvailability, nlu.IntentCourseInstructors, false},
		{nlu.IntentTimetable, nlu.IntentTimetable, false}, // familyless
		{nlu.IntentTimetable, nlu.IntentFacultySchedule, false},
		{"no_such_intent", nlu.IntentFacultySchedule, false},
	}
	for _, tt := range tests {
		if got := SameFamily(tt.a, tt.b); got != tt.want {
			t.Errorf("SameFamily(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestStartConversationPromptsFirstMissingSlot(t *testing.T) {
	m := NewManager()

	prompt, ok := m.StartConversation(nlu.IntentTimetable, nil)
	if !ok {
		t.Fatal("timetable should have a form")
	}
	if prompt != "Sure, which day of the week?" {
		t.Errorf("prompt = %q", prompt)
	}
	if m.CurrentIntent != nlu.IntentTimetable {
		t.Errorf("CurrentIntent = %q", m.CurrentIntent)
	}
}

func TestStartConversationFormless(t *testing.T) {
	m := NewManager()
	if _, ok := m.StartConversation(nlu.IntentPlacementSummary, nil); ok {
		t.Error("formless intent should not start a conversation")
	}
	if m.IsInConversation() {
		t.Error("manager should stay idle")
	}
}

func TestFillSlotsCompletesWhenAllRequiredPresent(t *testing.T) {
	m := NewManager()
	got, _ := m.StartConversation(nlu.IntentTimetable, map[string]string{
		nlu.EntityDay: "Monday",
	})
	if got != Completed {
		t.Fatalf("got %q, want %q", got, Completed)
	}
	intent, slots := m.FullContext()
	if intent != nlu.IntentTimetable || slots[nlu.EntityDay] != "Monday" {
		t.Errorf("context = %s %v", intent, slots)
	}
}

func TestFillSlotsIgnoresUndeclaredEntities(t *testing.T) {
	m := NewManager()
	m.StartConversation(nlu.IntentTimetable, map[string]string{
		nlu.EntityDay:         "Friday",
		nlu.EntityFacultyName: "Ramesh",
	})
	if _, ok := m.FilledSlots[nlu.EntityFacultyName]; ok {
		t.Error("faculty_name is not a timetable slot")
	}
}

func TestFillSlotsLastWriteWins(t *testing.T) {
	m := NewManager()
	m.StartConversation(nlu.IntentTimetable, map[string]string{nlu.EntityDay: "Monday"})
	m.FillSlots(map[string]string{nlu.EntityDay: "Tuesday"})
	if m.FilledSlots[nlu.EntityDay] != "Tuesday" {
		t.Errorf("day = %q, want Tuesday", m.FilledSlots[nlu.EntityDay])
	}
}

// Filling never removes a previously filled slot, only adds or overwrites.
func TestFillSlotsMonotonic(t *testing.T) {
	m := NewManager()
	m.StartConversation(nlu.IntentFacultyAvailability, map[string]string{
		nlu.EntityFacultyName: "Ramesh Kumar",
	})
	m.FillSlots(map[string]string{nlu.EntityDay: "Monday"})

	if m.FilledSlots[nlu.EntityFacultyName] != "Ramesh Kumar" {
		t.Error("earlier slot lost while filling a later one")
	}
	if m.FilledSlots[nlu.EntityDay] != "Monday" {
		t.Error("new slot not recorded")
	}
}

func TestFillSlotsIdleReturnsEmpty(t *testing.T) {
	m := NewManager()
	if got := m.FillSlots(map[string]string{nlu.EntityDay: "Monday"}); got != "" {
		t.Errorf("idle FillSlots = %q, want empty", got)
	}
}

func TestCourseIdentifierRelaxation(t *testing.T) {
	t.Run("code removes name requirement", func(t *testing.T) {
		m := NewManager()
		got, _ := m.StartConversation(nlu.IntentCourseInstructors, map[string]string{
			nlu.EntityCourseCode: "CS301",
		})
		if got != Completed {
			t.Errorf("got %q, want %q", got, Completed)
		}
		if containsSlot(m.RequiredSlots, nlu.EntityCourseName) {
			t.Error("course_name still required after code arrived")
		}
	})

	t.Run("name removes code requirement", func(t *testing.T) {
		m := NewManager()
		got, _ := m.StartConversation(nlu.IntentCourseInstructors, map[string]string{
			nlu.EntityCourseName: "Operating Systems",
		})
		if got != Completed {
			t.Errorf("got %q, want %q", got, Completed)
		}
	})

	t.Run("neither prompts for name", func(t *testing.T) {
		m := NewManager()
		got, _ := m.StartConversation(nlu.IntentCourseInstructors, nil)
		if got != "What is the course name?" {
			t.Errorf("got %q", got)
		}
	})
}

// The same intent with the same missing slots always yields the same
// prompt, and filling them always yields Completed.
func TestCompletionDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		m := NewManager()
		p1, _ := m.StartConversation(nlu.IntentPlacementCountByCTC, nil)
		if p1 != "Are you looking for packages 'more than' or 'less than' a certain amount?" {
			t.Fatalf("run %d: first prompt = %q", i, p1)
		}
		p2 := m.FillSlots(map[string]string{nlu.EntityOperator: "gt"})
		if p2 != "What is the CTC amount (in LPA)?" {
			t.Fatalf("run %d: second prompt = %q", i, p2)
		}
		p3 := m.FillSlots(map[string]string{nlu.EntityAmount: "10"})
		if p3 != Completed {
			t.Fatalf("run %d: final = %q", i, p3)
		}
	}
}

func TestResetIdempotent(t *testing.T) {
	m := NewManager()
	m.StartConversation(nlu.IntentFacultyAvailability, map[string]string{
		nlu.EntityFacultyName: "Ramesh Kumar",
	})
	m.SetPendingAction(ActionConfirmFacultyName, ActionContext{SuggestedName: "Ramesh Kumar"})

	m.Reset()
	first := *m
	m.Reset()

	if m.IsInConversation() || m.HasPendingAction() {
		t.Error("reset manager still has state")
	}
	second := *m
	if !reflect.DeepEqual(first.FilledSlots, second.FilledSlots) ||
		first.CurrentIntent != second.CurrentIntent ||
		first.PendingAction != second.PendingAction {
		t.Error("second reset changed state")
	}
}

func TestAdvanceIdleStartsForm(t *testing.T) {
	m := NewManager()
	res := m.Advance(nlu.IntentTimetable, nil)
	if res.Outcome != OutcomePrompt || res.Prompt != "Sure, which day of the week?" {
		t.Errorf("result = %+v", res)
	}
}

func TestAdvanceIdleDirectExecution(t *testing.T) {
	m := NewManager()
	res := m.Advance(nlu.IntentPlacementSummary, nil)
	if res.Outcome != OutcomeDirect {
		t.Errorf("outcome = %v, want direct", res.Outcome)
	}
	if m.IsInConversation() {
		t.Error("formless intent must not open a conversation")
	}
}

// Scenario: ask for the timetable, get asked for the day, answer it.
func TestAdvanceTwoTurnTimetable(t *testing.T) {
	m := NewManager()

	res := m.Advance(nlu.IntentTimetable, nil)
	if res.Outcome != OutcomePrompt {
		t.Fatalf("turn 1 = %+v", res)
	}

	// The follow-up "Monday" classifies as the same intent with the day.
	res = m.Advance(nlu.IntentTimetable, map[string]string{nlu.EntityDay: "Monday"})
	if res.Outcome != OutcomeCompleted {
		t.Fatalf("turn 2 = %+v", res)
	}
	_, slots := m.FullContext()
	if slots[nlu.EntityDay] != "Monday" {
		t.Errorf("slots = %v", slots)
	}
}

func TestAdvanceNoiseResets(t *testing.T) {
	m := NewManager()
	m.Advance(nlu.IntentTimetable, nil)

	res := m.Advance(nlu.IntentGeneralChat, nil)
	if res.Outcome != OutcomeReset || res.ResetReason != "noise" {
		t.Errorf("result = %+v", res)
	}
	if m.IsInConversation() {
		t.Error("conversation survived a noise turn")
	}
}

func TestAdvanceUnknownWithoutEntitiesAbandons(t *testing.T) {
	m := NewManager()
	m.Advance(nlu.IntentTimetable, nil)

	res := m.Advance(nlu.IntentUnknown, nil)
	if res.Outcome != OutcomeReset || res.ResetReason != "abandoned" {
		t.Errorf("result = %+v", res)
	}
}

// A garbled reply that still produced entities is treated as an answer to
// the open prompt, not an abandonment.
func TestAdvanceUnknownWithEntitiesContinues(t *testing.T) {
	m := NewManager()
	m.Advance(nlu.IntentTimetable, nil)

	res := m.Advance(nlu.IntentUnknown, map[string]string{nlu.EntityDay: "Monday"})
	if res.Outcome != OutcomeCompleted {
		t.Errorf("result = %+v", res)
	}
}

func TestAdvanceGeneralChatWithEntitiesContinues(t *testing.T) {
	m := NewManager()
	m.Advance(nlu.IntentTimetable, nil)

	res := m.Advance(nlu.IntentGeneralChat, map[string]string{nlu.EntityDay: "Friday"})
	if res.Outcome != OutcomeCompleted {
		t.Errorf("result = %+v", res)
	}
}

func TestAdvanceSameIntentIsContinuation(t *testing.T) {
	m := NewManager()
	m.Advance(nlu.IntentFacultyAvailability, map[string]string{
		nlu.EntityFacultyName: "Ramesh Kumar",
	})

	// Re-asking the same question is not a topic change.
	res := m.Advance(nlu.IntentFacultyAvailability, nil)
	if res.Outcome != OutcomePrompt || res.Pivoted {
		t.Errorf("result = %+v", res)
	}
	if m.FilledSlots[nlu.EntityFacultyName] != "Ramesh Kumar" {
		t.Error("re-ask cleared filled slots")
	}
}

// Pivoting to a sibling intent keeps the slots gathered so far and swaps
// the requirement list.
func TestAdvanceFamilyPivotPreservesSlots(t *testing.T) {
	m := NewManager()
	m.Advance(nlu.IntentFacultyAvailability, map[string]string{
		nlu.EntityFacultyName: "Ramesh Kumar",
	})

	res := m.Advance(nlu.IntentFacultySchedule, map[string]string{nlu.EntityDay: "Monday"})
	if !res.Pivoted {
		t.Fatal("expected a pivot")
	}
	if res.Outcome != OutcomeCompleted {
		t.Fatalf("result = %+v", res)
	}
	intent, slots := m.FullContext()
	if intent != nlu.IntentFacultySchedule {
		t.Errorf("intent = %q", intent)
	}
	if slots[nlu.EntityFacultyName] != "Ramesh Kumar" || slots[nlu.EntityDay] != "Monday" {
		t.Errorf("slots = %v", slots)
	}
}

func TestAdvanceFamilyPivotStillMissingSlots(t *testing.T) {
	m := NewManager()
	m.Advance(nlu.IntentFacultyCampusAvail, map[string]string{
		nlu.EntityFacultyName: "Priya Sharma",
	})

	// Sibling needs a day the campus-availability form never asked for.
	res := m.Advance(nlu.IntentFacultyLocationOnDay, nil)
	if !res.Pivoted || res.Outcome != OutcomePrompt {
		t.Fatalf("result = %+v", res)
	}
	if res.Prompt != "Sure, which day of the week?" {
		t.Errorf("prompt = %q", res.Prompt)
	}
}

func TestAdvanceUnrelatedIntentResetsThenStarts(t *testing.T) {
	m := NewManager()
	m.Advance(nlu.IntentFacultyAvailability, map[string]string{
		nlu.EntityFacultyName: "Ramesh Kumar",
	})

	res := m.Advance(nlu.IntentTimetable, nil)
	if res.ResetReason != "unrelated" {
		t.Errorf("reason = %q", res.ResetReason)
	}
	if res.Outcome != OutcomePrompt {
		t.Errorf("outcome = %v", res.Outcome)
	}
	if m.CurrentIntent != nlu.IntentTimetable {
		t.Errorf("CurrentIntent = %q", m.CurrentIntent)
	}
	if _, ok := m.FilledSlots[nlu.EntityFacultyName]; ok {
		t.Error("slots leaked across an unrelated topic change")
	}
}

func TestAdvanceUnrelatedToFormless(t *testing.T) {
	m := NewManager()
	m.Advance(nlu.IntentTimetable, nil)

	res := m.Advance(nlu.IntentPlacementSummary, nil)
	if res.Outcome != OutcomeDirect || res.ResetReason != "unrelated" {
		t.Errorf("result = %+v", res)
	}
	if m.IsInConversation() {
		t.Error("formless takeover left a conversation open")
	}
}

func TestShouldStayOpen(t *testing.T) {
	m := NewManager()
	if m.ShouldStayOpen() {
		t.Error("idle manager claims stay-open")
	}

	m.Advance(nlu.IntentTimetable, map[string]string{nlu.EntityDay: "Monday"})
	if m.ShouldStayOpen() {
		t.Error("timetable should not stay open")
	}

	m.Reset()
	m.Advance(nlu.IntentCourseInstructors, map[string]string{nlu.EntityCourseName: "DBMS"})
	if !m.ShouldStayOpen() {
		t.Error("course instructors should stay open")
	}
}

func TestAdvanceCountsTurns(t *testing.T) {
	m := NewManager()
	m.Advance(nlu.IntentTimetable, nil)
	m.Advance(nlu.IntentTimetable, map[string]string{nlu.EntityDay: "Monday"})
	if m.Turns != 2 {
		t.Errorf("Turns = %d, want 2", m.Turns)
	}
}
