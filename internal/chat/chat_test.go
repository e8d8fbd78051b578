package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/campushq/campus-chatbot-go/internal/dialogue"
	"github.com/campushq/campus-chatbot-go/internal/metrics"
	"github.com/campushq/campus-chatbot-go/internal/nlu"
	"github.com/campushq/campus-chatbot-go/internal/normalize"
	"github.com/campushq/campus-chatbot-go/internal/ratelimit"
	"github.com/campushq/campus-chatbot-go/internal/storage"
)

// scriptClassifier returns canned classifications keyed by message.
// Unscripted messages classify as unknown, like a confused model would.
type scriptClassifier struct {
	script map[string]*nlu.Classification
}

func (s *scriptClassifier) Classify(_ context.Context, text string) (*nlu.Classification, error) {
	if c, ok := s.script[text]; ok {
		return &nlu.Classification{Intent: c.Intent, Entities: cloneEntities(c.Entities)}, nil
	}
	return &nlu.Classification{Intent: nlu.IntentUnknown, Entities: map[string]string{}}, nil
}

func (s *scriptClassifier) IsEnabled() bool        { return true }
func (s *scriptClassifier) Provider() nlu.Provider { return nlu.ProviderGemini }
func (s *scriptClassifier) Close() error           { return nil }

// fakeCatalog implements the slices of storage.Catalog the orchestrator
// touches. The embedded nil interface makes any untouched method panic,
// which the turn-level recovery is expected to absorb.
type fakeCatalog struct {
	storage.Catalog

	faculty   []storage.FacultyMatch
	busy      map[string][]storage.BusySlot
	timetable []storage.TimetableEntry
	summary   *storage.PlacementSummary
}

func (f *fakeCatalog) LookupFaculty(_ context.Context, _ string) ([]storage.FacultyMatch, error) {
	return f.faculty, nil
}

func (f *fakeCatalog) GetFacultyByExactName(_ context.Context, name string) (*storage.Faculty, error) {
	for _, m := range f.faculty {
		if m.Name == name {
			fac := m.Faculty
			return &fac, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalog) GetFacultySchedule(_ context.Context, _, day string) ([]storage.BusySlot, error) {
	return f.busy[day], nil
}

func (f *fakeCatalog) QueryTimetable(_ context.Context, _ storage.TimetableFilter) ([]storage.TimetableEntry, error) {
	return f.timetable, nil
}

func (f *fakeCatalog) GetPlacementSummary(_ context.Context) (*storage.PlacementSummary, error) {
	return f.summary, nil
}

func fixedMonday() time.Time {
	return time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)
}

func newTestOrchestrator(t *testing.T, catalog storage.Catalog, script map[string]*nlu.Classification) *Orchestrator {
	t.Helper()
	store := dialogue.NewMemoryStore(time.Minute, 0)
	t.Cleanup(func() { _ = store.Close() })

	var classifier nlu.Classifier
	if script != nil {
		classifier = &scriptClassifier{script: script}
	}
	return New(catalog, classifier, nil, store,
		normalize.New(fixedMonday), metrics.New(prometheus.NewRegistry()))
}

func TestPreFilterSkipsClassifier(t *testing.T) {
	o := newTestOrchestrator(t, &fakeCatalog{}, nil)
	ctx := context.Background()

	tests := []struct{ message, want string }{
		{"hi", "Hello! How can I help you today?"},
		{"Thanks", "You're welcome! Let me know if you need anything else."},
		{"bye", "Goodbye!"},
	}
	for _, tt := range tests {
		got := o.HandleMessage(ctx, "u1", tt.message)
		if got.Text != tt.want {
			t.Errorf("%q: got %q", tt.message, got.Text)
		}
	}
}

func TestPreFilterResetsOpenConversation(t *testing.T) {
	script := map[string]*nlu.Classification{
		"show me the timetable": {Intent: nlu.IntentTimetable, Entities: map[string]string{}},
	}
	store := dialogue.NewMemoryStore(time.Minute, 0)
	defer store.Close()
	o := New(&fakeCatalog{}, &scriptClassifier{script: script}, nil, store,
		normalize.New(fixedMonday), metrics.New(prometheus.NewRegistry()))
	ctx := context.Background()

	o.HandleMessage(ctx, "u1", "show me the timetable")
	o.HandleMessage(ctx, "u1", "bye")

	m, _ := store.Get(ctx, "u1")
	if m.IsInConversation() {
		t.Error("bye should reset the open form")
	}
}

func TestNoClassifierDegradesToUnknown(t *testing.T) {
	o := newTestOrchestrator(t, &fakeCatalog{}, nil)
	got := o.HandleMessage(context.Background(), "u1", "what is the timetable")
	if !strings.Contains(got.Text, "not sure I understood") {
		t.Errorf("got %q", got.Text)
	}
}

// Two-turn timetable conversation: the form prompts for the missing day,
// the follow-up fills it and the query runs.
func TestTimetableSlotFilling(t *testing.T) {
	catalog := &fakeCatalog{
		timetable: []storage.TimetableEntry{
			{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "10:00", CourseName: "Operating Systems"},
		},
	}
	script := map[string]*nlu.Classification{
		"show me the timetable": {Intent: nlu.IntentTimetable, Entities: map[string]string{}},
		"monday":                {Intent: nlu.IntentUnknown, Entities: map[string]string{"day": "monday"}},
	}
	o := newTestOrchestrator(t, catalog, script)
	ctx := context.Background()

	first := o.HandleMessage(ctx, "u1", "show me the timetable")
	if first.Text != "Sure, which day of the week?" {
		t.Fatalf("turn 1 = %q", first.Text)
	}

	second := o.HandleMessage(ctx, "u1", "monday")
	if !strings.Contains(second.Text, "Operating Systems") {
		t.Fatalf("turn 2 = %q", second.Text)
	}
	if !strings.Contains(second.Text, "--- MONDAY ---") {
		t.Errorf("turn 2 = %q", second.Text)
	}
}

// Fuzzy name match: the bot asks for confirmation, a yes restores the
// interrupted question with the corrected name.
func TestFuzzyNameConfirmFlow(t *testing.T) {
	catalog := &fakeCatalog{
		faculty: []storage.FacultyMatch{{
			Faculty:   storage.Faculty{Name: "Dr. Ramesh Kumar", OfficeLocation: "Room 210"},
			MatchType: storage.MatchFuzzy,
		}},
		busy: map[string][]storage.BusySlot{
			"Monday": {{StartTime: "09:00", EndTime: "10:00"}},
		},
	}
	script := map[string]*nlu.Classification{
		"is prof kumaar free on monday": {
			Intent:   nlu.IntentFacultyAvailability,
			Entities: map[string]string{"faculty_name": "kumaar", "day": "monday"},
		},
	}
	o := newTestOrchestrator(t, catalog, script)
	ctx := context.Background()

	first := o.HandleMessage(ctx, "u1", "is prof kumaar free on monday")
	if !strings.Contains(first.Text, "**Dr. Ramesh Kumar**") || !strings.Contains(first.Text, "Did you mean") {
		t.Fatalf("turn 1 = %q", first.Text)
	}

	second := o.HandleMessage(ctx, "u1", "yes")
	if !strings.Contains(second.Text, "free") || !strings.Contains(second.Text, "Dr. Ramesh Kumar") {
		t.Fatalf("turn 2 = %q", second.Text)
	}
}

func TestFuzzyNameRejection(t *testing.T) {
	catalog := &fakeCatalog{
		faculty: []storage.FacultyMatch{{
			Faculty:   storage.Faculty{Name: "Dr. Ramesh Kumar"},
			MatchType: storage.MatchFuzzy,
		}},
	}
	script := map[string]*nlu.Classification{
		"where does kumaar sit": {
			Intent:   nlu.IntentFacultyLocation,
			Entities: map[string]string{"faculty_name": "kumaar"},
		},
	}
	o := newTestOrchestrator(t, catalog, script)
	ctx := context.Background()

	o.HandleMessage(ctx, "u1", "where does kumaar sit")
	got := o.HandleMessage(ctx, "u1", "no")
	if !strings.Contains(got.Text, "spell out the name") {
		t.Errorf("got %q", got.Text)
	}
}

func TestExactNameSkipsConfirmation(t *testing.T) {
	catalog := &fakeCatalog{
		faculty: []storage.FacultyMatch{{
			Faculty:   storage.Faculty{Name: "Dr. Ramesh Kumar", OfficeLocation: "Room 210"},
			MatchType: storage.MatchExact,
		}},
	}
	script := map[string]*nlu.Classification{
		"where is ramesh kumar": {
			Intent:   nlu.IntentFacultyLocation,
			Entities: map[string]string{"faculty_name": "ramesh kumar"},
		},
	}
	o := newTestOrchestrator(t, catalog, script)

	got := o.HandleMessage(context.Background(), "u1", "where is ramesh kumar")
	if !strings.Contains(got.Text, "**Room 210**") {
		t.Errorf("got %q", got.Text)
	}
}

// Family pivot: an open availability conversation absorbs a schedule
// question about the same person without re-asking anything.
func TestFamilyPivotKeepsContext(t *testing.T) {
	catalog := &fakeCatalog{
		faculty: []storage.FacultyMatch{{
			Faculty:   storage.Faculty{Name: "Dr. Ramesh Kumar"},
			MatchType: storage.MatchExact,
		}},
		busy: map[string][]storage.BusySlot{
			"Monday": {{StartTime: "09:00", EndTime: "10:00"}},
		},
		timetable: []storage.TimetableEntry{
			{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "10:00", CourseName: "Operating Systems", RoomNo: "303"},
		},
	}
	script := map[string]*nlu.Classification{
		"is ramesh kumar free on monday": {
			Intent:   nlu.IntentFacultyAvailability,
			Entities: map[string]string{"faculty_name": "ramesh kumar", "day": "monday"},
		},
		"what is his schedule": {
			Intent:   nlu.IntentFacultySchedule,
			Entities: map[string]string{},
		},
	}
	o := newTestOrchestrator(t, catalog, script)
	ctx := context.Background()

	first := o.HandleMessage(ctx, "u1", "is ramesh kumar free on monday")
	if !strings.Contains(first.Text, "free") {
		t.Fatalf("turn 1 = %q", first.Text)
	}

	second := o.HandleMessage(ctx, "u1", "what is his schedule")
	if !strings.Contains(second.Text, "Operating Systems") {
		t.Fatalf("pivot lost context: %q", second.Text)
	}
}

// An unrelated question abandons the open form and is answered fresh.
func TestUnrelatedIntentResets(t *testing.T) {
	catalog := &fakeCatalog{
		summary: &storage.PlacementSummary{HighestCTC: 54},
	}
	script := map[string]*nlu.Classification{
		"show me the timetable": {Intent: nlu.IntentTimetable, Entities: map[string]string{}},
		"placement stats":       {Intent: nlu.IntentPlacementSummary, Entities: map[string]string{}},
	}
	store := dialogue.NewMemoryStore(time.Minute, 0)
	defer store.Close()
	o := New(catalog, &scriptClassifier{script: script}, nil, store,
		normalize.New(fixedMonday), metrics.New(prometheus.NewRegistry()))
	ctx := context.Background()

	o.HandleMessage(ctx, "u1", "show me the timetable")
	got := o.HandleMessage(ctx, "u1", "placement stats")
	if !strings.Contains(got.Text, "Highest Salary") {
		t.Fatalf("got %q", got.Text)
	}

	m, _ := store.Get(ctx, "u1")
	if m.IsInConversation() {
		t.Error("formless intent left a conversation open")
	}
}

// Campus availability arms the details offer; a bare yes lands on free
// slots for the same person and day.
func TestCampusAvailabilityOffersDetails(t *testing.T) {
	catalog := &fakeCatalog{
		faculty: []storage.FacultyMatch{{
			Faculty:   storage.Faculty{Name: "Dr. Priya Sharma"},
			MatchType: storage.MatchExact,
		}},
		busy: map[string][]storage.BusySlot{
			"Monday": {{StartTime: "09:00", EndTime: "10:00"}},
		},
	}
	script := map[string]*nlu.Classification{
		"is priya sharma in today": {
			Intent:   nlu.IntentFacultyCampusAvail,
			Entities: map[string]string{"faculty_name": "priya sharma", "day": "today"},
		},
	}
	o := newTestOrchestrator(t, catalog, script)
	ctx := context.Background()

	first := o.HandleMessage(ctx, "u1", "is priya sharma in today")
	if !strings.Contains(first.Text, "**Yes**") || !strings.Contains(first.Text, "free slots, full schedule, or location") {
		t.Fatalf("turn 1 = %q", first.Text)
	}

	second := o.HandleMessage(ctx, "u1", "yes")
	if !strings.Contains(second.Text, "free") || !strings.Contains(second.Text, "Dr. Priya Sharma") {
		t.Fatalf("turn 2 = %q", second.Text)
	}
}

func TestCampusAvailabilityOfferDeclined(t *testing.T) {
	catalog := &fakeCatalog{
		faculty: []storage.FacultyMatch{{
			Faculty:   storage.Faculty{Name: "Dr. Priya Sharma"},
			MatchType: storage.MatchExact,
		}},
		busy: map[string][]storage.BusySlot{
			"Monday": {{StartTime: "09:00", EndTime: "10:00"}},
		},
	}
	script := map[string]*nlu.Classification{
		"is priya sharma in today": {
			Intent:   nlu.IntentFacultyCampusAvail,
			Entities: map[string]string{"faculty_name": "priya sharma", "day": "today"},
		},
	}
	o := newTestOrchestrator(t, catalog, script)
	ctx := context.Background()

	o.HandleMessage(ctx, "u1", "is priya sharma in today")
	got := o.HandleMessage(ctx, "u1", "no thanks")
	if got.Text != "Alright! Let me know if you need anything else." {
		t.Errorf("got %q", got.Text)
	}
}

// The HOD placeholder asks for a department, then resolves the real name
// and answers the original question.
func TestHODResolution(t *testing.T) {
	catalog := &fakeCatalog{
		faculty: []storage.FacultyMatch{{
			Faculty:   storage.Faculty{Name: "Dr. Anil Rao", Department: "HOD, CSE", OfficeLocation: "Room 101"},
			MatchType: storage.MatchExact,
		}},
	}
	script := map[string]*nlu.Classification{
		"where is the hod's office": {
			Intent:   nlu.IntentFacultyLocation,
			Entities: map[string]string{"faculty_name": "HOD"},
		},
	}
	o := newTestOrchestrator(t, &hodCatalog{fakeCatalog: catalog}, script)
	ctx := context.Background()

	first := o.HandleMessage(ctx, "u1", "where is the hod's office")
	if !strings.Contains(first.Text, "Which department's HOD") {
		t.Fatalf("turn 1 = %q", first.Text)
	}

	second := o.HandleMessage(ctx, "u1", "CSE")
	if !strings.Contains(second.Text, "**Dr. Anil Rao**") || !strings.Contains(second.Text, "**Room 101**") {
		t.Fatalf("turn 2 = %q", second.Text)
	}
}

// hodCatalog adds the department search the HOD hop needs.
type hodCatalog struct {
	*fakeCatalog
}

func (h *hodCatalog) SearchFacultyByDepartment(_ context.Context, _ string) ([]storage.Faculty, error) {
	var out []storage.Faculty
	for _, m := range h.faculty {
		out = append(out, m.Faculty)
	}
	return out, nil
}

func TestRoleOverrideBeatsExtractedName(t *testing.T) {
	catalog := &roleCatalog{principal: storage.Faculty{Name: "Dr. S Verma", Department: "Principal", OfficeLocation: "Admin Block"}}
	script := map[string]*nlu.Classification{
		"where can i find the principal": {
			Intent:   nlu.IntentFacultyLocation,
			Entities: map[string]string{"faculty_name": "Principal Verma"},
		},
	}
	o := newTestOrchestrator(t, catalog, script)

	got := o.HandleMessage(context.Background(), "u1", "where can i find the principal")
	if !strings.Contains(got.Text, "**Dr. S Verma**") {
		t.Errorf("got %q", got.Text)
	}
	if catalog.lookupCalls != 0 {
		t.Error("role queries must not go through the name lookup")
	}
}

type roleCatalog struct {
	storage.Catalog
	principal   storage.Faculty
	lookupCalls int
}

func (r *roleCatalog) LookupFaculty(_ context.Context, _ string) ([]storage.FacultyMatch, error) {
	r.lookupCalls++
	return nil, nil
}

func (r *roleCatalog) SearchFacultyByRole(_ context.Context, _ string) ([]storage.Faculty, error) {
	return []storage.Faculty{r.principal}, nil
}

// A panic anywhere in a turn resets the conversation and degrades to the
// fallback reply instead of crashing the transport.
func TestPanicRecovery(t *testing.T) {
	// get_notice_info reaches the embedded nil Catalog and panics.
	script := map[string]*nlu.Classification{
		"any notices": {Intent: nlu.IntentNoticeInfo, Entities: map[string]string{}},
	}
	store := dialogue.NewMemoryStore(time.Minute, 0)
	defer store.Close()
	o := New(&fakeCatalog{}, &scriptClassifier{script: script}, nil, store,
		normalize.New(fixedMonday), metrics.New(prometheus.NewRegistry()))
	ctx := context.Background()

	got := o.HandleMessage(ctx, "u1", "any notices")
	if !strings.Contains(got.Text, "something went wrong") {
		t.Errorf("got %q", got.Text)
	}

	m, _ := store.Get(ctx, "u1")
	if m.IsInConversation() || m.HasPendingAction() {
		t.Error("panic left conversation state behind")
	}
}

// brokenCatalog fails placement lookups outright while the embedded nil
// Catalog still panics on notices, covering both failure shapes of a turn.
type brokenCatalog struct {
	fakeCatalog
}

func (b *brokenCatalog) GetPlacementSummary(_ context.Context) (*storage.PlacementSummary, error) {
	return nil, errors.New("catalog offline")
}

// Both the turn-level recover and the intent error path degrade to the
// fallback reply, so neither panic nor error ever reaches the gin Sentry
// middleware. They must be reported from inside the turn instead.
func TestTurnFailuresReachErrorReporter(t *testing.T) {
	var captured []*sentrygo.Event
	client, err := sentrygo.NewClient(sentrygo.ClientOptions{
		Dsn: "https://recorder@o0.ingest.sentry.io/1",
		// Returning nil drops the event after recording it, so nothing
		// touches the network.
		BeforeSend: func(ev *sentrygo.Event, _ *sentrygo.EventHint) *sentrygo.Event {
			captured = append(captured, ev)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	hub := sentrygo.NewHub(client, sentrygo.NewScope())
	ctx := sentrygo.SetHubOnContext(context.Background(), hub)

	script := map[string]*nlu.Classification{
		"any notices":     {Intent: nlu.IntentNoticeInfo, Entities: map[string]string{}},
		"placement stats": {Intent: nlu.IntentPlacementSummary, Entities: map[string]string{}},
	}
	o := newTestOrchestrator(t, &brokenCatalog{}, script)

	// get_notice_info reaches the embedded nil Catalog and panics.
	got := o.HandleMessage(ctx, "u1", "any notices")
	if !strings.Contains(got.Text, "something went wrong") {
		t.Errorf("panic turn reply = %q", got.Text)
	}
	if len(captured) != 1 {
		t.Fatalf("panic turn reported %d events, want 1", len(captured))
	}

	// get_placement_summary returns an error, taking the intent failure path.
	got = o.HandleMessage(ctx, "u1", "placement stats")
	if !strings.Contains(got.Text, "something went wrong") {
		t.Errorf("failed turn reply = %q", got.Text)
	}
	if len(captured) != 2 {
		t.Fatalf("failed turn reported %d events, want 2", len(captured))
	}
}

func TestFacultyNotFoundIsTerminal(t *testing.T) {
	script := map[string]*nlu.Classification{
		"where is dr ghost": {
			Intent:   nlu.IntentFacultyLocation,
			Entities: map[string]string{"faculty_name": "dr ghost"},
		},
	}
	store := dialogue.NewMemoryStore(time.Minute, 0)
	defer store.Close()
	o := New(&fakeCatalog{}, &scriptClassifier{script: script}, nil, store,
		normalize.New(fixedMonday), metrics.New(prometheus.NewRegistry()))
	ctx := context.Background()

	got := o.HandleMessage(ctx, "u1", "where is dr ghost")
	if got.Text != "I'm sorry, I couldn't find a faculty member by that name." {
		t.Errorf("got %q", got.Text)
	}

	m, _ := store.Get(ctx, "u1")
	if m.HasPendingAction() {
		t.Error("not-found must not arm a pending action")
	}
}

func TestNamesDiffer(t *testing.T) {
	tests := []struct {
		typed, stored string
		want          bool
	}{
		{"kumar", "Dr. Ramesh Kumar", false}, // substring after stripping titles
		{"ramesh kumar", "Dr. Ramesh Kumar", false},
		{"kumaar", "Dr. Ramesh Kumar", true}, // genuinely different spelling
		{"DR. RAMESH KUMAR", "Dr. Ramesh Kumar", false},
		{"", "Dr. Ramesh Kumar", true},
	}
	for _, tt := range tests {
		if got := namesDiffer(tt.typed, tt.stored); got != tt.want {
			t.Errorf("namesDiffer(%q, %q) = %v, want %v", tt.typed, tt.stored, got, tt.want)
		}
	}
}

func TestRegistryCoversEveryFormIntent(t *testing.T) {
	for _, intent := range []string{
		nlu.IntentTimetable,
		nlu.IntentFacultyAvailability,
		nlu.IntentFacultySchedule,
		nlu.IntentFacultyLocationOnDay,
		nlu.IntentFacultyCampusAvail,
		nlu.IntentCourseInstructors,
		nlu.IntentPlacementCountByCTC,
		nlu.IntentPlacementCompaniesByCTC,
	} {
		if _, ok := intentRegistry[intent]; !ok {
			t.Errorf("form intent %s has no handler", intent)
		}
	}
	for _, f := range nlu.IntentFunctions() {
		if f.Name == nlu.IntentGeneralChat {
			continue
		}
		if _, ok := intentRegistry[f.Name]; !ok {
			t.Errorf("classifiable intent %s has no handler", f.Name)
		}
	}
}

// The LLM budget gate degrades over-cap users to keyword handling
// instead of erroring.
func TestLLMBudgetExhaustedDegrades(t *testing.T) {
	catalog := &fakeCatalog{
		summary: &storage.PlacementSummary{HighestCTC: 54},
	}
	script := map[string]*nlu.Classification{
		"placement stats": {Intent: nlu.IntentPlacementSummary, Entities: map[string]string{}},
	}
	limiter := ratelimit.NewKeyedLimiter(ratelimit.KeyedConfig{
		Name:          "llm",
		Burst:         1,
		RefillRate:    0,
		CleanupPeriod: time.Hour,
	})
	defer limiter.Stop()

	store := dialogue.NewMemoryStore(time.Minute, 0)
	defer store.Close()
	o := New(catalog, &scriptClassifier{script: script}, nil, store,
		normalize.New(fixedMonday), metrics.New(prometheus.NewRegistry()),
		WithLLMLimiter(limiter))
	ctx := context.Background()

	first := o.HandleMessage(ctx, "u1", "placement stats")
	if !strings.Contains(first.Text, "Highest") {
		t.Fatalf("first message should reach the catalog, got %q", first.Text)
	}

	second := o.HandleMessage(ctx, "u1", "placement stats")
	if !strings.Contains(second.Text, "not sure I understood") {
		t.Errorf("over-budget message should degrade, got %q", second.Text)
	}

	// A different user still has budget.
	other := o.HandleMessage(ctx, "u2", "placement stats")
	if !strings.Contains(other.Text, "Highest") {
		t.Errorf("other user should be unaffected, got %q", other.Text)
	}
}
