package chat

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/campushq/campus-chatbot-go/internal/config"
	"github.com/campushq/campus-chatbot-go/internal/dialogue"
	"github.com/campushq/campus-chatbot-go/internal/nlu"
	"github.com/campushq/campus-chatbot-go/internal/respond"
	"github.com/campushq/campus-chatbot-go/internal/sentry"
	"github.com/campushq/campus-chatbot-go/internal/storage"
)

// execResult is what one intent handler produces: the formatted reply
// and how many catalog rows backed it. Zero rows lets the orchestrator
// swap in a friendlier LLM suggestion while keeping the formatter's
// not-found text as the guaranteed fallback.
type execResult struct {
	reply respond.Reply
	rows  int
}

// execFunc runs one intent against the catalog.
type execFunc func(ctx context.Context, o *Orchestrator, manager *dialogue.Manager,
	entities map[string]string, message string) (execResult, error)

// intentRegistry maps every executable intent to its handler. Intents
// absent here (general_chat, unknown) go to the free-text responder.
var intentRegistry = map[string]execFunc{
	nlu.IntentTimetable:               execTimetable,
	nlu.IntentFacultyInfo:             execFacultyInfo,
	nlu.IntentFacultyLocation:         execFacultyLocation,
	nlu.IntentFacultyLocationOnDay:    execFacultyLocationOnDay,
	nlu.IntentFacultyAvailability:     execFacultyAvailability,
	nlu.IntentFacultyCampusAvail:      execFacultyCampusAvailability,
	nlu.IntentFacultySchedule:         execFacultySchedule,
	nlu.IntentFacultyCourses:          execFacultyCourses,
	nlu.IntentCourseInstructors:       execCourseInstructors,
	nlu.IntentLocation:                execLocation,
	nlu.IntentPlacementSummary:        execPlacementSummary,
	nlu.IntentPlacementStats:          execPlacementSummary,
	nlu.IntentCompanyStats:            execCompanyStats,
	nlu.IntentPlacementCountByType:    execPlacementCountByType,
	nlu.IntentPlacementCountByCTC:     execPlacementCountByCTC,
	nlu.IntentPlacementCompaniesByCTC: execPlacementCompaniesByCTC,
	nlu.IntentPlacementStartInfo:      staticReply(respond.PlacementStartInfo),
	nlu.IntentExamRegistrationInfo:    staticReply(respond.ExamRegistrationInfo),
	nlu.IntentLostItemInfo:            execLostItem,
	nlu.IntentStudentPortalInfo:       staticReply(respond.StudentPortalInfo),
	nlu.IntentClubInfo:                execClubs,
	nlu.IntentHostelInfo:              execHostels,
	nlu.IntentTransportInfo:           execTransport,
	nlu.IntentEventInfo:               execEvents,
	nlu.IntentNoticeInfo:              execNotices,
	nlu.IntentScholarshipInfo:         execScholarships,
	nlu.IntentDressCode:               execDressCode,
	nlu.IntentAdmissionsInfo:          execOffice("admissions"),
	nlu.IntentFeesInfo:                execOffice("fees"),
	nlu.IntentAntiRaggingInfo:         execAntiRagging,
}

// execute runs an intent's handler and applies the empty-result and
// failure policies around it.
func (o *Orchestrator) execute(ctx context.Context, manager *dialogue.Manager,
	intent string, entities map[string]string, message string) respond.Reply {

	fn, ok := intentRegistry[intent]
	if !ok {
		// general_chat, unknown, or anything the classifier invented.
		return o.respondGeneral(ctx, message)
	}

	result, err := fn(ctx, o, manager, entities, message)
	if err != nil {
		slog.ErrorContext(ctx, "intent execution failed", "intent", intent, "error", err)
		sentry.CaptureExceptionWithContext(ctx, err)
		manager.Reset()
		return respond.Text(config.FallbackReply)
	}

	if result.rows == 0 && result.reply.MediaURL == "" {
		return o.respondSuggestion(ctx, message, result.reply.Text)
	}
	o.metrics.RecordResponse("formatted")
	return result.reply
}

// staticReply wraps a constant answer as a handler.
func staticReply(text string) execFunc {
	return func(context.Context, *Orchestrator, *dialogue.Manager, map[string]string, string) (execResult, error) {
		return execResult{reply: respond.Text(text), rows: 1}, nil
	}
}

func execTimetable(ctx context.Context, o *Orchestrator, _ *dialogue.Manager,
	entities map[string]string, _ string) (execResult, error) {

	filter := storage.TimetableFilter{
		Branch:      entities[nlu.EntityBranch],
		Section:     entities[nlu.EntitySection],
		Day:         entities[nlu.EntityDay],
		FacultyName: entities[nlu.EntityFacultyName],
		CourseName:  entities[nlu.EntityCourseName],
		CourseCode:  entities[nlu.EntityCourseCode],
	}
	if y, err := strconv.Atoi(entities[nlu.EntityStudyYear]); err == nil {
		filter.StudyYear = y
	}
	if filter == (storage.TimetableFilter{}) {
		return execResult{reply: respond.Text("I'm sorry, I missed what you wanted the timetable for."), rows: 1}, nil
	}

	entries, err := o.catalog.QueryTimetable(ctx, filter)
	if err != nil {
		return execResult{}, err
	}
	return execResult{reply: respond.Text(respond.Timetable(entries, filter)), rows: len(entries)}, nil
}

// facultySearch resolves the name-or-department search both faculty info
// intents share.
func facultySearch(ctx context.Context, o *Orchestrator, entities map[string]string) ([]storage.FacultyMatch, bool, error) {
	name := entities[nlu.EntityFacultyName]
	dept := entities[nlu.EntityDepartment]
	if name == "" && dept == "" {
		return nil, false, nil
	}

	if name != "" {
		matches, err := o.catalog.LookupFaculty(ctx, name)
		return matches, true, err
	}

	var members []storage.Faculty
	var err error
	if _, ok := storage.RoleKeyword(dept); ok {
		members, err = o.catalog.SearchFacultyByRole(ctx, dept)
	} else {
		members, err = o.catalog.SearchFacultyByDepartment(ctx, dept)
	}
	if err != nil {
		return nil, true, err
	}
	matches := make([]storage.FacultyMatch, 0, len(members))
	for _, f := range members {
		matches = append(matches, storage.FacultyMatch{Faculty: f, MatchType: storage.MatchExact})
	}
	return matches, true, nil
}

func execFacultyInfo(ctx context.Context, o *Orchestrator, _ *dialogue.Manager,
	entities map[string]string, _ string) (execResult, error) {

	matches, asked, err := facultySearch(ctx, o, entities)
	if err != nil {
		return execResult{}, err
	}
	if !asked {
		return execResult{reply: respond.Text("Which faculty member are you asking about?"), rows: 1}, nil
	}
	return execResult{reply: respond.FacultyInfo(matches), rows: len(matches)}, nil
}

func execFacultyLocation(ctx context.Context, o *Orchestrator, _ *dialogue.Manager,
	entities map[string]string, _ string) (execResult, error) {

	matches, asked, err := facultySearch(ctx, o, entities)
	if err != nil {
		return execResult{}, err
	}
	if !asked {
		return execResult{reply: respond.Text("Whose office location are you looking for?"), rows: 1}, nil
	}
	return execResult{reply: respond.Text(respond.FacultyLocation(matches)), rows: len(matches)}, nil
}

func execFacultyAvailability(ctx context.Context, o *Orchestrator, _ *dialogue.Manager,
	entities map[string]string, _ string) (execResult, error) {

	name := entities[nlu.EntityFacultyName]
	day := entities[nlu.EntityDay]
	if name == "" || day == "" {
		return execResult{reply: respond.Text("I'm sorry, I missed who or which day. Please ask again."), rows: 1}, nil
	}

	busy, err := o.catalog.GetFacultySchedule(ctx, name, day)
	if err != nil {
		return execResult{}, err
	}
	text := respond.FacultyAvailability(busy, name, day, entities[nlu.EntityTime])
	return execResult{reply: respond.Text(text), rows: 1}, nil
}

func execFacultySchedule(ctx context.Context, o *Orchestrator, _ *dialogue.Manager,
	entities map[string]string, _ string) (execResult, error) {

	name := entities[nlu.EntityFacultyName]
	day := entities[nlu.EntityDay]
	if name == "" || day == "" {
		return execResult{reply: respond.Text("I'm sorry, I missed who or which day. Please ask again."), rows: 1}, nil
	}

	entries, err := o.catalog.QueryTimetable(ctx, storage.TimetableFilter{FacultyName: name, Day: day})
	if err != nil {
		return execResult{}, err
	}
	return execResult{reply: respond.Text(respond.FacultySchedule(entries, name, day)), rows: 1}, nil
}

func execFacultyLocationOnDay(ctx context.Context, o *Orchestrator, _ *dialogue.Manager,
	entities map[string]string, _ string) (execResult, error) {

	name := entities[nlu.EntityFacultyName]
	day := entities[nlu.EntityDay]
	if name == "" || day == "" {
		return execResult{reply: respond.Text("I'm sorry, I missed who or which day. Please ask again."), rows: 1}, nil
	}

	entries, err := o.catalog.QueryTimetable(ctx, storage.TimetableFilter{FacultyName: name, Day: day})
	if err != nil {
		return execResult{}, err
	}

	office := ""
	if f, err := o.catalog.GetFacultyByExactName(ctx, name); err == nil && f != nil {
		office = f.OfficeLocation
	}

	text := respond.FacultyLocationOnDay(entries, name, day, entities[nlu.EntityTime], office)
	return execResult{reply: respond.Text(text), rows: 1}, nil
}

func execFacultyCampusAvailability(ctx context.Context, o *Orchestrator, manager *dialogue.Manager,
	entities map[string]string, _ string) (execResult, error) {

	name := entities[nlu.EntityFacultyName]
	if name == "" {
		return execResult{reply: respond.Text("Which faculty member are you asking about?"), rows: 1}, nil
	}
	day := entities[nlu.EntityDay]
	if day == "" {
		day = o.norm.Day("today")
	}

	busy, err := o.catalog.GetFacultySchedule(ctx, name, day)
	if err != nil {
		return execResult{}, err
	}

	if len(busy) > 0 {
		// The positive answer ends with an offer of details; arm the
		// follow-up so a bare "yes" lands on free slots.
		manager.SetPendingAction(dialogue.ActionOfferFacultyDetails, dialogue.ActionContext{
			Intent: nlu.IntentFacultyCampusAvail,
			Entities: map[string]string{
				nlu.EntityFacultyName: name,
				nlu.EntityDay:         day,
			},
		})
		o.metrics.RecordPendingAction(string(dialogue.ActionOfferFacultyDetails), "armed")
	}

	return execResult{reply: respond.Text(respond.FacultyCampusAvailability(busy, name, day)), rows: 1}, nil
}

func execFacultyCourses(ctx context.Context, o *Orchestrator, _ *dialogue.Manager,
	entities map[string]string, _ string) (execResult, error) {

	name := entities[nlu.EntityFacultyName]
	if name == "" {
		return execResult{reply: respond.Text("Which faculty's courses are you looking for?"), rows: 1}, nil
	}
	courses, err := o.catalog.GetCoursesForFaculty(ctx, name)
	if err != nil {
		return execResult{}, err
	}
	return execResult{reply: respond.Text(respond.FacultyCourses(courses, name)), rows: len(courses)}, nil
}

func execCourseInstructors(ctx context.Context, o *Orchestrator, _ *dialogue.Manager,
	entities map[string]string, _ string) (execResult, error) {

	filter := storage.InstructorFilter{
		CourseName: entities[nlu.EntityCourseName],
		CourseCode: entities[nlu.EntityCourseCode],
		Branch:     entities[nlu.EntityBranch],
		Section:    entities[nlu.EntitySection],
	}
	if filter.CourseName == "" && filter.CourseCode == "" {
		return execResult{reply: respond.Text("Which course are you asking about?"), rows: 1}, nil
	}

	rows, err := o.catalog.GetCourseInstructors(ctx, filter)
	if err != nil {
		return execResult{}, err
	}
	// The formatter's not-found wording names the course, which beats a
	// generic suggestion.
	return execResult{reply: respond.Text(respond.CourseInstructors(rows, filter)), rows: 1}, nil
}

func execLocation(ctx context.Context, o *Orchestrator, _ *dialogue.Manager,
	entities map[string]string, _ string) (execResult, error) {

	place := entities[nlu.EntityPlace]
	facilities, err := o.catalog.SearchFacilities(ctx, place)
	if err != nil {
		return execResult{}, err
	}
	return execResult{reply: respond.Text(respond.Location(facilities, place)), rows: 1}, nil
}

func execPlacementSummary(ctx context.Context, o *Orchestrator, _ *dialogue.Manager,
	entities map[string]string, _ string) (execResult, error) {

	summary, err := o.catalog.GetPlacementSummary(ctx)
	if err != nil {
		return execResult{}, err
	}
	rows := 0
	if summary != nil {
		rows = 1
	}
	return execResult{reply: respond.Text(respond.PlacementSummary(summary, entities[nlu.EntityStatType])), rows: rows}, nil
}

func execCompanyStats(ctx context.Context, o *Orchestrator, _ *dialogue.Manager,
	entities map[string]string, _ string) (execResult, error) {

	company := entities[nlu.EntityCompanyName]
	if company == "" {
		return execResult{reply: respond.Text("Which company's stats are you looking for?"), rows: 1}, nil
	}
	companies, err := o.catalog.SearchCompanies(ctx, company)
	if err != nil {
		return execResult{}, err
	}
	return execResult{reply: respond.Text(respond.CompanyStats(companies, company)), rows: len(companies)}, nil
}

func execPlacementCountByType(ctx context.Context, o *Orchestrator, _ *dialogue.Manager,
	entities map[string]string, _ string) (execResult, error) {

	ctcType := entities[nlu.EntityCTCType]
	if ctcType == "" {
		return execResult{reply: respond.Text("Which CTC type are you asking about (e.g., Dream, Core)?"), rows: 1}, nil
	}
	counts, err := o.catalog.CountCompaniesByType(ctx, ctcType)
	if err != nil {
		return execResult{}, err
	}
	return execResult{reply: respond.Text(respond.PlacementCountByType(counts, ctcType)), rows: 1}, nil
}

// ctcQuery pulls the shared operator/amount pair out of the entities.
func ctcQuery(entities map[string]string) (storage.CTCOperator, float64, bool) {
	op := storage.CTCOperator(entities[nlu.EntityOperator])
	if op != storage.CTCAbove && op != storage.CTCBelow {
		return "", 0, false
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(entities[nlu.EntityAmount]), 64)
	if err != nil || amount < 0 {
		return "", 0, false
	}
	return op, amount, true
}

func execPlacementCountByCTC(ctx context.Context, o *Orchestrator, _ *dialogue.Manager,
	entities map[string]string, _ string) (execResult, error) {

	op, amount, ok := ctcQuery(entities)
	if !ok {
		return execResult{reply: respond.Text("I'm not sure which CTC range you're asking about."), rows: 1}, nil
	}
	agg, err := o.catalog.AggregateByCTC(ctx, op, amount)
	if err != nil {
		return execResult{}, err
	}
	return execResult{reply: respond.Text(respond.PlacementCountByCTC(agg, op, amount)), rows: 1}, nil
}

func execPlacementCompaniesByCTC(ctx context.Context, o *Orchestrator, _ *dialogue.Manager,
	entities map[string]string, _ string) (execResult, error) {

	op, amount, ok := ctcQuery(entities)
	if !ok {
		return execResult{reply: respond.Text("I'm not sure which CTC range you're asking about."), rows: 1}, nil
	}
	companies, err := o.catalog.CompaniesByCTC(ctx, op, amount)
	if err != nil {
		return execResult{}, err
	}
	return execResult{reply: respond.Text(respond.PlacementCompaniesByCTC(companies, op, amount)), rows: 1}, nil
}

func execLostItem(_ context.Context, _ *Orchestrator, _ *dialogue.Manager,
	_ map[string]string, message string) (execResult, error) {
	return execResult{reply: respond.Text(respond.LostItemInfo(message)), rows: 1}, nil
}

func execClubs(ctx context.Context, o *Orchestrator, _ *dialogue.Manager,
	entities map[string]string, _ string) (execResult, error) {

	term := entities[nlu.EntityClubName]
	if term == "" {
		term = entities[nlu.EntityCategory]
	}
	clubs, err := o.catalog.SearchClubs(ctx, term)
	if err != nil {
		return execResult{}, err
	}
	return execResult{reply: respond.Text(respond.Clubs(clubs, term)), rows: len(clubs)}, nil
}

func execHostels(ctx context.Context, o *Orchestrator, _ *dialogue.Manager,
	entities map[string]string, _ string) (execResult, error) {

	hostels, err := o.catalog.SearchHostels(ctx,
		entities[nlu.EntityHostelName], entities[nlu.EntityGender], entities[nlu.EntityCampus])
	if err != nil {
		return execResult{}, err
	}
	return execResult{reply: respond.Text(respond.Hostels(hostels)), rows: len(hostels)}, nil
}

func execTransport(ctx context.Context, o *Orchestrator, _ *dialogue.Manager,
	entities map[string]string, _ string) (execResult, error) {

	term := entities[nlu.EntityRouteName]
	routes, err := o.catalog.SearchTransportRoutes(ctx, term)
	if err != nil {
		return execResult{}, err
	}
	return execResult{reply: respond.Text(respond.TransportRoutes(routes, term)), rows: len(routes)}, nil
}

func execEvents(ctx context.Context, o *Orchestrator, _ *dialogue.Manager,
	entities map[string]string, _ string) (execResult, error) {

	term := entities[nlu.EntityEventTitle]
	events, err := o.catalog.SearchEvents(ctx, term)
	if err != nil {
		return execResult{}, err
	}
	return execResult{reply: respond.Text(respond.Events(events, term)), rows: len(events)}, nil
}

func execNotices(ctx context.Context, o *Orchestrator, _ *dialogue.Manager,
	_ map[string]string, _ string) (execResult, error) {

	notices, err := o.catalog.GetRecentNotices(ctx)
	if err != nil {
		return execResult{}, err
	}
	return execResult{reply: respond.Text(respond.Notices(notices)), rows: len(notices)}, nil
}

func execScholarships(ctx context.Context, o *Orchestrator, _ *dialogue.Manager,
	_ map[string]string, _ string) (execResult, error) {

	scholarships, err := o.catalog.SearchScholarships(ctx, "")
	if err != nil {
		return execResult{}, err
	}
	return execResult{reply: respond.Text(respond.Scholarships(scholarships)), rows: len(scholarships)}, nil
}

func execDressCode(ctx context.Context, o *Orchestrator, _ *dialogue.Manager,
	entities map[string]string, _ string) (execResult, error) {

	category := entities[nlu.EntityCategory]
	rules, err := o.catalog.GetDressCode(ctx, category)
	if err != nil {
		return execResult{}, err
	}
	return execResult{reply: respond.Text(respond.DressCode(rules, category)), rows: len(rules)}, nil
}

func execOffice(office string) execFunc {
	return func(ctx context.Context, o *Orchestrator, _ *dialogue.Manager,
		_ map[string]string, _ string) (execResult, error) {

		contacts, err := o.catalog.GetOfficeContacts(ctx, office)
		if err != nil {
			return execResult{}, err
		}
		return execResult{reply: respond.Text(respond.OfficeContacts(contacts, office)), rows: len(contacts)}, nil
	}
}

func execAntiRagging(ctx context.Context, o *Orchestrator, _ *dialogue.Manager,
	_ map[string]string, _ string) (execResult, error) {

	contacts, err := o.catalog.GetAntiRaggingSquad(ctx)
	if err != nil {
		return execResult{}, err
	}
	return execResult{reply: respond.Text(respond.AntiRaggingSquad(contacts)), rows: len(contacts)}, nil
}
