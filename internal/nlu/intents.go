// Package nlu provides LLM-backed intent classification and free-text responses.
// This file declares the intent catalog exposed to the model as callable functions.
package nlu

// Intent ids. Every function the model may call maps one-to-one onto an
// intent; IntentUnknown is what the classifier reports when the model calls
// something it should not, or when classification fails entirely.
const (
	IntentTimetable                = "get_timetable"
	IntentFacultyInfo              = "get_faculty_info"
	IntentFacultyLocation          = "get_faculty_location"
	IntentFacultyLocationOnDay     = "get_faculty_location_on_day"
	IntentFacultyAvailability      = "get_faculty_availability"
	IntentFacultyCampusAvail       = "get_faculty_campus_availability"
	IntentFacultySchedule          = "get_faculty_schedule"
	IntentFacultyCourses           = "get_faculty_courses"
	IntentCourseInstructors        = "get_course_instructors"
	IntentLocation                 = "get_location"
	IntentPlacementSummary         = "get_placement_summary"
	IntentPlacementStats           = "get_placement_stats"
	IntentCompanyStats             = "get_company_stats"
	IntentPlacementCountByType     = "get_placement_count_by_type"
	IntentPlacementCountByCTC      = "get_placement_count_by_ctc"
	IntentPlacementCompaniesByCTC  = "get_placement_companies_by_ctc"
	IntentPlacementStartInfo       = "get_placement_start_info"
	IntentExamRegistrationInfo     = "get_exam_registration_info"
	IntentLostItemInfo             = "get_lost_item_info"
	IntentStudentPortalInfo        = "get_student_portal_info"
	IntentClubInfo                 = "get_club_info"
	IntentHostelInfo               = "get_hostel_info"
	IntentTransportInfo            = "get_transport_info"
	IntentEventInfo                = "get_event_info"
	IntentNoticeInfo               = "get_notice_info"
	IntentScholarshipInfo          = "get_scholarship_info"
	IntentDressCode                = "get_dress_code"
	IntentAdmissionsInfo           = "get_admissions_info"
	IntentFeesInfo                 = "get_fees_info"
	IntentAntiRaggingInfo          = "get_anti_ragging_info"
	IntentGeneralChat              = "general_chat"
	IntentUnknown                  = "unknown"
)

// Entity names used as function parameters. The dialogue forms and the
// normalizer match on these keys, so they are shared constants rather than
// inline strings.
const (
	EntityFacultyName = "faculty_name"
	EntityDepartment  = "department"
	EntityDay         = "day"
	EntityTime        = "time"
	EntityBranch      = "branch"
	EntitySection     = "section"
	EntityStudyYear   = "study_year"
	EntityCourseName  = "course_name"
	EntityCourseCode  = "course_code"
	EntityPlace       = "place"
	EntityStatType    = "stat_type"
	EntityCompanyName = "company_name"
	EntityCTCType     = "ctc_type"
	EntityOperator    = "operator"
	EntityAmount      = "amount"
	EntityClubName    = "club_name"
	EntityCategory    = "category"
	EntityHostelName  = "hostel_name"
	EntityGender      = "gender"
	EntityCampus      = "campus"
	EntityRouteName   = "route_name"
	EntityEventTitle  = "event_title"
	EntityMessage     = "message"
)

// entityDescriptions documents each entity for the model. Every function
// references entities from this table so descriptions stay consistent across
// intents.
var entityDescriptions = map[string]string{
	EntityFacultyName: "Name of the faculty member as the user typed it, e.g. 'Dr. Anil Kumar' or 'kumar'",
	EntityDepartment:  "Department name or abbreviation, e.g. 'CSE', 'ISE', 'Mechanical'",
	EntityDay:         "Day of the week or a relative day word: 'Monday', 'today', 'tomorrow', 'day after tomorrow'",
	EntityTime:        "Clock time as the user said it, e.g. '3pm', '3:30pm', '15:00'",
	EntityBranch:      "Branch or programme abbreviation, e.g. 'CSE', 'ISE', 'ECE'",
	EntitySection:     "Class section letter, e.g. 'A', 'B'",
	EntityStudyYear:   "Year of study as a number, e.g. '2', '3'",
	EntityCourseName:  "Course title, e.g. 'Operating Systems'",
	EntityCourseCode:  "Course code, e.g. 'CS301' or '18CS52'",
	EntityPlace:       "Building, office, or room the user is asking about, e.g. 'library', 'admissions office'",
	EntityStatType:    "Placement statistic requested: 'highest', 'average', 'median', 'lowest', 'total_selects', or 'total_companies'",
	EntityCompanyName: "Company name, e.g. 'Infosys'",
	EntityCTCType:     "Placement offer category, e.g. 'dream', 'super dream', 'mass recruitment'",
	EntityOperator:    "Comparison direction for a CTC amount: 'gt' for above, 'lt' for below",
	EntityAmount:      "CTC amount in lakhs per annum as a number, e.g. '10'",
	EntityClubName:    "Student club name, e.g. 'coding club'",
	EntityCategory:    "Club category, e.g. 'technical', 'cultural', 'sports'",
	EntityHostelName:  "Hostel name, e.g. 'Cauvery'",
	EntityGender:      "Hostel resident gender: 'boys' or 'girls'",
	EntityCampus:      "Campus name when the college has more than one",
	EntityRouteName:   "Bus route name or area, e.g. 'Majestic'",
	EntityEventTitle:  "Event name, e.g. 'tech fest'",
	EntityMessage:     "The user's message verbatim, for conversational replies",
}

// IntentFunction describes one callable function exposed to the model.
// Params lists entity names in declaration order; none are marked required at
// the schema level because the dialogue manager prompts for missing slots.
type IntentFunction struct {
	Name        string
	Description string
	Params      []string
}

// IntentFunctions returns the full function catalog in a stable order.
// One function per intent except IntentUnknown, which is never a valid call.
func IntentFunctions() []IntentFunction {
	return intentFunctions
}

var intentFunctions = []IntentFunction{
	{
		Name:        IntentTimetable,
		Description: "Get the class timetable for a branch, section, and year of study, optionally for one day",
		Params:      []string{EntityBranch, EntitySection, EntityStudyYear, EntityDay},
	},
	{
		Name:        IntentFacultyInfo,
		Description: "Get general information about a faculty member: department, email, office",
		Params:      []string{EntityFacultyName, EntityDepartment},
	},
	{
		Name:        IntentFacultyLocation,
		Description: "Get the office or cabin location of a faculty member",
		Params:      []string{EntityFacultyName},
	},
	{
		Name:        IntentFacultyLocationOnDay,
		Description: "Find where a faculty member is at a specific day and time, e.g. 'where is X on Monday at 3pm'",
		Params:      []string{EntityFacultyName, EntityDay, EntityTime},
	},
	{
		Name:        IntentFacultyAvailability,
		Description: "Check whether a faculty member is free at a specific day and time",
		Params:      []string{EntityFacultyName, EntityDay, EntityTime},
	},
	{
		Name:        IntentFacultyCampusAvail,
		Description: "Check whether a faculty member is on campus on a given day at all",
		Params:      []string{EntityFacultyName, EntityDay},
	},
	{
		Name:        IntentFacultySchedule,
		Description: "Get a faculty member's free slots or teaching schedule for a day",
		Params:      []string{EntityFacultyName, EntityDay},
	},
	{
		Name:        IntentFacultyCourses,
		Description: "List the courses a faculty member teaches",
		Params:      []string{EntityFacultyName},
	},
	{
		Name:        IntentCourseInstructors,
		Description: "Find which faculty teach a course, by course name or course code",
		Params:      []string{EntityCourseName, EntityCourseCode, EntityBranch, EntitySection},
	},
	{
		Name:        IntentLocation,
		Description: "Get directions to a building, office, or room on campus",
		Params:      []string{EntityPlace},
	},
	{
		Name:        IntentPlacementSummary,
		Description: "Get the overall placement summary for the latest year",
	},
	{
		Name:        IntentPlacementStats,
		Description: "Get one specific placement statistic such as highest or average CTC",
		Params:      []string{EntityStatType},
	},
	{
		Name:        IntentCompanyStats,
		Description: "Get placement details for a specific visiting company",
		Params:      []string{EntityCompanyName},
	},
	{
		Name:        IntentPlacementCountByType,
		Description: "Count placement offers by offer category such as dream or super dream",
		Params:      []string{EntityCTCType},
	},
	{
		Name:        IntentPlacementCountByCTC,
		Description: "Count students placed above or below a CTC amount",
		Params:      []string{EntityOperator, EntityAmount},
	},
	{
		Name:        IntentPlacementCompaniesByCTC,
		Description: "List companies offering above or below a CTC amount",
		Params:      []string{EntityOperator, EntityAmount},
	},
	{
		Name:        IntentPlacementStartInfo,
		Description: "When placements start and which semester students become eligible",
	},
	{
		Name:        IntentExamRegistrationInfo,
		Description: "How and where to register for semester exams",
	},
	{
		Name:        IntentLostItemInfo,
		Description: "What to do about a lost or found item on campus",
	},
	{
		Name:        IntentStudentPortalInfo,
		Description: "Link and help for the student portal / parent portal",
	},
	{
		Name:        IntentClubInfo,
		Description: "Information about student clubs, by name or category",
		Params:      []string{EntityClubName, EntityCategory},
	},
	{
		Name:        IntentHostelInfo,
		Description: "Hostel information: names, fees, warden contacts",
		Params:      []string{EntityHostelName, EntityGender, EntityCampus},
	},
	{
		Name:        IntentTransportInfo,
		Description: "College bus routes and timings",
		Params:      []string{EntityRouteName},
	},
	{
		Name:        IntentEventInfo,
		Description: "Upcoming or past college events and fests",
		Params:      []string{EntityEventTitle},
	},
	{
		Name:        IntentNoticeInfo,
		Description: "Recent official notices and circulars",
	},
	{
		Name:        IntentScholarshipInfo,
		Description: "Scholarships offered and eligibility",
	},
	{
		Name:        IntentDressCode,
		Description: "College dress code rules",
	},
	{
		Name:        IntentAdmissionsInfo,
		Description: "Admissions office contacts and procedure",
	},
	{
		Name:        IntentFeesInfo,
		Description: "Fee payment office contacts and procedure",
	},
	{
		Name:        IntentAntiRaggingInfo,
		Description: "Anti-ragging helpline and squad contacts",
	},
	{
		Name:        IntentGeneralChat,
		Description: "Greetings, thanks, chit-chat, or anything outside campus information",
		Params:      []string{EntityMessage},
	},
}

// knownIntents is the set of intent ids the rest of the pipeline accepts.
var knownIntents = func() map[string]bool {
	m := make(map[string]bool, len(intentFunctions)+1)
	for _, fn := range intentFunctions {
		m[fn.Name] = true
	}
	m[IntentUnknown] = true
	return m
}()

// IsKnownIntent reports whether id names a recognized intent.
func IsKnownIntent(id string) bool {
	return knownIntents[id]
}

// IntentEntityKeys returns the entity names declared for an intent, in
// declaration order. Nil for intents without parameters or unknown ids.
// The normalizer uses this to drop entity keys the intent never declared.
func IntentEntityKeys(intent string) []string {
	return intentParams[intent]
}

// AllEntityKeys returns every entity name any intent declares. Callers use
// it when the intent carries no declaration of its own, such as an unknown
// classification mid-conversation where stray entities still fill slots.
func AllEntityKeys() []string {
	keys := make([]string, 0, len(entityDescriptions))
	for key := range entityDescriptions {
		keys = append(keys, key)
	}
	return keys
}

// intentParams maps a function name to its declared entity names, used when
// extracting arguments from a model tool call.
var intentParams = func() map[string][]string {
	m := make(map[string][]string, len(intentFunctions))
	for _, fn := range intentFunctions {
		if len(fn.Params) > 0 {
			m[fn.Name] = fn.Params
		}
	}
	return m
}()
