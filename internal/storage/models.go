package storage

// MatchType tags how a faculty lookup matched the stored name.
type MatchType string

const (
	// MatchExact means the normalized stored name contained the search term.
	MatchExact MatchType = "exact"
	// MatchFuzzy means only the phonetic code of the last name word matched.
	MatchFuzzy MatchType = "fuzzy"
)

// Faculty represents a faculty member record
type Faculty struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Department     string `json:"department,omitempty"`
	OfficeLocation string `json:"office_location,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`
}

// FacultyMatch is a faculty lookup result tagged with how it matched
type FacultyMatch struct {
	Faculty
	MatchType MatchType `json:"match_type"`
}

// AntiRaggingContact represents a member of the anti-ragging squad
type AntiRaggingContact struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role,omitempty"`
	Department   string `json:"department,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
}

// Course represents a course record
type Course struct {
	Code string `json:"course_code"`
	Name string `json:"course_name"`
}

// Class represents a scheduled offering of a course for a branch/section
type Class struct {
	ID         int64  `json:"class_id"`
	CourseCode string `json:"course_code"`
	FacultyID  int64  `json:"faculty_id,omitempty"`
	Branch     string `json:"branch"`
	Section    string `json:"section,omitempty"`
	StudyYear  int    `json:"study_year"`
	ClassType  string `json:"class_type,omitempty"`
	LabBatch   string `json:"lab_batch,omitempty"`
}

// TimetableSlot is a raw timetable slot row (one period of one class)
type TimetableSlot struct {
	ID        int64  `json:"id"`
	ClassID   int64  `json:"class_id"`
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	RoomNo    string `json:"room_no,omitempty"`
	Location  string `json:"location,omitempty"`
}

// TimetableEntry is a fully joined timetable row ready for formatting
type TimetableEntry struct {
	DayOfWeek   string
	StartTime   string
	EndTime     string
	RoomNo      string
	Location    string
	CourseName  string
	FacultyName string
	ClassType   string
	LabBatch    string
	Branch      string
	Section     string
	StudyYear   int
}

// TimetableFilter narrows a timetable query. Zero values are ignored.
type TimetableFilter struct {
	Branch      string
	Section     string
	StudyYear   int
	Day         string
	FacultyName string
	CourseName  string
	CourseCode  string
}

// BusySlot is one occupied interval in a faculty member's day
type BusySlot struct {
	StartTime string
	EndTime   string
}

// CourseInstructor links a faculty member to a course offering
type CourseInstructor struct {
	FacultyName string
	CourseName  string
	CourseCode  string
	Branch      string
	Section     string
}

// InstructorFilter narrows a course instructor query.
// At least one of CourseName/CourseCode must be set.
type InstructorFilter struct {
	CourseName string
	CourseCode string
	Branch     string
	Section    string
}

// PlacementSummary holds the headline placement statistics for a batch
type PlacementSummary struct {
	ID             int64   `json:"id"`
	HighestCTC     float64 `json:"highest_ctc,omitempty"`
	AverageCTC     float64 `json:"average_ctc,omitempty"`
	MedianCTC      float64 `json:"median_ctc,omitempty"`
	LowestCTC      float64 `json:"lowest_ctc,omitempty"`
	TotalSelects   int     `json:"total_selects,omitempty"`
	TotalCompanies int     `json:"total_companies,omitempty"`
}

// PlacementCompany is a single company's placement record
type PlacementCompany struct {
	ID          int64   `json:"id"`
	CompanyName string  `json:"company_name"`
	CTC         float64 `json:"ctc"`
	NumSelects  int     `json:"num_selects"`
	CTCType     string  `json:"ctc_type,omitempty"`
}

// CTCTypeCount is the number of companies offering a given CTC type
type CTCTypeCount struct {
	CTCType      string
	CompanyCount int
}

// CTCAggregate sums selections and companies above or below a CTC threshold
type CTCAggregate struct {
	TotalStudents  int
	TotalCompanies int
}

// Club represents a student club
type Club struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	ContactPerson string `json:"contact_person,omitempty"`
	ContactPhone  string `json:"contact_phone,omitempty"`
}

// DressCodeRule is one dress code entry for a category of students
type DressCodeRule struct {
	ID       int64  `json:"id"`
	Category string `json:"category"`
	Type     string `json:"type,omitempty"`
	Items    string `json:"items"`
}

// Hostel represents a hostel record
type Hostel struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Campus       string `json:"campus,omitempty"`
	Gender       string `json:"gender,omitempty"`
	Facilities   string `json:"facilities,omitempty"`
	WardenName   string `json:"warden_name,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
}

// TransportRoute represents a college bus route
type TransportRoute struct {
	ID            int64  `json:"id"`
	RouteName     string `json:"route_name"`
	Description   string `json:"description,omitempty"`
	ContactPerson string `json:"contact_person,omitempty"`
	ContactPhone  string `json:"contact_phone,omitempty"`
}

// Scholarship points to a scholarship office or scheme
type Scholarship struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	MailID   string `json:"mail_id,omitempty"`
}

// Event represents a campus event
type Event struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	EventDate   string `json:"event_date"`
	Description string `json:"description,omitempty"`
}

// Notice is a single notice board entry
type Notice struct {
	ID         int64  `json:"id"`
	NoticeText string `json:"notice_text"`
	PostedOn   string `json:"posted_on"`
}

// Facility locates a named office or building on campus
type Facility struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Building    string `json:"building,omitempty"`
	Floor       string `json:"floor,omitempty"`
	Description string `json:"description,omitempty"`
}

// OfficeContact holds contact details for an administrative office
// such as admissions, placements or fees
type OfficeContact struct {
	ID            int64  `json:"id"`
	Office        string `json:"office"`
	ContactPerson string `json:"contact_person,omitempty"`
	ContactPhone  string `json:"contact_phone,omitempty"`
	Email         string `json:"email,omitempty"`
	Location      string `json:"location,omitempty"`
}
