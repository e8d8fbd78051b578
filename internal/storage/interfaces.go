// Package storage provides the SQLite campus catalog: schema, models
// and repositories for faculty, timetable, placement and campus data.
// The interfaces here enable dependency inversion and facilitate
// testing by decoupling the dialogue layer from concrete storage.
package storage

import (
	"context"
)

// FacultyRepository defines the interface for faculty data operations.
type FacultyRepository interface {
	LookupFaculty(ctx context.Context, name string) ([]FacultyMatch, error)
	GetFacultyByExactName(ctx context.Context, name string) (*Faculty, error)
	SearchFacultyByDepartment(ctx context.Context, term string) ([]Faculty, error)
	SearchFacultyByRole(ctx context.Context, role string) ([]Faculty, error)
	GetAntiRaggingSquad(ctx context.Context) ([]AntiRaggingContact, error)
	SaveFaculty(ctx context.Context, f *Faculty) error
	SaveFacultyBatch(ctx context.Context, members []*Faculty) error
	CountFaculty(ctx context.Context) (int, error)
}

// TimetableRepository defines the interface for timetable data operations.
type TimetableRepository interface {
	QueryTimetable(ctx context.Context, filter TimetableFilter) ([]TimetableEntry, error)
	GetFacultySchedule(ctx context.Context, facultyName, day string) ([]BusySlot, error)
	GetCourseInstructors(ctx context.Context, filter InstructorFilter) ([]CourseInstructor, error)
	GetCoursesForFaculty(ctx context.Context, facultyName string) ([]Course, error)
	SaveCoursesBatch(ctx context.Context, courses []*Course) error
	SaveClassesBatch(ctx context.Context, classes []*Class) error
	SaveTimetableSlotsBatch(ctx context.Context, slots []*TimetableSlot) error
	CountTimetableSlots(ctx context.Context) (int, error)
}

// PlacementRepository defines the interface for placement data operations.
type PlacementRepository interface {
	GetPlacementSummary(ctx context.Context) (*PlacementSummary, error)
	SearchCompanies(ctx context.Context, name string) ([]PlacementCompany, error)
	CountCompaniesByType(ctx context.Context, ctcType string) ([]CTCTypeCount, error)
	AggregateByCTC(ctx context.Context, op CTCOperator, amount float64) (*CTCAggregate, error)
	CompaniesByCTC(ctx context.Context, op CTCOperator, amount float64) ([]PlacementCompany, error)
	SavePlacementSummary(ctx context.Context, s *PlacementSummary) error
	SaveCompaniesBatch(ctx context.Context, companies []*PlacementCompany) error
	CountCompanies(ctx context.Context) (int, error)
}

// CampusRepository defines the interface for general campus data operations.
type CampusRepository interface {
	SearchClubs(ctx context.Context, term string) ([]Club, error)
	GetDressCode(ctx context.Context, category string) ([]DressCodeRule, error)
	SearchHostels(ctx context.Context, name, gender, campus string) ([]Hostel, error)
	SearchTransportRoutes(ctx context.Context, routeName string) ([]TransportRoute, error)
	SearchScholarships(ctx context.Context, name string) ([]Scholarship, error)
	SearchEvents(ctx context.Context, title string) ([]Event, error)
	GetRecentNotices(ctx context.Context) ([]Notice, error)
	SearchFacilities(ctx context.Context, term string) ([]Facility, error)
	GetOfficeContacts(ctx context.Context, office string) ([]OfficeContact, error)
}

// HealthRepository defines the interface for health check operations.
type HealthRepository interface {
	// Ping verifies database connection is alive.
	Ping(ctx context.Context) error

	// Ready checks if the catalog is seeded and ready to serve queries.
	// Performs more thorough checks than Ping.
	Ready(ctx context.Context) error
}

// Catalog is the aggregate interface combining all repository
// interfaces. The DB type implements it, providing a single entry
// point for all data operations.
type Catalog interface {
	FacultyRepository
	TimetableRepository
	PlacementRepository
	CampusRepository
	HealthRepository
	Close() error
}

// Ensure DB implements all repository interfaces at compile time.
// This provides early detection of interface implementation issues.
var (
	_ FacultyRepository   = (*DB)(nil)
	_ TimetableRepository = (*DB)(nil)
	_ PlacementRepository = (*DB)(nil)
	_ CampusRepository    = (*DB)(nil)
	_ HealthRepository    = (*DB)(nil)
	_ Catalog             = (*DB)(nil)
)
