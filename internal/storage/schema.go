package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// InitSchema creates all catalog tables and indexes.
// Note: WAL mode and pragmas are configured in db.go.
func InitSchema(db *sql.DB) error {
	creators := []func(*sql.DB) error{
		createFacultyTable,
		createAntiRaggingTable,
		createCoursesTable,
		createClassesTable,
		createTimetableSlotsTable,
		createPlacementTables,
		createClubsTable,
		createDressCodeTable,
		createHostelsTable,
		createTransportTable,
		createScholarshipsTable,
		createEventsTable,
		createNoticesTable,
		createFacilitiesTable,
		createOfficeContactsTable,
	}
	for _, create := range creators {
		if err := create(db); err != nil {
			return err
		}
	}
	return nil
}

func createFacultyTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS faculty (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		department TEXT,
		office_location TEXT,
		image_url TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_faculty_name ON faculty(name);
	CREATE INDEX IF NOT EXISTS idx_faculty_department ON faculty(department);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create faculty table: %w", err)
	}

	return nil
}

func createAntiRaggingTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS anti_ragging_squad (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT,
		department TEXT,
		contact_phone TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_anti_ragging_name ON anti_ragging_squad(name);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create anti_ragging_squad table: %w", err)
	}

	return nil
}

func createCoursesTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS courses (
		course_code TEXT PRIMARY KEY,
		course_name TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_courses_name ON courses(course_name);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create courses table: %w", err)
	}

	return nil
}

func createClassesTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS classes (
		class_id INTEGER PRIMARY KEY,
		course_code TEXT NOT NULL REFERENCES courses(course_code),
		faculty_id INTEGER REFERENCES faculty(id),
		branch TEXT,
		section TEXT,
		study_year INTEGER,
		class_type TEXT,
		lab_batch TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_classes_course ON classes(course_code);
	CREATE INDEX IF NOT EXISTS idx_classes_faculty ON classes(faculty_id);
	CREATE INDEX IF NOT EXISTS idx_classes_branch_section ON classes(branch, section, study_year);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create classes table: %w", err)
	}

	return nil
}

func createTimetableSlotsTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS timetable_slots (
		id INTEGER PRIMARY KEY,
		class_id INTEGER NOT NULL REFERENCES classes(class_id),
		day_of_week TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		room_no TEXT,
		location TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_timetable_class ON timetable_slots(class_id);
	CREATE INDEX IF NOT EXISTS idx_timetable_day ON timetable_slots(day_of_week);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create timetable_slots table: %w", err)
	}

	return nil
}

func createPlacementTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS placement_summary (
		id INTEGER PRIMARY KEY,
		highest_ctc REAL,
		average_ctc REAL,
		median_ctc REAL,
		lowest_ctc REAL,
		total_selects INTEGER,
		total_companies INTEGER
	);
	CREATE TABLE IF NOT EXISTS placement_companies (
		id INTEGER PRIMARY KEY,
		company_name TEXT NOT NULL,
		ctc REAL,
		num_selects INTEGER,
		ctc_type TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_placement_companies_name ON placement_companies(company_name);
	CREATE INDEX IF NOT EXISTS idx_placement_companies_ctc ON placement_companies(ctc);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create placement tables: %w", err)
	}

	return nil
}

func createClubsTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS clubs (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		contact_person TEXT,
		contact_phone TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_clubs_name ON clubs(name);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create clubs table: %w", err)
	}

	return nil
}

func createDressCodeTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS dress_code (
		id INTEGER PRIMARY KEY,
		category TEXT NOT NULL,
		type TEXT,
		items TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_dress_code_category ON dress_code(category);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create dress_code table: %w", err)
	}

	return nil
}

func createHostelsTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS hostels (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		campus TEXT,
		gender TEXT,
		facilities TEXT,
		warden_name TEXT,
		contact_phone TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_hostels_name ON hostels(name);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create hostels table: %w", err)
	}

	return nil
}

func createTransportTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS transport (
		id INTEGER PRIMARY KEY,
		route_name TEXT NOT NULL,
		description TEXT,
		contact_person TEXT,
		contact_phone TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_transport_route ON transport(route_name);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create transport table: %w", err)
	}

	return nil
}

func createScholarshipsTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS scholarship_details (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		location TEXT,
		mail_id TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_scholarships_name ON scholarship_details(name);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create scholarship_details table: %w", err)
	}

	return nil
}

func createEventsTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		event_date TEXT,
		description TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_events_title ON events(title);
	CREATE INDEX IF NOT EXISTS idx_events_date ON events(event_date);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create events table: %w", err)
	}

	return nil
}

func createNoticesTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS notices (
		id INTEGER PRIMARY KEY,
		notice_text TEXT NOT NULL,
		posted_on TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_notices_posted_on ON notices(posted_on);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create notices table: %w", err)
	}

	return nil
}

func createFacilitiesTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS facilities (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT,
		building TEXT,
		floor TEXT,
		description TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_facilities_name ON facilities(name);
	CREATE INDEX IF NOT EXISTS idx_facilities_category ON facilities(category);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create facilities table: %w", err)
	}

	return nil
}

func createOfficeContactsTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS office_contacts (
		id INTEGER PRIMARY KEY,
		office TEXT NOT NULL,
		contact_person TEXT,
		contact_phone TEXT,
		email TEXT,
		location TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_office_contacts_office ON office_contacts(office);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create office_contacts table: %w", err)
	}

	return nil
}
