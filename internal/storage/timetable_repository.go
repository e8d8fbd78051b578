package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domerrors "github.com/campushq/campus-chatbot-go/internal/errors"
)

// dayOrderExpr sorts day_of_week in calendar order. SQLite has no
// FIELD() so a CASE expression does the job.
const dayOrderExpr = `CASE t.day_of_week
	WHEN 'Monday' THEN 1
	WHEN 'Tuesday' THEN 2
	WHEN 'Wednesday' THEN 3
	WHEN 'Thursday' THEN 4
	WHEN 'Friday' THEN 5
	WHEN 'Saturday' THEN 6
	WHEN 'Sunday' THEN 7
	ELSE 8 END`

// QueryTimetable returns joined timetable rows matching the filter,
// ordered by day then start time. An empty filter returns everything.
func (db *DB) QueryTimetable(ctx context.Context, filter TimetableFilter) ([]TimetableEntry, error) {
	start := time.Now()

	query := `
		SELECT
			t.day_of_week, t.start_time, t.end_time, t.room_no, t.location,
			co.course_name, f.name AS faculty_name, c.class_type, c.lab_batch,
			c.branch, c.section, c.study_year
		FROM timetable_slots t
		JOIN classes c ON t.class_id = c.class_id
		JOIN courses co ON c.course_code = co.course_code
		LEFT JOIN faculty f ON c.faculty_id = f.id
		WHERE 1=1
	`
	var args []any

	if filter.Branch != "" {
		query += ` AND c.branch LIKE ? ESCAPE '\'`
		args = append(args, "%"+sanitizeSearchTerm(filter.Branch)+"%")
	}
	if filter.Section != "" {
		query += ` AND c.section LIKE ? ESCAPE '\'`
		args = append(args, "%"+sanitizeSearchTerm(filter.Section)+"%")
	}
	if filter.StudyYear != 0 {
		query += ` AND c.study_year = ?`
		args = append(args, filter.StudyYear)
	}
	if filter.Day != "" {
		query += ` AND t.day_of_week LIKE ? ESCAPE '\'`
		args = append(args, "%"+sanitizeSearchTerm(filter.Day)+"%")
	}
	if filter.FacultyName != "" {
		query += ` AND ` + normalizedNameExpr("f.name") + ` LIKE ? ESCAPE '\'`
		args = append(args, "%"+normalizeName(sanitizeSearchTerm(filter.FacultyName))+"%")
	}
	if filter.CourseName != "" {
		query += ` AND co.course_name LIKE ? ESCAPE '\'`
		args = append(args, "%"+sanitizeSearchTerm(filter.CourseName)+"%")
	}
	if filter.CourseCode != "" {
		query += ` AND co.course_code LIKE ? ESCAPE '\'`
		args = append(args, "%"+sanitizeSearchTerm(filter.CourseCode)+"%")
	}

	query += ` ORDER BY ` + dayOrderExpr + `, t.start_time`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		slog.ErrorContext(ctx, "failed to query timetable",
			"filter", fmt.Sprintf("%+v", filter),
			"error", err)
		return nil, domerrors.NewQueryError("timetable_slots", "filter", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []TimetableEntry
	for rows.Next() {
		var e TimetableEntry
		var room, loc, facultyName, classType, labBatch, branch, section sql.NullString
		var studyYear sql.NullInt64
		if err := rows.Scan(&e.DayOfWeek, &e.StartTime, &e.EndTime, &room, &loc,
			&e.CourseName, &facultyName, &classType, &labBatch,
			&branch, &section, &studyYear); err != nil {
			return nil, fmt.Errorf("scan timetable row: %w", err)
		}
		e.RoomNo, e.Location, e.FacultyName = room.String, loc.String, facultyName.String
		e.ClassType, e.LabBatch = classType.String, labBatch.String
		e.Branch, e.Section, e.StudyYear = branch.String, section.String, int(studyYear.Int64)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if duration := time.Since(start); duration > 100*time.Millisecond {
		slog.WarnContext(ctx, "slow database query",
			"operation", "QueryTimetable",
			"duration_ms", duration.Milliseconds(),
			"result_count", len(entries))
	}

	return entries, nil
}

// GetFacultySchedule returns the occupied intervals for a faculty
// member on one day, ordered by start time. The name must already be
// resolved; matching is by normalized containment.
func (db *DB) GetFacultySchedule(ctx context.Context, facultyName, day string) ([]BusySlot, error) {
	query := fmt.Sprintf(`
		SELECT t.start_time, t.end_time
		FROM timetable_slots t
		JOIN classes c ON t.class_id = c.class_id
		JOIN faculty f ON c.faculty_id = f.id
		WHERE %s LIKE ? ESCAPE '\'
		AND t.day_of_week LIKE ? ESCAPE '\'
		ORDER BY t.start_time
	`, normalizedNameExpr("f.name"))

	namePattern := "%" + normalizeName(sanitizeSearchTerm(facultyName)) + "%"
	dayPattern := "%" + sanitizeSearchTerm(day) + "%"

	rows, err := db.conn.QueryContext(ctx, query, namePattern, dayPattern)
	if err != nil {
		slog.ErrorContext(ctx, "failed to query faculty schedule",
			"faculty_name", facultyName,
			"day", day,
			"error", err)
		return nil, domerrors.NewQueryError("timetable_slots", "faculty_schedule", err)
	}
	defer func() { _ = rows.Close() }()

	var slots []BusySlot
	for rows.Next() {
		var s BusySlot
		if err := rows.Scan(&s.StartTime, &s.EndTime); err != nil {
			return nil, fmt.Errorf("scan busy slot: %w", err)
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// GetCourseInstructors lists the faculty teaching a course, optionally
// narrowed to a branch and section. Returns nil when neither a course
// name nor a code is given.
func (db *DB) GetCourseInstructors(ctx context.Context, filter InstructorFilter) ([]CourseInstructor, error) {
	if filter.CourseName == "" && filter.CourseCode == "" {
		return nil, nil
	}

	query := `
		SELECT DISTINCT
			f.name AS faculty_name, co.course_name, co.course_code, c.branch, c.section
		FROM faculty f
		JOIN classes c ON f.id = c.faculty_id
		JOIN courses co ON c.course_code = co.course_code
		WHERE 1=1
	`
	var args []any

	var courseClauses []string
	if filter.CourseName != "" {
		courseClauses = append(courseClauses, `co.course_name LIKE ? ESCAPE '\'`)
		args = append(args, "%"+sanitizeSearchTerm(filter.CourseName)+"%")
	}
	if filter.CourseCode != "" {
		courseClauses = append(courseClauses, `co.course_code LIKE ? ESCAPE '\'`)
		args = append(args, "%"+sanitizeSearchTerm(filter.CourseCode)+"%")
	}
	query += ` AND (` + strings.Join(courseClauses, " OR ") + `)`

	if filter.Branch != "" {
		query += ` AND c.branch LIKE ? ESCAPE '\'`
		args = append(args, "%"+sanitizeSearchTerm(filter.Branch)+"%")
	}
	if filter.Section != "" {
		query += ` AND c.section LIKE ? ESCAPE '\'`
		args = append(args, "%"+sanitizeSearchTerm(filter.Section)+"%")
	}

	query += ` ORDER BY co.course_name, f.name, c.branch, c.section`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		slog.ErrorContext(ctx, "failed to query course instructors",
			"course_name", filter.CourseName,
			"course_code", filter.CourseCode,
			"error", err)
		return nil, domerrors.NewQueryError("classes", "course_instructors", err)
	}
	defer func() { _ = rows.Close() }()

	var instructors []CourseInstructor
	for rows.Next() {
		var ci CourseInstructor
		var branch, section sql.NullString
		if err := rows.Scan(&ci.FacultyName, &ci.CourseName, &ci.CourseCode, &branch, &section); err != nil {
			return nil, fmt.Errorf("scan course instructor: %w", err)
		}
		ci.Branch, ci.Section = branch.String, section.String
		instructors = append(instructors, ci)
	}
	return instructors, rows.Err()
}

// GetCoursesForFaculty lists the distinct courses a faculty member teaches.
func (db *DB) GetCoursesForFaculty(ctx context.Context, facultyName string) ([]Course, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT co.course_code, co.course_name
		FROM courses co
		JOIN classes c ON co.course_code = c.course_code
		JOIN faculty f ON c.faculty_id = f.id
		WHERE %s LIKE ? ESCAPE '\'
		ORDER BY co.course_name
	`, normalizedNameExpr("f.name"))

	pattern := "%" + normalizeName(sanitizeSearchTerm(facultyName)) + "%"

	rows, err := db.conn.QueryContext(ctx, query, pattern)
	if err != nil {
		return nil, domerrors.NewQueryError("courses", "for_faculty", err)
	}
	defer func() { _ = rows.Close() }()

	var courses []Course
	for rows.Next() {
		var c Course
		if err := rows.Scan(&c.Code, &c.Name); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// SaveCoursesBatch inserts or updates course records
func (db *DB) SaveCoursesBatch(ctx context.Context, courses []*Course) error {
	if len(courses) == 0 {
		return nil
	}

	query := `
		INSERT INTO courses (course_code, course_name)
		VALUES (?, ?)
		ON CONFLICT(course_code) DO UPDATE SET
			course_name = excluded.course_name
	`
	return db.ExecBatch(ctx, query, func(stmt *sql.Stmt) error {
		for _, c := range courses {
			if _, err := stmt.ExecContext(ctx, c.Code, c.Name); err != nil {
				return fmt.Errorf("failed to save course %s: %w", c.Code, err)
			}
		}
		return nil
	})
}

// SaveClassesBatch inserts or updates class records
func (db *DB) SaveClassesBatch(ctx context.Context, classes []*Class) error {
	if len(classes) == 0 {
		return nil
	}

	query := `
		INSERT INTO classes (class_id, course_code, faculty_id, branch, section, study_year, class_type, lab_batch)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(class_id) DO UPDATE SET
			course_code = excluded.course_code,
			faculty_id = excluded.faculty_id,
			branch = excluded.branch,
			section = excluded.section,
			study_year = excluded.study_year,
			class_type = excluded.class_type,
			lab_batch = excluded.lab_batch
	`
	return db.ExecBatch(ctx, query, func(stmt *sql.Stmt) error {
		for _, c := range classes {
			var facultyID any
			if c.FacultyID != 0 {
				facultyID = c.FacultyID
			}
			if _, err := stmt.ExecContext(ctx, c.ID, c.CourseCode, facultyID, c.Branch, c.Section, c.StudyYear, c.ClassType, c.LabBatch); err != nil {
				return fmt.Errorf("failed to save class %d: %w", c.ID, err)
			}
		}
		return nil
	})
}

// SaveTimetableSlotsBatch inserts or updates timetable slot records
func (db *DB) SaveTimetableSlotsBatch(ctx context.Context, slots []*TimetableSlot) error {
	if len(slots) == 0 {
		return nil
	}

	query := `
		INSERT INTO timetable_slots (id, class_id, day_of_week, start_time, end_time, room_no, location)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			class_id = excluded.class_id,
			day_of_week = excluded.day_of_week,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			room_no = excluded.room_no,
			location = excluded.location
	`
	return db.ExecBatch(ctx, query, func(stmt *sql.Stmt) error {
		for _, s := range slots {
			if _, err := stmt.ExecContext(ctx, s.ID, s.ClassID, s.DayOfWeek, s.StartTime, s.EndTime, s.RoomNo, s.Location); err != nil {
				return fmt.Errorf("failed to save timetable slot %d: %w", s.ID, err)
			}
		}
		return nil
	})
}

// CountTimetableSlots returns the total number of timetable slots
func (db *DB) CountTimetableSlots(ctx context.Context) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM timetable_slots`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count timetable slots: %w", err)
	}
	return count, nil
}
