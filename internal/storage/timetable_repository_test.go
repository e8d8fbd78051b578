package storage

import (
	"context"
	"testing"
)

func TestQueryTimetableByBranchAndDay(t *testing.T) {
	db := newSeededDB(t)

	entries, err := db.QueryTimetable(context.Background(), TimetableFilter{
		Branch: "CSE",
		Day:    "Monday",
	})
	if err != nil {
		t.Fatalf("QueryTimetable() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.CourseName != "Data Structures" {
		t.Errorf("course = %q, want %q", e.CourseName, "Data Structures")
	}
	if e.FacultyName != "Dr. Anil Kumar" {
		t.Errorf("faculty = %q, want %q", e.FacultyName, "Dr. Anil Kumar")
	}
	if e.StartTime != "09:00" || e.EndTime != "10:00" {
		t.Errorf("slot = %s-%s, want 09:00-10:00", e.StartTime, e.EndTime)
	}
}

func TestQueryTimetableDayOrdering(t *testing.T) {
	db := newSeededDB(t)

	entries, err := db.QueryTimetable(context.Background(), TimetableFilter{
		FacultyName: "kuzhalvaimozhi",
	})
	if err != nil {
		t.Fatalf("QueryTimetable() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	// Monday slots first in start time order, then Tuesday
	if entries[0].DayOfWeek != "Monday" || entries[0].StartTime != "10:00" {
		t.Errorf("first entry = %s %s, want Monday 10:00", entries[0].DayOfWeek, entries[0].StartTime)
	}
	if entries[1].DayOfWeek != "Monday" || entries[1].StartTime != "14:30" {
		t.Errorf("second entry = %s %s, want Monday 14:30", entries[1].DayOfWeek, entries[1].StartTime)
	}
	if entries[2].DayOfWeek != "Tuesday" {
		t.Errorf("third entry day = %s, want Tuesday", entries[2].DayOfWeek)
	}
}

func TestQueryTimetableStudyYear(t *testing.T) {
	db := newSeededDB(t)

	entries, err := db.QueryTimetable(context.Background(), TimetableFilter{StudyYear: 3})
	if err != nil {
		t.Fatalf("QueryTimetable() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	for _, e := range entries {
		if e.StudyYear != 3 {
			t.Errorf("entry study year = %d, want 3", e.StudyYear)
		}
	}
}

func TestQueryTimetableNoMatch(t *testing.T) {
	db := newSeededDB(t)

	entries, err := db.QueryTimetable(context.Background(), TimetableFilter{Branch: "MECH"})
	if err != nil {
		t.Fatalf("QueryTimetable() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}

func TestGetFacultySchedule(t *testing.T) {
	db := newSeededDB(t)

	slots, err := db.GetFacultySchedule(context.Background(), "Dr. S Kuzhalvaimozhi", "Monday")
	if err != nil {
		t.Fatalf("GetFacultySchedule() error = %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("got %d busy slots, want 2", len(slots))
	}
	if slots[0].StartTime != "10:00" {
		t.Errorf("first slot start = %q, want %q", slots[0].StartTime, "10:00")
	}
	if slots[1].StartTime != "14:30" {
		t.Errorf("second slot start = %q, want %q", slots[1].StartTime, "14:30")
	}
}

func TestGetFacultyScheduleFreeDay(t *testing.T) {
	db := newSeededDB(t)

	slots, err := db.GetFacultySchedule(context.Background(), "Dr. Anil Kumar", "Friday")
	if err != nil {
		t.Fatalf("GetFacultySchedule() error = %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("got %d busy slots, want 0", len(slots))
	}
}

func TestGetCourseInstructors(t *testing.T) {
	db := newSeededDB(t)
	ctx := context.Background()

	t.Run("by course name", func(t *testing.T) {
		instructors, err := db.GetCourseInstructors(ctx, InstructorFilter{CourseName: "Data Structures"})
		if err != nil {
			t.Fatalf("GetCourseInstructors() error = %v", err)
		}
		// Two distinct offerings: CSE-A theory and ISE-A lab
		if len(instructors) != 2 {
			t.Fatalf("got %d instructors, want 2", len(instructors))
		}
	})

	t.Run("by course code with branch filter", func(t *testing.T) {
		instructors, err := db.GetCourseInstructors(ctx, InstructorFilter{CourseCode: "CS301", Branch: "ISE"})
		if err != nil {
			t.Fatalf("GetCourseInstructors() error = %v", err)
		}
		if len(instructors) != 1 {
			t.Fatalf("got %d instructors, want 1", len(instructors))
		}
		if instructors[0].FacultyName != "Dr. S Kuzhalvaimozhi" {
			t.Errorf("instructor = %q, want %q", instructors[0].FacultyName, "Dr. S Kuzhalvaimozhi")
		}
	})

	t.Run("no course given", func(t *testing.T) {
		instructors, err := db.GetCourseInstructors(ctx, InstructorFilter{Branch: "CSE"})
		if err != nil {
			t.Fatalf("GetCourseInstructors() error = %v", err)
		}
		if instructors != nil {
			t.Errorf("got %v, want nil when neither course name nor code set", instructors)
		}
	})
}

func TestGetCoursesForFaculty(t *testing.T) {
	db := newSeededDB(t)

	courses, err := db.GetCoursesForFaculty(context.Background(), "kuzhalvaimozhi")
	if err != nil {
		t.Fatalf("GetCoursesForFaculty() error = %v", err)
	}
	if len(courses) != 2 {
		t.Fatalf("got %d courses, want 2", len(courses))
	}
	// Ordered by course name: Data Structures before Machine Learning
	if courses[0].Name != "Data Structures" {
		t.Errorf("first course = %q, want %q", courses[0].Name, "Data Structures")
	}
	if courses[1].Code != "IS402" {
		t.Errorf("second course code = %q, want %q", courses[1].Code, "IS402")
	}
}
