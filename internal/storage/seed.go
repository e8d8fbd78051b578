package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// SeedData is the on-disk JSON shape the catalog is loaded from.
// Every section is optional; absent sections leave their tables alone.
type SeedData struct {
	Faculty          []*Faculty            `json:"faculty,omitempty"`
	AntiRaggingSquad []*AntiRaggingContact `json:"anti_ragging_squad,omitempty"`
	Courses          []*Course             `json:"courses,omitempty"`
	Classes          []*Class              `json:"classes,omitempty"`
	TimetableSlots   []*TimetableSlot      `json:"timetable_slots,omitempty"`
	PlacementSummary *PlacementSummary     `json:"placement_summary,omitempty"`
	Companies        []*PlacementCompany   `json:"placement_companies,omitempty"`
	Clubs            []*Club               `json:"clubs,omitempty"`
	DressCode        []*DressCodeRule      `json:"dress_code,omitempty"`
	Hostels          []*Hostel             `json:"hostels,omitempty"`
	Transport        []*TransportRoute     `json:"transport,omitempty"`
	Scholarships     []*Scholarship        `json:"scholarship_details,omitempty"`
	Events           []*Event              `json:"events,omitempty"`
	Notices          []*Notice             `json:"notices,omitempty"`
	Facilities       []*Facility           `json:"facilities,omitempty"`
	OfficeContacts   []*OfficeContact      `json:"office_contacts,omitempty"`
}

// SeedFromFile loads catalog data from a JSON file. Missing file is an
// error; an empty path is a no-op so deployments can run on a
// previously seeded database.
func (db *DB) SeedFromFile(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var data SeedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	return db.Seed(ctx, &data)
}

// Seed upserts the given data set into the catalog.
func (db *DB) Seed(ctx context.Context, data *SeedData) error {
	start := time.Now()

	if err := db.SaveFacultyBatch(ctx, data.Faculty); err != nil {
		return err
	}
	if err := db.SaveAntiRaggingBatch(ctx, data.AntiRaggingSquad); err != nil {
		return err
	}
	if err := db.SaveCoursesBatch(ctx, data.Courses); err != nil {
		return err
	}
	if err := db.SaveClassesBatch(ctx, data.Classes); err != nil {
		return err
	}
	if err := db.SaveTimetableSlotsBatch(ctx, data.TimetableSlots); err != nil {
		return err
	}
	if data.PlacementSummary != nil {
		if err := db.SavePlacementSummary(ctx, data.PlacementSummary); err != nil {
			return err
		}
	}
	if err := db.SaveCompaniesBatch(ctx, data.Companies); err != nil {
		return err
	}
	if err := db.SaveClubsBatch(ctx, data.Clubs); err != nil {
		return err
	}
	if err := db.SaveDressCodeBatch(ctx, data.DressCode); err != nil {
		return err
	}
	if err := db.SaveHostelsBatch(ctx, data.Hostels); err != nil {
		return err
	}
	if err := db.SaveTransportBatch(ctx, data.Transport); err != nil {
		return err
	}
	if err := db.SaveScholarshipsBatch(ctx, data.Scholarships); err != nil {
		return err
	}
	if err := db.SaveEventsBatch(ctx, data.Events); err != nil {
		return err
	}
	if err := db.SaveNoticesBatch(ctx, data.Notices); err != nil {
		return err
	}
	if err := db.SaveFacilitiesBatch(ctx, data.Facilities); err != nil {
		return err
	}
	if err := db.SaveOfficeContactsBatch(ctx, data.OfficeContacts); err != nil {
		return err
	}

	slog.InfoContext(ctx, "catalog seeded",
		"faculty", len(data.Faculty),
		"courses", len(data.Courses),
		"classes", len(data.Classes),
		"timetable_slots", len(data.TimetableSlots),
		"companies", len(data.Companies),
		"duration_ms", time.Since(start).Milliseconds())

	return nil
}
