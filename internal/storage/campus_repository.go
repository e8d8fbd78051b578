package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// noticeLimit caps the notice board reply to the most recent entries.
const noticeLimit = 5

// SearchClubs returns clubs whose name contains term. An empty term
// returns every club.
func (db *DB) SearchClubs(ctx context.Context, term string) ([]Club, error) {
	query := `SELECT id, name, description, contact_person, contact_phone FROM clubs`
	var args []any
	if term != "" {
		query += ` WHERE name LIKE ? ESCAPE '\'`
		args = append(args, "%"+sanitizeSearchTerm(term)+"%")
	}
	query += ` ORDER BY name`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		slog.ErrorContext(ctx, "failed to query clubs", "search_term", term, "error", err)
		return nil, fmt.Errorf("query clubs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var clubs []Club
	for rows.Next() {
		var c Club
		var desc, person, phone sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &desc, &person, &phone); err != nil {
			return nil, fmt.Errorf("scan club: %w", err)
		}
		c.Description, c.ContactPerson, c.ContactPhone = desc.String, person.String, phone.String
		clubs = append(clubs, c)
	}
	return clubs, rows.Err()
}

// GetDressCode returns dress code rules, optionally narrowed to a
// category such as "boys", "girls" or "lab".
func (db *DB) GetDressCode(ctx context.Context, category string) ([]DressCodeRule, error) {
	query := `SELECT id, category, type, items FROM dress_code`
	var args []any
	if category != "" {
		query += ` WHERE category LIKE ? ESCAPE '\'`
		args = append(args, "%"+sanitizeSearchTerm(category)+"%")
	}
	query += ` ORDER BY category, type`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query dress code: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var rules []DressCodeRule
	for rows.Next() {
		var r DressCodeRule
		var typ, items sql.NullString
		if err := rows.Scan(&r.ID, &r.Category, &typ, &items); err != nil {
			return nil, fmt.Errorf("scan dress code rule: %w", err)
		}
		r.Type, r.Items = typ.String, items.String
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// SearchHostels returns hostels matching any of the optional filters.
func (db *DB) SearchHostels(ctx context.Context, name, gender, campus string) ([]Hostel, error) {
	query := `SELECT id, name, campus, gender, facilities, warden_name, contact_phone FROM hostels WHERE 1=1`
	var args []any
	if name != "" {
		query += ` AND name LIKE ? ESCAPE '\'`
		args = append(args, "%"+sanitizeSearchTerm(name)+"%")
	}
	if gender != "" {
		query += ` AND gender LIKE ? ESCAPE '\'`
		args = append(args, "%"+sanitizeSearchTerm(gender)+"%")
	}
	if campus != "" {
		query += ` AND campus LIKE ? ESCAPE '\'`
		args = append(args, "%"+sanitizeSearchTerm(campus)+"%")
	}
	query += ` ORDER BY name`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query hostels: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var hostels []Hostel
	for rows.Next() {
		var h Hostel
		var campusCol, genderCol, facilities, warden, phone sql.NullString
		if err := rows.Scan(&h.ID, &h.Name, &campusCol, &genderCol, &facilities, &warden, &phone); err != nil {
			return nil, fmt.Errorf("scan hostel: %w", err)
		}
		h.Campus, h.Gender, h.Facilities = campusCol.String, genderCol.String, facilities.String
		h.WardenName, h.ContactPhone = warden.String, phone.String
		hostels = append(hostels, h)
	}
	return hostels, rows.Err()
}

// SearchTransportRoutes returns bus routes whose name contains term.
// An empty term returns all routes.
func (db *DB) SearchTransportRoutes(ctx context.Context, routeName string) ([]TransportRoute, error) {
	query := `SELECT id, route_name, description, contact_person, contact_phone FROM transport`
	var args []any
	if routeName != "" {
		query += ` WHERE route_name LIKE ? ESCAPE '\'`
		args = append(args, "%"+sanitizeSearchTerm(routeName)+"%")
	}
	query += ` ORDER BY route_name`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transport routes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var routes []TransportRoute
	for rows.Next() {
		var r TransportRoute
		var desc, person, phone sql.NullString
		if err := rows.Scan(&r.ID, &r.RouteName, &desc, &person, &phone); err != nil {
			return nil, fmt.Errorf("scan transport route: %w", err)
		}
		r.Description, r.ContactPerson, r.ContactPhone = desc.String, person.String, phone.String
		routes = append(routes, r)
	}
	return routes, rows.Err()
}

// SearchScholarships returns scholarship contacts whose name contains
// term. An empty term returns all of them.
func (db *DB) SearchScholarships(ctx context.Context, name string) ([]Scholarship, error) {
	query := `SELECT id, name, location, mail_id FROM scholarship_details`
	var args []any
	if name != "" {
		query += ` WHERE name LIKE ? ESCAPE '\'`
		args = append(args, "%"+sanitizeSearchTerm(name)+"%")
	}
	query += ` ORDER BY name`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scholarships: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var scholarships []Scholarship
	for rows.Next() {
		var s Scholarship
		var location, mail sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &location, &mail); err != nil {
			return nil, fmt.Errorf("scan scholarship: %w", err)
		}
		s.Location, s.MailID = location.String, mail.String
		scholarships = append(scholarships, s)
	}
	return scholarships, rows.Err()
}

// SearchEvents returns events whose title contains term, most recent
// first. An empty term returns every event.
func (db *DB) SearchEvents(ctx context.Context, title string) ([]Event, error) {
	query := `SELECT id, title, event_date, description FROM events`
	var args []any
	if title != "" {
		query += ` WHERE title LIKE ? ESCAPE '\'`
		args = append(args, "%"+sanitizeSearchTerm(title)+"%")
	}
	query += ` ORDER BY event_date DESC`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []Event
	for rows.Next() {
		var e Event
		var date, desc sql.NullString
		if err := rows.Scan(&e.ID, &e.Title, &date, &desc); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.EventDate, e.Description = date.String, desc.String
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetRecentNotices returns the latest notice board entries, newest first.
func (db *DB) GetRecentNotices(ctx context.Context) ([]Notice, error) {
	query := fmt.Sprintf(`SELECT id, notice_text, posted_on FROM notices ORDER BY posted_on DESC LIMIT %d`, noticeLimit)

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		slog.ErrorContext(ctx, "failed to query notices", "error", err)
		return nil, fmt.Errorf("query notices: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var notices []Notice
	for rows.Next() {
		var n Notice
		if err := rows.Scan(&n.ID, &n.NoticeText, &n.PostedOn); err != nil {
			return nil, fmt.Errorf("scan notice: %w", err)
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

// SearchFacilities returns facilities whose name contains term.
func (db *DB) SearchFacilities(ctx context.Context, term string) ([]Facility, error) {
	query := `SELECT id, name, category, building, floor, description FROM facilities`
	var args []any
	if term != "" {
		query += ` WHERE name LIKE ? ESCAPE '\'`
		args = append(args, "%"+sanitizeSearchTerm(term)+"%")
	}
	query += ` ORDER BY name`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query facilities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var facilities []Facility
	for rows.Next() {
		var f Facility
		var category, building, floor, desc sql.NullString
		if err := rows.Scan(&f.ID, &f.Name, &category, &building, &floor, &desc); err != nil {
			return nil, fmt.Errorf("scan facility: %w", err)
		}
		f.Category, f.Building, f.Floor, f.Description = category.String, building.String, floor.String, desc.String
		facilities = append(facilities, f)
	}
	return facilities, rows.Err()
}

// GetOfficeContacts returns contact rows for an administrative office
// such as "admissions", "placements" or "fees".
func (db *DB) GetOfficeContacts(ctx context.Context, office string) ([]OfficeContact, error) {
	query := `
		SELECT id, office, contact_person, contact_phone, email, location
		FROM office_contacts
		WHERE office = ?
		ORDER BY id
	`

	rows, err := db.conn.QueryContext(ctx, query, office)
	if err != nil {
		return nil, fmt.Errorf("query office contacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var contacts []OfficeContact
	for rows.Next() {
		var c OfficeContact
		var person, phone, email, location sql.NullString
		if err := rows.Scan(&c.ID, &c.Office, &person, &phone, &email, &location); err != nil {
			return nil, fmt.Errorf("scan office contact: %w", err)
		}
		c.ContactPerson, c.ContactPhone = person.String, phone.String
		c.Email, c.Location = email.String, location.String
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// SaveClubsBatch inserts or updates club records
func (db *DB) SaveClubsBatch(ctx context.Context, clubs []*Club) error {
	if len(clubs) == 0 {
		return nil
	}

	query := `
		INSERT INTO clubs (id, name, description, contact_person, contact_phone)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			contact_person = excluded.contact_person,
			contact_phone = excluded.contact_phone
	`
	return db.ExecBatch(ctx, query, func(stmt *sql.Stmt) error {
		for _, c := range clubs {
			if _, err := stmt.ExecContext(ctx, c.ID, c.Name, c.Description, c.ContactPerson, c.ContactPhone); err != nil {
				return fmt.Errorf("failed to save club %s: %w", c.Name, err)
			}
		}
		return nil
	})
}

// SaveDressCodeBatch inserts or updates dress code rules
func (db *DB) SaveDressCodeBatch(ctx context.Context, rules []*DressCodeRule) error {
	if len(rules) == 0 {
		return nil
	}

	query := `
		INSERT INTO dress_code (id, category, type, items)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			category = excluded.category,
			type = excluded.type,
			items = excluded.items
	`
	return db.ExecBatch(ctx, query, func(stmt *sql.Stmt) error {
		for _, r := range rules {
			if _, err := stmt.ExecContext(ctx, r.ID, r.Category, r.Type, r.Items); err != nil {
				return fmt.Errorf("failed to save dress code rule %d: %w", r.ID, err)
			}
		}
		return nil
	})
}

// SaveHostelsBatch inserts or updates hostel records
func (db *DB) SaveHostelsBatch(ctx context.Context, hostels []*Hostel) error {
	if len(hostels) == 0 {
		return nil
	}

	query := `
		INSERT INTO hostels (id, name, campus, gender, facilities, warden_name, contact_phone)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			campus = excluded.campus,
			gender = excluded.gender,
			facilities = excluded.facilities,
			warden_name = excluded.warden_name,
			contact_phone = excluded.contact_phone
	`
	return db.ExecBatch(ctx, query, func(stmt *sql.Stmt) error {
		for _, h := range hostels {
			if _, err := stmt.ExecContext(ctx, h.ID, h.Name, h.Campus, h.Gender, h.Facilities, h.WardenName, h.ContactPhone); err != nil {
				return fmt.Errorf("failed to save hostel %s: %w", h.Name, err)
			}
		}
		return nil
	})
}

// SaveTransportBatch inserts or updates transport routes
func (db *DB) SaveTransportBatch(ctx context.Context, routes []*TransportRoute) error {
	if len(routes) == 0 {
		return nil
	}

	query := `
		INSERT INTO transport (id, route_name, description, contact_person, contact_phone)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			route_name = excluded.route_name,
			description = excluded.description,
			contact_person = excluded.contact_person,
			contact_phone = excluded.contact_phone
	`
	return db.ExecBatch(ctx, query, func(stmt *sql.Stmt) error {
		for _, r := range routes {
			if _, err := stmt.ExecContext(ctx, r.ID, r.RouteName, r.Description, r.ContactPerson, r.ContactPhone); err != nil {
				return fmt.Errorf("failed to save transport route %s: %w", r.RouteName, err)
			}
		}
		return nil
	})
}

// SaveScholarshipsBatch inserts or updates scholarship records
func (db *DB) SaveScholarshipsBatch(ctx context.Context, scholarships []*Scholarship) error {
	if len(scholarships) == 0 {
		return nil
	}

	query := `
		INSERT INTO scholarship_details (id, name, location, mail_id)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			location = excluded.location,
			mail_id = excluded.mail_id
	`
	return db.ExecBatch(ctx, query, func(stmt *sql.Stmt) error {
		for _, s := range scholarships {
			if _, err := stmt.ExecContext(ctx, s.ID, s.Name, s.Location, s.MailID); err != nil {
				return fmt.Errorf("failed to save scholarship %s: %w", s.Name, err)
			}
		}
		return nil
	})
}

// SaveEventsBatch inserts or updates event records
func (db *DB) SaveEventsBatch(ctx context.Context, events []*Event) error {
	if len(events) == 0 {
		return nil
	}

	query := `
		INSERT INTO events (id, title, event_date, description)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			event_date = excluded.event_date,
			description = excluded.description
	`
	return db.ExecBatch(ctx, query, func(stmt *sql.Stmt) error {
		for _, e := range events {
			if _, err := stmt.ExecContext(ctx, e.ID, e.Title, e.EventDate, e.Description); err != nil {
				return fmt.Errorf("failed to save event %s: %w", e.Title, err)
			}
		}
		return nil
	})
}

// SaveNoticesBatch inserts or updates notice records
func (db *DB) SaveNoticesBatch(ctx context.Context, notices []*Notice) error {
	if len(notices) == 0 {
		return nil
	}

	query := `
		INSERT INTO notices (id, notice_text, posted_on)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			notice_text = excluded.notice_text,
			posted_on = excluded.posted_on
	`
	return db.ExecBatch(ctx, query, func(stmt *sql.Stmt) error {
		for _, n := range notices {
			if _, err := stmt.ExecContext(ctx, n.ID, n.NoticeText, n.PostedOn); err != nil {
				return fmt.Errorf("failed to save notice %d: %w", n.ID, err)
			}
		}
		return nil
	})
}

// SaveFacilitiesBatch inserts or updates facility records
func (db *DB) SaveFacilitiesBatch(ctx context.Context, facilities []*Facility) error {
	if len(facilities) == 0 {
		return nil
	}

	query := `
		INSERT INTO facilities (id, name, category, building, floor, description)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			building = excluded.building,
			floor = excluded.floor,
			description = excluded.description
	`
	return db.ExecBatch(ctx, query, func(stmt *sql.Stmt) error {
		for _, f := range facilities {
			if _, err := stmt.ExecContext(ctx, f.ID, f.Name, f.Category, f.Building, f.Floor, f.Description); err != nil {
				return fmt.Errorf("failed to save facility %s: %w", f.Name, err)
			}
		}
		return nil
	})
}

// SaveOfficeContactsBatch inserts or updates office contact records
func (db *DB) SaveOfficeContactsBatch(ctx context.Context, contacts []*OfficeContact) error {
	if len(contacts) == 0 {
		return nil
	}

	query := `
		INSERT INTO office_contacts (id, office, contact_person, contact_phone, email, location)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			office = excluded.office,
			contact_person = excluded.contact_person,
			contact_phone = excluded.contact_phone,
			email = excluded.email,
			location = excluded.location
	`
	return db.ExecBatch(ctx, query, func(stmt *sql.Stmt) error {
		for _, c := range contacts {
			if _, err := stmt.ExecContext(ctx, c.ID, c.Office, c.ContactPerson, c.ContactPhone, c.Email, c.Location); err != nil {
				return fmt.Errorf("failed to save office contact %d: %w", c.ID, err)
			}
		}
		return nil
	})
}
