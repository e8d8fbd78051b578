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

// facultyMatchLimit caps lookup results so disambiguation prompts stay short.
const facultyMatchLimit = 5

// roleKeywords maps a role word to the department LIKE patterns that find it.
// "controller" and "coe" are the same office.
var roleKeywords = map[string][]string{
	"principal":  {"%principal%"},
	"dean":       {"%dean%"},
	"controller": {"%controller%", "%coe%"},
	"coe":        {"%controller%", "%coe%"},
}

// RoleKeyword reports whether term names an administrative role rather
// than a person, returning the canonical role key when it does.
func RoleKeyword(term string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(term))
	for key := range roleKeywords {
		if key == lower {
			return key, true
		}
		// Allow slight variations like "the dean" without matching
		// names that merely contain a role word.
		if len(lower) <= len(key)+2 && strings.Contains(lower, key) {
			return key, true
		}
	}
	return "", false
}

// LookupFaculty resolves a user-typed name to faculty records.
// It tries a normalized containment match first (so "kuzhalvaimozhi"
// finds "Dr. S Kuzhalvaimozhi") and only when that yields nothing falls
// back to a phonetic match on the last word of each stored name, tagging
// those results fuzzy so callers know to confirm before using them.
func (db *DB) LookupFaculty(ctx context.Context, name string) ([]FacultyMatch, error) {
	start := time.Now()

	pattern := "%" + normalizeName(sanitizeSearchTerm(name)) + "%"
	query := fmt.Sprintf(`
		SELECT id, name, email, department, office_location, image_url
		FROM faculty
		WHERE %s LIKE ? ESCAPE '\'
		ORDER BY name
		LIMIT %d
	`, normalizedNameExpr("name"), facultyMatchLimit)

	rows, err := db.conn.QueryContext(ctx, query, pattern)
	if err != nil {
		slog.ErrorContext(ctx, "failed to query faculty",
			"search_term", name,
			"error", err)
		return nil, domerrors.NewQueryError("faculty", "lookup", err)
	}

	matches, err := scanFacultyMatches(rows, MatchExact)
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		matches, err = db.lookupFacultyPhonetic(ctx, name)
		if err != nil {
			return nil, err
		}
	}

	// Warn on slow queries (>100ms)
	if duration := time.Since(start); duration > 100*time.Millisecond {
		slog.WarnContext(ctx, "slow database query",
			"operation", "LookupFaculty",
			"duration_ms", duration.Milliseconds(),
			"search_term", name,
			"result_count", len(matches))
	}

	return matches, nil
}

// lookupFacultyPhonetic scans all faculty names and keeps those whose
// surname shares a Soundex code with the search term. SQLite has no
// SOUNDEX function, so the comparison happens here after a full read,
// which is fine at faculty-directory scale.
func (db *DB) lookupFacultyPhonetic(ctx context.Context, name string) ([]FacultyMatch, error) {
	target := Soundex(lastNameWord(name))
	if target == "" {
		return nil, nil
	}

	query := `SELECT id, name, email, department, office_location, image_url FROM faculty ORDER BY name`
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		slog.ErrorContext(ctx, "failed to query faculty for phonetic match",
			"search_term", name,
			"error", err)
		return nil, domerrors.NewQueryError("faculty", "phonetic", err)
	}
	defer func() { _ = rows.Close() }()

	var matches []FacultyMatch
	for rows.Next() {
		var f Faculty
		var email, dept, office, image sql.NullString
		if err := rows.Scan(&f.ID, &f.Name, &email, &dept, &office, &image); err != nil {
			return nil, fmt.Errorf("scan faculty: %w", err)
		}
		f.Email, f.Department, f.OfficeLocation, f.ImageURL = email.String, dept.String, office.String, image.String

		if Soundex(lastNameWord(f.Name)) == target {
			matches = append(matches, FacultyMatch{Faculty: f, MatchType: MatchFuzzy})
			if len(matches) == facultyMatchLimit {
				break
			}
		}
	}
	return matches, rows.Err()
}

// GetFacultyByExactName fetches a single faculty record by its stored
// name. Returns nil when absent.
func (db *DB) GetFacultyByExactName(ctx context.Context, name string) (*Faculty, error) {
	query := `SELECT id, name, email, department, office_location, image_url FROM faculty WHERE name = ?`

	var f Faculty
	var email, dept, office, image sql.NullString
	err := db.conn.QueryRowContext(ctx, query, name).Scan(&f.ID, &f.Name, &email, &dept, &office, &image)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to query faculty by name",
			"name", name,
			"error", err)
		return nil, domerrors.NewQueryError("faculty", "exact", err)
	}
	f.Email, f.Department, f.OfficeLocation, f.ImageURL = email.String, dept.String, office.String, image.String
	return &f, nil
}

// SearchFacultyByDepartment returns faculty whose department contains term.
func (db *DB) SearchFacultyByDepartment(ctx context.Context, term string) ([]Faculty, error) {
	pattern := "%" + sanitizeSearchTerm(term) + "%"
	query := `
		SELECT id, name, email, department, office_location, image_url
		FROM faculty
		WHERE department LIKE ? ESCAPE '\'
		ORDER BY name
	`

	rows, err := db.conn.QueryContext(ctx, query, pattern)
	if err != nil {
		return nil, domerrors.NewQueryError("faculty", "by_department", err)
	}
	return scanFaculty(rows)
}

// SearchFacultyByRole finds the holders of an administrative role such
// as principal, dean or controller of examinations. The role is stored
// in the department column, so each keyword pattern is searched there.
// Anti-ragging squad members whose name matches the role term are
// appended as a supplement, deduplicated by name.
func (db *DB) SearchFacultyByRole(ctx context.Context, role string) ([]Faculty, error) {
	patterns, ok := roleKeywords[strings.ToLower(role)]
	if !ok {
		return nil, nil
	}

	clauses := make([]string, len(patterns))
	args := make([]any, len(patterns))
	for i, p := range patterns {
		clauses[i] = "department LIKE ?"
		args[i] = p
	}

	query := fmt.Sprintf(`
		SELECT id, name, email, department, office_location, image_url
		FROM faculty
		WHERE %s
		ORDER BY name
	`, strings.Join(clauses, " OR "))

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domerrors.NewQueryError("faculty", "by_role", err)
	}
	results, err := scanFaculty(rows)
	if err != nil {
		return nil, err
	}

	squad, err := db.searchAntiRaggingByName(ctx, role)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(results))
	for _, f := range results {
		seen[normalizeName(f.Name)] = true
	}
	for _, m := range squad {
		if key := normalizeName(m.Name); !seen[key] {
			seen[key] = true
			results = append(results, Faculty{Name: m.Name, Department: m.Department})
		}
	}

	return results, nil
}

// GetAntiRaggingSquad returns the whole anti-ragging squad roster.
func (db *DB) GetAntiRaggingSquad(ctx context.Context) ([]AntiRaggingContact, error) {
	query := `SELECT id, name, role, department, contact_phone FROM anti_ragging_squad ORDER BY id`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, domerrors.NewQueryError("anti_ragging_squad", "list", err)
	}
	return scanAntiRagging(rows)
}

func (db *DB) searchAntiRaggingByName(ctx context.Context, name string) ([]AntiRaggingContact, error) {
	pattern := "%" + normalizeName(sanitizeSearchTerm(name)) + "%"
	query := fmt.Sprintf(`
		SELECT id, name, role, department, contact_phone
		FROM anti_ragging_squad
		WHERE %s LIKE ? ESCAPE '\'
		ORDER BY id
	`, normalizedNameExpr("name"))

	rows, err := db.conn.QueryContext(ctx, query, pattern)
	if err != nil {
		return nil, domerrors.NewQueryError("anti_ragging_squad", "by_name", err)
	}
	return scanAntiRagging(rows)
}

// SaveFaculty inserts or updates a faculty record
func (db *DB) SaveFaculty(ctx context.Context, f *Faculty) error {
	query := `
		INSERT INTO faculty (id, name, email, department, office_location, image_url)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			department = excluded.department,
			office_location = excluded.office_location,
			image_url = excluded.image_url
	`
	_, err := db.conn.ExecContext(ctx, query, f.ID, f.Name, f.Email, f.Department, f.OfficeLocation, f.ImageURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to save faculty",
			"faculty_id", f.ID,
			"error", err)
		return fmt.Errorf("failed to save faculty: %w", err)
	}
	return nil
}

// SaveFacultyBatch inserts or updates multiple faculty records in one transaction
func (db *DB) SaveFacultyBatch(ctx context.Context, members []*Faculty) error {
	if len(members) == 0 {
		return nil
	}

	query := `
		INSERT INTO faculty (id, name, email, department, office_location, image_url)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			department = excluded.department,
			office_location = excluded.office_location,
			image_url = excluded.image_url
	`
	return db.ExecBatch(ctx, query, func(stmt *sql.Stmt) error {
		for _, f := range members {
			if _, err := stmt.ExecContext(ctx, f.ID, f.Name, f.Email, f.Department, f.OfficeLocation, f.ImageURL); err != nil {
				return fmt.Errorf("failed to save faculty %d: %w", f.ID, err)
			}
		}
		return nil
	})
}

// SaveAntiRaggingBatch inserts or updates anti-ragging squad members
func (db *DB) SaveAntiRaggingBatch(ctx context.Context, members []*AntiRaggingContact) error {
	if len(members) == 0 {
		return nil
	}

	query := `
		INSERT INTO anti_ragging_squad (id, name, role, department, contact_phone)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			role = excluded.role,
			department = excluded.department,
			contact_phone = excluded.contact_phone
	`
	return db.ExecBatch(ctx, query, func(stmt *sql.Stmt) error {
		for _, m := range members {
			if _, err := stmt.ExecContext(ctx, m.ID, m.Name, m.Role, m.Department, m.ContactPhone); err != nil {
				return fmt.Errorf("failed to save squad member %d: %w", m.ID, err)
			}
		}
		return nil
	})
}

// CountFaculty returns the total number of faculty records
func (db *DB) CountFaculty(ctx context.Context) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM faculty`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count faculty: %w", err)
	}
	return count, nil
}

func scanFaculty(rows *sql.Rows) ([]Faculty, error) {
	defer func() { _ = rows.Close() }()

	var results []Faculty
	for rows.Next() {
		var f Faculty
		var email, dept, office, image sql.NullString
		if err := rows.Scan(&f.ID, &f.Name, &email, &dept, &office, &image); err != nil {
			return nil, fmt.Errorf("scan faculty: %w", err)
		}
		f.Email, f.Department, f.OfficeLocation, f.ImageURL = email.String, dept.String, office.String, image.String
		results = append(results, f)
	}
	return results, rows.Err()
}

func scanFacultyMatches(rows *sql.Rows, matchType MatchType) ([]FacultyMatch, error) {
	faculty, err := scanFaculty(rows)
	if err != nil {
		return nil, err
	}
	matches := make([]FacultyMatch, 0, len(faculty))
	for _, f := range faculty {
		matches = append(matches, FacultyMatch{Faculty: f, MatchType: matchType})
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return matches, nil
}

func scanAntiRagging(rows *sql.Rows) ([]AntiRaggingContact, error) {
	defer func() { _ = rows.Close() }()

	var results []AntiRaggingContact
	for rows.Next() {
		var m AntiRaggingContact
		var role, dept, phone sql.NullString
		if err := rows.Scan(&m.ID, &m.Name, &role, &dept, &phone); err != nil {
			return nil, fmt.Errorf("scan squad member: %w", err)
		}
		m.Role, m.Department, m.ContactPhone = role.String, dept.String, phone.String
		results = append(results, m)
	}
	return results, rows.Err()
}
