package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	domerrors "github.com/campushq/campus-chatbot-go/internal/errors"
)

// CTCOperator selects the comparison direction for CTC threshold queries.
type CTCOperator string

const (
	// CTCAbove selects companies offering more than the threshold.
	CTCAbove CTCOperator = "gt"
	// CTCBelow selects companies offering less than the threshold.
	CTCBelow CTCOperator = "lt"
)

// sqlComparison maps an operator to its SQL form, rejecting anything else
// so the operator can never reach the query text unchecked.
func sqlComparison(op CTCOperator) (string, error) {
	switch op {
	case CTCAbove:
		return ">", nil
	case CTCBelow:
		return "<", nil
	default:
		return "", fmt.Errorf("%w: ctc operator %q", domerrors.ErrInvalidInput, op)
	}
}

// GetPlacementSummary returns the most recent placement summary row,
// or nil when none has been loaded.
func (db *DB) GetPlacementSummary(ctx context.Context) (*PlacementSummary, error) {
	query := `
		SELECT id, highest_ctc, average_ctc, median_ctc, lowest_ctc, total_selects, total_companies
		FROM placement_summary
		ORDER BY id DESC
		LIMIT 1
	`

	var s PlacementSummary
	var highest, average, median, lowest sql.NullFloat64
	var selects, companies sql.NullInt64
	err := db.conn.QueryRowContext(ctx, query).Scan(&s.ID, &highest, &average, &median, &lowest, &selects, &companies)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to query placement summary", "error", err)
		return nil, fmt.Errorf("query placement summary: %w", err)
	}
	s.HighestCTC, s.AverageCTC, s.MedianCTC, s.LowestCTC = highest.Float64, average.Float64, median.Float64, lowest.Float64
	s.TotalSelects, s.TotalCompanies = int(selects.Int64), int(companies.Int64)
	return &s, nil
}

// SearchCompanies returns placement records for companies whose name
// contains the search term.
func (db *DB) SearchCompanies(ctx context.Context, name string) ([]PlacementCompany, error) {
	pattern := "%" + sanitizeSearchTerm(name) + "%"
	query := `
		SELECT id, company_name, ctc, num_selects, ctc_type
		FROM placement_companies
		WHERE company_name LIKE ? ESCAPE '\'
		ORDER BY company_name
	`

	rows, err := db.conn.QueryContext(ctx, query, pattern)
	if err != nil {
		slog.ErrorContext(ctx, "failed to query placement companies",
			"company_name", name,
			"error", err)
		return nil, fmt.Errorf("query placement companies: %w", err)
	}
	return scanCompanies(rows)
}

// CountCompaniesByType counts companies grouped by CTC type (dream,
// super dream and so on) for types containing the term.
func (db *DB) CountCompaniesByType(ctx context.Context, ctcType string) ([]CTCTypeCount, error) {
	pattern := "%" + strings.ToLower(sanitizeSearchTerm(ctcType)) + "%"
	query := `
		SELECT ctc_type, COUNT(*) AS company_count
		FROM placement_companies
		WHERE LOWER(ctc_type) LIKE ? ESCAPE '\'
		GROUP BY ctc_type
		ORDER BY ctc_type
	`

	rows, err := db.conn.QueryContext(ctx, query, pattern)
	if err != nil {
		return nil, fmt.Errorf("query ctc type counts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var counts []CTCTypeCount
	for rows.Next() {
		var c CTCTypeCount
		if err := rows.Scan(&c.CTCType, &c.CompanyCount); err != nil {
			return nil, fmt.Errorf("scan ctc type count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// AggregateByCTC totals selections and companies on one side of a CTC
// threshold expressed in LPA.
func (db *DB) AggregateByCTC(ctx context.Context, op CTCOperator, amount float64) (*CTCAggregate, error) {
	cmp, err := sqlComparison(op)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(num_selects), 0) AS total_students, COUNT(company_name) AS total_companies
		FROM placement_companies
		WHERE ctc %s ?
	`, cmp)

	var agg CTCAggregate
	if err := db.conn.QueryRowContext(ctx, query, amount).Scan(&agg.TotalStudents, &agg.TotalCompanies); err != nil {
		slog.ErrorContext(ctx, "failed to aggregate by ctc",
			"operator", string(op),
			"amount", amount,
			"error", err)
		return nil, fmt.Errorf("aggregate by ctc: %w", err)
	}
	return &agg, nil
}

// CompaniesByCTC lists companies on one side of a CTC threshold,
// highest package first.
func (db *DB) CompaniesByCTC(ctx context.Context, op CTCOperator, amount float64) ([]PlacementCompany, error) {
	cmp, err := sqlComparison(op)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, company_name, ctc, num_selects, ctc_type
		FROM placement_companies
		WHERE ctc %s ?
		ORDER BY ctc DESC, company_name
	`, cmp)

	rows, err := db.conn.QueryContext(ctx, query, amount)
	if err != nil {
		return nil, fmt.Errorf("query companies by ctc: %w", err)
	}
	return scanCompanies(rows)
}

// SavePlacementSummary inserts or updates the placement summary row
func (db *DB) SavePlacementSummary(ctx context.Context, s *PlacementSummary) error {
	query := `
		INSERT INTO placement_summary (id, highest_ctc, average_ctc, median_ctc, lowest_ctc, total_selects, total_companies)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			highest_ctc = excluded.highest_ctc,
			average_ctc = excluded.average_ctc,
			median_ctc = excluded.median_ctc,
			lowest_ctc = excluded.lowest_ctc,
			total_selects = excluded.total_selects,
			total_companies = excluded.total_companies
	`
	_, err := db.conn.ExecContext(ctx, query, s.ID, s.HighestCTC, s.AverageCTC, s.MedianCTC, s.LowestCTC, s.TotalSelects, s.TotalCompanies)
	if err != nil {
		return fmt.Errorf("failed to save placement summary: %w", err)
	}
	return nil
}

// SaveCompaniesBatch inserts or updates placement company records
func (db *DB) SaveCompaniesBatch(ctx context.Context, companies []*PlacementCompany) error {
	if len(companies) == 0 {
		return nil
	}

	query := `
		INSERT INTO placement_companies (id, company_name, ctc, num_selects, ctc_type)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			company_name = excluded.company_name,
			ctc = excluded.ctc,
			num_selects = excluded.num_selects,
			ctc_type = excluded.ctc_type
	`
	return db.ExecBatch(ctx, query, func(stmt *sql.Stmt) error {
		for _, c := range companies {
			if _, err := stmt.ExecContext(ctx, c.ID, c.CompanyName, c.CTC, c.NumSelects, c.CTCType); err != nil {
				return fmt.Errorf("failed to save company %s: %w", c.CompanyName, err)
			}
		}
		return nil
	})
}

// CountCompanies returns the total number of placement company records
func (db *DB) CountCompanies(ctx context.Context) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM placement_companies`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count companies: %w", err)
	}
	return count, nil
}

func scanCompanies(rows *sql.Rows) ([]PlacementCompany, error) {
	defer func() { _ = rows.Close() }()

	var companies []PlacementCompany
	for rows.Next() {
		var c PlacementCompany
		var ctc sql.NullFloat64
		var selects sql.NullInt64
		var ctcType sql.NullString
		if err := rows.Scan(&c.ID, &c.CompanyName, &ctc, &selects, &ctcType); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		c.CTC, c.NumSelects, c.CTCType = ctc.Float64, int(selects.Int64), ctcType.String
		companies = append(companies, c)
	}
	return companies, rows.Err()
}
