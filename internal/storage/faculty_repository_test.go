package storage

import (
	"context"
	"testing"
)

func newSeededDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewTestDB()
	if err != nil {
		t.Fatalf("NewTestDB() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	seedTestCatalog(t, db)
	return db
}

func TestLookupFacultyExactNormalized(t *testing.T) {
	db := newSeededDB(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		search    string
		wantName  string
		wantCount int
	}{
		{"lowercase surname only", "kuzhalvaimozhi", "Dr. S Kuzhalvaimozhi", 1},
		{"name with dots stripped", "s kuzhalvaimozhi", "Dr. S Kuzhalvaimozhi", 1},
		{"full stored name", "Dr. S Kuzhalvaimozhi", "Dr. S Kuzhalvaimozhi", 1},
		{"partial name", "anil kumar", "Dr. Anil Kumar", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := db.LookupFaculty(ctx, tt.search)
			if err != nil {
				t.Fatalf("LookupFaculty(%q) error = %v", tt.search, err)
			}
			if len(matches) != tt.wantCount {
				t.Fatalf("LookupFaculty(%q) returned %d matches, want %d", tt.search, len(matches), tt.wantCount)
			}
			if matches[0].Name != tt.wantName {
				t.Errorf("match name = %q, want %q", matches[0].Name, tt.wantName)
			}
			if matches[0].MatchType != MatchExact {
				t.Errorf("match type = %q, want %q", matches[0].MatchType, MatchExact)
			}
		})
	}
}

func TestLookupFacultyFuzzyFallback(t *testing.T) {
	db := newSeededDB(t)
	ctx := context.Background()

	// Misspelled surname has no containment match but the same
	// phonetic code, so the lookup degrades to a fuzzy match.
	matches, err := db.LookupFaculty(ctx, "kuzalvaimozhi")
	if err != nil {
		t.Fatalf("LookupFaculty() error = %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("LookupFaculty() returned %d matches, want 1", len(matches))
	}
	if matches[0].Name != "Dr. S Kuzhalvaimozhi" {
		t.Errorf("match name = %q, want %q", matches[0].Name, "Dr. S Kuzhalvaimozhi")
	}
	if matches[0].MatchType != MatchFuzzy {
		t.Errorf("match type = %q, want %q", matches[0].MatchType, MatchFuzzy)
	}
}

func TestLookupFacultyNotFound(t *testing.T) {
	db := newSeededDB(t)

	matches, err := db.LookupFaculty(context.Background(), "nonexistent person")
	if err != nil {
		t.Fatalf("LookupFaculty() error = %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("LookupFaculty() returned %d matches, want 0", len(matches))
	}
}

func TestLookupFacultyEmptyTerm(t *testing.T) {
	db := newSeededDB(t)

	// An empty term matches every record via the containment pattern;
	// the limit keeps the result bounded.
	matches, err := db.LookupFaculty(context.Background(), "")
	if err != nil {
		t.Fatalf("LookupFaculty(\"\") error = %v", err)
	}
	if len(matches) > facultyMatchLimit {
		t.Errorf("LookupFaculty(\"\") returned %d matches, want at most %d", len(matches), facultyMatchLimit)
	}
}

func TestGetFacultyByExactName(t *testing.T) {
	db := newSeededDB(t)
	ctx := context.Background()

	f, err := db.GetFacultyByExactName(ctx, "Dr. Anil Kumar")
	if err != nil {
		t.Fatalf("GetFacultyByExactName() error = %v", err)
	}
	if f == nil {
		t.Fatal("GetFacultyByExactName() = nil, want record")
	}
	if f.Department != "CSE" {
		t.Errorf("Department = %q, want %q", f.Department, "CSE")
	}

	missing, err := db.GetFacultyByExactName(ctx, "No Such Person")
	if err != nil {
		t.Fatalf("GetFacultyByExactName() error = %v", err)
	}
	if missing != nil {
		t.Errorf("GetFacultyByExactName() for missing name = %+v, want nil", missing)
	}
}

func TestRoleKeyword(t *testing.T) {
	tests := []struct {
		input    string
		wantKey  string
		wantRole bool
	}{
		{"principal", "principal", true},
		{"Principal", "principal", true},
		{"dean", "dean", true},
		{"the dean", "dean", true},
		{"coe", "coe", true},
		{"controller", "controller", true},
		{"Dr. Anil Kumar", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			key, ok := RoleKeyword(tt.input)
			if ok != tt.wantRole {
				t.Fatalf("RoleKeyword(%q) ok = %v, want %v", tt.input, ok, tt.wantRole)
			}
			if ok && key != tt.wantKey {
				t.Errorf("RoleKeyword(%q) = %q, want %q", tt.input, key, tt.wantKey)
			}
		})
	}
}

func TestSearchFacultyByRole(t *testing.T) {
	db := newSeededDB(t)
	ctx := context.Background()

	t.Run("principal", func(t *testing.T) {
		results, err := db.SearchFacultyByRole(ctx, "principal")
		if err != nil {
			t.Fatalf("SearchFacultyByRole() error = %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("got %d results, want 1", len(results))
		}
		if results[0].Name != "Dr. Meena Iyer" {
			t.Errorf("name = %q, want %q", results[0].Name, "Dr. Meena Iyer")
		}
	})

	t.Run("dean", func(t *testing.T) {
		results, err := db.SearchFacultyByRole(ctx, "dean")
		if err != nil {
			t.Fatalf("SearchFacultyByRole() error = %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("got %d results, want 1", len(results))
		}
		if results[0].Name != "Prof. Ravi Shankar" {
			t.Errorf("name = %q, want %q", results[0].Name, "Prof. Ravi Shankar")
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		results, err := db.SearchFacultyByRole(ctx, "janitor")
		if err != nil {
			t.Fatalf("SearchFacultyByRole() error = %v", err)
		}
		if results != nil {
			t.Errorf("got %v, want nil for unmapped role", results)
		}
	})
}

func TestSearchFacultyByDepartment(t *testing.T) {
	db := newSeededDB(t)

	results, err := db.SearchFacultyByDepartment(context.Background(), "CSE")
	if err != nil {
		t.Fatalf("SearchFacultyByDepartment() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Name != "Dr. Anil Kumar" {
		t.Errorf("name = %q, want %q", results[0].Name, "Dr. Anil Kumar")
	}
}

func TestGetAntiRaggingSquad(t *testing.T) {
	db := newSeededDB(t)

	squad, err := db.GetAntiRaggingSquad(context.Background())
	if err != nil {
		t.Fatalf("GetAntiRaggingSquad() error = %v", err)
	}
	if len(squad) != 2 {
		t.Fatalf("got %d members, want 2", len(squad))
	}
	if squad[0].Role != "Convener" {
		t.Errorf("first member role = %q, want %q", squad[0].Role, "Convener")
	}
	if squad[1].ContactPhone != "9000000002" {
		t.Errorf("second member phone = %q, want %q", squad[1].ContactPhone, "9000000002")
	}
}

func TestLookupFacultyEscapesWildcards(t *testing.T) {
	db := newSeededDB(t)

	// A bare % would match everything if not escaped
	matches, err := db.LookupFaculty(context.Background(), "%")
	if err != nil {
		t.Fatalf("LookupFaculty(%%) error = %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("LookupFaculty(%%) returned %d matches, want 0", len(matches))
	}
}
