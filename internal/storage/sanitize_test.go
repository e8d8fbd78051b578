package storage

import (
	"strings"
	"testing"
)

func TestSanitizeSearchTerm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "Data Structures", "Data Structures"},
		{"percent escaped", "test%value", "test\\%value"},
		{"underscore escaped", "test_value", "test\\_value"},
		{"backslash escaped", "test\\value", "test\\\\value"},
		{"all three together", "test%_value\\test", "test\\%\\_value\\\\test"},
		{"empty input", "", ""},
		{"wildcards only", "%_\\", "\\%\\_\\\\"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeSearchTerm(tt.input); got != tt.want {
				t.Errorf("sanitizeSearchTerm(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeSearchTermLeavesKeywordsAlone(t *testing.T) {
	// The function only neutralizes LIKE wildcards. Injection attempts pass
	// through as literal text; parameterized queries are what keep them inert.
	attempts := []string{
		"'; DROP TABLE faculty; --",
		"1' OR '1'='1",
		"admin'--",
		"' UNION SELECT * FROM faculty--",
	}

	for _, input := range attempts {
		got := sanitizeSearchTerm(input)
		if strings.ContainsAny(input, "%_") && got == input {
			t.Errorf("wildcards in %q were not escaped", input)
		}
		if !strings.ContainsAny(input, "%_\\") && got != input {
			t.Errorf("sanitizeSearchTerm(%q) = %q, should be unchanged", input, got)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"honorific and initials", "Dr. S Kuzhalvaimozhi", "drskuzhalvaimozhi"},
		{"plain lowercase", "kuzhalvaimozhi", "kuzhalvaimozhi"},
		{"mixed case with spaces", "Anil Kumar B N", "anilkumarbn"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeName(tt.input); got != tt.want {
				t.Errorf("normalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
