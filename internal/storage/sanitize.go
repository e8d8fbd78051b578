package storage

import "strings"

// sanitizeSearchTerm escapes the LIKE wildcards % and _ plus the escape
// character itself, so user-typed text matches literally. Queries using the
// result must specify ESCAPE '\'.
func sanitizeSearchTerm(term string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"%", "\\%",
		"_", "\\_",
	)
	return replacer.Replace(term)
}

// normalizeName lowercases a person's name and strips spaces and dots,
// so "Dr. S Kuzhalvaimozhi" and "s kuzhalvaimozhi" compare equal.
// The same normalization is applied in SQL via nested REPLACE calls.
func normalizeName(name string) string {
	replacer := strings.NewReplacer(" ", "", ".", "")
	return replacer.Replace(strings.ToLower(name))
}

// normalizedNameExpr is the SQL expression mirroring normalizeName for a column.
func normalizedNameExpr(column string) string {
	return "REPLACE(REPLACE(LOWER(" + column + "), ' ', ''), '.', '')"
}
