// Package normalize provides helper functions for consistent string normalization
// across the application. Use these helpers instead of scattered strings.ToLower
// and strings.TrimSpace calls to ensure consistent behavior.
package normalize

import "strings"

// Email normalizes an email address by trimming whitespace and converting to lowercase.
// This is the canonical way to normalize emails before storage or comparison.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name normalizes a name by trimming whitespace.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// EmployeeID normalizes an employee ID by trimming whitespace and uppercasing,
// so lookups match regardless of how the ID was typed.
func EmployeeID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Status normalizes a user/role status to its canonical capitalized form
// ("active" -> "Active"). Unknown values are returned trimmed.
func Status(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "active":
		return "Active"
	case "inactive":
		return "Inactive"
	}
	return s
}

// QueryParam normalizes a query parameter by trimming whitespace.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
