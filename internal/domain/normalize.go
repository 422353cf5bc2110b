package domain

import "strings"

// NormalizeVerbID prepares a verb identity for storage and lookup:
// surrounding whitespace is trimmed and the result is lowercased.
// Umlauts and ß are preserved.
func NormalizeVerbID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// NormalizeLevel upper-cases a proficiency level tag such as "a1" -> "A1".
func NormalizeLevel(level string) string {
	return strings.ToUpper(strings.TrimSpace(level))
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
