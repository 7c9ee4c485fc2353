package utils // package utils provides normalization helpers shared by handlers and repositories

import (
	"strings"
	"time"
)

// NormalizeEmail lowercases and trims an email address. Every email-keyed
// lookup and every stored email goes through this helper so comparisons
// are case-insensitive across the whole service.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// dateLayouts are the input formats accepted from clients, most specific
// first. The Brazilian dd/mm/yyyy form shows up in older client builds.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// ParseTimestamp parses a client- or store-supplied timestamp. The second
// return is false when the value is empty or matches no known layout.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ToISO normalizes a date or timestamp string to RFC 3339 in UTC. Values
// that match no known layout are returned unchanged; the store rejects
// them with its own diagnostics if the column is typed.
func ToISO(s string) string {
	t, ok := ParseTimestamp(s)
	if !ok {
		return strings.TrimSpace(s)
	}
	return t.UTC().Format(time.RFC3339)
}

// NowISO returns the current UTC time in RFC 3339.
func NowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
