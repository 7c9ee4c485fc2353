package store

import (
	"errors"
	"fmt"
)

// Kind classifies store failures into the small closed set the handlers
// branch on. Translation from raw PostgREST error payloads happens once,
// inside the client; handlers must never re-parse error strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotConfigured
	KindRelationNotFound      // table missing in the destination schema (42P01)
	KindNoMatchingConstraint  // upsert conflict target has no unique constraint (42P10)
	KindUniqueViolation       // duplicate key (23505)
	KindTimeout               // request exceeded its context deadline
)

// Error is the typed error returned by every store operation. Code and
// Message carry the store's own diagnostics so handlers can surface them
// as response detail.
type Error struct {
	Kind    Kind
	Code    string // store-reported error code, e.g. "42P01"
	Message string
	Details string
	Hint    string
	Status  int // HTTP status returned by the store endpoint
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("store: %s (%s)", e.Message, e.Code)
	}
	return "store: " + e.Message
}

// ErrNotConfigured is returned by every operation when no store
// credentials were supplied at startup.
var ErrNotConfigured = &Error{
	Kind:    KindNotConfigured,
	Message: "store not configured: set SUPABASE_URL and SUPABASE_SERVICE_KEY",
}

// KindOf extracts the Kind from any error the store returned.
// Non-store errors report KindUnknown.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

// Diagnostic returns the store's code and message for response detail,
// or empty strings when err did not originate in the store.
func Diagnostic(err error) (code, message string) {
	var se *Error
	if errors.As(err, &se) {
		return se.Code, se.Message
	}
	return "", ""
}

// translateCode maps PostgREST/Postgres error codes onto Kinds. PGRST205
// is the schema-cache variant of a missing relation reported by newer
// PostgREST releases; both spellings must behave identically.
func translateCode(code string) Kind {
	switch code {
	case "42P01", "PGRST205":
		return KindRelationNotFound
	case "42P10":
		return KindNoMatchingConstraint
	case "23505":
		return KindUniqueViolation
	default:
		return KindUnknown
	}
}
