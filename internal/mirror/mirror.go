// Package mirror persists ledger state as independently keyed JSON documents.
//
// The mirror is a serialized copy of the in-memory session, not a separate
// source of truth: on session open each key fully replaces in-memory state,
// and every mutation writes the affected collections back wholesale.
package mirror

// Storage keys. Each holds one JSON document (a flat array for the three
// collections, a bare string for the admin key).
const (
	KeyDebtEntries = "debtEntries"
	KeyLogs        = "logs"
	KeyRequests    = "requests"
	KeyAdmin       = "adminKey"
)

// Mirror is the durable mirror interface.
type Mirror interface {
	// Load reads the document stored under key into v. The bool reports
	// whether the key existed.
	Load(key string, v any) (bool, error)

	// Save replaces the document stored under key with the JSON encoding
	// of v.
	Save(key string, v any) error

	// Close closes the mirror.
	Close() error
}
