package patterns

import "time"

// Filter narrows a Backend query.
type Filter struct {
	KeyPrefix     string
	Limit         int
	OrderByRecent bool // most recently updated first; otherwise by frequency
}

// Backend is the narrow durable-store contract. Anything that can upsert a
// keyed counter with metadata and query it back is substitutable: the
// bundled implementation is sqlite, but a relational table or key-value
// store fits the same shape.
type Backend interface {
	// Upsert merges a frequency delta and metadata into the record at
	// (recordType, scope, key), creating it if absent. List-valued metadata
	// entries are unioned, scalars overwritten.
	Upsert(recordType RecordType, scope, key string, frequencyDelta float64, metadata map[string]any) error

	// Query returns records of one type for a scope.
	Query(recordType RecordType, scope string, filter Filter) ([]Record, error)

	// Sweep deletes records of one type not updated since cutoff and
	// returns how many rows went.
	Sweep(recordType RecordType, scope string, cutoff time.Time) (int64, error)

	// Decay multiplies the frequency of records not updated since cutoff
	// by factor, deleting rows that fall below floor.
	Decay(recordType RecordType, scope string, cutoff time.Time, factor, floor float64) error

	// Reset removes every record for a scope.
	Reset(scope string) error

	Close() error
}
