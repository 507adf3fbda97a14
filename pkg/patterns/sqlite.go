package patterns

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/tilespeak/tilespeak/internal/utils"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	record_type TEXT NOT NULL,
	scope       TEXT NOT NULL,
	key         TEXT NOT NULL,
	frequency   REAL NOT NULL DEFAULT 0,
	metadata    TEXT,
	updated_at  TIMESTAMP NOT NULL,
	PRIMARY KEY (record_type, scope, key)
);
CREATE INDEX IF NOT EXISTS idx_records_updated ON records (record_type, scope, updated_at);
`

// SQLiteBackend implements Backend on modernc.org/sqlite (pure Go, no CGo).
// Writes are serialized by a single mutex: the engine's write volume is one
// utterance or interaction at a time, and lost increments matter more than
// write throughput.
type SQLiteBackend struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// OpenSQLite opens (and migrates) the database at dbPath.
func OpenSQLite(dbPath string) (*SQLiteBackend, error) {
	if err := utils.EnsureDir(filepath.Dir(dbPath)); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", dbPath, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate store %s: %w", dbPath, err)
	}
	return &SQLiteBackend{db: db, dbPath: dbPath}, nil
}

// Upsert merges a delta and metadata into one record inside a transaction,
// so two near-simultaneous writes to the same key both count.
func (b *SQLiteBackend) Upsert(recordType RecordType, scope, key string, frequencyDelta float64, metadata map[string]any) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	tx, err := b.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var existingMeta sql.NullString
	err = tx.QueryRow(
		`SELECT metadata FROM records WHERE record_type = ? AND scope = ? AND key = ?`,
		string(recordType), scope, key,
	).Scan(&existingMeta)

	merged := metadata
	switch err {
	case nil:
		merged = mergeMetadata(decodeMetadata(existingMeta.String, key), metadata)
	case sql.ErrNoRows:
		// first sighting
	default:
		return err
	}

	encoded, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	_, err = tx.Exec(`
		INSERT INTO records (record_type, scope, key, frequency, metadata, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (record_type, scope, key) DO UPDATE SET
			frequency  = records.frequency + excluded.frequency,
			metadata   = excluded.metadata,
			updated_at = excluded.updated_at`,
		string(recordType), scope, key, frequencyDelta, string(encoded), time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// Query returns records of one type for a scope. Malformed metadata never
// aborts the batch: the offending row is skipped and logged.
func (b *SQLiteBackend) Query(recordType RecordType, scope string, filter Filter) ([]Record, error) {
	query := `SELECT key, frequency, metadata, updated_at FROM records
		WHERE record_type = ? AND scope = ?`
	args := []any{string(recordType), scope}

	if filter.KeyPrefix != "" {
		query += ` AND key LIKE ? ESCAPE '\'`
		args = append(args, escapeLike(filter.KeyPrefix)+"%")
	}
	if filter.OrderByRecent {
		query += ` ORDER BY updated_at DESC, key DESC`
	} else {
		query += ` ORDER BY frequency DESC, key ASC`
	}
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var meta sql.NullString
		if err := rows.Scan(&rec.Key, &rec.Frequency, &meta, &rec.UpdatedAt); err != nil {
			log.Warnf("Skipping unreadable %s record: %v", recordType, err)
			continue
		}
		rec.Metadata = decodeMetadata(meta.String, rec.Key)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Sweep deletes records of one type not touched since cutoff.
func (b *SQLiteBackend) Sweep(recordType RecordType, scope string, cutoff time.Time) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	res, err := b.db.Exec(
		`DELETE FROM records WHERE record_type = ? AND scope = ? AND updated_at < ?`,
		string(recordType), scope, cutoff.UTC(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Decay multiplies stale frequencies by factor and drops rows below floor.
func (b *SQLiteBackend) Decay(recordType RecordType, scope string, cutoff time.Time, factor, floor float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, err := b.db.Exec(
		`UPDATE records SET frequency = frequency * ? WHERE record_type = ? AND scope = ? AND updated_at < ?`,
		factor, string(recordType), scope, cutoff.UTC(),
	)
	if err != nil {
		return err
	}
	_, err = b.db.Exec(
		`DELETE FROM records WHERE record_type = ? AND scope = ? AND frequency < ?`,
		string(recordType), scope, floor,
	)
	return err
}

// Reset removes every record for a scope.
func (b *SQLiteBackend) Reset(scope string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, err := b.db.Exec(`DELETE FROM records WHERE scope = ?`, scope)
	return err
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

// decodeMetadata parses a metadata JSON blob, returning nil (and logging)
// when the blob is unparsable so one bad row never poisons a query.
func decodeMetadata(blob, key string) map[string]any {
	if blob == "" {
		return nil
	}
	var meta map[string]any
	if err := json.Unmarshal([]byte(blob), &meta); err != nil {
		log.Warnf("Malformed metadata for record %q: %v", key, err)
		return nil
	}
	return meta
}

// mergeMetadata folds new metadata over old: list values are unioned,
// scalars overwritten. This is what lets context-hour and topic sets grow
// across upserts without a separate read path.
func mergeMetadata(prev, next map[string]any) map[string]any {
	if prev == nil {
		return next
	}
	merged := make(map[string]any, len(prev)+len(next))
	for k, v := range prev {
		merged[k] = v
	}
	for k, v := range next {
		newList, newIsList := v.([]any)
		oldList, oldIsList := merged[k].([]any)
		if newIsList && oldIsList {
			merged[k] = unionLists(oldList, newList)
			continue
		}
		merged[k] = v
	}
	return merged
}

func unionLists(a, b []any) []any {
	seen := make(map[string]bool, len(a)+len(b))
	var out []any
	for _, list := range [][]any{a, b} {
		for _, item := range list {
			repr := fmt.Sprint(item)
			if !seen[repr] {
				seen[repr] = true
				out = append(out, item)
			}
		}
	}
	return out
}

func escapeLike(s string) string {
	var out []rune
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
