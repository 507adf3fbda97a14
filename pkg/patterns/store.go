/*
Package patterns is the durable record of a user's language: words, phrase
and transition frequencies, temporal usage and topic tags, keyed by an
identity scope. Writes are append-and-merge; reads happen through an
in-memory Snapshot rebuilt per session, not per keystroke.

Persistence is best-effort by design. If the backing store cannot be opened
the store disables itself and every operation becomes a logged no-op; a
failed write is deferred and retried on the next write call, so a transient
disk hiccup never ends learning for the session. A communication aid that
forgets is better than one that blocks.
*/
package patterns

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tilespeak/tilespeak/internal/utils"
)

// ErrStoreUnavailable marks reads attempted while persistence is disabled.
var ErrStoreUnavailable = errors.New("pattern store unavailable")

// maxDeferredWrites bounds the retry queue for failed writes. When the
// backend stays broken past this, the oldest deferred writes are dropped.
const maxDeferredWrites = 256

// Store is the domain layer over a Backend for one identity scope.
type Store struct {
	backend Backend
	scope   string
	enabled bool

	mu       sync.Mutex
	deferred []deferredWrite
}

// deferredWrite is one failed upsert awaiting a best-effort retry.
type deferredWrite struct {
	recordType RecordType
	key        string
	delta      float64
	metadata   map[string]any
}

// NewStore opens a sqlite-backed store at dbPath for the given scope.
// Open failure returns a disabled store, not an error: callers degrade to
// template-only suggestions.
func NewStore(dbPath, scope string) *Store {
	backend, err := OpenSQLite(dbPath)
	if err != nil {
		log.Warnf("Pattern store disabled: %v", err)
		return &Store{scope: scope, enabled: false}
	}
	return &Store{backend: backend, scope: scope, enabled: true}
}

// NewStoreWithBackend wraps an existing backend; used by tests and by hosts
// that bring their own persistence.
func NewStoreWithBackend(backend Backend, scope string) *Store {
	return &Store{backend: backend, scope: scope, enabled: backend != nil}
}

// Disabled returns a store whose every operation is a no-op.
func Disabled(scope string) *Store {
	return &Store{scope: scope, enabled: false}
}

// Enabled reports whether persistence is active.
func (s *Store) Enabled() bool {
	return s.enabled
}

// Scope returns the identity scope this store writes under.
func (s *Store) Scope() string {
	return s.scope
}

// RecordUtterance tokenizes an utterance and merges it into the store:
// one phrase record, one word record per token, one transition per adjacent
// pair plus one trigram edge per triple, topic tags, and the current hour
// into each word's context-hour set.
func (s *Store) RecordUtterance(text, category string) error {
	return s.RecordUtteranceAt(text, category, time.Now())
}

// RecordUtteranceAt is RecordUtterance with an explicit clock, so replays
// and tests control the temporal buckets.
func (s *Store) RecordUtteranceAt(text, category string, now time.Time) error {
	if !s.enabled {
		return nil
	}
	tokens := utils.Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	phrase := strings.Join(tokens, " ")
	hour := now.Hour()
	day := int(now.Weekday())

	topics := DetectTopics(tokens)
	category = strings.ToLower(strings.TrimSpace(category))
	if category != "" && !containsString(topics, category) {
		topics = append(topics, category)
	}
	topicList := make([]any, len(topics))
	for i, t := range topics {
		topicList[i] = t
	}

	if err := s.upsert(RecordPhrase, phrase, 1, map[string]any{
		"last_used_at": now.UTC().Format(time.RFC3339),
		"hour_of_day":  hour,
		"day_of_week":  day,
		"topics":       topicList,
	}); err != nil {
		return err
	}

	for _, token := range tokens {
		if err := s.upsert(RecordWord, token, 1, map[string]any{
			"last_used_at":  now.UTC().Format(time.RFC3339),
			"context_hours": []any{hour},
		}); err != nil {
			return err
		}
	}

	for i := 0; i < len(tokens)-1; i++ {
		if err := s.upsert(RecordTransition, transitionKey(tokens[i], tokens[i+1]), 1, nil); err != nil {
			return err
		}
	}
	for i := 0; i < len(tokens)-2; i++ {
		from := tokens[i] + " " + tokens[i+1]
		if err := s.upsert(RecordTransition, transitionKey(from, tokens[i+2]), 1, nil); err != nil {
			return err
		}
	}
	return nil
}

// AppendInteraction writes one immutable accept/ignore event.
func (s *Store) AppendInteraction(in Interaction) error {
	if !s.enabled {
		return nil
	}
	contextJSON, _ := json.Marshal(in.ContextWords)
	return s.upsert(RecordInteraction, in.ID, 1, map[string]any{
		"suggestion_text": in.SuggestionText,
		"suggestion_type": in.SuggestionType,
		"context_words":   string(contextJSON),
		"was_selected":    in.WasSelected,
		"confidence":      in.Confidence,
		"hour_of_day":     in.HourOfDay,
		"day_of_week":     in.DayOfWeek,
		"created_at":      in.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// Interactions returns up to limit logged interactions, oldest first so a
// model replay applies them in the order they happened.
func (s *Store) Interactions(limit int) ([]Interaction, error) {
	if !s.enabled {
		return nil, ErrStoreUnavailable
	}
	records, err := s.backend.Query(RecordInteraction, s.scope, Filter{Limit: limit, OrderByRecent: true})
	if err != nil {
		return nil, err
	}

	out := make([]Interaction, 0, len(records))
	for _, rec := range records {
		in, ok := interactionFromRecord(rec)
		if !ok {
			log.Warnf("Skipping malformed interaction record %q", rec.Key)
			continue
		}
		out = append(out, in)
	}
	// reverse: query returned newest first
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// UpsertIntentSequence persists one intent-follows-intent edge.
func (s *Store) UpsertIntentSequence(first, second string, frequencyDelta int, avgGapSeconds float64) error {
	if !s.enabled {
		return nil
	}
	return s.upsert(RecordIntentSequence, first+"|"+second, float64(frequencyDelta), map[string]any{
		"avg_gap_seconds": avgGapSeconds,
	})
}

// IntentSequenceRow is a persisted intent edge in string form.
type IntentSequenceRow struct {
	First         string
	Second        string
	Frequency     int
	AvgGapSeconds float64
}

// IntentSequences loads all persisted intent edges for the scope.
func (s *Store) IntentSequences() ([]IntentSequenceRow, error) {
	if !s.enabled {
		return nil, ErrStoreUnavailable
	}
	records, err := s.backend.Query(RecordIntentSequence, s.scope, Filter{})
	if err != nil {
		return nil, err
	}
	var out []IntentSequenceRow
	for _, rec := range records {
		first, second, ok := strings.Cut(rec.Key, "|")
		if !ok {
			log.Warnf("Skipping malformed intent sequence key %q", rec.Key)
			continue
		}
		out = append(out, IntentSequenceRow{
			First:         first,
			Second:        second,
			Frequency:     int(rec.Frequency),
			AvgGapSeconds: metaFloat(rec.Metadata, "avg_gap_seconds"),
		})
	}
	return out, nil
}

// UpsertIntentPattern persists one learned intent pattern. Completions
// union into the stored set across upserts; confidence is overwritten with
// the current in-memory value.
func (s *Store) UpsertIntentPattern(intentType string, triggerWords, completions []string, frequencyDelta int, confidence float64) error {
	if !s.enabled {
		return nil
	}
	list := make([]any, len(completions))
	for i, c := range completions {
		list[i] = c
	}
	key := intentType + "|" + strings.Join(triggerWords, " ")
	return s.upsert(RecordIntentPattern, key, float64(frequencyDelta), map[string]any{
		"completions": list,
		"confidence":  confidence,
	})
}

// IntentPatternRow is a persisted intent pattern in string form.
type IntentPatternRow struct {
	Intent       string
	TriggerWords []string
	Completions  []string
	Frequency    int
	Confidence   float64
}

// IntentPatterns loads all persisted intent patterns for the scope.
func (s *Store) IntentPatterns() ([]IntentPatternRow, error) {
	if !s.enabled {
		return nil, ErrStoreUnavailable
	}
	records, err := s.backend.Query(RecordIntentPattern, s.scope, Filter{})
	if err != nil {
		return nil, err
	}
	var out []IntentPatternRow
	for _, rec := range records {
		intentType, trigger, ok := strings.Cut(rec.Key, "|")
		if !ok || intentType == "" {
			log.Warnf("Skipping malformed intent pattern key %q", rec.Key)
			continue
		}
		out = append(out, IntentPatternRow{
			Intent:       intentType,
			TriggerWords: strings.Fields(trigger),
			Completions:  metaStringList(rec.Metadata, "completions"),
			Frequency:    int(rec.Frequency),
			Confidence:   metaFloat(rec.Metadata, "confidence"),
		})
	}
	return out, nil
}

// Cleanup sweeps words and phrases unused for the retention window and
// decays stale transition weights by half, dropping edges that fade below
// 0.25. Interactions are never swept: they are the source of truth the
// preference model recomputes from.
func (s *Store) Cleanup(retention time.Duration) error {
	if !s.enabled {
		return nil
	}
	cutoff := time.Now().Add(-retention)
	for _, recordType := range []RecordType{RecordWord, RecordPhrase} {
		n, err := s.backend.Sweep(recordType, s.scope, cutoff)
		if err != nil {
			return err
		}
		if n > 0 {
			log.Debugf("Swept %d stale %s records", n, recordType)
		}
	}
	return s.backend.Decay(RecordTransition, s.scope, cutoff, 0.5, 0.25)
}

// Reset erases everything recorded for this scope.
func (s *Store) Reset() error {
	if !s.enabled {
		return nil
	}
	return s.backend.Reset(s.scope)
}

// Close releases the backend. The store is unusable afterwards.
func (s *Store) Close() error {
	if !s.enabled || s.backend == nil {
		return nil
	}
	s.enabled = false
	return s.backend.Close()
}

// upsert first retries any deferred writes, then forwards to the backend.
// A failed write is queued for retry on the next call rather than disabling
// the store: one disk hiccup must not end learning for the session.
func (s *Store) upsert(recordType RecordType, key string, delta float64, metadata map[string]any) error {
	s.retryDeferred()
	if err := s.backend.Upsert(recordType, s.scope, key, delta, metadata); err != nil {
		log.Warnf("Pattern store write failed, deferring for retry: %v", err)
		s.deferWrite(deferredWrite{recordType: recordType, key: key, delta: delta, metadata: metadata})
		return err
	}
	return nil
}

func (s *Store) deferWrite(w deferredWrite) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deferred = append(s.deferred, w)
	if over := len(s.deferred) - maxDeferredWrites; over > 0 {
		log.Errorf("Dropping %d deferred pattern writes, backend still failing", over)
		s.deferred = s.deferred[over:]
	}
}

// retryDeferred replays queued writes in order, stopping at the first one
// that still fails so ordering is preserved for the rest.
func (s *Store) retryDeferred() {
	s.mu.Lock()
	pending := s.deferred
	s.deferred = nil
	s.mu.Unlock()

	for i, w := range pending {
		if err := s.backend.Upsert(w.recordType, s.scope, w.key, w.delta, w.metadata); err != nil {
			s.mu.Lock()
			s.deferred = append(pending[i:], s.deferred...)
			s.mu.Unlock()
			return
		}
	}
	if len(pending) > 0 {
		log.Debugf("Recovered %d deferred pattern writes", len(pending))
	}
}

func transitionKey(from, to string) string {
	return from + "\x1f" + to
}

func splitTransitionKey(key string) (from, to string, ok bool) {
	return strings.Cut(key, "\x1f")
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func metaFloat(meta map[string]any, key string) float64 {
	if v, ok := meta[key].(float64); ok {
		return v
	}
	return 0
}

func metaStringList(meta map[string]any, key string) []string {
	list, ok := meta[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func metaInt(meta map[string]any, key string) int {
	if v, ok := meta[key].(float64); ok {
		return int(v)
	}
	return 0
}

func metaString(meta map[string]any, key string) string {
	if v, ok := meta[key].(string); ok {
		return v
	}
	return ""
}

func metaBool(meta map[string]any, key string) bool {
	if v, ok := meta[key].(bool); ok {
		return v
	}
	return false
}

func metaTime(meta map[string]any, key string) time.Time {
	raw := metaString(meta, key)
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func interactionFromRecord(rec Record) (Interaction, bool) {
	if rec.Metadata == nil {
		return Interaction{}, false
	}
	in := Interaction{
		ID:             rec.Key,
		SuggestionText: metaString(rec.Metadata, "suggestion_text"),
		SuggestionType: metaString(rec.Metadata, "suggestion_type"),
		WasSelected:    metaBool(rec.Metadata, "was_selected"),
		Confidence:     metaFloat(rec.Metadata, "confidence"),
		HourOfDay:      metaInt(rec.Metadata, "hour_of_day"),
		DayOfWeek:      metaInt(rec.Metadata, "day_of_week"),
		CreatedAt:      metaTime(rec.Metadata, "created_at"),
	}
	if in.SuggestionText == "" {
		return Interaction{}, false
	}
	if raw := metaString(rec.Metadata, "context_words"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.ContextWords); err != nil {
			return Interaction{}, false
		}
	}
	return in, true
}
