package patterns

import "time"

// RecordType partitions the durable store. Every record is addressed by
// (type, scope, key) and carries a frequency counter plus JSON metadata.
type RecordType string

const (
	RecordWord           RecordType = "word"
	RecordTransition     RecordType = "transition"
	RecordPhrase         RecordType = "phrase"
	RecordIntentSequence RecordType = "intent_sequence"
	RecordIntentPattern  RecordType = "intent_pattern"
	RecordInteraction    RecordType = "interaction"
)

// Record is the generic row shape the Backend contract exchanges.
type Record struct {
	Key       string
	Frequency float64
	Metadata  map[string]any
	UpdatedAt time.Time
}

// WordRecord is one vocabulary word's usage history.
type WordRecord struct {
	Word         string
	Frequency    int
	LastUsedAt   time.Time
	ContextHours map[int]bool
}

// TransitionRecord is a bigram or trigram edge. FromToken is a single word
// or a space-joined two-word tuple. Frequency is a float so decayed history
// can contribute fractional weight.
type TransitionRecord struct {
	FromToken string
	ToWord    string
	Frequency float64
}

// PhraseRecord is one unique observed utterance.
type PhraseRecord struct {
	Text       string
	Frequency  int
	LastUsedAt time.Time
	HourOfDay  int
	DayOfWeek  int
	Topics     map[string]bool
}

// Interaction is one append-only suggestion accept/ignore event.
type Interaction struct {
	ID             string
	SuggestionText string
	SuggestionType string
	ContextWords   []string
	WasSelected    bool
	Confidence     float64
	HourOfDay      int
	DayOfWeek      int
	CreatedAt      time.Time
}
