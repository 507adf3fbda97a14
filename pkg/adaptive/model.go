// Package adaptive maintains the per-user preference model learned from
// suggestion accept/ignore feedback. The interaction log in the pattern
// store is the source of truth; this model is a derived in-memory cache
// that can always be rebuilt by replaying the log.
package adaptive

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tilespeak/tilespeak/internal/utils"
	"github.com/tilespeak/tilespeak/pkg/patterns"
)

const (
	// accuracyWindow bounds the rolling accuracy history.
	accuracyWindow = 100
	// contextBonusStep is the score bonus per co-occurrence of a word with
	// a context key, capped at contextBonusCap.
	contextBonusStep = 0.05
	contextBonusCap  = 0.30
	// ignorePenalty shrinks the score of words the user keeps skipping.
	ignorePenalty = 0.3
)

// Model is the in-memory preference state. All methods are safe for
// concurrent use.
type Model struct {
	mu sync.RWMutex

	selected map[string]int
	ignored  map[string]int
	// contextPatterns counts selections of a word under a context key.
	contextPatterns map[string]map[string]int

	totalSelected   int
	totalIgnored    int
	accuracyHistory []float64
}

// NewModel returns an empty model. An empty model scores everything 0,
// which is the cold-start contract.
func NewModel() *Model {
	return &Model{
		selected:        make(map[string]int),
		ignored:         make(map[string]int),
		contextPatterns: make(map[string]map[string]int),
	}
}

// Rebuild replays an interaction log, oldest first, into a fresh model.
func Rebuild(log []patterns.Interaction) *Model {
	m := NewModel()
	for _, in := range log {
		m.RecordInteraction(in)
	}
	return m
}

// NewInteraction builds a log entry for one accept or ignore event.
func NewInteraction(text, suggestionType string, contextWords []string, wasSelected bool, confidence float64, now time.Time) patterns.Interaction {
	return patterns.Interaction{
		ID:             uuid.NewString(),
		SuggestionText: text,
		SuggestionType: suggestionType,
		ContextWords:   contextWords,
		WasSelected:    wasSelected,
		Confidence:     confidence,
		HourOfDay:      now.Hour(),
		DayOfWeek:      int(now.Weekday()),
		CreatedAt:      now,
	}
}

// RecordInteraction folds one event into the counters and appends the
// resulting overall accuracy to the bounded history.
func (m *Model) RecordInteraction(in patterns.Interaction) {
	m.mu.Lock()
	defer m.mu.Unlock()

	word := utils.Normalize(in.SuggestionText)
	if word == "" {
		return
	}

	if in.WasSelected {
		m.selected[word]++
		m.totalSelected++
		key := utils.ContextKey(in.ContextWords)
		if key != "" {
			if m.contextPatterns[key] == nil {
				m.contextPatterns[key] = make(map[string]int)
			}
			m.contextPatterns[key][word]++
		}
	} else {
		m.ignored[word]++
		m.totalIgnored++
	}

	m.accuracyHistory = append(m.accuracyHistory, m.accuracyLocked())
	if len(m.accuracyHistory) > accuracyWindow {
		m.accuracyHistory = m.accuracyHistory[len(m.accuracyHistory)-accuracyWindow:]
	}
}

// PersonalizedScore scores a word for the given context key. The base is
// the word's selection rate with add-one smoothing, raised by context
// co-occurrence and crushed when the user ignores the word far more often
// than they pick it. A word with no history scores 0.
func (m *Model) PersonalizedScore(word, key string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	word = utils.Normalize(word)
	sel := m.selected[word]
	ign := m.ignored[word]
	if sel == 0 && ign == 0 {
		return 0
	}

	score := float64(sel) / float64(sel+ign+1)

	if key != "" {
		bonus := float64(m.contextPatterns[key][word]) * contextBonusStep
		if bonus > contextBonusCap {
			bonus = contextBonusCap
		}
		score += bonus
	}

	if ign > 2*sel {
		score *= ignorePenalty
	}

	if score > 1 {
		score = 1
	}
	return score
}

// ScoreForContext is PersonalizedScore keyed off raw context words.
func (m *Model) ScoreForContext(word string, contextWords []string) float64 {
	return m.PersonalizedScore(word, utils.ContextKey(contextWords))
}

// Accuracy is the latest rolling smoothed accuracy, 0 for an empty model.
func (m *Model) Accuracy() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.accuracyHistory) == 0 {
		return 0
	}
	return m.accuracyHistory[len(m.accuracyHistory)-1]
}

// SelectionRate is selections over all interactions, unsmoothed.
func (m *Model) SelectionRate() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.selectionRateLocked()
}

// TotalInteractions counts every recorded event.
func (m *Model) TotalInteractions() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalSelected + m.totalIgnored
}

// WordCount is one entry of a ranked word report.
type WordCount struct {
	Word  string
	Count int
}

// TopSelected returns the n most-selected words, ties broken alphabetically.
func (m *Model) TopSelected(n int) []WordCount {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return topCounts(m.selected, n)
}

// TopIgnored returns the n most-ignored words.
func (m *Model) TopIgnored(n int) []WordCount {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return topCounts(m.ignored, n)
}

// accuracyLocked uses the same add-one smoothing as PersonalizedScore, so
// a single lucky selection never reads as 100% accuracy.
func (m *Model) accuracyLocked() float64 {
	total := m.totalSelected + m.totalIgnored
	if total == 0 {
		return 0
	}
	return float64(m.totalSelected) / float64(total+1)
}

func (m *Model) selectionRateLocked() float64 {
	total := m.totalSelected + m.totalIgnored
	if total == 0 {
		return 0
	}
	return float64(m.totalSelected) / float64(total)
}

func topCounts(counts map[string]int, n int) []WordCount {
	out := make([]WordCount, 0, len(counts))
	for word, count := range counts {
		out = append(out, WordCount{Word: word, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
