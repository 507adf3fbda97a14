package intent

import (
	"sort"
	"sync"
)

// confidenceStep is added to a pattern's confidence each time it recurs.
const confidenceStep = 0.05

// Pattern is a learned association between an intent, the words that
// triggered it, and completions observed after it.
type Pattern struct {
	Intent            Type
	TriggerWords      []string
	CommonCompletions []string
	Frequency         int
	Confidence        float64
}

// SequenceKey identifies an observed intent-follows-intent edge.
type SequenceKey struct {
	First  Type
	Second Type
}

// SequenceStat accumulates how often and how quickly one intent follows
// another. AvgGapSeconds is a running weighted mean.
type SequenceStat struct {
	Frequency     int
	AvgGapSeconds float64
}

// Prediction is one ranked guess about the next utterance's intent.
type Prediction struct {
	Intent             Type
	Confidence         float64
	ExampleCompletions []string
}

// Tracker learns intent sequences and per-intent patterns. Safe for
// concurrent use.
type Tracker struct {
	mu        sync.Mutex
	sequences map[SequenceKey]*SequenceStat
	patterns  map[Type][]*Pattern
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		sequences: make(map[SequenceKey]*SequenceStat),
		patterns:  make(map[Type][]*Pattern),
	}
}

// RecordTransition classifies two consecutive utterances and upserts the
// sequence edge between their intents. The running average gap follows
// (oldAvg*oldFreq + newGap) / (oldFreq+1).
func (t *Tracker) RecordTransition(first, second []string, gapSeconds float64) SequenceKey {
	key := SequenceKey{First: Classify(first), Second: Classify(second)}

	t.mu.Lock()
	defer t.mu.Unlock()

	stat, ok := t.sequences[key]
	if !ok {
		stat = &SequenceStat{}
		t.sequences[key] = stat
	}
	stat.AvgGapSeconds = (stat.AvgGapSeconds*float64(stat.Frequency) + gapSeconds) / float64(stat.Frequency+1)
	stat.Frequency++
	return key
}

// RecordPattern notes that an utterance of the given intent completed with
// the given text. A recurring pattern gains confidence by a fixed step,
// capped at 1.0. The returned copy reflects the pattern after the update,
// for persistence.
func (t *Tracker) RecordPattern(intentType Type, triggerWords []string, completion string) Pattern {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, p := range t.patterns[intentType] {
		if sameWords(p.TriggerWords, triggerWords) {
			p.Frequency++
			p.Confidence += confidenceStep
			if p.Confidence > 1.0 {
				p.Confidence = 1.0
			}
			if completion != "" && !contains(p.CommonCompletions, completion) {
				p.CommonCompletions = append(p.CommonCompletions, completion)
			}
			return copyPattern(p)
		}
	}

	trigger := make([]string, len(triggerWords))
	copy(trigger, triggerWords)
	p := &Pattern{
		Intent:       intentType,
		TriggerWords: trigger,
		Frequency:    1,
		Confidence:   confidenceStep,
	}
	if completion != "" {
		p.CommonCompletions = []string{completion}
	}
	t.patterns[intentType] = append(t.patterns[intentType], p)
	return copyPattern(p)
}

// LoadPattern restores a persisted pattern, merging with anything already
// observed this session: frequencies add, completions union, and the
// higher confidence wins.
func (t *Tracker) LoadPattern(p Pattern) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, existing := range t.patterns[p.Intent] {
		if sameWords(existing.TriggerWords, p.TriggerWords) {
			existing.Frequency += p.Frequency
			if p.Confidence > existing.Confidence {
				existing.Confidence = p.Confidence
			}
			for _, c := range p.CommonCompletions {
				if !contains(existing.CommonCompletions, c) {
					existing.CommonCompletions = append(existing.CommonCompletions, c)
				}
			}
			return
		}
	}
	copied := copyPattern(&p)
	t.patterns[p.Intent] = append(t.patterns[p.Intent], &copied)
}

func copyPattern(p *Pattern) Pattern {
	out := *p
	out.TriggerWords = append([]string(nil), p.TriggerWords...)
	out.CommonCompletions = append([]string(nil), p.CommonCompletions...)
	return out
}

// PredictNext classifies the utterance and returns the most likely next
// intents, ranked by observed frequency. Confidence is min(1, frequency/10).
func (t *Tracker) PredictNext(words []string, topN int) []Prediction {
	if topN <= 0 {
		return nil
	}
	current := Classify(words)

	t.mu.Lock()
	defer t.mu.Unlock()

	type edge struct {
		intent Type
		freq   int
	}
	var edges []edge
	for key, stat := range t.sequences {
		if key.First == current {
			edges = append(edges, edge{intent: key.Second, freq: stat.Frequency})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].freq != edges[j].freq {
			return edges[i].freq > edges[j].freq
		}
		return edges[i].intent < edges[j].intent
	})
	if len(edges) > topN {
		edges = edges[:topN]
	}

	predictions := make([]Prediction, 0, len(edges))
	for _, e := range edges {
		confidence := float64(e.freq) / 10.0
		if confidence > 1.0 {
			confidence = 1.0
		}
		predictions = append(predictions, Prediction{
			Intent:             e.intent,
			Confidence:         confidence,
			ExampleCompletions: t.completionsLocked(e.intent, 3),
		})
	}
	return predictions
}

// Completions returns up to limit example completions recorded for an intent,
// most frequent patterns first.
func (t *Tracker) Completions(intentType Type, limit int) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completionsLocked(intentType, limit)
}

func (t *Tracker) completionsLocked(intentType Type, limit int) []string {
	patterns := make([]*Pattern, len(t.patterns[intentType]))
	copy(patterns, t.patterns[intentType])
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Frequency > patterns[j].Frequency
	})

	var out []string
	for _, p := range patterns {
		for _, c := range p.CommonCompletions {
			if len(out) >= limit {
				return out
			}
			if !contains(out, c) {
				out = append(out, c)
			}
		}
	}
	return out
}

// Distribution returns how many patterns have been recorded per intent type.
func (t *Tracker) Distribution() map[Type]int {
	t.mu.Lock()
	defer t.mu.Unlock()

	dist := make(map[Type]int, len(t.patterns))
	for intentType, patterns := range t.patterns {
		total := 0
		for _, p := range patterns {
			total += p.Frequency
		}
		dist[intentType] = total
	}
	return dist
}

// Sequences returns a copy of the learned sequence edges, for persistence.
func (t *Tracker) Sequences() map[SequenceKey]SequenceStat {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[SequenceKey]SequenceStat, len(t.sequences))
	for k, v := range t.sequences {
		out[k] = *v
	}
	return out
}

// LoadSequence restores a persisted sequence edge, merging with any
// frequency already observed this session.
func (t *Tracker) LoadSequence(key SequenceKey, stat SequenceStat) {
	t.mu.Lock()
	defer t.mu.Unlock()

	existing, ok := t.sequences[key]
	if !ok {
		copied := stat
		t.sequences[key] = &copied
		return
	}
	total := existing.Frequency + stat.Frequency
	if total > 0 {
		existing.AvgGapSeconds = (existing.AvgGapSeconds*float64(existing.Frequency) +
			stat.AvgGapSeconds*float64(stat.Frequency)) / float64(total)
	}
	existing.Frequency = total
}

func sameWords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
