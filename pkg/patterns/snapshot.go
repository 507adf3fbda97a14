package patterns

import (
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Snapshot is the in-memory view of one scope's pattern data, rebuilt from
// the store per session and read by the aggregator on every query. Reads
// are lock-free; the engine serializes Observe calls with the same mutex
// that orders store writes.
type Snapshot struct {
	Words       map[string]WordRecord
	Transitions map[string]map[string]float64 // fromToken -> toWord -> weight
	Phrases     map[string]PhraseRecord

	phraseTrie   *patricia.Trie
	maxWordFreq  int
	totalPhrases int
}

// EmptySnapshot is the cold-start view: no history at all.
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		Words:       make(map[string]WordRecord),
		Transitions: make(map[string]map[string]float64),
		Phrases:     make(map[string]PhraseRecord),
		phraseTrie:  patricia.NewTrie(),
	}
}

// LoadSnapshot reads every word, transition and phrase record for the scope
// into memory. Malformed rows are skipped, never fatal.
func (s *Store) LoadSnapshot() (*Snapshot, error) {
	if !s.enabled {
		return nil, ErrStoreUnavailable
	}
	snapshot := EmptySnapshot()

	words, err := s.backend.Query(RecordWord, s.scope, Filter{})
	if err != nil {
		return nil, err
	}
	for _, rec := range words {
		wr := WordRecord{
			Word:         rec.Key,
			Frequency:    int(rec.Frequency),
			LastUsedAt:   metaTime(rec.Metadata, "last_used_at"),
			ContextHours: metaHourSet(rec.Metadata),
		}
		snapshot.Words[rec.Key] = wr
		if wr.Frequency > snapshot.maxWordFreq {
			snapshot.maxWordFreq = wr.Frequency
		}
	}

	transitions, err := s.backend.Query(RecordTransition, s.scope, Filter{})
	if err != nil {
		return nil, err
	}
	for _, rec := range transitions {
		from, to, ok := splitTransitionKey(rec.Key)
		if !ok {
			log.Warnf("Skipping malformed transition key %q", rec.Key)
			continue
		}
		if snapshot.Transitions[from] == nil {
			snapshot.Transitions[from] = make(map[string]float64)
		}
		snapshot.Transitions[from][to] = rec.Frequency
	}

	phrases, err := s.backend.Query(RecordPhrase, s.scope, Filter{})
	if err != nil {
		return nil, err
	}
	for _, rec := range phrases {
		pr := PhraseRecord{
			Text:       rec.Key,
			Frequency:  int(rec.Frequency),
			LastUsedAt: metaTime(rec.Metadata, "last_used_at"),
			HourOfDay:  metaInt(rec.Metadata, "hour_of_day"),
			DayOfWeek:  metaInt(rec.Metadata, "day_of_week"),
			Topics:     metaTopicSet(rec.Metadata),
		}
		snapshot.Phrases[pr.Text] = pr
		snapshot.phraseTrie.Insert(patricia.Prefix(pr.Text), pr.Frequency)
		snapshot.totalPhrases++
	}

	return snapshot, nil
}

// Observe applies one utterance to the in-memory view, mirroring what
// Store.RecordUtteranceAt persists, so fresh utterances influence the very
// next query without a reload. Callers must serialize Observe against
// concurrent Observes; concurrent reads are fine.
func (sn *Snapshot) Observe(tokens []string, now time.Time) {
	if len(tokens) == 0 {
		return
	}
	hour := now.Hour()

	for _, token := range tokens {
		rec := sn.Words[token]
		rec.Word = token
		rec.Frequency++
		rec.LastUsedAt = now
		if rec.ContextHours == nil {
			rec.ContextHours = make(map[int]bool)
		}
		rec.ContextHours[hour] = true
		sn.Words[token] = rec
		if rec.Frequency > sn.maxWordFreq {
			sn.maxWordFreq = rec.Frequency
		}
	}

	for i := 0; i < len(tokens)-1; i++ {
		sn.bumpTransition(tokens[i], tokens[i+1])
	}
	for i := 0; i < len(tokens)-2; i++ {
		sn.bumpTransition(tokens[i]+" "+tokens[i+1], tokens[i+2])
	}

	phrase := strings.Join(tokens, " ")
	pr, seen := sn.Phrases[phrase]
	if !seen {
		pr = PhraseRecord{
			Text:      phrase,
			HourOfDay: hour,
			DayOfWeek: int(now.Weekday()),
			Topics:    make(map[string]bool),
		}
		for _, topic := range DetectTopics(tokens) {
			pr.Topics[topic] = true
		}
		sn.totalPhrases++
	}
	pr.Frequency++
	pr.LastUsedAt = now
	sn.Phrases[phrase] = pr
	sn.phraseTrie.Set(patricia.Prefix(phrase), pr.Frequency)
}

func (sn *Snapshot) bumpTransition(from, to string) {
	if sn.Transitions[from] == nil {
		sn.Transitions[from] = make(map[string]float64)
	}
	sn.Transitions[from][to]++
}

// WordFrequency returns how often a word has been used, 0 when unseen.
func (sn *Snapshot) WordFrequency(word string) int {
	return sn.Words[strings.ToLower(word)].Frequency
}

// MaxWordFrequency is the highest single-word count in the snapshot.
func (sn *Snapshot) MaxWordFrequency() int {
	return sn.maxWordFreq
}

// UsedInHour reports whether a word has historically been used during the
// given hour of day.
func (sn *Snapshot) UsedInHour(word string, hour int) bool {
	rec, ok := sn.Words[strings.ToLower(word)]
	return ok && rec.ContextHours[hour]
}

// PhraseCompletion is the continuation of a stored phrase past the current
// input.
type PhraseCompletion struct {
	NextWord  string
	Remainder string
	Frequency int
}

// PhraseCompletions walks the phrase trie under the current word sequence
// and returns the next word of every stored phrase extending it, most
// frequent first.
func (sn *Snapshot) PhraseCompletions(currentWords []string, limit int) []PhraseCompletion {
	if len(currentWords) == 0 || limit <= 0 {
		return nil
	}
	prefix := strings.ToLower(strings.Join(currentWords, " "))

	var completions []PhraseCompletion
	err := sn.phraseTrie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		phrase := string(p)
		if phrase == prefix {
			return nil
		}
		remainder := strings.TrimPrefix(phrase, prefix)
		// "i wa" must not complete from "i want": only whole-word prefixes count.
		if !strings.HasPrefix(remainder, " ") {
			return nil
		}
		remainder = strings.TrimSpace(remainder)
		if remainder == "" {
			return nil
		}

		freq := 1
		if f, ok := item.(int); ok {
			freq = f
		}
		completions = append(completions, PhraseCompletion{
			NextWord:  strings.Fields(remainder)[0],
			Remainder: remainder,
			Frequency: freq,
		})
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting phrase trie: %v", err)
		return nil
	}

	sort.SliceStable(completions, func(i, j int) bool {
		return completions[i].Frequency > completions[j].Frequency
	})
	if len(completions) > limit {
		completions = completions[:limit]
	}
	return completions
}

// WeightedWord is a next-word candidate with its transition weight.
type WeightedWord struct {
	Word   string
	Weight float64
}

// trigram edges carry more context than bigrams, so they count double when
// both predict the same word.
const trigramBoost = 2.0

// NextWords predicts likely next words from the transition table, backing
// off from the trigram edge (last two words) to the bigram edge (last word).
func (sn *Snapshot) NextWords(currentWords []string, limit int) []WeightedWord {
	if len(currentWords) == 0 || limit <= 0 {
		return nil
	}
	weights := make(map[string]float64)

	last := strings.ToLower(currentWords[len(currentWords)-1])
	for to, w := range sn.Transitions[last] {
		weights[to] += w
	}
	if len(currentWords) >= 2 {
		fromPair := strings.ToLower(currentWords[len(currentWords)-2]) + " " + last
		for to, w := range sn.Transitions[fromPair] {
			weights[to] += w * trigramBoost
		}
	}

	out := make([]WeightedWord, 0, len(weights))
	for word, weight := range weights {
		out = append(out, WeightedWord{Word: word, Weight: weight})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].Word < out[j].Word
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// PhrasesForHour returns phrases historically used in the given hour,
// most frequent first. This feeds the empty-input temporal fallback.
func (sn *Snapshot) PhrasesForHour(hour, limit int) []PhraseRecord {
	var out []PhraseRecord
	for _, pr := range sn.Phrases {
		if pr.HourOfDay == hour {
			out = append(out, pr)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].Text < out[j].Text
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// WordsForTopic returns observed words belonging to a topic, ranked by the
// user's own frequency.
func (sn *Snapshot) WordsForTopic(topic string, limit int) []string {
	var out []string
	for _, keyword := range TopicWords(topic) {
		if rec, ok := sn.Words[keyword]; ok && rec.Frequency > 0 {
			out = append(out, keyword)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return sn.Words[out[i]].Frequency > sn.Words[out[j]].Frequency
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Counts reports snapshot sizes for diagnostics.
func (sn *Snapshot) Counts() map[string]int {
	transitions := 0
	for _, m := range sn.Transitions {
		transitions += len(m)
	}
	return map[string]int{
		"words":       len(sn.Words),
		"transitions": transitions,
		"phrases":     sn.totalPhrases,
	}
}

func metaHourSet(meta map[string]any) map[int]bool {
	hours := make(map[int]bool)
	list, ok := meta["context_hours"].([]any)
	if !ok {
		return hours
	}
	for _, item := range list {
		if h, ok := item.(float64); ok && h >= 0 && h <= 23 {
			hours[int(h)] = true
		}
	}
	return hours
}

func metaTopicSet(meta map[string]any) map[string]bool {
	topics := make(map[string]bool)
	list, ok := meta["topics"].([]any)
	if !ok {
		return topics
	}
	for _, item := range list {
		if t, ok := item.(string); ok {
			topics[t] = true
		}
	}
	return topics
}
