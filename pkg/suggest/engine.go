package suggest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tilespeak/tilespeak/internal/cache"
	"github.com/tilespeak/tilespeak/internal/utils"
	"github.com/tilespeak/tilespeak/pkg/adaptive"
	"github.com/tilespeak/tilespeak/pkg/config"
	"github.com/tilespeak/tilespeak/pkg/grammar"
	"github.com/tilespeak/tilespeak/pkg/intent"
	"github.com/tilespeak/tilespeak/pkg/patterns"
)

// Engine is the session-scoped suggestion engine. One engine serves one
// identity scope; instantiate another for another user. Public entry
// points never return errors for degraded backing stores, they log and
// fall back to the template bank.
type Engine struct {
	mu    sync.RWMutex
	cfg   *config.Config
	store *patterns.Store
	cache *cache.Cache

	snapshot *patterns.Snapshot
	model    *adaptive.Model
	tracker  *intent.Tracker

	// writeMu serializes all learning writes for the scope so two
	// near-simultaneous selections of the same word both count.
	writeMu sync.Mutex

	// Persistence runs on a single background goroutine: in-memory state
	// advances in the caller, the sqlite half is queued so a slow disk
	// never stalls the UI thread. One worker keeps writes serialized.
	writes     chan func()
	quit       chan struct{}
	writerDone chan struct{}
	closeOnce  sync.Once

	lastSentence   []string
	lastSentenceAt time.Time

	clock func() time.Time
}

// NewEngine wires an engine from its collaborators. A nil store means a
// deliberately ephemeral session.
func NewEngine(cfg *config.Config, store *patterns.Store, c *cache.Cache) *Engine {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if store == nil {
		store = patterns.Disabled("ephemeral")
	}
	if c == nil {
		c = cache.New("")
	}
	e := &Engine{
		cfg:        cfg,
		store:      store,
		cache:      c,
		snapshot:   patterns.EmptySnapshot(),
		model:      adaptive.NewModel(),
		tracker:    intent.NewTracker(),
		writes:     make(chan func(), writeQueueSize),
		quit:       make(chan struct{}),
		writerDone: make(chan struct{}),
		clock:      time.Now,
	}
	go e.writer()
	return e
}

// writeQueueSize bounds the pending persistence ops. A full queue applies
// backpressure to the enqueuer rather than dropping a write.
const writeQueueSize = 256

func (e *Engine) writer() {
	defer close(e.writerDone)
	for {
		select {
		case fn := <-e.writes:
			fn()
		case <-e.quit:
			for {
				select {
				case fn := <-e.writes:
					fn()
				default:
					return
				}
			}
		}
	}
}

// enqueueWrite hands one persistence op to the writer goroutine. After
// Close the op runs inline; the store is a no-op by then anyway.
func (e *Engine) enqueueWrite(fn func()) {
	select {
	case e.writes <- fn:
	case <-e.writerDone:
		fn()
	}
}

// drainWrites blocks until every persistence op queued so far has run.
func (e *Engine) drainWrites() {
	done := make(chan struct{})
	e.enqueueWrite(func() { close(done) })
	<-done
}

// Load builds the in-memory snapshot and replays the learning state from
// the store. A failed or disabled store leaves the engine in cold-start
// shape, never returns the failure to the caller's UI path.
func (e *Engine) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !e.store.Enabled() {
		log.Debug("Pattern store disabled, starting cold")
		return nil
	}

	snapshot, err := e.store.LoadSnapshot()
	if err != nil {
		log.Warnf("Could not load pattern snapshot, starting cold: %v", err)
		return nil
	}

	interactions, err := e.store.Interactions(0)
	if err != nil {
		log.Warnf("Could not replay interaction log: %v", err)
		interactions = nil
	}

	tracker := intent.NewTracker()
	rows, err := e.store.IntentSequences()
	if err != nil {
		log.Warnf("Could not load intent sequences: %v", err)
	}
	for _, row := range rows {
		tracker.LoadSequence(
			intent.SequenceKey{First: intent.Type(row.First), Second: intent.Type(row.Second)},
			intent.SequenceStat{Frequency: row.Frequency, AvgGapSeconds: row.AvgGapSeconds},
		)
	}
	patternRows, err := e.store.IntentPatterns()
	if err != nil {
		log.Warnf("Could not load intent patterns: %v", err)
	}
	for _, row := range patternRows {
		tracker.LoadPattern(intent.Pattern{
			Intent:            intent.Type(row.Intent),
			TriggerWords:      row.TriggerWords,
			CommonCompletions: row.Completions,
			Frequency:         row.Frequency,
			Confidence:        row.Confidence,
		})
	}

	e.mu.Lock()
	e.snapshot = snapshot
	e.model = adaptive.Rebuild(interactions)
	e.tracker = tracker
	e.mu.Unlock()

	counts := snapshot.Counts()
	log.Debugf("Loaded snapshot: %d words, %d transitions, %d phrases, %d interactions",
		counts["words"], counts["transitions"], counts["phrases"], len(interactions))
	return nil
}

// GetSuggestions returns a ranked, deduplicated suggestion list for the
// current input. A cancelled context (the caller superseded the query with
// newer input) yields nil. Errors never surface here: a broken store read
// shows up as template-bank-only results.
func (e *Engine) GetSuggestions(ctx context.Context, req Request) []Suggestion {
	// Hold the read lock across the gather so Observe cannot mutate the
	// snapshot maps mid-query.
	e.mu.RLock()
	cfg := e.cfg.Engine
	g := &gatherer{
		words:    lowerAll(req.CurrentWords),
		req:      req,
		snapshot: e.snapshot,
		model:    e.model,
		tracker:  e.tracker,
		now:      e.clock(),
	}
	candidates := e.rank(g.collect(ctx), g, cfg)
	e.mu.RUnlock()

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = cfg.MaxSuggestions
	}
	if err := ctx.Err(); err != nil {
		return nil
	}
	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}

	out := make([]Suggestion, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, Suggestion{Text: c.text, Type: c.typ, Confidence: clamp01(c.score)})
	}
	return out
}

// rank scores, orders and deduplicates gathered candidates.
func (e *Engine) rank(candidates []candidate, g *gatherer, cfg config.EngineConfig) []candidate {
	scored := candidates[:0:0]
	for _, c := range candidates {
		c.text = strings.TrimSpace(c.text)
		if c.text == "" || c.confidence < cfg.MinConfidence {
			continue
		}
		c.score = c.confidence +
			boundedBonus(float64(g.snapshot.WordFrequency(c.text)), cfg.FrequencyWeight, 0.30) +
			float64(typePriority[c.typ])*0.01
		if completesSentence(g.words, c.text) {
			c.score += 0.20
		}
		scored = append(scored, c)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if typePriority[scored[i].typ] != typePriority[scored[j].typ] {
			return typePriority[scored[i].typ] > typePriority[scored[j].typ]
		}
		return scored[i].text < scored[j].text
	})

	// Post-sort so the highest-ranked copy of a repeated candidate wins.
	seen := utils.NewSeenFilter(g.words)
	kept := scored[:0]
	for _, c := range scored {
		if !seen.ShouldInclude(c.text) {
			continue
		}
		kept = append(kept, c)
	}

	return dedupe(kept, cfg.DedupDistance)
}

// RecordUtterance learns from a spoken utterance. Best-effort: storage
// trouble is logged and the in-memory view still advances.
func (e *Engine) RecordUtterance(text, category string) {
	tokens := utils.Tokenize(text)
	if len(tokens) == 0 {
		return
	}
	now := e.clock()

	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	e.enqueueWrite(func() {
		if err := e.store.RecordUtteranceAt(text, category, now); err != nil {
			log.Warnf("Could not persist utterance: %v", err)
		}
	})
	e.mu.Lock()
	e.snapshot.Observe(tokens, now)
	e.mu.Unlock()
}

// OnSuggestionSelected feeds one acceptance into the preference model and
// the intent pattern tracker, and persists the updated pattern.
func (e *Engine) OnSuggestionSelected(s Suggestion, contextWords []string, category string) {
	e.recordFeedback(s, contextWords, true)

	words := lowerAll(contextWords)
	e.mu.RLock()
	tracker := e.tracker
	e.mu.RUnlock()
	p := tracker.RecordPattern(intent.Classify(append(words, s.Text)), words, s.Text)
	e.enqueueWrite(func() {
		if err := e.store.UpsertIntentPattern(string(p.Intent), p.TriggerWords, []string{s.Text}, 1, p.Confidence); err != nil {
			log.Warnf("Could not persist intent pattern: %v", err)
		}
	})
}

// OnSuggestionsIgnored feeds the suggestions the user scrolled past.
func (e *Engine) OnSuggestionsIgnored(ignored []Suggestion, contextWords []string, category string) {
	for _, s := range ignored {
		e.recordFeedback(s, contextWords, false)
	}
}

func (e *Engine) recordFeedback(s Suggestion, contextWords []string, wasSelected bool) {
	if strings.TrimSpace(s.Text) == "" {
		return
	}
	in := adaptive.NewInteraction(s.Text, string(s.Type), lowerAll(contextWords), wasSelected, s.Confidence, e.clock())

	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	e.mu.RLock()
	model := e.model
	e.mu.RUnlock()
	model.RecordInteraction(in)

	e.enqueueWrite(func() {
		if err := e.store.AppendInteraction(in); err != nil {
			log.Warnf("Could not persist interaction: %v", err)
		}
	})
}

// OnSentenceCompleted closes out one utterance: it records the sentence,
// and if a previous sentence exists in this session, tracks the intent
// transition between them.
func (e *Engine) OnSentenceCompleted(text string) {
	tokens := utils.Tokenize(text)
	if len(tokens) == 0 {
		return
	}
	now := e.clock()

	e.RecordUtterance(text, "")

	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	e.mu.RLock()
	tracker := e.tracker
	e.mu.RUnlock()

	if len(e.lastSentence) > 0 {
		gap := now.Sub(e.lastSentenceAt).Seconds()
		key := tracker.RecordTransition(e.lastSentence, tokens, gap)
		stat := tracker.Sequences()[key]
		e.enqueueWrite(func() {
			if err := e.store.UpsertIntentSequence(string(key.First), string(key.Second), 1, stat.AvgGapSeconds); err != nil {
				log.Warnf("Could not persist intent sequence: %v", err)
			}
		})
	}
	e.lastSentence = tokens
	e.lastSentenceAt = now
}

// PredictNextIntent exposes the sequence predictor for hosts that preview
// likely follow-up tiles after a sentence is spoken.
func (e *Engine) PredictNextIntent(words []string, topN int) []intent.Prediction {
	e.mu.RLock()
	tracker := e.tracker
	e.mu.RUnlock()
	return tracker.PredictNext(lowerAll(words), topN)
}

// Repair proposes the single best grammatical correction for the current
// utterance, if any rule fires.
func (e *Engine) Repair(words []string) (grammar.Suggestion, bool) {
	return grammar.BestCorrection(words)
}

// Statistics is the learning report handed to caregivers and dashboards.
type Statistics struct {
	TotalInteractions  int                  `msgpack:"totalInteractions" json:"totalInteractions"`
	SelectionRate      float64              `msgpack:"selectionRate" json:"selectionRate"`
	ModelAccuracy      float64              `msgpack:"modelAccuracy" json:"modelAccuracy"`
	TopSelectedWords   []adaptive.WordCount `msgpack:"topSelectedWords" json:"topSelectedWords"`
	TopIgnoredWords    []adaptive.WordCount `msgpack:"topIgnoredWords" json:"topIgnoredWords"`
	IntentDistribution map[string]int       `msgpack:"intentDistribution" json:"intentDistribution"`
	StoreCounts        map[string]int       `msgpack:"storeCounts" json:"storeCounts"`
}

// LearningStatistics summarizes the adaptive state.
func (e *Engine) LearningStatistics() Statistics {
	e.mu.RLock()
	model := e.model
	tracker := e.tracker
	snapshot := e.snapshot
	e.mu.RUnlock()

	distribution := make(map[string]int)
	for intentType, count := range tracker.Distribution() {
		distribution[string(intentType)] = count
	}

	return Statistics{
		TotalInteractions:  model.TotalInteractions(),
		SelectionRate:      model.SelectionRate(),
		ModelAccuracy:      model.Accuracy(),
		TopSelectedWords:   model.TopSelected(10),
		TopIgnoredWords:    model.TopIgnored(10),
		IntentDistribution: distribution,
		StoreCounts:        snapshot.Counts(),
	}
}

// ApplyConfig swaps in freshly reloaded configuration.
func (e *Engine) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	e.mu.Lock()
	e.cfg = cfg
	e.mu.Unlock()
}

// Cleanup runs the retention sweep configured for the store.
func (e *Engine) Cleanup() error {
	retention := time.Duration(e.cfg.Store.RetentionDays) * 24 * time.Hour
	return e.store.Cleanup(retention)
}

// Reset erases everything learned for this engine's scope and returns the
// engine to cold start.
func (e *Engine) Reset() error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	// queued writes must land first, or they would resurrect erased state
	e.drainWrites()
	err := e.store.Reset()

	e.mu.Lock()
	e.snapshot = patterns.EmptySnapshot()
	e.model = adaptive.NewModel()
	e.tracker = intent.NewTracker()
	e.lastSentence = nil
	e.mu.Unlock()

	return err
}

// Flush waits for queued store writes to land and persists the fast cache.
func (e *Engine) Flush() error {
	e.drainWrites()
	return e.cache.Flush()
}

// Close drains the write queue, stops the writer, flushes the cache, and
// releases the backing store. The engine is unusable afterwards.
func (e *Engine) Close() error {
	e.closeOnce.Do(func() {
		e.drainWrites()
		close(e.quit)
		<-e.writerDone
	})
	if err := e.cache.Flush(); err != nil {
		log.Warnf("Could not flush cache: %v", err)
	}
	return e.store.Close()
}

func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
