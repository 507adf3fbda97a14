package suggest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilespeak/tilespeak/pkg/config"
	"github.com/tilespeak/tilespeak/pkg/intent"
	"github.com/tilespeak/tilespeak/pkg/patterns"
)

var fixedClock = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	store := patterns.NewStore(filepath.Join(t.TempDir(), "patterns.db"), "test-user")
	require.True(t, store.Enabled())

	e := NewEngine(config.DefaultConfig(), store, nil)
	e.clock = func() time.Time { return fixedClock }
	require.NoError(t, e.Load(context.Background()))
	t.Cleanup(func() { e.Close() })
	return e
}

func texts(suggestions []Suggestion) []string {
	out := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, s.Text)
	}
	return out
}

func TestColdStartEmptyInput(t *testing.T) {
	e := newTestEngine(t)

	got := e.GetSuggestions(context.Background(), Request{MaxResults: 10})
	require.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), 10)
	for _, s := range got {
		assert.NotEmpty(t, s.Text)
		assert.GreaterOrEqual(t, s.Confidence, 0.0)
		assert.LessOrEqual(t, s.Confidence, 1.0)
	}
}

func TestIWantScenario(t *testing.T) {
	e := newTestEngine(t)

	got := e.GetSuggestions(context.Background(), Request{
		CurrentWords:        []string{"I", "want"},
		AvailableVocabulary: []string{"water", "play", "home"},
		MaxResults:          8,
	})
	require.NotEmpty(t, got)

	found := false
	for _, s := range got {
		switch s.Text {
		case "to", "to go", "water", "some", "some water":
			found = true
		}
	}
	assert.True(t, found, "expected a want-continuation, got %v", texts(got))
}

func TestRecordedPhraseSurfacesInTopThree(t *testing.T) {
	e := newTestEngine(t)
	for i := 0; i < 3; i++ {
		e.RecordUtterance("I want water", "")
	}

	got := e.GetSuggestions(context.Background(), Request{
		CurrentWords: []string{"I", "want"},
		MaxResults:   8,
	})
	require.NotEmpty(t, got)

	top3 := texts(got)
	if len(top3) > 3 {
		top3 = top3[:3]
	}
	assert.Contains(t, top3, "water")
}

func TestBoundRespected(t *testing.T) {
	e := newTestEngine(t)
	for _, words := range [][]string{nil, {"i"}, {"i", "want"}, {"i", "feel"}} {
		for _, max := range []int{1, 3, 8} {
			got := e.GetSuggestions(context.Background(), Request{CurrentWords: words, MaxResults: max})
			assert.LessOrEqual(t, len(got), max)
		}
	}
}

func TestNoSimilarPairInResults(t *testing.T) {
	e := newTestEngine(t)
	e.RecordUtterance("i want water", "")
	e.RecordUtterance("i want juice", "")

	for _, words := range [][]string{nil, {"i"}, {"i", "want"}, {"i", "am"}} {
		got := e.GetSuggestions(context.Background(), Request{CurrentWords: words, MaxResults: 10})
		for i := range got {
			for j := i + 1; j < len(got); j++ {
				assert.False(t, Similar(got[i].Text, got[j].Text, 2),
					"%q and %q are near-twins in output for %v", got[i].Text, got[j].Text, words)
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	e := newTestEngine(t)
	e.RecordUtterance("i want water", "")
	req := Request{CurrentWords: []string{"i", "want"}, MaxResults: 8}

	first := e.GetSuggestions(context.Background(), req)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, e.GetSuggestions(context.Background(), req))
	}
}

func TestSupersededQueryReturnsNil(t *testing.T) {
	e := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := e.GetSuggestions(ctx, Request{CurrentWords: []string{"i", "want"}, MaxResults: 8})
	assert.Nil(t, got)
}

func TestDisabledStoreStillSuggests(t *testing.T) {
	e := NewEngine(config.DefaultConfig(), patterns.Disabled("nobody"), nil)
	e.clock = func() time.Time { return fixedClock }
	require.NoError(t, e.Load(context.Background()))

	e.RecordUtterance("i want water", "")
	got := e.GetSuggestions(context.Background(), Request{CurrentWords: []string{"i", "want"}, MaxResults: 8})
	assert.NotEmpty(t, got, "engine must degrade to in-memory and template sources")
}

func TestSelectionFeedbackLifts(t *testing.T) {
	e := newTestEngine(t)
	contextWords := []string{"i", "want"}

	before := e.model.ScoreForContext("water", contextWords)
	for i := 0; i < 5; i++ {
		e.OnSuggestionSelected(Suggestion{Text: "water", Type: TypeNextWord, Confidence: 0.5}, contextWords, "")
	}
	after := e.model.ScoreForContext("water", contextWords)
	assert.Greater(t, after, before)

	stats := e.LearningStatistics()
	assert.Equal(t, 5, stats.TotalInteractions)
	assert.Equal(t, 1.0, stats.SelectionRate)
	require.NotEmpty(t, stats.TopSelectedWords)
	assert.Equal(t, "water", stats.TopSelectedWords[0].Word)
}

func TestFeedbackSurvivesReload(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "patterns.db")

	store := patterns.NewStore(dbPath, "test-user")
	e := NewEngine(config.DefaultConfig(), store, nil)
	e.clock = func() time.Time { return fixedClock }
	require.NoError(t, e.Load(context.Background()))
	for i := 0; i < 4; i++ {
		e.OnSuggestionSelected(Suggestion{Text: "water", Type: TypeNextWord, Confidence: 0.5}, []string{"i", "want"}, "")
	}
	require.NoError(t, e.Close())

	e2 := NewEngine(config.DefaultConfig(), patterns.NewStore(dbPath, "test-user"), nil)
	e2.clock = func() time.Time { return fixedClock }
	require.NoError(t, e2.Load(context.Background()))
	defer e2.Close()

	assert.Equal(t, 4, e2.LearningStatistics().TotalInteractions)
	assert.Greater(t, e2.model.ScoreForContext("water", []string{"i", "want"}), 0.0)
}

func TestSentenceCompletionTracksIntentSequence(t *testing.T) {
	e := newTestEngine(t)

	e.OnSentenceCompleted("i want water")
	e.clock = func() time.Time { return fixedClock.Add(5 * time.Second) }
	e.OnSentenceCompleted("thank you")

	dist := e.LearningStatistics().IntentDistribution
	assert.NotEmpty(t, dist)

	preds := e.PredictNextIntent([]string{"i", "want", "water"}, 3)
	require.NotEmpty(t, preds)
	assert.Equal(t, "thanks", string(preds[0].Intent))
}

func TestRepairPassThrough(t *testing.T) {
	e := newTestEngine(t)

	fix, ok := e.Repair([]string{"he", "want", "water"})
	require.True(t, ok)
	assert.Equal(t, "he wants water", fix.Corrected)

	_, ok = e.Repair([]string{"i", "am", "happy"})
	assert.False(t, ok)
}

func TestResetReturnsToColdStart(t *testing.T) {
	e := newTestEngine(t)
	e.RecordUtterance("i want water", "")
	e.OnSuggestionSelected(Suggestion{Text: "water", Type: TypeNextWord, Confidence: 0.5}, []string{"i", "want"}, "")

	require.NoError(t, e.Reset())

	stats := e.LearningStatistics()
	assert.Zero(t, stats.TotalInteractions)
	assert.Zero(t, stats.StoreCounts["words"])
}

func TestCategoryVocabularyRanksFirst(t *testing.T) {
	e := newTestEngine(t)

	got := e.GetSuggestions(context.Background(), Request{
		CurrentWords:       []string{"i", "want"},
		Category:           "food",
		CategoryVocabulary: []string{"water", "apple", "cookie"},
		MaxResults:         8,
	})
	require.NotEmpty(t, got)
	assert.Equal(t, TypeCategoryContextual, got[0].Type, "category words outrank everything: %v", texts(got))
}

func TestIntentPatternsSurviveReload(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "patterns.db")

	e := NewEngine(config.DefaultConfig(), patterns.NewStore(dbPath, "test-user"), nil)
	e.clock = func() time.Time { return fixedClock }
	require.NoError(t, e.Load(context.Background()))
	for i := 0; i < 2; i++ {
		e.OnSuggestionSelected(Suggestion{Text: "water", Type: TypeNextWord, Confidence: 0.5}, []string{"i", "want"}, "")
	}
	require.NoError(t, e.Close())

	e2 := NewEngine(config.DefaultConfig(), patterns.NewStore(dbPath, "test-user"), nil)
	e2.clock = func() time.Time { return fixedClock }
	require.NoError(t, e2.Load(context.Background()))
	defer e2.Close()

	dist := e2.LearningStatistics().IntentDistribution
	assert.Equal(t, 2, dist["desire"])
	assert.Contains(t, e2.tracker.Completions(intent.Desire, 3), "water")
}

// slowBackend parks every write on a gate so tests can observe what the
// caller does while the disk is "busy".
type slowBackend struct {
	patterns.Backend
	gate chan struct{}
}

func (b *slowBackend) Upsert(recordType patterns.RecordType, scope, key string, delta float64, metadata map[string]any) error {
	<-b.gate
	return b.Backend.Upsert(recordType, scope, key, delta, metadata)
}

func TestPersistenceDoesNotBlockCaller(t *testing.T) {
	backend, err := patterns.OpenSQLite(filepath.Join(t.TempDir(), "patterns.db"))
	require.NoError(t, err)
	gate := make(chan struct{})
	store := patterns.NewStoreWithBackend(&slowBackend{Backend: backend, gate: gate}, "test-user")

	e := NewEngine(config.DefaultConfig(), store, nil)
	e.clock = func() time.Time { return fixedClock }
	require.NoError(t, e.Load(context.Background()))
	t.Cleanup(func() {
		select {
		case <-gate:
		default:
			close(gate)
		}
		e.Close()
	})

	returned := make(chan struct{})
	go func() {
		e.RecordUtterance("i want water", "")
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("RecordUtterance blocked on the store write")
	}

	// the in-memory view advanced before the disk write finished
	assert.Equal(t, 1, e.snapshot.WordFrequency("water"))

	close(gate)
	require.NoError(t, e.Flush())
	sn, err := store.LoadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, 1, sn.WordFrequency("water"))
}
