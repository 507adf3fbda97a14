package adaptive

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilespeak/tilespeak/pkg/patterns"
)

var testClock = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func selection(word string, context []string) patterns.Interaction {
	return NewInteraction(word, "next-word", context, true, 0.5, testClock)
}

func ignore(word string, context []string) patterns.Interaction {
	return NewInteraction(word, "next-word", context, false, 0.5, testClock)
}

func TestColdStartScoresZero(t *testing.T) {
	m := NewModel()
	assert.Zero(t, m.PersonalizedScore("water", "i want"))
	assert.Zero(t, m.Accuracy())
	assert.Zero(t, m.SelectionRate())
	assert.Zero(t, m.TotalInteractions())
	assert.Empty(t, m.TopSelected(5))
}

func TestScoreGrowsWithSelections(t *testing.T) {
	m := NewModel()
	context := []string{"i", "want"}

	var prev float64
	for i := 0; i < 10; i++ {
		m.RecordInteraction(selection("water", context))
		score := m.ScoreForContext("water", context)
		assert.GreaterOrEqual(t, score, prev, "score must never drop as selections accumulate")
		prev = score
	}
	assert.Greater(t, prev, 0.5)
	assert.LessOrEqual(t, prev, 1.0)
}

func TestContextBonusOnlyAppliesInMatchingContext(t *testing.T) {
	m := NewModel()
	for i := 0; i < 4; i++ {
		m.RecordInteraction(selection("water", []string{"i", "want"}))
	}

	inContext := m.PersonalizedScore("water", "i want")
	elsewhere := m.PersonalizedScore("water", "we need")
	assert.Greater(t, inContext, elsewhere)
	assert.Greater(t, elsewhere, 0.0, "base selection rate carries across contexts")
}

func TestHeavilyIgnoredWordIsPenalized(t *testing.T) {
	m := NewModel()
	m.RecordInteraction(selection("juice", nil))
	for i := 0; i < 5; i++ {
		m.RecordInteraction(ignore("juice", nil))
	}
	m2 := NewModel()
	m2.RecordInteraction(selection("milk", nil))
	for i := 0; i < 2; i++ {
		m2.RecordInteraction(ignore("milk", nil))
	}

	penalized := m.PersonalizedScore("juice", "")
	unpenalized := m2.PersonalizedScore("milk", "")
	assert.Less(t, penalized, unpenalized)
	assert.Greater(t, penalized, 0.0)
}

func TestAccuracySmoothedSelectionRatePlain(t *testing.T) {
	m := NewModel()
	m.RecordInteraction(selection("water", nil))
	m.RecordInteraction(ignore("juice", nil))
	m.RecordInteraction(ignore("milk", nil))
	m.RecordInteraction(selection("water", nil))

	// accuracy = selected / (selected + ignored + 1) = 2/5
	assert.InDelta(t, 0.4, m.Accuracy(), 1e-9)
	assert.InDelta(t, 0.5, m.SelectionRate(), 1e-9)
	assert.Equal(t, 4, m.TotalInteractions())
}

func TestAccuracyNeverReadsPerfectFromOneSelection(t *testing.T) {
	m := NewModel()
	m.RecordInteraction(selection("water", nil))

	assert.InDelta(t, 0.5, m.Accuracy(), 1e-9)
	assert.InDelta(t, 1.0, m.SelectionRate(), 1e-9)
}

func TestAccuracyHistoryIsBounded(t *testing.T) {
	m := NewModel()
	for i := 0; i < accuracyWindow+50; i++ {
		m.RecordInteraction(selection(fmt.Sprintf("word%d", i), nil))
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	assert.Len(t, m.accuracyHistory, accuracyWindow)
}

func TestRebuildMatchesIncremental(t *testing.T) {
	log := []patterns.Interaction{
		selection("water", []string{"i", "want"}),
		selection("water", []string{"i", "want"}),
		ignore("juice", []string{"i", "want"}),
		selection("outside", []string{"go"}),
	}

	incremental := NewModel()
	for _, in := range log {
		incremental.RecordInteraction(in)
	}
	rebuilt := Rebuild(log)

	for _, word := range []string{"water", "juice", "outside"} {
		assert.Equal(t,
			incremental.PersonalizedScore(word, "i want"),
			rebuilt.PersonalizedScore(word, "i want"), word)
	}
	assert.Equal(t, incremental.Accuracy(), rebuilt.Accuracy())
}

func TestTopSelectedRanking(t *testing.T) {
	m := NewModel()
	for i := 0; i < 3; i++ {
		m.RecordInteraction(selection("water", nil))
	}
	m.RecordInteraction(selection("juice", nil))
	m.RecordInteraction(ignore("milk", nil))

	top := m.TopSelected(5)
	require.Len(t, top, 2)
	assert.Equal(t, WordCount{Word: "water", Count: 3}, top[0])
	assert.Equal(t, WordCount{Word: "juice", Count: 1}, top[1])

	ignored := m.TopIgnored(5)
	require.Len(t, ignored, 1)
	assert.Equal(t, "milk", ignored[0].Word)
}

func TestNewInteractionFillsTemporalFields(t *testing.T) {
	in := NewInteraction("water", "next-word", []string{"i", "want"}, true, 0.7, testClock)
	assert.NotEmpty(t, in.ID)
	assert.Equal(t, 9, in.HourOfDay)
	assert.Equal(t, int(time.Tuesday), in.DayOfWeek)
	assert.True(t, in.WasSelected)
}
