package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingCopula(t *testing.T) {
	s, ok := BestCorrection([]string{"i", "good"})
	require.True(t, ok)
	assert.Equal(t, "i am good", s.Corrected)
	assert.GreaterOrEqual(t, s.Confidence, 0.90)

	s, ok = BestCorrection([]string{"he", "happy"})
	require.True(t, ok)
	assert.Equal(t, "he is happy", s.Corrected)

	s, ok = BestCorrection([]string{"they", "tired"})
	require.True(t, ok)
	assert.Equal(t, "they are tired", s.Corrected)
}

func TestMissingInfinitive(t *testing.T) {
	s, ok := BestCorrection([]string{"i", "want", "go"})
	require.True(t, ok)
	assert.Equal(t, "i want to go", s.Corrected)
	assert.GreaterOrEqual(t, s.Confidence, 0.90)

	// already has "to": nothing to fix
	_, ok = BestCorrection([]string{"i", "want", "to", "go"})
	assert.False(t, ok)

	// bare noun object is not an infinitive target
	_, ok = BestCorrection([]string{"i", "want", "water"})
	assert.False(t, ok)
}

func TestSubjectVerbAgreement(t *testing.T) {
	s, ok := BestCorrection([]string{"he", "want"})
	require.True(t, ok)
	assert.Equal(t, "he wants", s.Corrected)
	assert.GreaterOrEqual(t, s.Confidence, 0.85)

	s, ok = BestCorrection([]string{"she", "go", "home"})
	require.True(t, ok)
	assert.Equal(t, "she goes home", s.Corrected)

	s, ok = BestCorrection([]string{"they", "wants", "water"})
	require.True(t, ok)
	assert.Equal(t, "they want water", s.Corrected)
}

func TestMissingArticle(t *testing.T) {
	s, ok := BestCorrection([]string{"i", "want", "cookie"})
	require.True(t, ok)
	assert.Equal(t, "i want a cookie", s.Corrected)
	assert.InDelta(t, 0.85, s.Confidence, 0.001)

	// inherently unique nouns take "the"
	s, ok = BestCorrection([]string{"i", "need", "bathroom"})
	require.True(t, ok)
	assert.Equal(t, "i need the bathroom", s.Corrected)

	// determiner already present
	_, ok = BestCorrection([]string{"i", "want", "my", "toy"})
	assert.False(t, ok)
}

func TestCorrectSentencesYieldNothing(t *testing.T) {
	for _, words := range [][]string{
		{"i", "am", "happy"},
		{"he", "wants", "water"},
		{"i", "want", "to", "play"},
		{"we", "need", "help"},
		{},
	} {
		_, ok := BestCorrection(words)
		assert.False(t, ok, "expected no correction for %v", words)
	}
}

func TestRulesClaimPositions(t *testing.T) {
	// "i sad" fires the copula rule on positions 0-1; the agreement rule
	// must not re-correct the same pair in the same pass.
	all := Check([]string{"i", "sad"})
	require.Len(t, all, 1)
	assert.Equal(t, "i am sad", all[0].Corrected)
}

func TestBestCorrectionPicksHighestConfidence(t *testing.T) {
	// copula at 0.95 beats the article rule at 0.85
	all := Check([]string{"i", "happy", "want", "cookie"})
	require.NotEmpty(t, all)
	best, ok := BestCorrection([]string{"i", "happy", "want", "cookie"})
	require.True(t, ok)
	assert.Equal(t, 0.95, best.Confidence)
	assert.Contains(t, best.Corrected, "i am happy")
}
