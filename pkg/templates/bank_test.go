package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionsForLongestKeyWins(t *testing.T) {
	got := CompletionsFor([]string{"i", "want"})
	require.NotEmpty(t, got)
	assert.Contains(t, got, "to go")
	assert.Contains(t, got, "water")

	// tail match: only the trailing words matter
	got = CompletionsFor([]string{"today", "i", "want"})
	assert.Contains(t, got, "to go")

	// single-word fallback
	got = CompletionsFor([]string{"thank"})
	assert.Equal(t, []string{"you"}, got)
}

func TestCompletionsForEmptyInputReturnsStarters(t *testing.T) {
	got := CompletionsFor(nil)
	require.NotEmpty(t, got)
	assert.Equal(t, Starters(), got)
}

func TestCompletionsForUnknownTail(t *testing.T) {
	assert.Empty(t, CompletionsFor([]string{"xylophone", "quartz"}))
}

func TestCategoryWords(t *testing.T) {
	got := CategoryWords("food", "want", nil)
	require.NotEmpty(t, got)
	assert.Contains(t, got, "water")
	assert.Contains(t, got, "juice")

	// filtered to available vocabulary
	got = CategoryWords("food", "want", []string{"water", "banana"})
	assert.ElementsMatch(t, []string{"water", "banana"}, got)

	// unknown trigger falls back to generic category words
	got = CategoryWords("food", "zzz", nil)
	assert.Contains(t, got, "hungry")

	assert.Empty(t, CategoryWords("nosuchcategory", "want", nil))
}

func TestSearchSentencesPrefixBeatsKeyword(t *testing.T) {
	matches := SearchSentences([]string{"i", "want"}, "", 5)
	require.NotEmpty(t, matches)
	// "i want water" starts with the prefix and is high tier
	assert.True(t, len(matches) <= 5)
	var texts []string
	for _, m := range matches {
		texts = append(texts, m.Sentence.Text)
	}
	assert.Contains(t, texts, "i want water")

	// prefix matches must outrank pure keyword overlap
	for _, m := range matches {
		if m.Sentence.Text == "i want water" {
			assert.GreaterOrEqual(t, m.Score, prefixBonus)
		}
	}
}

func TestSearchSentencesCategoryBonus(t *testing.T) {
	withCat := SearchSentences([]string{"i", "need"}, "help", 10)
	require.NotEmpty(t, withCat)
	assert.Equal(t, "i need help", withCat[0].Sentence.Text)
}

func TestSearchSentencesDeterministic(t *testing.T) {
	first := SearchSentences([]string{"i", "want"}, "food", 8)
	second := SearchSentences([]string{"i", "want"}, "food", 8)
	assert.Equal(t, first, second)
}

func TestSearchSentencesLimit(t *testing.T) {
	matches := SearchSentences(nil, "", 3)
	assert.LessOrEqual(t, len(matches), 3)
}
