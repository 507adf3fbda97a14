package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilar(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"exact ignoring case", "Water", "water", true},
		{"lemma match", "went", "go", true},
		{"plural affix", "cookie", "cookies", true},
		{"ing affix", "play", "playing", true},
		{"ing affix with dropped e", "make", "making", true},
		{"er affix", "fast", "faster", true},
		{"edit distance two", "water", "later", true},
		{"shared semantic category", "happy", "sad", true},
		{"shared category across synonyms", "juice", "milk", true},
		{"unrelated words", "water", "outside", false},
		{"long words far apart", "tomorrow", "bathroom", false},
		{"length gap blocks edit distance", "at", "apple", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Similar(tc.a, tc.b, 2))
			assert.Equal(t, tc.want, Similar(tc.b, tc.a, 2), "similarity must be symmetric")
		})
	}
}

func TestDedupeKeepsHigherRanked(t *testing.T) {
	ranked := []candidate{
		{text: "water", typ: TypeCompletion, score: 0.9},
		{text: "juice", typ: TypeNextWord, score: 0.8},
		{text: "outside", typ: TypeNextWord, score: 0.7},
		{text: "waters", typ: TypeSynonym, score: 0.6},
	}
	got := dedupe(ranked, 2)
	assert.Equal(t, []candidate{
		{text: "water", typ: TypeCompletion, score: 0.9},
		{text: "outside", typ: TypeNextWord, score: 0.7},
	}, got)
}

func TestAlternatives(t *testing.T) {
	direct := Alternatives("happy", nil)
	assert.Contains(t, direct, "glad")

	reverse := Alternatives("glad", nil)
	assert.Contains(t, reverse, "happy")

	restricted := Alternatives("happy", []string{"sad", "water"})
	assert.Contains(t, restricted, "sad", "category co-members come from the available vocabulary")
	assert.NotContains(t, restricted, "water")
	assert.NotContains(t, restricted, "happy", "a word is never its own alternative")
}

func TestSharesCategory(t *testing.T) {
	assert.True(t, SharesCategory("water", "juice"))
	assert.True(t, SharesCategory("okay", "yes"), "multi-category words match through any membership")
	assert.False(t, SharesCategory("water", "mom"))
	assert.False(t, SharesCategory("water", "zorp"))
}

func TestCompletesSentence(t *testing.T) {
	assert.True(t, completesSentence([]string{"i", "want"}, "water"))
	assert.True(t, completesSentence(nil, "i want water"))
	assert.False(t, completesSentence([]string{"i"}, "water"), "no verb yet")
	assert.False(t, completesSentence([]string{"want"}, "water"), "no subject")
}
