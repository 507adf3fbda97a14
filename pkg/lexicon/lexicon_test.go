package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerbForms(t *testing.T) {
	testCases := []struct {
		verb       string
		third      string
		past       string
		continuous string
	}{
		// irregular table hits
		{"go", "goes", "went", "going"},
		{"eat", "eats", "ate", "eating"},
		{"have", "has", "had", "having"},
		{"be", "is", "was", "being"},
		// regular suffix rules
		{"walk", "walks", "walked", "walking"},
		{"jump", "jumps", "jumped", "jumping"},
		// consonant+y
		{"try", "tries", "tried", "trying"},
		{"carry", "carries", "carried", "carrying"},
		// e-drop before -ing
		{"dance", "dances", "danced", "dancing"},
		// CVC doubling
		{"stop", "stops", "stopped", "stopping"},
		{"hug", "hugs", "hugged", "hugging"},
		// sibilant-final
		{"wash", "washes", "washed", "washing"},
		{"fix", "fixes", "fixed", "fixing"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.third, ThirdPerson(tc.verb), "third person of %q", tc.verb)
		assert.Equal(t, tc.past, PastForm(tc.verb), "past of %q", tc.verb)
		assert.Equal(t, tc.continuous, ContinuousForm(tc.verb), "continuous of %q", tc.verb)
	}
}

func TestPlural(t *testing.T) {
	testCases := []struct {
		noun   string
		plural string
	}{
		{"child", "children"},
		{"person", "people"},
		{"cat", "cats"},
		{"box", "boxes"},
		{"brush", "brushes"},
		{"baby", "babies"},
		{"knife", "knives"},
		{"leaf", "leaves"},
		{"sheep", "sheep"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.plural, Plural(tc.noun))
	}
}

func TestComparatives(t *testing.T) {
	assert.Equal(t, "better", Comparative("good"))
	assert.Equal(t, "best", Superlative("good"))
	assert.Equal(t, "bigger", Comparative("big"))
	assert.Equal(t, "biggest", Superlative("big"))
	assert.Equal(t, "happier", Comparative("happy"))
	assert.Equal(t, "happiest", Superlative("happy"))
	assert.Equal(t, "nicer", Comparative("nice"))
}

func TestBaseForm(t *testing.T) {
	testCases := []struct {
		word string
		base string
	}{
		{"went", "go"},
		{"ate", "eat"},
		{"has", "have"},
		{"running", "run"},
		{"wants", "want"},
		{"stopped", "stop"},
		{"walking", "walk"},
		{"children", "child"},
		{"babies", "baby"},
		{"boxes", "box"},
		{"cats", "cat"},
		// unknown words fall through the regular rules without failing
		{"zorping", "zorp"},
		{"glass", "glass"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.base, BaseForm(tc.word), "base of %q", tc.word)
	}
}

func TestVerbTablePreferredOverNounTable(t *testing.T) {
	// "read" is both a verb past form and a base verb; the verb table must win.
	assert.Equal(t, "read", BaseForm("read"))
	// "feet" only appears in the plural index.
	assert.Equal(t, "foot", BaseForm("feet"))
}

func TestVariationsUnknownWordDoesNotPanic(t *testing.T) {
	forms := Variations("frobulate")
	assert.NotEmpty(t, forms)
	assert.NotContains(t, forms, "frobulate")
}

func TestDetectTense(t *testing.T) {
	testCases := []struct {
		words []string
		want  Tense
	}{
		{[]string{"i", "went", "home"}, TensePast},
		{[]string{"yesterday", "i", "play"}, TensePast},
		{[]string{"i", "will", "eat"}, TenseFuture},
		{[]string{"tomorrow", "we", "go"}, TenseFuture},
		{[]string{"i", "am", "playing", "now"}, TensePresent},
		{[]string{"i", "want", "water"}, TenseUnknown},
		{nil, TenseUnknown},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, DetectTense(tc.words), "tense of %v", tc.words)
	}
}

func TestTenseRoundTrip(t *testing.T) {
	verbs := []string{"go", "eat", "play", "walk", "stop", "try", "dance"}
	for _, v := range verbs {
		past := VerbForm(v, TensePast)
		assert.Equal(t, TensePast, DetectTense([]string{past}), "past form %q", past)

		future := VerbForm(v, TenseFuture)
		assert.Equal(t, TenseFuture, DetectTense([]string{"will", v}), "future form %q", future)
	}
}
