package suggest

import (
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/tilespeak/tilespeak/pkg/lexicon"
)

// affixes are the inflectional endings that make two surface forms count
// as the same suggestion.
var affixes = []string{"es", "s", "ing", "ed", "er", "ly"}

// Similar reports whether two candidate texts would read as near-twins on
// a suggestion strip: same word, same lemma, affix variants of each other,
// within maxDist edits at comparable length, or members of one semantic
// category.
func Similar(a, b string, maxDist int) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return true
	}

	if lexicon.BaseForm(a) == lexicon.BaseForm(b) {
		return true
	}

	if affixVariant(a, b) || affixVariant(b, a) {
		return true
	}

	lenDiff := len(a) - len(b)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff <= 2 && matchr.Levenshtein(a, b) <= maxDist {
		return true
	}

	return SharesCategory(a, b)
}

// affixVariant reports whether long is short plus one inflectional ending,
// tolerating the dropped final "e" of forms like make/making.
func affixVariant(long, short string) bool {
	for _, suffix := range affixes {
		if !strings.HasSuffix(long, suffix) {
			continue
		}
		stem := strings.TrimSuffix(long, suffix)
		if stem == short || stem == strings.TrimSuffix(short, "e") {
			return true
		}
	}
	return false
}

// dedupe drops every candidate similar to a better-ranked one. The input
// must already be in final rank order.
func dedupe(ranked []candidate, maxDist int) []candidate {
	out := ranked[:0:0]
	for _, c := range ranked {
		dup := false
		for _, kept := range out {
			if Similar(c.text, kept.text, maxDist) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	return out
}
