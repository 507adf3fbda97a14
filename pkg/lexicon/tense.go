package lexicon

import "strings"

// DetectTense scans an utterance for temporal markers, auxiliaries and
// inflected verb forms, returning the first tense the tokens commit to.
// Future markers are checked per token before past ones so "will" beats a
// trailing past participle ("will be eaten").
func DetectTense(words []string) Tense {
	for _, raw := range words {
		w := strings.ToLower(raw)
		if futureMarkers[w] {
			return TenseFuture
		}
		if pastMarkers[w] {
			return TensePast
		}
		if _, ok := pastTenseIndex[w]; ok {
			return TensePast
		}
		if strings.HasSuffix(w, "ed") && len(w) > 3 && IsLikelyVerb(w) {
			return TensePast
		}
		if presentMarkers[w] {
			return TensePresent
		}
		if strings.HasSuffix(w, "ing") && len(w) > 4 {
			return TensePresent
		}
	}
	return TenseUnknown
}

// MatchesTense reports whether an inflected form agrees with a tense.
// A "will ..." phrase is future, a past form past, continuous present.
func MatchesTense(form string, tense Tense) bool {
	return DetectTense(strings.Fields(form)) == tense
}
