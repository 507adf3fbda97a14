// Package grammar flags structurally incomplete utterances and proposes the
// highest-confidence repair. Detection is an ordered rule pipeline over the
// tokenized utterance; each rule claims the token positions it fires on so a
// later rule never re-corrects the same spot in one pass.
package grammar

import (
	"strings"

	"github.com/tilespeak/tilespeak/pkg/lexicon"
)

// Suggestion is a single proposed grammatical correction.
type Suggestion struct {
	Original    string
	Corrected   string
	Confidence  float64
	Explanation string
}

// rule inspects the utterance and returns zero or one suggestion plus the
// positions it consumed. Rules must honor the consumed set.
type rule func(words []string, consumed map[int]bool) (Suggestion, []int, bool)

// orderedRules run highest-confidence first; once a position is claimed the
// remaining rules skip it.
var orderedRules = []rule{
	missingCopulaRule,
	missingInfinitiveRule,
	subjectVerbAgreementRule,
	missingArticleRule,
}

// Check runs every rule over a tokenized utterance and returns all
// corrections found, ordered by rule precedence.
func Check(words []string) []Suggestion {
	if len(words) == 0 {
		return nil
	}
	lower := make([]string, len(words))
	for i, w := range words {
		lower[i] = strings.ToLower(w)
	}

	consumed := make(map[int]bool)
	var out []Suggestion
	for _, r := range orderedRules {
		if s, positions, ok := r(lower, consumed); ok {
			for _, p := range positions {
				consumed[p] = true
			}
			out = append(out, s)
		}
	}
	return out
}

// BestCorrection returns the single highest-confidence correction for the
// utterance, or ok=false when the sentence needs no repair.
func BestCorrection(words []string) (Suggestion, bool) {
	suggestions := Check(words)
	if len(suggestions) == 0 {
		return Suggestion{}, false
	}
	best := suggestions[0]
	for _, s := range suggestions[1:] {
		if s.Confidence > best.Confidence {
			best = s
		}
	}
	return best, true
}

// missingCopulaRule: subject pronoun directly followed by an adjective
// ("i happy" -> "i am happy").
func missingCopulaRule(words []string, consumed map[int]bool) (Suggestion, []int, bool) {
	for i := 0; i < len(words)-1; i++ {
		if consumed[i] || consumed[i+1] {
			continue
		}
		copula, isSubject := copulaForSubject[words[i]]
		if !isSubject || !lexicon.IsLikelyAdjective(words[i+1]) {
			continue
		}
		corrected := insertAt(words, i+1, copula)
		return Suggestion{
			Original:    strings.Join(words, " "),
			Corrected:   strings.Join(corrected, " "),
			Confidence:  0.95,
			Explanation: "added \"" + copula + "\" between \"" + words[i] + "\" and \"" + words[i+1] + "\"",
		}, []int{i, i + 1}, true
	}
	return Suggestion{}, nil, false
}

// missingInfinitiveRule: want/need/like/love/have followed by a bare verb
// ("i want go" -> "i want to go").
func missingInfinitiveRule(words []string, consumed map[int]bool) (Suggestion, []int, bool) {
	for i := 0; i < len(words)-1; i++ {
		if consumed[i] || consumed[i+1] {
			continue
		}
		confidence, isTrigger := infinitiveVerbs[words[i]]
		if !isTrigger {
			continue
		}
		next := words[i+1]
		// massNouns catches verb/noun homographs ("help", "water") that are
		// objects here, not infinitive complements.
		if next == "to" || massNouns[next] || !isBareVerb(next) {
			continue
		}
		corrected := insertAt(words, i+1, "to")
		return Suggestion{
			Original:    strings.Join(words, " "),
			Corrected:   strings.Join(corrected, " "),
			Confidence:  confidence,
			Explanation: "added \"to\" before \"" + next + "\"",
		}, []int{i, i + 1}, true
	}
	return Suggestion{}, nil, false
}

// subjectVerbAgreementRule: fixes number agreement in both directions
// ("he want" -> "he wants", "they wants" -> "they want").
func subjectVerbAgreementRule(words []string, consumed map[int]bool) (Suggestion, []int, bool) {
	for i := 0; i < len(words)-1; i++ {
		if consumed[i] || consumed[i+1] {
			continue
		}
		subject, verb := words[i], words[i+1]

		if thirdSingularSubjects[subject] && isBareVerb(verb) {
			fixed := lexicon.ThirdPerson(verb)
			if fixed == verb {
				continue
			}
			corrected := replaceAt(words, i+1, fixed)
			return Suggestion{
				Original:    strings.Join(words, " "),
				Corrected:   strings.Join(corrected, " "),
				Confidence:  0.88,
				Explanation: "\"" + subject + "\" needs \"" + fixed + "\"",
			}, []int{i, i + 1}, true
		}

		if pluralSubjects[subject] && isThirdPersonForm(verb) {
			fixed := lexicon.BaseForm(verb)
			if fixed == verb {
				continue
			}
			corrected := replaceAt(words, i+1, fixed)
			return Suggestion{
				Original:    strings.Join(words, " "),
				Corrected:   strings.Join(corrected, " "),
				Confidence:  0.88,
				Explanation: "\"" + subject + "\" needs \"" + fixed + "\"",
			}, []int{i, i + 1}, true
		}
	}
	return Suggestion{}, nil, false
}

// missingArticleRule: transitive verb followed by a bare countable noun
// ("want cookie" -> "want a cookie"); inherently unique nouns get "the".
func missingArticleRule(words []string, consumed map[int]bool) (Suggestion, []int, bool) {
	for i := 0; i < len(words)-1; i++ {
		if consumed[i] || consumed[i+1] {
			continue
		}
		if !objectVerbs[words[i]] {
			continue
		}
		noun := words[i+1]
		if determiners[noun] || massNouns[noun] || !lexicon.IsLikelyNoun(noun) {
			continue
		}
		article := "a"
		if uniqueNouns[noun] {
			article = "the"
		}
		corrected := insertAt(words, i+1, article)
		return Suggestion{
			Original:    strings.Join(words, " "),
			Corrected:   strings.Join(corrected, " "),
			Confidence:  0.85,
			Explanation: "added \"" + article + "\" before \"" + noun + "\"",
		}, []int{i, i + 1}, true
	}
	return Suggestion{}, nil, false
}

// isBareVerb reports whether a word is an uninflected verb form.
func isBareVerb(word string) bool {
	if !lexicon.IsLikelyVerb(word) {
		return false
	}
	return lexicon.BaseForm(word) == word
}

// isThirdPersonForm reports whether a word is a 3rd-person singular verb form.
func isThirdPersonForm(word string) bool {
	base := lexicon.BaseForm(word)
	return base != word && lexicon.ThirdPerson(base) == word
}

func insertAt(words []string, index int, word string) []string {
	out := make([]string, 0, len(words)+1)
	out = append(out, words[:index]...)
	out = append(out, word)
	out = append(out, words[index:]...)
	return out
}

func replaceAt(words []string, index int, word string) []string {
	out := make([]string, len(words))
	copy(out, words)
	out[index] = word
	return out
}
