// Package lexicon derives inflected and base word forms for the suggestion
// engine. Everything here is a pure function over literal lookup tables plus
// suffix rules; unknown words fall through the regular rules and never fail.
package lexicon

import "strings"

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// endsCVC reports whether a word ends consonant-vowel-consonant, the stems
// that double their final consonant ("sit" -> "sitting"). Final w, x and y
// never double.
func endsCVC(word string) bool {
	n := len(word)
	if n < 3 {
		return false
	}
	last := word[n-1]
	if last == 'w' || last == 'x' || last == 'y' {
		return false
	}
	return !isVowel(word[n-1]) && isVowel(word[n-2]) && !isVowel(word[n-3])
}

// sibilantFinal reports whether a noun takes "-es" in the plural.
func sibilantFinal(word string) bool {
	if strings.HasSuffix(word, "ch") || strings.HasSuffix(word, "sh") {
		return true
	}
	switch word[len(word)-1] {
	case 's', 'x', 'z':
		return true
	}
	return false
}

func consonantY(word string) bool {
	n := len(word)
	return n >= 2 && word[n-1] == 'y' && !isVowel(word[n-2])
}

// ThirdPerson returns the 3rd-person singular present form of a verb.
func ThirdPerson(verb string) string {
	verb = strings.ToLower(verb)
	if forms, ok := irregularVerbs[verb]; ok {
		return forms.Third
	}
	if verb == "" {
		return verb
	}
	if consonantY(verb) {
		return verb[:len(verb)-1] + "ies"
	}
	if sibilantFinal(verb) || strings.HasSuffix(verb, "o") {
		return verb + "es"
	}
	return verb + "s"
}

// PastForm returns the simple past form of a verb.
func PastForm(verb string) string {
	verb = strings.ToLower(verb)
	if forms, ok := irregularVerbs[verb]; ok {
		return forms.Past
	}
	if verb == "" {
		return verb
	}
	if strings.HasSuffix(verb, "e") {
		return verb + "d"
	}
	if consonantY(verb) {
		return verb[:len(verb)-1] + "ied"
	}
	if endsCVC(verb) {
		return verb + string(verb[len(verb)-1]) + "ed"
	}
	return verb + "ed"
}

// ContinuousForm returns the "-ing" form of a verb.
func ContinuousForm(verb string) string {
	verb = strings.ToLower(verb)
	if forms, ok := irregularVerbs[verb]; ok {
		return forms.Continuous
	}
	if verb == "" {
		return verb
	}
	if strings.HasSuffix(verb, "ie") {
		return verb[:len(verb)-2] + "ying"
	}
	if strings.HasSuffix(verb, "e") && !strings.HasSuffix(verb, "ee") {
		return verb[:len(verb)-1] + "ing"
	}
	if endsCVC(verb) {
		return verb + string(verb[len(verb)-1]) + "ing"
	}
	return verb + "ing"
}

// FutureForm returns the modal future of a verb.
func FutureForm(verb string) string {
	return "will " + strings.ToLower(verb)
}

// Tense identifies the grammatical tense of an utterance or verb form.
type Tense string

const (
	TensePast    Tense = "past"
	TensePresent Tense = "present"
	TenseFuture  Tense = "future"
	TenseUnknown Tense = "unknown"
)

// VerbForm returns a verb inflected for the given tense. Present returns the
// base form since bare present is lexically unmarked.
func VerbForm(verb string, tense Tense) string {
	switch tense {
	case TensePast:
		return PastForm(verb)
	case TenseFuture:
		return FutureForm(verb)
	default:
		return BaseForm(verb)
	}
}

// Plural returns the plural form of a noun.
func Plural(noun string) string {
	noun = strings.ToLower(noun)
	if plural, ok := irregularPlurals[noun]; ok {
		return plural
	}
	if noun == "" {
		return noun
	}
	if consonantY(noun) {
		return noun[:len(noun)-1] + "ies"
	}
	if strings.HasSuffix(noun, "fe") {
		return noun[:len(noun)-2] + "ves"
	}
	if strings.HasSuffix(noun, "f") {
		return noun[:len(noun)-1] + "ves"
	}
	if sibilantFinal(noun) {
		return noun + "es"
	}
	return noun + "s"
}

// Possessive returns the possessive form of a noun.
func Possessive(noun string) string {
	return strings.ToLower(noun) + "'s"
}

// Comparative returns the comparative form of an adjective.
func Comparative(adj string) string {
	adj = strings.ToLower(adj)
	if forms, ok := irregularComparatives[adj]; ok {
		return forms[0]
	}
	return gradedForm(adj, "er")
}

// Superlative returns the superlative form of an adjective.
func Superlative(adj string) string {
	adj = strings.ToLower(adj)
	if forms, ok := irregularComparatives[adj]; ok {
		return forms[1]
	}
	return gradedForm(adj, "est")
}

func gradedForm(adj, suffix string) string {
	if adj == "" {
		return adj
	}
	if consonantY(adj) {
		return adj[:len(adj)-1] + "i" + suffix
	}
	if strings.HasSuffix(adj, "e") {
		return adj + suffix[1:]
	}
	if endsCVC(adj) {
		return adj + string(adj[len(adj)-1]) + suffix
	}
	return adj + suffix
}

// Variations returns every inflected form the engine can derive for a word:
// verb tenses, noun plural/possessive, and adjective comparison where the
// relevant part-of-speech heuristic fires. The input word itself is excluded.
func Variations(word string) []string {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return nil
	}

	seen := map[string]bool{word: true}
	var out []string
	add := func(form string) {
		if form != "" && !seen[form] {
			seen[form] = true
			out = append(out, form)
		}
	}

	base := BaseForm(word)
	if IsLikelyVerb(word) {
		add(ThirdPerson(base))
		add(PastForm(base))
		add(ContinuousForm(base))
		add(FutureForm(base))
		if base != word {
			add(base)
		}
	}
	if IsLikelyNoun(word) {
		add(Plural(word))
		add(Possessive(word))
	}
	if IsLikelyAdjective(word) {
		add(Comparative(word))
		add(Superlative(word))
	}
	if len(out) == 0 {
		// Unknown words still get the regular verb forms so tense switching
		// works on vocabulary the tables have never seen.
		add(ThirdPerson(word))
		add(PastForm(word))
		add(ContinuousForm(word))
		add(FutureForm(word))
	}
	return out
}

// BaseForm lemmatizes a word: reverse lookup in the irregular tables first,
// then regular suffix stripping with consonant-doubling awareness.
func BaseForm(word string) string {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return word
	}
	// Verb table wins over the noun table for ambiguous forms.
	if base, ok := inflectionIndex[word]; ok {
		return base
	}
	if singular, ok := pluralIndex[word]; ok {
		return singular
	}
	if _, ok := irregularVerbs[word]; ok {
		return word
	}

	if stem, ok := stripSuffix(word, "ing"); ok {
		return stem
	}
	if stem, ok := stripSuffix(word, "ed"); ok {
		return stem
	}
	if strings.HasSuffix(word, "ies") && len(word) > 4 {
		return word[:len(word)-3] + "y"
	}
	if strings.HasSuffix(word, "es") && len(word) > 3 && sibilantFinal(word[:len(word)-2]) {
		return word[:len(word)-2]
	}
	if strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") && len(word) > 3 {
		return word[:len(word)-1]
	}
	return word
}

// stripSuffix removes an inflection suffix and undoes consonant doubling
// ("running" -> "run", "stopped" -> "stop").
func stripSuffix(word, suffix string) (string, bool) {
	if !strings.HasSuffix(word, suffix) || len(word) <= len(suffix)+2 {
		return "", false
	}
	stem := word[:len(word)-len(suffix)]
	n := len(stem)
	if n >= 2 && stem[n-1] == stem[n-2] && !isVowel(stem[n-1]) {
		stem = stem[:n-1]
	}
	return stem, true
}

// IsLikelyVerb reports whether a word is plausibly a verb, by table
// membership or inflectional suffix.
func IsLikelyVerb(word string) bool {
	word = strings.ToLower(word)
	if _, ok := irregularVerbs[word]; ok {
		return true
	}
	if _, ok := inflectionIndex[word]; ok {
		return true
	}
	return strings.HasSuffix(word, "ing") || strings.HasSuffix(word, "ed")
}

// IsLikelyNoun reports whether a word is plausibly a noun.
func IsLikelyNoun(word string) bool {
	word = strings.ToLower(word)
	if _, ok := irregularPlurals[word]; ok {
		return true
	}
	if _, ok := pluralIndex[word]; ok {
		return true
	}
	if _, ok := irregularVerbs[word]; ok {
		return false
	}
	if commonAdjectives[word] {
		return false
	}
	for _, suffix := range []string{"tion", "ness", "ment", "ity"} {
		if strings.HasSuffix(word, suffix) {
			return true
		}
	}
	// Bare content words default to noun so tile vocabularies (mostly
	// concrete nouns) get plural variations.
	return !strings.HasSuffix(word, "ing") && !strings.HasSuffix(word, "ly")
}

// IsLikelyAdjective reports whether a word is plausibly an adjective.
func IsLikelyAdjective(word string) bool {
	word = strings.ToLower(word)
	if commonAdjectives[word] {
		return true
	}
	if _, ok := irregularComparatives[word]; ok {
		return true
	}
	for _, suffix := range []string{"ful", "less", "ous", "ish", "able"} {
		if strings.HasSuffix(word, suffix) {
			return true
		}
	}
	return false
}
