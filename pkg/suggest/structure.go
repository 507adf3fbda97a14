package suggest

import "strings"

// subjectWords covers the pronouns and person nouns that can head a
// sentence in this vocabulary.
var subjectWords = map[string]bool{
	"i": true, "you": true, "he": true, "she": true, "it": true,
	"we": true, "they": true, "mom": true, "dad": true, "teacher": true,
	"everyone": true, "this": true, "that": true,
}

// sentenceVerbs is a closed set for the structural check. It deliberately
// avoids the lexicon's permissive verb guesser, which calls almost any
// content word a verb.
var sentenceVerbs = map[string]bool{
	"am": true, "is": true, "are": true, "was": true, "were": true,
	"want": true, "wants": true, "wanted": true,
	"need": true, "needs": true, "needed": true,
	"like": true, "likes": true, "liked": true,
	"love": true, "loves": true, "loved": true,
	"go": true, "goes": true, "went": true, "going": true,
	"have": true, "has": true, "had": true,
	"feel": true, "feels": true, "felt": true,
	"see": true, "sees": true, "saw": true,
	"eat": true, "eats": true, "ate": true,
	"drink": true, "drinks": true, "drank": true,
	"play": true, "plays": true, "played": true,
	"help": true, "helps": true, "helped": true,
	"stop": true, "stops": true, "stopped": true,
	"can": true, "will": true, "do": true, "does": true, "did": true,
	"make": true, "makes": true, "made": true,
	"say": true, "says": true, "said": true,
	"know": true, "knows": true, "knew": true,
	"think": true, "thinks": true, "thought": true,
	"get": true, "gets": true, "got": true,
}

// completesSentence reports whether appending the candidate to the current
// utterance yields something with a subject and a verb. This is a cheap
// structural sketch, not a parse.
func completesSentence(currentWords []string, candidate string) bool {
	hasSubject, hasVerb := false, false
	scan := func(w string) {
		w = strings.ToLower(w)
		if subjectWords[w] {
			hasSubject = true
		}
		if sentenceVerbs[w] {
			hasVerb = true
		}
	}
	for _, w := range currentWords {
		scan(w)
	}
	for _, w := range strings.Fields(candidate) {
		scan(w)
	}
	return hasSubject && hasVerb
}
