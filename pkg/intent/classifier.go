// Package intent labels utterances with a coarse communicative purpose and
// learns which purposes tend to follow which, so the engine can anticipate
// the next utterance.
package intent

import (
	"strings"

	"github.com/tilespeak/tilespeak/internal/utils"
)

// Type is a coarse intent label.
type Type string

const (
	Desire    Type = "desire"
	Emotion   Type = "emotion"
	Question  Type = "question"
	Request   Type = "request"
	Greeting  Type = "greeting"
	Thanks    Type = "thanks"
	Statement Type = "statement"
)

// AllTypes lists every intent label, in cascade order.
var AllTypes = []Type{Desire, Emotion, Question, Request, Greeting, Thanks, Statement}

// cascadeRule pairs a predicate with its label. Rules are evaluated in
// order and the first match wins, so precedence is the slice order.
type cascadeRule struct {
	label Type
	match func(joined string, words []string) bool
}

var desirePhrases = []string{
	"i want", "i need", "i would like", "give me", "can i have",
	"i wish", "let me have",
}

var emotionPhrases = []string{
	"i feel", "i am happy", "i am sad", "i am angry", "i am scared",
	"i am tired", "i am excited", "i'm happy", "i'm sad", "i'm tired",
	"it hurts", "i am okay",
}

var questionStarters = map[string]bool{
	"what": true, "where": true, "when": true, "who": true, "why": true,
	"how": true, "is": true, "are": true, "do": true, "does": true,
	"can": true, "will": true, "did": true,
}

var requestPhrases = []string{
	"please", "help me", "can you", "could you", "stop", "open",
	"come here", "look at",
}

var greetingPhrases = []string{
	"hello", "hi ", "good morning", "good night", "goodbye", "bye",
	"see you", "how are you",
}

var thanksPhrases = []string{
	"thank you", "thanks", "thank",
}

// The cascade order is behavior, not style: "i want to feel happy" must
// classify as desire, not emotion, so desire is checked first. Ties resolve
// to the earlier rule.
var cascade = []cascadeRule{
	{Desire, func(joined string, _ []string) bool { return containsAny(joined, desirePhrases) }},
	{Emotion, func(joined string, _ []string) bool { return containsAny(joined, emotionPhrases) }},
	{Question, func(joined string, words []string) bool {
		if strings.HasSuffix(joined, "?") {
			return true
		}
		return len(words) > 0 && questionStarters[words[0]]
	}},
	{Request, func(joined string, _ []string) bool { return containsAny(joined, requestPhrases) }},
	{Greeting, func(joined string, _ []string) bool {
		return containsAny(joined, greetingPhrases) || joined == "hi"
	}},
	{Thanks, func(joined string, _ []string) bool { return containsAny(joined, thanksPhrases) }},
}

func containsAny(joined string, phrases []string) bool {
	for _, p := range phrases {
		if utils.StringContainsIgnoreCase(joined, p) {
			return true
		}
	}
	return false
}

// Classify labels an utterance. The empty utterance is a Statement.
func Classify(words []string) Type {
	if len(words) == 0 {
		return Statement
	}
	lower := make([]string, len(words))
	for i, w := range words {
		lower[i] = strings.ToLower(w)
	}
	joined := strings.Join(lower, " ")

	for _, r := range cascade {
		if r.match(joined, lower) {
			return r.label
		}
	}
	return Statement
}
