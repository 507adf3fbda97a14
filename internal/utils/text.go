package utils

import (
	"strings"
	"unicode"
)

// Tokenize splits an utterance into lowercase word tokens.
// Punctuation is stripped; apostrophes inside words are kept so
// contractions ("don't", "it's") stay one token.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(strings.ToLower(f), "'")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Normalize lowercases and collapses whitespace in an utterance.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// LastN returns up to the last n tokens of words.
func LastN(words []string, n int) []string {
	if n <= 0 || len(words) == 0 {
		return nil
	}
	if len(words) <= n {
		return words
	}
	return words[len(words)-n:]
}

// ContextKey serializes a preceding word sequence into the key used to
// condition personalized scoring. Only the trailing three words matter:
// longer contexts fragment the counters without adding signal.
func ContextKey(words []string) string {
	return strings.Join(LastN(words, 3), " ")
}

// HasPrefixIgnoreCase checks if string has prefix case-insensitively
func HasPrefixIgnoreCase(s, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
}

// StringContainsIgnoreCase checks if string contains substring case-insensitively
func StringContainsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
