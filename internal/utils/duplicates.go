package utils

import "strings"

// SeenFilter tracks already-emitted words so a suggestion list never
// repeats a candidate or echoes a word the utterance already contains.
type SeenFilter struct {
	seenWords map[string]bool
}

// NewSeenFilter creates a filter pre-seeded with the current utterance words.
func NewSeenFilter(utterance []string) *SeenFilter {
	seenWords := make(map[string]bool, len(utterance)+8)
	for _, w := range utterance {
		seenWords[strings.ToLower(w)] = true
	}
	return &SeenFilter{seenWords: seenWords}
}

// ShouldInclude reports whether a word has not been seen yet, and marks it seen.
func (f *SeenFilter) ShouldInclude(word string) bool {
	lowerWord := strings.ToLower(word)
	if f.seenWords[lowerWord] {
		return false
	}
	f.seenWords[lowerWord] = true
	return true
}
