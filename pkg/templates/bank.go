// Package templates is the static sentence template bank: short-sequence
// completions, category vocabulary, and a canonical full-sentence database.
// All lookups are pure functions of their input and the literal tables;
// nothing here learns.
package templates

import (
	"sort"
	"strings"

	"github.com/tilespeak/tilespeak/internal/utils"
)

// CompletionsFor returns ranked completions for the tail of the current
// utterance. The longest matching key wins: with ["can","i"] the "can i"
// entry beats the bare "i" entry.
func CompletionsFor(words []string) []string {
	if len(words) == 0 {
		return Starters()
	}
	for n := 3; n >= 1; n-- {
		tail := utils.LastN(words, n)
		if len(tail) < n {
			continue
		}
		key := strings.ToLower(strings.Join(tail, " "))
		if completions, ok := sequenceCompletions[key]; ok {
			return completions
		}
	}
	return nil
}

// Starters returns the common utterance openers used as the cold-start
// fallback when no words have been selected yet.
func Starters() []string {
	out := make([]string, len(starterWords))
	copy(out, starterWords)
	return out
}

// CategoryWords returns category vocabulary triggered by the last word,
// filtered to the currently available tile vocabulary. An empty available
// list means the caller is not restricting vocabulary.
func CategoryWords(category, lastWord string, available []string) []string {
	triggers, ok := categoryVocabulary[strings.ToLower(category)]
	if !ok {
		return nil
	}
	words := triggers[strings.ToLower(lastWord)]
	if len(words) == 0 {
		words = genericCategoryWords[strings.ToLower(category)]
	}
	if len(available) == 0 {
		return words
	}

	availSet := make(map[string]bool, len(available))
	for _, a := range available {
		availSet[strings.ToLower(a)] = true
	}
	var filtered []string
	for _, w := range words {
		// Multi-word entries pass when their head word is an available tile.
		head := strings.Fields(w)
		if len(head) > 0 && availSet[head[0]] || availSet[strings.ToLower(w)] {
			filtered = append(filtered, w)
		}
	}
	return filtered
}

// SentenceMatch is a scored canonical sentence.
type SentenceMatch struct {
	Sentence CanonicalSentence
	Score    float64
}

// SearchSentences ranks canonical sentences against the current utterance
// using the additive score: prefix bonus + per-keyword overlap + frequency
// tier bonus (+ a small category bonus when the caller's category matches).
func SearchSentences(words []string, category string, limit int) []SentenceMatch {
	if limit <= 0 {
		return nil
	}
	prefix := strings.ToLower(strings.Join(words, " "))
	wordSet := make(map[string]bool, len(words))
	for _, w := range words {
		wordSet[strings.ToLower(w)] = true
	}
	category = strings.ToLower(category)

	var matches []SentenceMatch
	for _, s := range sentenceBank {
		score := tierBonus(s.Tier)
		if prefix != "" && utils.HasPrefixIgnoreCase(s.Text, prefix) && s.Text != prefix {
			score += prefixBonus
		}
		for _, token := range strings.Fields(s.Text) {
			if wordSet[token] {
				score += keywordBonus
			}
		}
		if category != "" && s.Category == category {
			score += categoryBonus
		}
		// A bare tier score means nothing matched; only surface those on
		// empty input where any canonical sentence is a fair starter.
		if prefix != "" && score <= tierBonusHigh {
			continue
		}
		if score > maxSentenceScore {
			score = maxSentenceScore
		}
		matches = append(matches, SentenceMatch{Sentence: s, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
