package suggest

import (
	"sort"
	"strings"
)

// synonymTable is the curated alternatives list. Lookup runs both ways:
// asking for "happy" yields "glad", and asking for "glad" finds "happy"
// through the reverse index.
var synonymTable = map[string][]string{
	"happy":  {"glad", "excited", "cheerful"},
	"sad":    {"upset", "unhappy", "down"},
	"mad":    {"angry", "upset", "cross"},
	"big":    {"large", "huge", "giant"},
	"little": {"small", "tiny"},
	"good":   {"great", "nice", "fine"},
	"bad":    {"awful", "terrible"},
	"want":   {"need", "wish"},
	"like":   {"love", "enjoy"},
	"go":     {"leave", "move"},
	"stop":   {"quit", "end"},
	"look":   {"see", "watch"},
	"talk":   {"speak", "say"},
	"fast":   {"quick", "speedy"},
	"tired":  {"sleepy", "exhausted"},
	"yes":    {"okay", "sure"},
	"no":     {"nope", "never"},
	"more":   {"extra", "another"},
	"eat":    {"munch", "snack"},
	"drink":  {"sip", "gulp"},
	"hi":     {"hello", "hey"},
	"mom":    {"mommy", "mama"},
	"dad":    {"daddy", "papa"},
	"toilet": {"bathroom", "potty"},
}

// semanticCategories groups words that fill the same communicative slot.
// Membership in any shared category makes two candidates interchangeable
// for deduplication. Some words sit in several categories on purpose:
// "okay" is both a feeling and an agreement.
var semanticCategories = map[string][]string{
	"emotions":      {"happy", "sad", "angry", "mad", "scared", "excited", "tired", "upset", "glad", "cheerful", "okay", "hurt"},
	"actions":       {"go", "stop", "run", "walk", "jump", "play", "eat", "drink", "sleep", "look", "watch", "read", "sing", "dance"},
	"sizes":         {"big", "little", "small", "large", "huge", "tiny", "giant"},
	"foods":         {"water", "juice", "milk", "apple", "banana", "cookie", "pizza", "sandwich", "snack", "cracker"},
	"family":        {"mom", "dad", "mommy", "daddy", "grandma", "grandpa", "sister", "brother", "mama", "papa"},
	"places":        {"home", "school", "outside", "park", "bathroom", "bed", "room", "store"},
	"time":          {"now", "later", "today", "tomorrow", "yesterday", "soon", "morning", "night"},
	"qualities":     {"good", "bad", "nice", "great", "fine", "awful", "terrible", "fun", "funny"},
	"quantities":    {"more", "less", "some", "all", "another", "extra", "many", "few"},
	"communication": {"talk", "say", "tell", "speak", "ask", "listen"},
	"agreement":     {"yes", "no", "okay", "sure", "maybe", "nope", "never"},
	"greetings":     {"hi", "hello", "hey", "bye", "goodbye", "goodnight"},
	"thanks":        {"thanks", "please", "welcome", "sorry"},
}

// reverseSynonyms and wordCategories are derived indexes built once at
// package init.
var reverseSynonyms = func() map[string][]string {
	rev := make(map[string][]string)
	for head, alts := range synonymTable {
		for _, alt := range alts {
			rev[alt] = append(rev[alt], head)
		}
	}
	for _, heads := range rev {
		sort.Strings(heads)
	}
	return rev
}()

var wordCategories = func() map[string][]string {
	idx := make(map[string][]string)
	for category, members := range semanticCategories {
		for _, w := range members {
			idx[w] = append(idx[w], category)
		}
	}
	for _, cats := range idx {
		sort.Strings(cats)
	}
	return idx
}()

// Alternatives collects synonyms of a word: direct entries, reverse-index
// hits, and co-members of its semantic categories restricted to the
// available vocabulary. The word itself is never returned.
func Alternatives(word string, available []string) []string {
	word = strings.ToLower(word)
	availSet := make(map[string]bool, len(available))
	for _, w := range available {
		availSet[strings.ToLower(w)] = true
	}

	seen := map[string]bool{word: true}
	var out []string
	add := func(w string) {
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}

	for _, alt := range synonymTable[word] {
		add(alt)
	}
	for _, head := range reverseSynonyms[word] {
		add(head)
	}
	for _, category := range wordCategories[word] {
		for _, member := range semanticCategories[category] {
			if availSet[member] {
				add(member)
			}
		}
	}
	return out
}

// SharesCategory reports whether two words sit in any common semantic
// category.
func SharesCategory(a, b string) bool {
	catsA := wordCategories[strings.ToLower(a)]
	if len(catsA) == 0 {
		return false
	}
	for _, cb := range wordCategories[strings.ToLower(b)] {
		for _, ca := range catsA {
			if ca == cb {
				return true
			}
		}
	}
	return false
}
