package patterns

import "strings"

// topicTaxonomy maps a topic tag to the keywords that signal it. A phrase
// can carry several topics; the sets deliberately overlap ("lunch" is both
// food and school territory but tags food).
var topicTaxonomy = map[string][]string{
	"school":   {"school", "teacher", "class", "homework", "read", "write", "learn", "book", "pencil", "recess"},
	"food":     {"eat", "food", "hungry", "water", "drink", "thirsty", "lunch", "dinner", "breakfast", "snack", "juice", "milk", "apple", "cookie", "pizza"},
	"family":   {"mom", "dad", "grandma", "grandpa", "sister", "brother", "family", "aunt", "uncle"},
	"play":     {"play", "game", "toy", "fun", "ball", "blocks", "outside", "swing", "puzzle"},
	"feelings": {"happy", "sad", "angry", "scared", "tired", "feel", "love", "excited", "hurt", "okay"},
	"home":     {"home", "bed", "room", "sleep", "tv", "bath", "blanket"},
	"help":     {"help", "stop", "break", "bathroom", "please", "need"},
	"time":     {"now", "later", "today", "tomorrow", "yesterday", "morning", "night", "soon", "wait"},
}

// DetectTopics returns the topic tags whose keywords appear in the
// tokenized utterance, in taxonomy-stable order.
func DetectTopics(words []string) []string {
	if len(words) == 0 {
		return nil
	}
	wordSet := make(map[string]bool, len(words))
	for _, w := range words {
		wordSet[strings.ToLower(w)] = true
	}

	var topics []string
	for _, topic := range topicOrder {
		for _, keyword := range topicTaxonomy[topic] {
			if wordSet[keyword] {
				topics = append(topics, topic)
				break
			}
		}
	}
	return topics
}

// topicOrder fixes iteration order so topic detection is deterministic.
var topicOrder = []string{"school", "food", "family", "play", "feelings", "home", "help", "time"}

// TopicWords returns the keyword list for a topic tag.
func TopicWords(topic string) []string {
	return topicTaxonomy[strings.ToLower(topic)]
}
