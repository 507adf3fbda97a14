package templates

// sequenceCompletions maps short pronoun/verb sequences to ranked
// completions. Keys are space-joined lowercase word sequences matched
// against the tail of the current utterance, longest key first.
var sequenceCompletions = map[string][]string{
	"i want":    {"to go", "water", "some water", "to play", "to eat", "more", "that"},
	"i need":    {"help", "to go", "the bathroom", "a break", "water"},
	"i like":    {"this", "to play", "it", "you"},
	"i feel":    {"happy", "sad", "tired", "sick", "good"},
	"i am":      {"happy", "hungry", "tired", "done", "cold"},
	"i want to": {"go", "play", "eat", "drink", "sleep", "watch"},
	"i need to": {"go", "rest", "eat", "use the bathroom"},
	"can i":     {"have", "go", "play", "help"},
	"can you":   {"help me", "open this", "come here", "read this"},
	"do you":    {"want", "like", "have", "know"},
	"where is":  {"mom", "dad", "my toy", "the bathroom"},
	"what is":   {"that", "this", "for lunch", "next"},
	"let's":     {"go", "play", "eat", "read"},
	"it is":     {"good", "fun", "too loud", "time to go"},
	"i":         {"want", "need", "like", "am", "feel", "can"},
	"you":       {"are", "can", "have"},
	"want":      {"to", "water", "more", "that"},
	"need":      {"help", "to", "water"},
	"go":        {"home", "outside", "to school"},
	"more":      {"please", "water", "time"},
	"thank":     {"you"},
	"my":        {"turn", "toy", "mom", "dad"},
	"how":       {"are you", "many", "much"},
	"where":     {"is", "are we going"},
	"what":      {"is", "time is it", "are we doing"},
}

// starterWords seed suggestions when the utterance is still empty.
// Ordered by how often AAC users open with them.
var starterWords = []string{
	"i", "i want", "i need", "help", "yes", "no", "more",
	"can i", "i feel", "stop", "look", "thank you",
}

// categoryVocabulary maps a category and trigger word to vocabulary that
// plausibly follows. The outer key is the tile category the UI is showing.
var categoryVocabulary = map[string]map[string][]string{
	"food": {
		"want": {"water", "juice", "milk", "apple", "banana", "sandwich", "cookie", "pizza"},
		"eat":  {"apple", "banana", "sandwich", "yogurt", "crackers"},
		"like": {"pizza", "pasta", "ice cream", "cookies"},
		"more": {"water", "juice", "crackers"},
	},
	"play": {
		"want": {"blocks", "ball", "puzzle", "bubbles", "swing"},
		"play": {"outside", "blocks", "ball", "together", "a game"},
		"my":   {"turn", "toy", "game"},
	},
	"feelings": {
		"feel": {"happy", "sad", "angry", "scared", "tired", "excited"},
		"am":   {"happy", "sad", "tired", "hungry", "okay"},
		"is":   {"fun", "scary", "loud"},
	},
	"school": {
		"want": {"to read", "to draw", "my backpack", "a pencil"},
		"my":   {"teacher", "desk", "backpack", "book"},
		"go":   {"to class", "to the library", "to recess"},
	},
	"family": {
		"want": {"mom", "dad", "grandma", "to go home"},
		"my":   {"mom", "dad", "sister", "brother", "grandma"},
		"see":  {"mom", "dad", "grandma"},
	},
	"home": {
		"want": {"my bed", "my room", "to watch tv", "a blanket"},
		"go":   {"home", "to my room", "to bed"},
		"my":   {"bed", "room", "blanket"},
	},
	"help": {
		"need": {"help", "a break", "the bathroom", "my aide"},
		"help": {"me", "please", "me please"},
	},
}

// genericCategoryWords apply when a category is active but the last word
// has no trigger entry.
var genericCategoryWords = map[string][]string{
	"food":     {"hungry", "thirsty", "eat", "drink", "water", "snack"},
	"play":     {"play", "fun", "game", "toy", "outside"},
	"feelings": {"happy", "sad", "tired", "angry", "okay"},
	"school":   {"teacher", "read", "write", "learn", "class"},
	"family":   {"mom", "dad", "sister", "brother"},
	"home":     {"home", "bed", "room", "tv"},
	"help":     {"help", "please", "stop", "break"},
}
