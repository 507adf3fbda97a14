package grammar

// copulaForSubject maps a subject pronoun to its present copula.
var copulaForSubject = map[string]string{
	"i": "am", "he": "is", "she": "is", "it": "is", "this": "is", "that": "is",
	"you": "are", "we": "are", "they": "are", "these": "are", "those": "are",
}

// thirdSingularSubjects require an "-s" verb form.
var thirdSingularSubjects = map[string]bool{
	"he": true, "she": true, "it": true, "this": true, "that": true,
	"mom": true, "dad": true, "teacher": true, "grandma": true, "grandpa": true,
	"sister": true, "brother": true, "dog": true, "cat": true, "baby": true,
}

// pluralSubjects take the bare verb form.
var pluralSubjects = map[string]bool{
	"i": true, "you": true, "we": true, "they": true,
}

// infinitiveVerbs take a "to"-infinitive complement ("want to go").
// Values are the confidence of the inserted-"to" correction.
var infinitiveVerbs = map[string]float64{
	"want": 0.92, "wants": 0.92, "wanted": 0.92,
	"need": 0.92, "needs": 0.92, "needed": 0.92,
	"like": 0.90, "likes": 0.90, "liked": 0.90,
	"love": 0.90, "loves": 0.90, "loved": 0.90,
	"have": 0.90, "has": 0.90,
}

// objectVerbs are transitive verbs whose bare-noun object usually needs a
// determiner ("want cookie" -> "want a cookie").
var objectVerbs = map[string]bool{
	"want": true, "wants": true, "need": true, "needs": true,
	"see": true, "sees": true, "have": true, "has": true,
	"get": true, "gets": true, "take": true, "takes": true,
	"eat": true, "eats": true, "read": true, "reads": true,
}

// uniqueNouns take "the" rather than "a": inherently unique places in the
// user's world.
var uniqueNouns = map[string]bool{
	"bathroom": true, "school": true, "home": true, "kitchen": true,
	"park": true, "playground": true, "bus": true, "doctor": true,
}

// massNouns never take "a": uncountable or already-determined words that
// the article rule must leave alone.
var massNouns = map[string]bool{
	"water": true, "milk": true, "juice": true, "food": true,
	"help": true, "more": true, "music": true, "time": true,
	"mom": true, "dad": true, "grandma": true, "grandpa": true,
	"it": true, "this": true, "that": true, "them": true, "me": true, "you": true,
}

// determiners already satisfy the article rule.
var determiners = map[string]bool{
	"a": true, "an": true, "the": true, "my": true, "your": true,
	"his": true, "her": true, "our": true, "their": true,
	"some": true, "this": true, "that": true, "more": true,
	"one": true, "two": true, "three": true, "to": true,
}
