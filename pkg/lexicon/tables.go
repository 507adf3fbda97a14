package lexicon

// verbForms holds the inflected forms of a single verb.
type verbForms struct {
	Third      string // 3rd-person singular present
	Past       string
	Participle string
	Continuous string
}

// irregularVerbs maps a base verb to its irregular inflections. Lookups
// prefer this table over the noun table when a word appears in both.
var irregularVerbs = map[string]verbForms{
	"be":    {Third: "is", Past: "was", Participle: "been", Continuous: "being"},
	"go":    {Third: "goes", Past: "went", Participle: "gone", Continuous: "going"},
	"do":    {Third: "does", Past: "did", Participle: "done", Continuous: "doing"},
	"have":  {Third: "has", Past: "had", Participle: "had", Continuous: "having"},
	"eat":   {Third: "eats", Past: "ate", Participle: "eaten", Continuous: "eating"},
	"drink": {Third: "drinks", Past: "drank", Participle: "drunk", Continuous: "drinking"},
	"get":   {Third: "gets", Past: "got", Participle: "gotten", Continuous: "getting"},
	"give":  {Third: "gives", Past: "gave", Participle: "given", Continuous: "giving"},
	"take":  {Third: "takes", Past: "took", Participle: "taken", Continuous: "taking"},
	"make":  {Third: "makes", Past: "made", Participle: "made", Continuous: "making"},
	"come":  {Third: "comes", Past: "came", Participle: "come", Continuous: "coming"},
	"see":   {Third: "sees", Past: "saw", Participle: "seen", Continuous: "seeing"},
	"say":   {Third: "says", Past: "said", Participle: "said", Continuous: "saying"},
	"know":  {Third: "knows", Past: "knew", Participle: "known", Continuous: "knowing"},
	"think": {Third: "thinks", Past: "thought", Participle: "thought", Continuous: "thinking"},
	"feel":  {Third: "feels", Past: "felt", Participle: "felt", Continuous: "feeling"},
	"find":  {Third: "finds", Past: "found", Participle: "found", Continuous: "finding"},
	"tell":  {Third: "tells", Past: "told", Participle: "told", Continuous: "telling"},
	"put":   {Third: "puts", Past: "put", Participle: "put", Continuous: "putting"},
	"run":   {Third: "runs", Past: "ran", Participle: "run", Continuous: "running"},
	"sit":   {Third: "sits", Past: "sat", Participle: "sat", Continuous: "sitting"},
	"stand": {Third: "stands", Past: "stood", Participle: "stood", Continuous: "standing"},
	"sleep": {Third: "sleeps", Past: "slept", Participle: "slept", Continuous: "sleeping"},
	"buy":   {Third: "buys", Past: "bought", Participle: "bought", Continuous: "buying"},
	"bring": {Third: "brings", Past: "brought", Participle: "brought", Continuous: "bringing"},
	"read":  {Third: "reads", Past: "read", Participle: "read", Continuous: "reading"},
	"write": {Third: "writes", Past: "wrote", Participle: "written", Continuous: "writing"},
	"sing":  {Third: "sings", Past: "sang", Participle: "sung", Continuous: "singing"},
	"swim":  {Third: "swims", Past: "swam", Participle: "swum", Continuous: "swimming"},
	"play":  {Third: "plays", Past: "played", Participle: "played", Continuous: "playing"},
	"want":  {Third: "wants", Past: "wanted", Participle: "wanted", Continuous: "wanting"},
	"need":  {Third: "needs", Past: "needed", Participle: "needed", Continuous: "needing"},
	"like":  {Third: "likes", Past: "liked", Participle: "liked", Continuous: "liking"},
	"love":  {Third: "loves", Past: "loved", Participle: "loved", Continuous: "loving"},
	"help":  {Third: "helps", Past: "helped", Participle: "helped", Continuous: "helping"},
}

// irregularPlurals maps singular nouns to irregular plural forms.
var irregularPlurals = map[string]string{
	"child":  "children",
	"person": "people",
	"man":    "men",
	"woman":  "women",
	"foot":   "feet",
	"tooth":  "teeth",
	"mouse":  "mice",
	"goose":  "geese",
	"sheep":  "sheep",
	"fish":   "fish",
	"deer":   "deer",
	"leaf":   "leaves",
	"knife":  "knives",
	"life":   "lives",
	"toy":    "toys",
}

// irregularComparatives maps adjectives with suppletive comparison forms.
var irregularComparatives = map[string][2]string{
	"good":   {"better", "best"},
	"bad":    {"worse", "worst"},
	"far":    {"farther", "farthest"},
	"little": {"less", "least"},
	"many":   {"more", "most"},
	"much":   {"more", "most"},
}

// pastTenseIndex maps every irregular past/participle form back to its base.
// Built once from irregularVerbs.
var pastTenseIndex = func() map[string]string {
	idx := make(map[string]string, len(irregularVerbs)*2)
	for base, forms := range irregularVerbs {
		idx[forms.Past] = base
		idx[forms.Participle] = base
	}
	return idx
}()

// inflectionIndex maps every irregular verb form back to its base.
var inflectionIndex = func() map[string]string {
	idx := make(map[string]string, len(irregularVerbs)*4)
	for base, forms := range irregularVerbs {
		idx[forms.Third] = base
		idx[forms.Past] = base
		idx[forms.Participle] = base
		idx[forms.Continuous] = base
	}
	return idx
}()

// pluralIndex maps irregular plurals back to singular.
var pluralIndex = func() map[string]string {
	idx := make(map[string]string, len(irregularPlurals))
	for singular, plural := range irregularPlurals {
		idx[plural] = singular
	}
	return idx
}()

// pastMarkers are temporal adverbs and auxiliaries signalling past tense.
var pastMarkers = map[string]bool{
	"yesterday": true, "was": true, "were": true, "did": true,
	"ago": true, "before": true, "earlier": true,
}

// futureMarkers signal future tense.
var futureMarkers = map[string]bool{
	"will": true, "tomorrow": true, "later": true, "soon": true,
	"tonight": true, "gonna": true,
}

// presentMarkers signal present tense.
var presentMarkers = map[string]bool{
	"now": true, "today": true, "currently": true,
}

// commonAdjectives gates comparative/superlative generation and the
// adjective heuristics for words with no telling suffix.
var commonAdjectives = map[string]bool{
	"good": true, "bad": true, "big": true, "small": true, "happy": true,
	"sad": true, "hot": true, "cold": true, "fast": true, "slow": true,
	"loud": true, "quiet": true, "hungry": true, "thirsty": true,
	"tired": true, "sick": true, "angry": true, "scared": true,
	"funny": true, "nice": true, "new": true, "old": true, "tall": true,
	"short": true, "clean": true, "dirty": true, "wet": true, "dry": true,
	"soft": true, "hard": true, "full": true, "empty": true,
}
