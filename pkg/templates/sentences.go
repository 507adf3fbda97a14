package templates

// FrequencyTier buckets canonical sentences by how often AAC users reach
// for them.
type FrequencyTier int

const (
	TierLow FrequencyTier = iota
	TierMedium
	TierHigh
)

// CanonicalSentence is one entry in the static full-sentence bank.
type CanonicalSentence struct {
	Text     string
	Category string
	Tier     FrequencyTier
}

var sentenceBank = []CanonicalSentence{
	{"i want water", "food", TierHigh},
	{"i want more please", "food", TierHigh},
	{"i am hungry", "food", TierHigh},
	{"i am thirsty", "food", TierHigh},
	{"i want a snack", "food", TierMedium},
	{"i don't like this", "food", TierMedium},
	{"can i have juice", "food", TierMedium},
	{"i am all done", "food", TierHigh},

	{"i want to play", "play", TierHigh},
	{"can i play outside", "play", TierMedium},
	{"it is my turn", "play", TierHigh},
	{"let's play together", "play", TierMedium},
	{"i want my toy", "play", TierMedium},

	{"i feel happy", "feelings", TierHigh},
	{"i feel sad", "feelings", TierHigh},
	{"i am tired", "feelings", TierHigh},
	{"i am scared", "feelings", TierMedium},
	{"i need a break", "feelings", TierHigh},
	{"i don't feel good", "feelings", TierMedium},

	{"i need help", "help", TierHigh},
	{"help me please", "help", TierHigh},
	{"i need the bathroom", "help", TierHigh},
	{"please stop", "help", TierMedium},
	{"something is wrong", "help", TierLow},

	{"i want to go home", "home", TierHigh},
	{"i want to watch tv", "home", TierMedium},
	{"i want to go to bed", "home", TierMedium},

	{"where is mom", "family", TierHigh},
	{"i want mom", "family", TierHigh},
	{"i love you", "family", TierHigh},
	{"can we call dad", "family", TierLow},

	{"i want to read", "school", TierMedium},
	{"i am finished", "school", TierMedium},
	{"i don't understand", "school", TierMedium},
	{"can you help me", "school", TierHigh},

	{"hello how are you", "", TierHigh},
	{"thank you very much", "", TierHigh},
	{"yes please", "", TierHigh},
	{"no thank you", "", TierHigh},
	{"good morning", "", TierMedium},
	{"see you later", "", TierMedium},
}

// additive score weights for sentence search
const (
	prefixBonus      = 3.0
	keywordBonus     = 1.0
	tierBonusHigh    = 1.5
	tierBonusMedium  = 0.75
	categoryBonus    = 0.5
	maxSentenceScore = 10.0
)

func tierBonus(tier FrequencyTier) float64 {
	switch tier {
	case TierHigh:
		return tierBonusHigh
	case TierMedium:
		return tierBonusMedium
	}
	return 0
}
