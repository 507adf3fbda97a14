// Package suggest is the core of the engine: it gathers next-word and
// sentence candidates from every knowledge source, deduplicates near-twins,
// scores what survives and returns a ranked, bounded list.
package suggest

// Type labels which knowledge source produced a suggestion. The label also
// carries a ranking priority used as the scoring tiebreaker.
type Type string

const (
	TypeCategoryContextual Type = "category-contextual"
	TypePersonalized       Type = "personalized"
	TypeCommonPhrase       Type = "common-phrase"
	TypeFullSentence       Type = "full-sentence"
	TypeTenseVariation     Type = "tense-variation"
	TypeCompletion         Type = "completion"
	TypeNextWord           Type = "next-word"
	TypeTemporal           Type = "temporal"
	TypeSynonym            Type = "synonym"
	TypeGenericContextual  Type = "generic-contextual"
)

var typePriority = map[Type]int{
	TypeCategoryContextual: 10,
	TypePersonalized:       9,
	TypeCommonPhrase:       8,
	TypeFullSentence:       7,
	TypeTenseVariation:     6,
	TypeCompletion:         5,
	TypeNextWord:           4,
	TypeTemporal:           3,
	TypeSynonym:            2,
	TypeGenericContextual:  1,
}

// Priority exposes the ranking weight of a suggestion type.
func Priority(t Type) int {
	return typePriority[t]
}

// Suggestion is one ranked candidate handed back to the host application.
type Suggestion struct {
	Text       string  `msgpack:"text" json:"text"`
	Type       Type    `msgpack:"type" json:"type"`
	Confidence float64 `msgpack:"confidence" json:"confidence"`
}

// Request is one suggestion query.
type Request struct {
	CurrentWords        []string
	AvailableVocabulary []string
	MaxResults          int
	Category            string
	CategoryVocabulary  []string
}

// candidate is a pre-ranking suggestion with its internal score.
type candidate struct {
	text       string
	typ        Type
	confidence float64
	score      float64
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
