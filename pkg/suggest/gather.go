package suggest

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tilespeak/tilespeak/pkg/adaptive"
	"github.com/tilespeak/tilespeak/pkg/intent"
	"github.com/tilespeak/tilespeak/pkg/lexicon"
	"github.com/tilespeak/tilespeak/pkg/patterns"
	"github.com/tilespeak/tilespeak/pkg/templates"
)

// Source confidences before frequency, structure and priority bonuses.
const (
	confCategory    = 0.75
	confPhraseBank  = 0.60
	confStarter     = 0.55
	confCompletion  = 0.60
	confSentence    = 0.45
	confNextWord    = 0.45
	confTenseForm   = 0.40
	confTemporal    = 0.40
	confSynonym     = 0.35
	confTopic       = 0.30
	confIntentBase  = 0.30
	hourMatchBonus  = 0.05
	tenseMatchBonus = 0.10
)

// gather runs every candidate source concurrently and merges the results
// in a fixed slot order so output is deterministic for a fixed snapshot.
type gatherer struct {
	words    []string
	req      Request
	snapshot *patterns.Snapshot
	model    *adaptive.Model
	tracker  *intent.Tracker
	now      time.Time
}

func (g *gatherer) collect(ctx context.Context) []candidate {
	sources := []func() []candidate{
		g.categoryWords,
		g.personalized,
		g.templateCompletions,
		g.fullSentences,
		g.tenseVariations,
		g.phraseCompletions,
		g.nextWords,
		g.temporalFallback,
		g.synonyms,
		g.intentCompletions,
		g.topicWords,
	}

	results := make([][]candidate, len(sources))
	eg, ctx := errgroup.WithContext(ctx)
	for i, source := range sources {
		i, source := i, source
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = source()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		// superseded by newer input
		return nil
	}

	var merged []candidate
	for _, batch := range results {
		merged = append(merged, batch...)
	}
	return merged
}

func (g *gatherer) lastWord() string {
	if len(g.words) == 0 {
		return ""
	}
	return g.words[len(g.words)-1]
}

func (g *gatherer) templateCompletions() []candidate {
	if len(g.words) == 0 {
		out := make([]candidate, 0, 8)
		for i, w := range templates.Starters() {
			out = append(out, candidate{text: w, typ: TypeCommonPhrase, confidence: confStarter - float64(i)*0.01})
		}
		return out
	}
	var out []candidate
	for i, w := range templates.CompletionsFor(g.words) {
		out = append(out, candidate{text: w, typ: TypeCommonPhrase, confidence: confPhraseBank - float64(i)*0.01})
	}
	return out
}

func (g *gatherer) categoryWords() []candidate {
	if g.req.Category == "" {
		return nil
	}
	available := g.req.CategoryVocabulary
	if len(available) == 0 {
		available = g.req.AvailableVocabulary
	}
	var out []candidate
	for i, w := range templates.CategoryWords(g.req.Category, g.lastWord(), available) {
		out = append(out, candidate{text: w, typ: TypeCategoryContextual, confidence: confCategory - float64(i)*0.01})
	}
	return out
}

func (g *gatherer) phraseCompletions() []candidate {
	if len(g.words) == 0 {
		return nil
	}
	var out []candidate
	for _, pc := range g.snapshot.PhraseCompletions(g.words, 8) {
		conf := confCompletion + boundedBonus(float64(pc.Frequency), 0.05, 0.30)
		out = append(out, candidate{text: pc.NextWord, typ: TypeCompletion, confidence: conf})
		if pc.Remainder != pc.NextWord {
			out = append(out, candidate{text: pc.Remainder, typ: TypeCompletion, confidence: conf - 0.05})
		}
	}
	return out
}

func (g *gatherer) nextWords() []candidate {
	if len(g.words) == 0 {
		return nil
	}
	var out []candidate
	for _, ww := range g.snapshot.NextWords(g.words, 8) {
		conf := confNextWord + boundedBonus(ww.Weight, 0.04, 0.25)
		if g.snapshot.UsedInHour(ww.Word, g.now.Hour()) {
			conf += hourMatchBonus
		}
		out = append(out, candidate{text: ww.Word, typ: TypeNextWord, confidence: conf})
	}
	return out
}

func (g *gatherer) tenseVariations() []candidate {
	last := g.lastWord()
	if len(last) < 3 {
		return nil
	}
	tense := lexicon.DetectTense(g.words)
	var out []candidate
	for _, form := range lexicon.Variations(last) {
		conf := confTenseForm
		if tense != lexicon.TenseUnknown && lexicon.MatchesTense(form, tense) {
			conf += tenseMatchBonus
		}
		out = append(out, candidate{text: form, typ: TypeTenseVariation, confidence: conf})
	}
	return out
}

func (g *gatherer) synonyms() []candidate {
	last := g.lastWord()
	if last == "" {
		return nil
	}
	var out []candidate
	for i, alt := range Alternatives(last, g.req.AvailableVocabulary) {
		out = append(out, candidate{text: alt, typ: TypeSynonym, confidence: confSynonym - float64(i)*0.005})
	}
	return out
}

func (g *gatherer) fullSentences() []candidate {
	var out []candidate
	for _, m := range templates.SearchSentences(g.words, g.req.Category, 5) {
		conf := confSentence + boundedBonus(m.Score, 0.04, 0.35)
		out = append(out, candidate{text: m.Sentence.Text, typ: TypeFullSentence, confidence: conf})
	}
	return out
}

func (g *gatherer) personalized() []candidate {
	pool := g.req.AvailableVocabulary
	if len(pool) == 0 {
		for _, wc := range g.model.TopSelected(20) {
			pool = append(pool, wc.Word)
		}
	}
	var out []candidate
	for _, word := range pool {
		score := g.model.ScoreForContext(word, g.words)
		if score <= 0 {
			continue
		}
		out = append(out, candidate{text: word, typ: TypePersonalized, confidence: score})
	}
	return out
}

func (g *gatherer) intentCompletions() []candidate {
	if len(g.words) == 0 {
		return nil
	}
	var out []candidate
	for _, pred := range g.tracker.PredictNext(g.words, 3) {
		for _, completion := range pred.ExampleCompletions {
			out = append(out, candidate{
				text:       completion,
				typ:        TypeGenericContextual,
				confidence: confIntentBase + 0.2*pred.Confidence,
			})
		}
	}
	return out
}

func (g *gatherer) topicWords() []candidate {
	if len(g.words) == 0 {
		return nil
	}
	var out []candidate
	for _, topic := range patterns.DetectTopics(g.words) {
		for _, w := range g.snapshot.WordsForTopic(topic, 4) {
			out = append(out, candidate{text: w, typ: TypeGenericContextual, confidence: confTopic})
		}
	}
	return out
}

func (g *gatherer) temporalFallback() []candidate {
	if len(g.words) > 0 {
		return nil
	}
	var out []candidate
	for _, pr := range g.snapshot.PhrasesForHour(g.now.Hour(), 5) {
		out = append(out, candidate{text: pr.Text, typ: TypeTemporal, confidence: confTemporal})
	}
	return out
}

// boundedBonus maps a raw signal to step*signal, capped at most.
func boundedBonus(signal, step, most float64) float64 {
	bonus := signal * step
	if bonus > most {
		return most
	}
	if bonus < 0 {
		return 0
	}
	return bonus
}
