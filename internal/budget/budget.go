// Package budget decides whether a chapter fits into one model call and
// estimates the dollar cost of a run before it starts.
package budget

import (
	"github.com/ford-at-home/alt-bible/internal/corpus"
	"github.com/ford-at-home/alt-bible/internal/persona"
	"github.com/ford-at-home/alt-bible/internal/prompt"
	"github.com/ford-at-home/alt-bible/internal/tokens"
)

// DefaultSafetyFactor reserves 20% of the model's window for estimation error
// and model-side formatting overhead. Configurable per model.
const DefaultSafetyFactor = 0.8

// Engine compares estimated chapter cost against a model's safe capacity.
type Engine struct {
	MaxModelTokens int
	SafetyFactor   float64
}

// NewEngine returns an engine with the default safety factor applied when
// factor is not positive.
func NewEngine(maxModelTokens int, factor float64) *Engine {
	if factor <= 0 {
		factor = DefaultSafetyFactor
	}
	return &Engine{MaxModelTokens: maxModelTokens, SafetyFactor: factor}
}

// EstimateChapter returns the projected (input, output) token counts for
// translating the chapter as one unit. p may be nil for unconfigured
// personas; the default expansion ratio applies.
func (e *Engine) EstimateChapter(book, chapter string, verses map[string]string, p *persona.Persona, personaKey, intensity string) (int, int) {
	input := tokens.Estimate(prompt.BuildChapter(book, chapter, verses, p, personaKey, intensity))

	ratio := persona.DefaultExpansionRatio
	if p != nil && p.ExpansionRatio > 0 {
		ratio = p.ExpansionRatio
	}
	return input, tokens.EstimateOutput(input, ratio)
}

// ShouldTranslateChapter reports whether the chapter fits within the model's
// safe token limit as a single request. False means the caller must decompose
// into verse-level units.
func (e *Engine) ShouldTranslateChapter(book, chapter string, verses map[string]string, p *persona.Persona, personaKey, intensity string) bool {
	input, output := e.EstimateChapter(book, chapter, verses, p, personaKey, intensity)
	safeLimit := float64(e.MaxModelTokens) * e.SafetyFactor
	return float64(input+output) <= safeLimit
}

// EstimateVerses returns projected (input, output) token totals for
// translating the chapter verse by verse.
func (e *Engine) EstimateVerses(book, chapter string, verses map[string]string, p *persona.Persona, personaKey string) (int, int) {
	var input, output int
	for _, id := range corpus.VerseIDs(verses) {
		input += tokens.Estimate(prompt.BuildVerse(book, chapter, id, verses[id], p, personaKey))
		output += tokens.EstimateOutput(tokens.Estimate(verses[id]), persona.DefaultExpansionRatio)
	}
	return input, output
}
