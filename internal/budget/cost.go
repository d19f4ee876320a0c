package budget

import (
	"github.com/ford-at-home/alt-bible/internal/corpus"
	"github.com/ford-at-home/alt-bible/internal/persona"
)

// Pricing is a model's per-1M-token price in USD.
type Pricing struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// markup covers request overhead not captured by token prices.
const markup = 0.10

// defaultPricingModel is charged for models absent from the table, so an
// unknown model id still yields a usable (if rough) estimate.
const defaultPricingModel = "us.deepseek.r1-v1:0"

var defaultPricing = map[string]Pricing{
	"us.deepseek.r1-v1:0":                      {InputPerMTok: 0.14, OutputPerMTok: 0.56},
	"anthropic.claude-3-haiku-20240307-v1:0":   {InputPerMTok: 0.25, OutputPerMTok: 1.25},
	"anthropic.claude-3-sonnet-20240229-v1:0":  {InputPerMTok: 3.00, OutputPerMTok: 15.00},
	"meta.llama2-70b-chat-v1":                  {InputPerMTok: 0.65, OutputPerMTok: 2.60},
}

// Calculator turns token counts into advisory dollar estimates. The result is
// never persisted as authoritative; it exists for pre-flight confirmation.
type Calculator struct {
	pricing map[string]Pricing
}

// NewCalculator returns a calculator with the built-in price table, extended
// by overrides (model id → pricing) from configuration.
func NewCalculator(overrides map[string]Pricing) *Calculator {
	pricing := make(map[string]Pricing, len(defaultPricing)+len(overrides))
	for model, p := range defaultPricing {
		pricing[model] = p
	}
	for model, p := range overrides {
		pricing[model] = p
	}
	return &Calculator{pricing: pricing}
}

// Cost returns the estimated USD cost for a token volume on a model, and
// whether the model was found in the price table.
func (c *Calculator) Cost(inputTokens, outputTokens int, model string) (float64, bool) {
	pricing, known := c.pricing[model]
	if !known {
		pricing = c.pricing[defaultPricingModel]
	}
	base := float64(inputTokens)/1_000_000*pricing.InputPerMTok +
		float64(outputTokens)/1_000_000*pricing.OutputPerMTok
	return base * (1 + markup), known
}

// Method records how a chapter will be translated.
type Method string

const (
	MethodChapter Method = "chapter"
	MethodVerse   Method = "verse"
)

// Plan is a pre-flight projection for a set of chapters.
type Plan struct {
	TotalInputTokens  int
	TotalOutputTokens int
	CostUSD           float64
	ModelKnown        bool
	Methods           map[string]Method // keyed by ChapterRef.Key()
	ChapterCount      int
}

// EstimatePlan walks the chapters, routes each through the decision engine,
// and totals the projected token volume and cost.
func EstimatePlan(e *Engine, calc *Calculator, c corpus.Corpus, refs []corpus.ChapterRef, reg *persona.Registry, personaKey, intensity, model string) Plan {
	plan := Plan{
		Methods:      make(map[string]Method, len(refs)),
		ChapterCount: len(refs),
	}

	p, _ := reg.Get(personaKey)

	for _, ref := range refs {
		verses := c.Verses(ref)
		var input, output int
		if e.ShouldTranslateChapter(ref.Book, ref.Chapter, verses, p, personaKey, intensity) {
			input, output = e.EstimateChapter(ref.Book, ref.Chapter, verses, p, personaKey, intensity)
			plan.Methods[ref.Key()] = MethodChapter
		} else {
			input, output = e.EstimateVerses(ref.Book, ref.Chapter, verses, p, personaKey)
			plan.Methods[ref.Key()] = MethodVerse
		}
		plan.TotalInputTokens += input
		plan.TotalOutputTokens += output
	}

	plan.CostUSD, plan.ModelKnown = calc.Cost(plan.TotalInputTokens, plan.TotalOutputTokens, model)
	return plan
}
