// Package tokens approximates model token counts for budgeting decisions.
//
// The estimate is a documented heuristic (~4 bytes per token) usable only for
// threshold comparisons, never as an exact count. Callers must treat it as an
// upper-level routing signal: longer text always yields a proportionally
// larger estimate.
package tokens

// bytesPerToken is the rough English-text ratio. Models tokenize denser
// scripts differently, but the budget engine's safety factor absorbs that.
const bytesPerToken = 4

// Estimate returns an approximate token count for text. It is deterministic,
// non-negative, and returns 0 only for empty text.
func Estimate(text string) int {
	n := len(text)
	if n == 0 {
		return 0
	}
	return (n + bytesPerToken - 1) / bytesPerToken
}

// EstimateOutput projects how many tokens a model will emit when rewriting
// input estimated at inputTokens, given a persona expansion ratio.
func EstimateOutput(inputTokens int, expansionRatio float64) int {
	if inputTokens <= 0 {
		return 0
	}
	if expansionRatio <= 0 {
		return inputTokens
	}
	return int(float64(inputTokens) * expansionRatio)
}
