// Package postprocess removes common LLM artifacts from single-verse output.
//
// Chapter-level responses are structured JSON and go through the response
// package instead; this package handles the plain-text replies produced by
// verse-granularity prompts.
package postprocess

import (
	"regexp"
	"strings"
)

// Clean removes LLM artifacts from a verse reply in four phases and returns
// the trimmed result:
//  1. Thinking / reasoning block removal
//  2. Instruction echo removal (prompt leakage)
//  3. Quote wrapping removal
//  4. Verse-label removal ("Verse 3:", "3.")
//
// Quotes are stripped before labels because models that quote the verse put
// the copied label inside the quotes.
func Clean(text string) string {
	text = removeThinkingBlocks(text)
	text = removeInstructionEchoes(text)
	text = removeQuoteWrapping(text)
	text = removeVerseLabels(text)
	return strings.TrimSpace(text)
}

// --- Phase 1: thinking blocks ---

// thinkingBlockRe matches complete <thinking>…</thinking> style blocks.
// Each tag variant is listed explicitly because Go's RE2 engine does not
// support backreferences.
var thinkingBlockRe = regexp.MustCompile(
	`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>|<reflection>.*?</reflection>`,
)

// truncatedThinkingRe matches an opened thinking tag whose closing tag is
// missing (the model was cut off mid-thought).
var truncatedThinkingRe = regexp.MustCompile(
	`(?is)(?:<thinking>|<think>|<reasoning>|<reflection>).*$`,
)

func removeThinkingBlocks(text string) string {
	text = thinkingBlockRe.ReplaceAllString(text, "")
	text = truncatedThinkingRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// --- Phase 2: instruction echoes ---

// echoPatterns match introductory phrases models prepend even when told not
// to. Each is anchored to the start and requires a colon to reduce false
// positives on legitimate content.
var echoPatterns = []*regexp.Regexp{
	// "Here is / Here's [the] [rewritten|stylized|translated] verse:"
	regexp.MustCompile(`(?i)^here(?:'s| is)(?: the)? (?:rewritten |stylized |translated )?(?:verse|rewrite|text)\s*:`),
	// "[The] [rewritten|stylized] verse:"
	regexp.MustCompile(`(?i)^(?:the )?(?:rewritten |stylized )?(?:verse|rewrite)\s*:`),
	// "Certainly / Sure / Of course[,] here is the verse:"
	regexp.MustCompile(`(?i)^(?:certainly|sure|of course)[,.]? here(?:'s| is)(?: the)? (?:rewritten |stylized )?(?:verse|rewrite|text)\s*:`),
}

func removeInstructionEchoes(text string) string {
	for _, re := range echoPatterns {
		if loc := re.FindStringIndex(text); loc != nil && loc[0] == 0 {
			text = strings.TrimSpace(text[loc[1]:])
		}
	}
	return text
}

// --- Phase 3: quote wrapping ---

// removeQuoteWrapping strips a matching pair of outer quotes when the entire
// text is wrapped in them (a common LLM artifact). Supported pairs:
//
//	"…"  '…'  «…»  "…"  '…'
func removeQuoteWrapping(text string) string {
	runes := []rune(text)
	n := len(runes)
	if n < 2 {
		return text
	}
	first, last := runes[0], runes[n-1]
	if (first == '"' && last == '"') ||
		(first == '\'' && last == '\'') ||
		(first == '«' && last == '»') ||
		(first == '“' && last == '”') ||
		(first == '‘' && last == '’') {
		return strings.TrimSpace(string(runes[1 : n-1]))
	}
	return text
}

// --- Phase 4: verse labels ---

// verseLabelRe matches a leading "Verse 12:" or "12." label that the model
// copied from the prompt's numbered format.
var verseLabelRe = regexp.MustCompile(`(?i)^(?:verse\s+)?\d{1,3}\s*[:.]\s+`)

func removeVerseLabels(text string) string {
	return verseLabelRe.ReplaceAllString(text, "")
}
