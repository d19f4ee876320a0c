// Package prompt renders the request payloads sent to the LLM.
//
// The chapter prompt over-specifies its output format on purpose: the LLM is
// not a contract-checked system, so the only way to keep downstream parse
// failures rare is to spell out the exact JSON shape, forbid markdown fencing,
// and forbid prose outside the payload.
package prompt

import (
	"fmt"
	"strings"

	"github.com/ford-at-home/alt-bible/internal/corpus"
	"github.com/ford-at-home/alt-bible/internal/persona"
)

// BuildChapter renders the strict-JSON chapter prompt. p may be nil, in which
// case a generic "You are {personaKey}" context block is used.
func BuildChapter(book, chapter string, verses map[string]string, p *persona.Persona, personaKey, intensity string) string {
	var sb strings.Builder

	sb.WriteString(styleBlock(p, personaKey, intensity))
	sb.WriteString(outputContract(book, chapter, verses, personaKey))
	sb.WriteString("\n\nChapter text:\n")
	sb.WriteString(FormatChapter(book, chapter, verses))

	return sb.String()
}

// BuildVerse renders a single-verse prompt with rich persona context. The
// response is expected as plain text, not JSON.
func BuildVerse(book, chapter, verseID, text string, p *persona.Persona, personaKey string) string {
	var sb strings.Builder

	if p != nil {
		sb.WriteString(fmt.Sprintf("You are %s (%s).\n\n", p.DisplayName, personaKey))
		if p.Description != "" {
			sb.WriteString(fmt.Sprintf("Background: %s\n", p.Description))
		}
		if p.Style != "" {
			sb.WriteString(fmt.Sprintf("Style: %s\n", p.Style))
		}
		if len(p.Catchphrases) > 0 {
			sb.WriteString(fmt.Sprintf("Characteristic phrases: %s\n", strings.Join(p.Catchphrases, ", ")))
		}
		sb.WriteString("\nRewrite this single verse in your authentic voice, maintaining your characteristic style and personality:\n\n")
	} else {
		sb.WriteString(fmt.Sprintf("You are %s. Rewrite this single verse in your voice:\n\n", personaKey))
	}

	sb.WriteString(fmt.Sprintf("%s %s:%s - %s\n\n", book, chapter, verseID, text))
	sb.WriteString("Return only the rewritten verse:")

	return sb.String()
}

// FormatChapter renders the chapter as a numbered list in ascending verse
// order, the form embedded into prompts and used for token estimation.
func FormatChapter(book, chapter string, verses map[string]string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %s:\n", book, chapter))
	for _, id := range corpus.VerseIDs(verses) {
		sb.WriteString(fmt.Sprintf("%s. %s\n", id, verses[id]))
	}
	return strings.TrimSpace(sb.String())
}

func styleBlock(p *persona.Persona, personaKey, intensity string) string {
	if p == nil {
		return fmt.Sprintf("Context: You are %s.\n\n", personaKey)
	}
	return fmt.Sprintf("Context: %s\n\n", p.Instruction(intensity).System)
}

// outputContract is the load-bearing part of the chapter prompt: a single
// JSON object, exactly the given verse keys, no extras, no fences, no prose.
func outputContract(book, chapter string, verses map[string]string, personaKey string) string {
	ids := corpus.VerseIDs(verses)
	maxVerse := ""
	if len(ids) > 0 {
		maxVerse = ids[len(ids)-1]
	}

	return fmt.Sprintf(`You are generating a stylized rewrite of a chapter using a given persona.

This output will be parsed and inserted into a database. Any deviation from the required structure will break downstream ingestion.

You must:
1. Preserve all verse numbers from the original chapter.
2. Return a single JSON object in the exact format below.
3. Avoid wrapping the output in markdown, code blocks, or any additional commentary.

The required JSON format is:

{
  "book": "%s",
  "chapter": %s,
  "verses": {
    "1": "Stylized verse 1 in the requested persona voice...",
    "...": "...",
    "%s": "Last verse in this chapter."
  }
}

Do not add any extra keys, omit any verse numbers, or generate prose outside the "verses" object. Verse numbers must remain string keys.

Now return the stylized rewrite of %s chapter %s in the voice of %s.`,
		book, chapter, maxVerse, book, chapter, personaKey)
}
