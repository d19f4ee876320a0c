// Package response parses, repairs, and validates the LLM's chapter payloads.
//
// Repair is a pipeline of independent steps, each addressing one documented
// LLM failure mode, applied before any parse attempt:
//  1. Markdown fence stripping
//  2. Trimming to the outermost JSON object
//  3. Trailing-comma removal
package response

import (
	"regexp"
	"strings"
)

// --- Step 1: markdown fences ---

var (
	openFenceRe  = regexp.MustCompile("```(?:json)?\\s*")
	closeFenceRe = regexp.MustCompile("```\\s*$")
)

// StripFences removes markdown code-fence markers the model was told not to
// emit but often does anyway.
func StripFences(s string) string {
	s = openFenceRe.ReplaceAllString(s, "")
	s = closeFenceRe.ReplaceAllString(s, "")
	return s
}

// --- Step 2: outermost object ---

// TrimToBraces cuts leading and trailing prose by keeping only the span from
// the first '{' to the last '}'. Returns "" when no object is present.
func TrimToBraces(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return s[start : end+1]
}

// --- Step 3: trailing commas ---

var (
	trailingCommaObjRe = regexp.MustCompile(`,\s*}`)
	trailingCommaArrRe = regexp.MustCompile(`,\s*]`)
)

// DropTrailingCommas removes commas immediately before a closing bracket, a
// syntax error strict JSON decoders reject.
func DropTrailingCommas(s string) string {
	s = trailingCommaObjRe.ReplaceAllString(s, "}")
	return trailingCommaArrRe.ReplaceAllString(s, "]")
}

// Repair runs the full pipeline. Returns "" when no JSON object can be
// located in the input.
func Repair(raw string) string {
	s := StripFences(raw)
	s = TrimToBraces(s)
	if s == "" {
		return ""
	}
	return DropTrailingCommas(s)
}
