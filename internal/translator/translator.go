// Package translator runs the request/validate/retry cycle for one
// translation unit, either a whole chapter or a single verse.
//
// Rate-limit recovery and content-quality recovery are separate policies:
// backoff applies only to rate-limit outcomes, validation failures retry
// immediately, and both share one attempt budget. When the budget is gone the
// translator produces a deterministic fallback instead of a hole in the
// corpus.
package translator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ford-at-home/alt-bible/internal/corpus"
	"github.com/ford-at-home/alt-bible/internal/llm"
	"github.com/ford-at-home/alt-bible/internal/persona"
	"github.com/ford-at-home/alt-bible/internal/postprocess"
	"github.com/ford-at-home/alt-bible/internal/prompt"
	"github.com/ford-at-home/alt-bible/internal/response"
)

// Method records how a unit's text was produced. Fallback entries are
// degraded output and must stay identifiable downstream.
type Method string

const (
	MethodChapter  Method = "chapter"
	MethodVerse    Method = "verse"
	MethodFallback Method = "fallback"
)

// RetryPolicy bounds content-quality retries: attempts include the first try.
type RetryPolicy struct {
	MaxAttempts int
}

// BackoffPolicy tunes rate-limit recovery: the delay before attempt n+1 is
// BaseDelay × 2^n.
type BackoffPolicy struct {
	BaseDelay time.Duration
}

var (
	DefaultRetry   = RetryPolicy{MaxAttempts: 3}
	DefaultBackoff = BackoffPolicy{BaseDelay: 5 * time.Second}
)

// Result is a complete, shape-correct translation of one chapter's verses.
type Result struct {
	Verses map[string]string
	Method Method
	// FallbackVerses lists verse ids that degraded to the deterministic
	// substitution on the verse-by-verse path.
	FallbackVerses []string
	Model          string
	InputTokens    int
	OutputTokens   int
	Attempts       int
}

// DegradedSet returns the fallback verse ids as a set for metadata tagging.
func (r *Result) DegradedSet() map[string]bool {
	if r.Method == MethodFallback {
		set := make(map[string]bool, len(r.Verses))
		for id := range r.Verses {
			set[id] = true
		}
		return set
	}
	set := make(map[string]bool, len(r.FallbackVerses))
	for _, id := range r.FallbackVerses {
		set[id] = true
	}
	return set
}

// Translator orchestrates LLM calls for single units.
type Translator struct {
	Invoker   llm.Invoker
	Registry  *persona.Registry
	Model     string
	Intensity string
	Retry     RetryPolicy
	Backoff   BackoffPolicy
	// VerseDelay spaces successive verse-level calls as a conservative
	// safeguard independent of the transport's own backoff.
	VerseDelay time.Duration
}

// New returns a Translator with the default policies applied where zero.
func New(invoker llm.Invoker, reg *persona.Registry, model, intensity string) *Translator {
	return &Translator{
		Invoker:    invoker,
		Registry:   reg,
		Model:      model,
		Intensity:  intensity,
		Retry:      DefaultRetry,
		Backoff:    DefaultBackoff,
		VerseDelay: 100 * time.Millisecond,
	}
}

func (t *Translator) lookup(personaKey string) *persona.Persona {
	if t.Registry == nil {
		return nil
	}
	p, err := t.Registry.Get(personaKey)
	if err != nil {
		return nil
	}
	return p
}

// TranslateChapter submits the whole chapter as one strict-JSON request.
// It returns an error only on context cancellation; transport and validation
// failures degrade to the deterministic fallback after the attempt budget.
func (t *Translator) TranslateChapter(ctx context.Context, book, chapter string, verses map[string]string, personaKey string) (*Result, error) {
	p := t.lookup(personaKey)
	chapterPrompt := prompt.BuildChapter(book, chapter, verses, p, personaKey, t.Intensity)

	result := &Result{Method: MethodChapter, Model: t.Model}

	for attempt := 0; attempt < t.Retry.MaxAttempts; attempt++ {
		result.Attempts = attempt + 1

		resp, err := t.Invoker.Invoke(ctx, llm.Request{Model: t.Model, Prompt: chapterPrompt})
		if err != nil {
			if errors.Is(err, llm.ErrRateLimited) {
				fmt.Fprintf(os.Stderr, "Rate limited on %s %s (attempt %d/%d), backing off\n", book, chapter, attempt+1, t.Retry.MaxAttempts)
				if serr := t.sleepBackoff(ctx, attempt); serr != nil {
					return nil, serr
				}
				continue
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// Non-retryable transport failure. Repetition will not help.
			fmt.Fprintf(os.Stderr, "Transport failure on %s %s: %v\n", book, chapter, err)
			break
		}

		result.InputTokens += resp.InputTokens
		result.OutputTokens += resp.OutputTokens

		validated, verr := response.ValidateAndRepair(resp.Text, verses)
		if verr == nil {
			if len(validated.Dropped) > 0 {
				fmt.Fprintf(os.Stderr, "Dropped extra verses from %s %s: %s\n", book, chapter, strings.Join(validated.Dropped, ", "))
			}
			result.Verses = validated.Verses
			return result, nil
		}
		fmt.Fprintf(os.Stderr, "Validation failed for %s %s (attempt %d/%d): %v\n", book, chapter, attempt+1, t.Retry.MaxAttempts, verr)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	fmt.Fprintf(os.Stderr, "Using fallback for %s %s after %d attempts\n", book, chapter, result.Attempts)
	result.Method = MethodFallback
	result.Verses = Fallback(verses, p)
	return result, nil
}

// TranslateVerses decomposes the chapter into one request per verse, in
// ascending numeric order, and merges the results. Every verse that exhausts
// its attempt budget falls back deterministically, so the merged map always
// covers the full verse set unless the context is cancelled.
func (t *Translator) TranslateVerses(ctx context.Context, book, chapter string, verses map[string]string, personaKey string) (*Result, error) {
	p := t.lookup(personaKey)

	result := &Result{
		Method: MethodVerse,
		Model:  t.Model,
		Verses: make(map[string]string, len(verses)),
	}

	ids := corpus.VerseIDs(verses)
	for i, id := range ids {
		if i > 0 && t.VerseDelay > 0 {
			if err := sleepCtx(ctx, t.VerseDelay); err != nil {
				return nil, err
			}
		}

		text, attempts, err := t.translateVerse(ctx, book, chapter, id, verses[id], p, personaKey, result)
		if err != nil {
			return nil, err
		}
		result.Attempts += attempts
		if text == "" {
			fmt.Fprintf(os.Stderr, "Using fallback for %s %s:%s\n", book, chapter, id)
			text = fallbackVerse(verses[id], p)
			result.FallbackVerses = append(result.FallbackVerses, id)
		}
		result.Verses[id] = text
	}

	if len(result.Verses) != len(verses) {
		return nil, fmt.Errorf("verse merge incomplete for %s %s: got %d of %d", book, chapter, len(result.Verses), len(verses))
	}
	return result, nil
}

// translateVerse runs the attempt loop for one verse. An empty returned text
// means the budget was exhausted; only cancellation produces an error.
func (t *Translator) translateVerse(ctx context.Context, book, chapter, id, text string, p *persona.Persona, personaKey string, result *Result) (string, int, error) {
	versePrompt := prompt.BuildVerse(book, chapter, id, text, p, personaKey)

	attempts := 0
	for attempt := 0; attempt < t.Retry.MaxAttempts; attempt++ {
		attempts = attempt + 1

		resp, err := t.Invoker.Invoke(ctx, llm.Request{Model: t.Model, Prompt: versePrompt, MaxTokens: 300})
		if err != nil {
			if errors.Is(err, llm.ErrRateLimited) {
				if serr := t.sleepBackoff(ctx, attempt); serr != nil {
					return "", attempts, serr
				}
				continue
			}
			if ctx.Err() != nil {
				return "", attempts, ctx.Err()
			}
			break
		}

		result.InputTokens += resp.InputTokens
		result.OutputTokens += resp.OutputTokens

		if cleaned := postprocess.Clean(resp.Text); cleaned != "" {
			return cleaned, attempts, nil
		}
	}

	if ctx.Err() != nil {
		return "", attempts, ctx.Err()
	}
	return "", attempts, nil
}

// Fallback is the deterministic, non-LLM substitution: persona prefix plus
// the lowercased original, applied independently to every verse. It trades
// fidelity for pipeline completeness and is tagged MethodFallback so
// downstream consumers can identify degraded entries.
func Fallback(verses map[string]string, p *persona.Persona) map[string]string {
	out := make(map[string]string, len(verses))
	for id, text := range verses {
		out[id] = fallbackVerse(text, p)
	}
	return out
}

func fallbackVerse(text string, p *persona.Persona) string {
	prefix := ""
	if p != nil {
		prefix = p.FallbackPrefix
	}
	return prefix + strings.ToLower(text)
}

func (t *Translator) sleepBackoff(ctx context.Context, attempt int) error {
	return sleepCtx(ctx, t.Backoff.BaseDelay*(1<<attempt))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
