package translator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/ford-at-home/alt-bible/internal/llm"
	"github.com/ford-at-home/alt-bible/internal/persona"
)

// stubInvoker replays a scripted sequence of responses and errors.
type stubInvoker struct {
	script  []stubStep
	calls   int
	prompts []string
}

type stubStep struct {
	text string
	err  error
}

func (s *stubInvoker) Name() string { return "stub" }

func (s *stubInvoker) Invoke(ctx context.Context, req llm.Request) (*llm.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.prompts = append(s.prompts, req.Prompt)
	step := s.script[len(s.script)-1]
	if s.calls < len(s.script) {
		step = s.script[s.calls]
	}
	s.calls++
	if step.err != nil {
		return nil, step.err
	}
	return &llm.Response{Text: step.text, InputTokens: 10, OutputTokens: 5}, nil
}

var testVerses = map[string]string{
	"1": "In the beginning God created the heaven and the earth.",
	"2": "And God said, Let there be light: and there was light.",
}

const goodChapterJSON = `{"book": "Genesis", "chapter": 1, "verses": {"1": "Dude, creation happened.", "2": "And then, light, man."}}`

func newTestTranslator(inv llm.Invoker) *Translator {
	reg, _ := persona.Load("")
	t := New(inv, reg, "test-model", persona.IntensityMedium)
	t.Backoff = BackoffPolicy{BaseDelay: time.Millisecond}
	t.VerseDelay = 0
	return t
}

func TestTranslateChapter_Success(t *testing.T) {
	stub := &stubInvoker{script: []stubStep{{text: goodChapterJSON}}}
	tr := newTestTranslator(stub)

	res, err := tr.TranslateChapter(context.Background(), "Genesis", "1", testVerses, "joe_rogan")
	if err != nil {
		t.Fatalf("TranslateChapter: %v", err)
	}
	if res.Method != MethodChapter {
		t.Errorf("Method = %s, want chapter", res.Method)
	}
	want := map[string]string{"1": "Dude, creation happened.", "2": "And then, light, man."}
	if !reflect.DeepEqual(res.Verses, want) {
		t.Errorf("Verses = %v", res.Verses)
	}
	if res.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", res.Attempts)
	}
	if res.InputTokens != 10 || res.OutputTokens != 5 {
		t.Errorf("usage = %d/%d", res.InputTokens, res.OutputTokens)
	}
}

func TestTranslateChapter_Idempotent(t *testing.T) {
	first, err := newTestTranslator(&stubInvoker{script: []stubStep{{text: goodChapterJSON}}}).
		TranslateChapter(context.Background(), "Genesis", "1", testVerses, "joe_rogan")
	if err != nil {
		t.Fatal(err)
	}
	second, err := newTestTranslator(&stubInvoker{script: []stubStep{{text: goodChapterJSON}}}).
		TranslateChapter(context.Background(), "Genesis", "1", testVerses, "joe_rogan")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first.Verses, second.Verses) || first.Method != second.Method {
		t.Error("identical inputs with a deterministic transport must yield identical results")
	}
}

func TestTranslateChapter_ValidationRetryThenSuccess(t *testing.T) {
	stub := &stubInvoker{script: []stubStep{
		{text: "this is not json at all"},
		{text: `{"book": "Genesis", "chapter": 1, "verses": {"1": "only one"}}`},
		{text: goodChapterJSON},
	}}
	tr := newTestTranslator(stub)

	res, err := tr.TranslateChapter(context.Background(), "Genesis", "1", testVerses, "joe_rogan")
	if err != nil {
		t.Fatal(err)
	}
	if res.Method != MethodChapter {
		t.Errorf("Method = %s, want chapter after retries", res.Method)
	}
	if res.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", res.Attempts)
	}
}

func TestTranslateChapter_FallbackAfterBudget(t *testing.T) {
	stub := &stubInvoker{script: []stubStep{{text: "garbage"}}}
	tr := newTestTranslator(stub)

	res, err := tr.TranslateChapter(context.Background(), "Genesis", "1", testVerses, "joe_rogan")
	if err != nil {
		t.Fatal(err)
	}
	if res.Method != MethodFallback {
		t.Fatalf("Method = %s, want fallback", res.Method)
	}
	if stub.calls != 3 {
		t.Errorf("calls = %d, want full attempt budget of 3", stub.calls)
	}
	// Persona prefix + lowercased original, for every verse.
	if got := res.Verses["1"]; got != "Dude, in the beginning god created the heaven and the earth." {
		t.Errorf("fallback verse 1 = %q", got)
	}
	if len(res.Verses) != len(testVerses) {
		t.Error("fallback must cover every verse")
	}
	if !res.DegradedSet()["2"] {
		t.Error("fallback verses must be tagged as degraded")
	}
}

func TestTranslateChapter_FatalTransportAbortsLoop(t *testing.T) {
	stub := &stubInvoker{script: []stubStep{{err: fmt.Errorf("connection refused")}}}
	tr := newTestTranslator(stub)

	res, err := tr.TranslateChapter(context.Background(), "Genesis", "1", testVerses, "joe_rogan")
	if err != nil {
		t.Fatal(err)
	}
	if stub.calls != 1 {
		t.Errorf("calls = %d, non-retryable failure must abort the loop", stub.calls)
	}
	if res.Method != MethodFallback {
		t.Errorf("Method = %s, want fallback", res.Method)
	}
	if len(res.Verses) != len(testVerses) {
		t.Error("fallback must still cover every verse")
	}
}

func TestTranslateChapter_RateLimitBackoffThenSuccess(t *testing.T) {
	rateErr := fmt.Errorf("status 429: %w", llm.ErrRateLimited)
	stub := &stubInvoker{script: []stubStep{{err: rateErr}, {text: goodChapterJSON}}}
	tr := newTestTranslator(stub)

	res, err := tr.TranslateChapter(context.Background(), "Genesis", "1", testVerses, "joe_rogan")
	if err != nil {
		t.Fatal(err)
	}
	if res.Method != MethodChapter {
		t.Errorf("Method = %s, want chapter after rate-limit recovery", res.Method)
	}
	if stub.calls != 2 {
		t.Errorf("calls = %d, want 2", stub.calls)
	}
}

func TestTranslateChapter_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stub := &stubInvoker{script: []stubStep{{text: goodChapterJSON}}}
	tr := newTestTranslator(stub)

	_, err := tr.TranslateChapter(ctx, "Genesis", "1", testVerses, "joe_rogan")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestTranslateVerses_MergesInOrder(t *testing.T) {
	stub := &stubInvoker{script: []stubStep{
		{text: "Dude, creation happened."},
		{text: "And then, light, man."},
	}}
	tr := newTestTranslator(stub)

	res, err := tr.TranslateVerses(context.Background(), "Genesis", "1", testVerses, "joe_rogan")
	if err != nil {
		t.Fatal(err)
	}
	if res.Method != MethodVerse {
		t.Errorf("Method = %s, want verse", res.Method)
	}
	want := map[string]string{"1": "Dude, creation happened.", "2": "And then, light, man."}
	if !reflect.DeepEqual(res.Verses, want) {
		t.Errorf("Verses = %v", res.Verses)
	}
	if len(res.FallbackVerses) != 0 {
		t.Errorf("FallbackVerses = %v, want none", res.FallbackVerses)
	}
	// Verse 1's prompt must be sent before verse 2's.
	if len(stub.prompts) != 2 || stub.prompts[0] == stub.prompts[1] {
		t.Fatalf("prompts = %d", len(stub.prompts))
	}
}

func TestTranslateVerses_PerVerseFallback(t *testing.T) {
	// Verse 1 fails all attempts; verse 2 succeeds immediately.
	stub := &stubInvoker{script: []stubStep{
		{err: fmt.Errorf("boom")},
		{text: "And then, light, man."},
	}}
	tr := newTestTranslator(stub)

	res, err := tr.TranslateVerses(context.Background(), "Genesis", "1", testVerses, "joe_rogan")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Verses) != 2 {
		t.Fatal("merged result must cover every verse")
	}
	if !reflect.DeepEqual(res.FallbackVerses, []string{"1"}) {
		t.Errorf("FallbackVerses = %v, want [1]", res.FallbackVerses)
	}
	if res.Verses["1"] != "Dude, in the beginning god created the heaven and the earth." {
		t.Errorf("fallback verse = %q", res.Verses["1"])
	}
	if res.Verses["2"] != "And then, light, man." {
		t.Errorf("verse 2 = %q", res.Verses["2"])
	}
}

func TestTranslateVerses_CleansArtifacts(t *testing.T) {
	stub := &stubInvoker{script: []stubStep{
		{text: `Here is the rewritten verse: "Dude, creation happened."`},
		{text: "Verse 2: And then, light, man."},
	}}
	tr := newTestTranslator(stub)

	res, err := tr.TranslateVerses(context.Background(), "Genesis", "1", testVerses, "joe_rogan")
	if err != nil {
		t.Fatal(err)
	}
	if res.Verses["1"] != "Dude, creation happened." {
		t.Errorf("verse 1 = %q, artifacts should be cleaned", res.Verses["1"])
	}
	if res.Verses["2"] != "And then, light, man." {
		t.Errorf("verse 2 = %q, label should be stripped", res.Verses["2"])
	}
}

func TestFallback_UnknownPersonaNoPrefix(t *testing.T) {
	got := Fallback(map[string]string{"1": "HELLO World."}, nil)
	if got["1"] != "hello world." {
		t.Errorf("Fallback = %q, want lowercased original with no prefix", got["1"])
	}
}
