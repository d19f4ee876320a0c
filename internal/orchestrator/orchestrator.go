// Package orchestrator drives a full translation run: it walks the corpus in
// sorted order, routes each chapter through the budget decision, hands every
// completed chapter to the store immediately, and checkpoints progress so an
// interrupted run resumes where it left off.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ford-at-home/alt-bible/internal/budget"
	"github.com/ford-at-home/alt-bible/internal/corpus"
	"github.com/ford-at-home/alt-bible/internal/persona"
	"github.com/ford-at-home/alt-bible/internal/translator"
)

// UnitTranslator translates one chapter, whole or verse by verse.
type UnitTranslator interface {
	TranslateChapter(ctx context.Context, book, chapter string, verses map[string]string, personaKey string) (*translator.Result, error)
	TranslateVerses(ctx context.Context, book, chapter string, verses map[string]string, personaKey string) (*translator.Result, error)
}

// ChapterStore receives each completed chapter as soon as it finishes.
type ChapterStore interface {
	SaveChapter(ctx context.Context, personaKey, book, chapter string, verses map[string]string, method, model, runID string, degraded map[string]bool) error
}

type Config struct {
	Persona        string
	Intensity      string
	Model          string
	CheckpointPath string
	// BatchSize is how many chapters complete between checkpoint writes.
	BatchSize int
	// ChapterDelay spaces successive chapters, independent of the
	// transport-level backoff.
	ChapterDelay time.Duration
	// Workers bounds concurrent chapters. 1 preserves strict ordering.
	Workers int
}

const (
	DefaultBatchSize    = 10
	DefaultChapterDelay = time.Second
)

// Summary reports the outcome of a run. Failed chapters are listed so they
// can be re-run individually.
type Summary struct {
	Stats   Stats
	Failed  []string
	Skipped int
}

type Orchestrator struct {
	translator UnitTranslator
	store      ChapterStore
	engine     *budget.Engine
	calc       *budget.Calculator
	registry   *persona.Registry
	cfg        Config

	mu        sync.Mutex
	stats     Stats
	completed []string
	failed    []string
	sinceSave int
}

func New(tr UnitTranslator, st ChapterStore, engine *budget.Engine, calc *budget.Calculator, reg *persona.Registry, cfg Config) *Orchestrator {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.ChapterDelay < 0 {
		cfg.ChapterDelay = DefaultChapterDelay
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Orchestrator{
		translator: tr,
		store:      st,
		engine:     engine,
		calc:       calc,
		registry:   reg,
		cfg:        cfg,
	}
}

// Run translates every chapter in refs that the checkpoint does not already
// list as complete. One chapter's failure never aborts the run; cancellation
// stops after the in-flight chapters finish and the checkpoint reflects only
// fully completed chapters.
func (o *Orchestrator) Run(ctx context.Context, c corpus.Corpus, refs []corpus.ChapterRef, runID string) (*Summary, error) {
	done := map[string]bool{}
	if o.cfg.CheckpointPath != "" {
		cp, err := LoadCheckpoint(o.cfg.CheckpointPath)
		if err != nil {
			return nil, err
		}
		done = cp.CompletedSet()
		o.completed = append(o.completed, cp.CompletedChapters...)
		if len(done) > 0 {
			fmt.Fprintf(os.Stderr, "Resuming: %d chapters already complete\n", len(done))
		}
	}

	summary := &Summary{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.Workers)

	cancelled := false
	first := true
	for _, ref := range refs {
		if done[ref.Key()] {
			summary.Skipped++
			continue
		}
		if err := ctx.Err(); err != nil {
			cancelled = true
			break
		}
		if !first && o.cfg.ChapterDelay > 0 {
			if err := sleepCtx(ctx, o.cfg.ChapterDelay); err != nil {
				cancelled = true
				break
			}
		}
		first = false

		ref := ref
		g.Go(func() error {
			o.processChapter(gctx, c, ref, runID)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	o.finishStats()
	if o.cfg.CheckpointPath != "" {
		if err := o.saveCheckpointLocked(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to write checkpoint: %v\n", err)
		}
	}
	summary.Stats = o.stats
	summary.Failed = append([]string(nil), o.failed...)
	o.mu.Unlock()

	if cancelled {
		return summary, ctx.Err()
	}
	return summary, nil
}

func (o *Orchestrator) processChapter(ctx context.Context, c corpus.Corpus, ref corpus.ChapterRef, runID string) {
	verses := c.Verses(ref)
	if len(verses) == 0 {
		fmt.Fprintf(os.Stderr, "Skipping %s: no verses\n", ref)
		return
	}

	p, _ := o.registry.Get(o.cfg.Persona)

	var res *translator.Result
	var err error
	if o.engine.ShouldTranslateChapter(ref.Book, ref.Chapter, verses, p, o.cfg.Persona, o.cfg.Intensity) {
		res, err = o.translator.TranslateChapter(ctx, ref.Book, ref.Chapter, verses, o.cfg.Persona)
	} else {
		fmt.Fprintf(os.Stderr, "%s exceeds the chapter budget, going verse by verse\n", ref)
		res, err = o.translator.TranslateVerses(ctx, ref.Book, ref.Chapter, verses, o.cfg.Persona)
	}
	if err != nil {
		// Only cancellation surfaces as an error from the translator.
		o.recordFailure(ref, err)
		return
	}

	if err := o.store.SaveChapter(ctx, o.cfg.Persona, ref.Book, ref.Chapter, res.Verses, string(res.Method), res.Model, runID, res.DegradedSet()); err != nil {
		o.recordFailure(ref, fmt.Errorf("store: %w", err))
		return
	}

	o.recordSuccess(ref, res)
}

func (o *Orchestrator) recordSuccess(ref corpus.ChapterRef, res *translator.Result) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.stats.ChaptersDone++
	o.stats.InputTokens += res.InputTokens
	o.stats.OutputTokens += res.OutputTokens
	switch res.Method {
	case translator.MethodChapter:
		o.stats.ChapterCalls++
	case translator.MethodVerse:
		o.stats.VerseCalls++
		o.stats.Fallbacks += len(res.FallbackVerses)
	case translator.MethodFallback:
		o.stats.Fallbacks += len(res.Verses)
	}

	o.completed = append(o.completed, ref.Key())
	o.sinceSave++
	if o.cfg.CheckpointPath != "" && o.sinceSave >= o.cfg.BatchSize {
		if err := o.saveCheckpointLocked(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to write checkpoint: %v\n", err)
		}
	}
}

func (o *Orchestrator) recordFailure(ref corpus.ChapterRef, err error) {
	fmt.Fprintf(os.Stderr, "Chapter %s failed: %v\n", ref, err)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.stats.ChaptersFailed++
	o.failed = append(o.failed, ref.Key())
}

// finishStats derives the run cost from the accumulated token totals.
// Caller holds the mutex.
func (o *Orchestrator) finishStats() {
	if o.calc == nil {
		return
	}
	if usd, known := o.calc.Cost(o.stats.InputTokens, o.stats.OutputTokens, o.cfg.Model); known {
		o.stats.CostUSD = usd
	}
}

// saveCheckpointLocked persists progress. Caller holds the mutex.
func (o *Orchestrator) saveCheckpointLocked() error {
	cp := &Checkpoint{
		CompletedChapters: append([]string(nil), o.completed...),
		Stats:             o.stats,
	}
	o.sinceSave = 0
	return cp.Save(o.cfg.CheckpointPath)
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
