/*
Copyright © 2025 The alt-bible Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ford-at-home/alt-bible/internal/budget"
	"github.com/ford-at-home/alt-bible/internal/orchestrator"
	"github.com/ford-at-home/alt-bible/internal/store"
	"github.com/ford-at-home/alt-bible/internal/translator"
)

var (
	corpusPath   string
	personasPath string
	personaKey   string
	intensity    string
	bookFilter   string
	chapterFilter  string

	provider string
	baseURL  string
	apiKey   string
	model    string

	dbPath         string
	checkpointPath string
	batchSize      int
	chapterDelay   time.Duration
	workers        int
	maxModelTokens int

	skipConfirm bool
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Rewrite the corpus in a persona's voice",
	Long: `Translate every matching chapter of the corpus into the persona's voice.

Each chapter is first routed through the budget decision: chapters that fit
the model's context window go out as one strict-JSON request, the rest go
verse by verse. Completed chapters are stored immediately and recorded in
the checkpoint, so an interrupted run resumes where it left off.

Providers:
  - ollama      self-hosted (default http://localhost:11434)
  - openrouter  hosted, requires API key
  - openai      hosted, requires API key`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		c, reg, refs, err := loadInputs(corpusPath, personasPath, personaKey, bookFilter, chapterFilter)
		if err != nil {
			return err
		}

		engine := budget.NewEngine(maxModelTokens, budget.DefaultSafetyFactor)
		calc := budget.NewCalculator(nil)

		plan := budget.EstimatePlan(engine, calc, c, refs, reg, personaKey, intensity, model)
		printPlan(plan)

		if !skipConfirm {
			if !confirm("Proceed?") {
				fmt.Println("Aborted.")
				return nil
			}
		}

		invoker, err := buildInvoker(provider, baseURL, apiKey)
		if err != nil {
			return err
		}

		db, err := store.New(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		runID, err := db.BeginRun(ctx, personaKey, model)
		if err != nil {
			return err
		}

		tr := translator.New(invoker, reg, model, intensity)
		orch := orchestrator.New(tr, db, engine, calc, reg, orchestrator.Config{
			Persona:        personaKey,
			Intensity:      intensity,
			Model:          model,
			CheckpointPath: checkpointPath,
			BatchSize:      batchSize,
			ChapterDelay:   chapterDelay,
			Workers:        workers,
		})

		summary, runErr := orch.Run(ctx, c, refs, runID)

		status := "completed"
		if runErr != nil {
			status = "cancelled"
		}
		if summary != nil {
			// FinishRun uses a fresh context: the run record must be
			// closed out even when the run context was cancelled.
			if err := db.FinishRun(context.Background(), runID, status,
				summary.Stats.ChaptersDone, summary.Stats.ChaptersFailed,
				summary.Stats.InputTokens, summary.Stats.OutputTokens); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close out run: %v\n", err)
			}
			printSummary(summary)
		}

		if runErr != nil && !errors.Is(runErr, context.Canceled) {
			return runErr
		}
		if runErr != nil {
			fmt.Println("Run cancelled. Re-run with the same checkpoint to resume.")
		}
		return nil
	},
}

func printPlan(plan budget.Plan) {
	chapterCalls := 0
	for _, m := range plan.Methods {
		if m == budget.MethodChapter {
			chapterCalls++
		}
	}
	fmt.Printf("Chapters:          %d (%d whole-chapter, %d verse-by-verse)\n",
		plan.ChapterCount, chapterCalls, plan.ChapterCount-chapterCalls)
	fmt.Printf("Estimated tokens:  %d in / %d out\n", plan.TotalInputTokens, plan.TotalOutputTokens)
	if plan.ModelKnown {
		fmt.Printf("Estimated cost:    $%.2f (%s)\n", plan.CostUSD, model)
	} else {
		fmt.Printf("Estimated cost:    unknown (no pricing for %s)\n", model)
	}
}

func printSummary(s *orchestrator.Summary) {
	fmt.Printf("\nDone: %d chapters (%d failed, %d skipped)\n",
		s.Stats.ChaptersDone, s.Stats.ChaptersFailed, s.Skipped)
	fmt.Printf("Calls: %d chapter, %d verse-path; %d fallback verses\n",
		s.Stats.ChapterCalls, s.Stats.VerseCalls, s.Stats.Fallbacks)
	fmt.Printf("Tokens: %d in / %d out", s.Stats.InputTokens, s.Stats.OutputTokens)
	if s.Stats.CostUSD > 0 {
		fmt.Printf(" ($%.2f)", s.Stats.CostUSD)
	}
	fmt.Println()
	if len(s.Failed) > 0 {
		fmt.Printf("Failed chapters: %s\n", strings.Join(s.Failed, ", "))
	}
}

func confirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&corpusPath, "corpus", "c", "", "Corpus JSON file (book -> chapter -> verse -> text)")
	translateCmd.Flags().StringVar(&personasPath, "personas", "", "Persona config JSON (default: built-in personas)")
	translateCmd.Flags().StringVarP(&personaKey, "persona", "p", "", "Persona key, e.g. joe_rogan")
	translateCmd.Flags().StringVarP(&intensity, "intensity", "i", "medium", "Persona intensity: mild, medium, wild, nuclear")
	translateCmd.Flags().StringVarP(&bookFilter, "book", "b", "", "Limit to one book")
	translateCmd.Flags().StringVar(&chapterFilter, "chapter", "", "Limit to one chapter (requires --book)")

	translateCmd.Flags().StringVar(&provider, "provider", "ollama", "LLM provider: ollama, openrouter, openai")
	translateCmd.Flags().StringVar(&baseURL, "base-url", "", "Override the provider's base URL")
	translateCmd.Flags().StringVar(&apiKey, "api-key", "", "Provider API key (or ALTBIBLE_<PROVIDER>_API_KEY)")
	translateCmd.Flags().StringVarP(&model, "model", "m", "deepseek", "Model identifier")

	translateCmd.Flags().StringVar(&dbPath, "db", "./data/altbible.db", "Database path for translated verses")
	translateCmd.Flags().StringVar(&checkpointPath, "checkpoint", "./data/checkpoint.json", "Checkpoint file for resume")
	translateCmd.Flags().IntVar(&batchSize, "batch-size", orchestrator.DefaultBatchSize, "Chapters between checkpoint writes")
	translateCmd.Flags().DurationVar(&chapterDelay, "delay", orchestrator.DefaultChapterDelay, "Delay between chapters")
	translateCmd.Flags().IntVar(&workers, "workers", 1, "Concurrent chapters (1 preserves strict order)")
	translateCmd.Flags().IntVar(&maxModelTokens, "max-tokens", 8192, "Model context window in tokens")

	translateCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip the cost confirmation prompt")

	translateCmd.MarkFlagRequired("corpus")
	translateCmd.MarkFlagRequired("persona")
}
