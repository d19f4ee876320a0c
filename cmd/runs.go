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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ford-at-home/alt-bible/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show past translation runs and stored output",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := store.New(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		runs, err := db.ListRuns(ctx)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded.")
		}
		for _, r := range runs {
			fmt.Printf("%s  %-12s %-10s %-10s %d done, %d failed, %d/%d tokens\n",
				r.StartedAt.Format("2006-01-02 15:04"), r.Persona, r.Model, r.Status,
				r.ChaptersDone, r.ChaptersFailed, r.InputTokens, r.OutputTokens)
		}

		personas, err := db.ListPersonas(ctx)
		if err != nil {
			return err
		}
		for _, key := range personas {
			stats, err := db.Stats(ctx, key)
			if err != nil {
				return err
			}
			fmt.Printf("%-12s %d chapters, %d verses stored (%d fallback)\n",
				key, stats.Chapters, stats.Verses, stats.Fallback)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)

	runsCmd.Flags().StringVar(&dbPath, "db", "./data/altbible.db", "Database path for translated verses")
}
