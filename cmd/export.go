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
	"os"

	"github.com/spf13/cobra"

	"github.com/ford-at-home/alt-bible/internal/corpus"
	"github.com/ford-at-home/alt-bible/internal/persona"
	"github.com/ford-at-home/alt-bible/internal/render"
	"github.com/ford-at-home/alt-bible/internal/store"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a persona's stored translations",
	Long: `Render everything stored for a persona as a single document.

Formats: markdown (default), html, text. Writes to stdout unless --output
is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := store.New(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		books, err := db.GetPersona(ctx, personaKey)
		if err != nil {
			return err
		}
		if len(books) == 0 {
			return fmt.Errorf("nothing stored for persona %q", personaKey)
		}

		title := personaKey
		if reg, err := persona.Load(personasPath); err == nil {
			if p, err := reg.Get(personaKey); err == nil {
				title = p.DisplayName
			}
		}

		out, err := render.Render(exportFormat, title, corpus.Corpus(books))
		if err != nil {
			return err
		}

		if exportOutput == "" {
			fmt.Print(out)
			return nil
		}
		if err := os.WriteFile(exportOutput, []byte(out), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", exportOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&personaKey, "persona", "p", "", "Persona key to export")
	exportCmd.Flags().StringVar(&personasPath, "personas", "", "Persona config JSON (default: built-in personas)")
	exportCmd.Flags().StringVar(&dbPath, "db", "./data/altbible.db", "Database path for translated verses")
	exportCmd.Flags().StringVar(&exportFormat, "format", render.FormatMarkdown, "Output format: markdown, html, text")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")

	exportCmd.MarkFlagRequired("persona")
}
