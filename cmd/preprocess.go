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
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ford-at-home/alt-bible/internal/corpus"
	"github.com/ford-at-home/alt-bible/internal/detector"
)

var (
	preprocessInput  string
	preprocessOutput string
	skipLangCheck    bool
)

// languageSampleSize bounds how many verses the detector inspects.
const languageSampleSize = 100

var preprocessCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Convert a flat verse list into the nested corpus form",
	Long: `Convert a flat JSON array of verse records
({"book", "chapter", "verse", "text"}) into the nested
book -> chapter -> verse corpus form the pipeline consumes.

A language check samples the result and warns when it does not look like
English, since the built-in personas are written against English text.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(preprocessInput)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}

		var records []corpus.VerseRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return fmt.Errorf("failed to parse verse records: %w", err)
		}

		c := corpus.FromRecords(records)
		if len(c) == 0 {
			return fmt.Errorf("no usable verse records in %s", preprocessInput)
		}

		if !skipLangCheck {
			report := detector.New().CheckCorpus(c, languageSampleSize)
			if report.Ratio() < 0.9 {
				fmt.Fprintf(os.Stderr, "Warning: only %d of %d sampled verses look like English\n",
					report.English, report.Sampled)
			}
		}

		if err := c.Save(preprocessOutput); err != nil {
			return err
		}

		refs := c.ChapterRefs("", "")
		fmt.Printf("Wrote %s: %d books, %d chapters\n", preprocessOutput, len(c), len(refs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(preprocessCmd)

	preprocessCmd.Flags().StringVarP(&preprocessInput, "input", "f", "", "Flat verse-record JSON file")
	preprocessCmd.Flags().StringVarP(&preprocessOutput, "output", "o", "", "Nested corpus JSON output path")
	preprocessCmd.Flags().BoolVar(&skipLangCheck, "skip-language-check", false, "Skip the English sanity check")

	preprocessCmd.MarkFlagRequired("input")
	preprocessCmd.MarkFlagRequired("output")
}
