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
	"github.com/spf13/cobra"

	"github.com/ford-at-home/alt-bible/internal/budget"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate the token volume and cost of a run",
	Long: `Walk the matching chapters, route each through the budget decision and
print the projected token volume and dollar cost without making any LLM
calls.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, reg, refs, err := loadInputs(corpusPath, personasPath, personaKey, bookFilter, chapterFilter)
		if err != nil {
			return err
		}

		engine := budget.NewEngine(maxModelTokens, budget.DefaultSafetyFactor)
		calc := budget.NewCalculator(nil)

		plan := budget.EstimatePlan(engine, calc, c, refs, reg, personaKey, intensity, model)
		printPlan(plan)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(estimateCmd)

	estimateCmd.Flags().StringVarP(&corpusPath, "corpus", "c", "", "Corpus JSON file (book -> chapter -> verse -> text)")
	estimateCmd.Flags().StringVar(&personasPath, "personas", "", "Persona config JSON (default: built-in personas)")
	estimateCmd.Flags().StringVarP(&personaKey, "persona", "p", "", "Persona key, e.g. joe_rogan")
	estimateCmd.Flags().StringVarP(&intensity, "intensity", "i", "medium", "Persona intensity: mild, medium, wild, nuclear")
	estimateCmd.Flags().StringVarP(&bookFilter, "book", "b", "", "Limit to one book")
	estimateCmd.Flags().StringVar(&chapterFilter, "chapter", "", "Limit to one chapter (requires --book)")
	estimateCmd.Flags().StringVarP(&model, "model", "m", "deepseek", "Model identifier")
	estimateCmd.Flags().IntVar(&maxModelTokens, "max-tokens", 8192, "Model context window in tokens")

	estimateCmd.MarkFlagRequired("corpus")
	estimateCmd.MarkFlagRequired("persona")
}
