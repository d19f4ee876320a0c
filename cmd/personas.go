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

	"github.com/ford-at-home/alt-bible/internal/persona"
)

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "List the configured personas",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := persona.Load(personasPath)
		if err != nil {
			return err
		}

		for _, key := range reg.Keys() {
			p, err := reg.Get(key)
			if err != nil {
				return err
			}
			fmt.Printf("%-22s %s\n", key, p.DisplayName)
			if p.Description != "" {
				fmt.Printf("%-22s   %s\n", "", p.Description)
			}
			fmt.Printf("%-22s   expansion %.1fx, fallback prefix %q\n", "", p.ExpansionRatio, p.FallbackPrefix)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(personasCmd)

	personasCmd.Flags().StringVar(&personasPath, "personas", "", "Persona config JSON (default: built-in personas)")
}
