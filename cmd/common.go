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

	"github.com/spf13/viper"

	"github.com/ford-at-home/alt-bible/internal/corpus"
	"github.com/ford-at-home/alt-bible/internal/llm"
	"github.com/ford-at-home/alt-bible/internal/persona"
)

// buildInvoker constructs the LLM transport from CLI parameters. API keys
// come from flags or the ALTBIBLE_* environment (via viper).
func buildInvoker(provider, baseURL, apiKey string) (llm.Invoker, error) {
	switch provider {
	case "ollama":
		return llm.NewOllamaInvoker(baseURL), nil
	case "openrouter":
		if apiKey == "" {
			apiKey = viper.GetString("openrouter_api_key")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("openrouter requires an API key (--api-key or ALTBIBLE_OPENROUTER_API_KEY)")
		}
		return llm.NewOpenRouterInvoker(apiKey, baseURL), nil
	case "openai":
		if apiKey == "" {
			apiKey = viper.GetString("openai_api_key")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("openai requires an API key (--api-key or ALTBIBLE_OPENAI_API_KEY)")
		}
		return llm.NewOpenAIInvoker(apiKey, baseURL), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (want ollama, openrouter or openai)", provider)
	}
}

// loadInputs loads the corpus and persona registry and resolves the target
// chapters up front, so bad arguments fail before any LLM traffic.
func loadInputs(corpusPath, personasPath, personaKey, bookFilter, chapterFilter string) (corpus.Corpus, *persona.Registry, []corpus.ChapterRef, error) {
	c, err := corpus.Load(corpusPath)
	if err != nil {
		return nil, nil, nil, err
	}

	reg, err := persona.Load(personasPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if _, err := reg.Get(personaKey); err != nil {
		return nil, nil, nil, err
	}

	refs := c.ChapterRefs(bookFilter, chapterFilter)
	if len(refs) == 0 {
		return nil, nil, nil, fmt.Errorf("no chapters match book=%q chapter=%q", bookFilter, chapterFilter)
	}

	return c, reg, refs, nil
}
