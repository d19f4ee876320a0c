// Package persona holds the closed, validated registry of style profiles.
//
// Personas are externally loaded, immutable configuration. Lookups of unknown
// keys fail with a typed error rather than returning an empty profile, so a
// misspelled persona surfaces at startup instead of producing unstyled output
// mid-run.
package persona

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Recognized intensity grades, weakest to strongest.
const (
	IntensityMild    = "mild"
	IntensityMedium  = "medium"
	IntensityWild    = "wild"
	IntensityNuclear = "nuclear"
)

// Intensities lists the recognized grades in order.
var Intensities = []string{IntensityMild, IntensityMedium, IntensityWild, IntensityNuclear}

// DefaultExpansionRatio is assumed for personas that do not declare how much
// longer their output runs relative to the source.
const DefaultExpansionRatio = 1.2

// Instruction is one intensity grade of a persona's style instructions.
type Instruction struct {
	System string `json:"system"`
	User   string `json:"user"`
}

// Persona is a named style profile. All fields are read-only after Load.
type Persona struct {
	Key            string                 `json:"-"`
	DisplayName    string                 `json:"display_name"`
	Description    string                 `json:"description"`
	Style          string                 `json:"style"`
	Catchphrases   []string               `json:"catchphrases,omitempty"`
	ExpansionRatio float64                `json:"expansion_ratio,omitempty"`
	FallbackPrefix string                 `json:"fallback_prefix,omitempty"`
	Prompts        map[string]Instruction `json:"prompts"`
}

// Instruction returns the style instruction for an intensity, falling back to
// medium when the requested grade is absent. Registry validation guarantees
// all grades exist for loaded personas; the fallback covers hand-built test
// profiles.
func (p *Persona) Instruction(intensity string) Instruction {
	if ins, ok := p.Prompts[intensity]; ok {
		return ins
	}
	return p.Prompts[IntensityMedium]
}

// ConfigError reports an invalid persona configuration file.
type ConfigError struct {
	Path   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid persona configuration %s: %s", e.Path, e.Reason)
}

// UnknownPersonaError reports a lookup of a key absent from the registry.
type UnknownPersonaError struct {
	Key string
}

func (e *UnknownPersonaError) Error() string {
	return fmt.Sprintf("unknown persona %q", e.Key)
}

// Registry is the closed set of configured personas.
type Registry struct {
	personas map[string]*Persona
}

// Load reads a persona configuration file. Every persona must carry a display
// name and an instruction entry for each recognized intensity; anything less
// is a ConfigError. An empty path yields the built-in default set.
func Load(path string) (*Registry, error) {
	if path == "" {
		return defaultRegistry(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read persona file: %w", err)
	}

	var raw map[string]*Persona
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigError{Path: path, Reason: err.Error()}
	}
	if len(raw) == 0 {
		return nil, &ConfigError{Path: path, Reason: "no personas defined"}
	}

	for key, p := range raw {
		p.Key = key
		if p.DisplayName == "" {
			return nil, &ConfigError{Path: path, Reason: fmt.Sprintf("persona %q has no display_name", key)}
		}
		for _, grade := range Intensities {
			ins, ok := p.Prompts[grade]
			if !ok || ins.System == "" {
				return nil, &ConfigError{Path: path, Reason: fmt.Sprintf("persona %q missing %s instructions", key, grade)}
			}
		}
	}

	return &Registry{personas: raw}, nil
}

// Get returns the persona for key, or an UnknownPersonaError.
func (r *Registry) Get(key string) (*Persona, error) {
	p, ok := r.personas[key]
	if !ok {
		return nil, &UnknownPersonaError{Key: key}
	}
	return p, nil
}

// Keys lists the configured persona keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.personas))
	for key := range r.personas {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ExpansionRatio returns the persona's declared output/input token ratio, or
// the default for personas that do not declare one. Unknown keys also fall
// back to the default: estimation never fails, it only degrades.
func (r *Registry) ExpansionRatio(key string) float64 {
	if p, ok := r.personas[key]; ok && p.ExpansionRatio > 0 {
		return p.ExpansionRatio
	}
	return DefaultExpansionRatio
}
