package orchestrator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Stats accumulates run-level counters. They are advisory bookkeeping; the
// store holds the authoritative record of what was translated.
type Stats struct {
	ChaptersDone   int     `json:"chapters_done"`
	ChaptersFailed int     `json:"chapters_failed"`
	ChapterCalls   int     `json:"chapter_calls"`
	VerseCalls     int     `json:"verse_calls"`
	Fallbacks      int     `json:"fallbacks"`
	InputTokens    int     `json:"input_tokens"`
	OutputTokens   int     `json:"output_tokens"`
	CostUSD        float64 `json:"cost_usd"`
}

// Checkpoint records which chapters a run has fully completed, so an
// interrupted run can resume without repeating work.
type Checkpoint struct {
	CompletedChapters []string  `json:"completed_chapters"`
	Stats             Stats     `json:"stats"`
	Timestamp         time.Time `json:"timestamp"`
}

// LoadCheckpoint reads a checkpoint file. A missing file is not an error:
// it returns an empty checkpoint so a fresh run needs no special casing.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Checkpoint{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("failed to parse checkpoint %s: %w", path, err)
	}
	return &cp, nil
}

// Save writes the checkpoint atomically: a temp file in the same directory,
// then rename, so a crash mid-write never leaves a truncated checkpoint.
func (c *Checkpoint) Save(path string) error {
	c.Timestamp = time.Now().UTC()
	sort.Strings(c.CompletedChapters)

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".checkpoint-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp checkpoint: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace checkpoint: %w", err)
	}
	return nil
}

// CompletedSet returns the completed chapter keys as a set.
func (c *Checkpoint) CompletedSet() map[string]bool {
	set := make(map[string]bool, len(c.CompletedChapters))
	for _, key := range c.CompletedChapters {
		set[key] = true
	}
	return set
}
