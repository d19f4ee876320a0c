// Package store persists translated verses and run metadata in SQLite.
//
// Verses are keyed (persona, book, chapter, verse) and upserted, so
// re-running a chapter overwrites the prior rendering instead of duplicating
// it. Each write is tagged with the producing run, model and method so
// degraded fallback output stays identifiable.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		persona TEXT NOT NULL,
		model TEXT NOT NULL,
		status TEXT DEFAULT 'running',
		chapters_done INTEGER DEFAULT 0,
		chapters_failed INTEGER DEFAULT 0,
		input_tokens INTEGER DEFAULT 0,
		output_tokens INTEGER DEFAULT 0,
		started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		completed_at TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS verses (
		persona TEXT NOT NULL,
		book TEXT NOT NULL,
		chapter TEXT NOT NULL,
		verse TEXT NOT NULL,
		text TEXT NOT NULL,
		method TEXT NOT NULL,
		model TEXT,
		run_id TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (persona, book, chapter, verse)
	);

	CREATE INDEX IF NOT EXISTS idx_verses_chapter ON verses(persona, book, chapter);
	CREATE INDEX IF NOT EXISTS idx_verses_run ON verses(run_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// BeginRun records a new translation run and returns its id.
func (s *Store) BeginRun(ctx context.Context, personaKey, model string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, persona, model) VALUES (?, ?, ?)`,
		id, personaKey, model)
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}
	return id, nil
}

// FinishRun closes out a run with its final counters and status.
func (s *Store) FinishRun(ctx context.Context, runID, status string, done, failed, inputTokens, outputTokens int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, chapters_done = ?, chapters_failed = ?, input_tokens = ?, output_tokens = ?, completed_at = ? WHERE id = ?`,
		status, done, failed, inputTokens, outputTokens, time.Now(), runID)
	return err
}

// Run is a row from the runs table.
type Run struct {
	ID             string
	Persona        string
	Model          string
	Status         string
	ChaptersDone   int
	ChaptersFailed int
	InputTokens    int
	OutputTokens   int
	StartedAt      time.Time
}

// ListRuns returns all runs, most recent first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, persona, model, status, chapters_done, chapters_failed, input_tokens, output_tokens, started_at FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Persona, &r.Model, &r.Status, &r.ChaptersDone, &r.ChaptersFailed, &r.InputTokens, &r.OutputTokens, &r.StartedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// SaveChapter upserts every verse of one translated chapter in a single
// transaction. Verses listed in degraded are stored with method "fallback"
// regardless of the chapter-level method.
func (s *Store) SaveChapter(ctx context.Context, personaKey, book, chapter string, verses map[string]string, method, model, runID string, degraded map[string]bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO verses (persona, book, chapter, verse, text, method, model, run_id, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for id, text := range verses {
		verseMethod := method
		if degraded[id] {
			verseMethod = "fallback"
		}
		if _, err := stmt.ExecContext(ctx, personaKey, book, chapter, id, normalizeText(text), verseMethod, model, runID, now); err != nil {
			return fmt.Errorf("failed to save %s %s:%s: %w", book, chapter, id, err)
		}
	}

	return tx.Commit()
}

// GetChapter returns one stored chapter as a verse id → text map.
func (s *Store) GetChapter(ctx context.Context, personaKey, book, chapter string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT verse, text FROM verses WHERE persona = ? AND book = ? AND chapter = ?`,
		personaKey, book, chapter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	verses := make(map[string]string)
	for rows.Next() {
		var id, text string
		if err := rows.Scan(&id, &text); err != nil {
			return nil, err
		}
		verses[id] = text
	}
	return verses, rows.Err()
}

// HasChapter reports whether any verses are stored for the chapter.
func (s *Store) HasChapter(ctx context.Context, personaKey, book, chapter string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM verses WHERE persona = ? AND book = ? AND chapter = ?`,
		personaKey, book, chapter).Scan(&n)
	return n > 0, err
}

// GetBook returns every stored chapter of one book, chapter id → verse map.
func (s *Store) GetBook(ctx context.Context, personaKey, book string) (map[string]map[string]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT chapter, verse, text FROM verses WHERE persona = ? AND book = ?`,
		personaKey, book)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chapters := make(map[string]map[string]string)
	for rows.Next() {
		var chapter, id, text string
		if err := rows.Scan(&chapter, &id, &text); err != nil {
			return nil, err
		}
		if chapters[chapter] == nil {
			chapters[chapter] = make(map[string]string)
		}
		chapters[chapter][id] = text
	}
	return chapters, rows.Err()
}

// GetPersona returns everything stored for a persona as book → chapter →
// verse → text, mirroring the corpus layout.
func (s *Store) GetPersona(ctx context.Context, personaKey string) (map[string]map[string]map[string]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT book, chapter, verse, text FROM verses WHERE persona = ?`,
		personaKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := make(map[string]map[string]map[string]string)
	for rows.Next() {
		var book, chapter, id, text string
		if err := rows.Scan(&book, &chapter, &id, &text); err != nil {
			return nil, err
		}
		if books[book] == nil {
			books[book] = make(map[string]map[string]string)
		}
		if books[book][chapter] == nil {
			books[book][chapter] = make(map[string]string)
		}
		books[book][chapter][id] = text
	}
	return books, rows.Err()
}

// PersonaStats summarises stored output for one persona.
type PersonaStats struct {
	Verses   int
	Chapters int
	Fallback int
}

// Stats returns per-persona verse counts, including how many entries are
// degraded fallback output.
func (s *Store) Stats(ctx context.Context, personaKey string) (*PersonaStats, error) {
	stats := &PersonaStats{}
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(DISTINCT book || '#' || chapter),
			COALESCE(SUM(CASE WHEN method = 'fallback' THEN 1 ELSE 0 END), 0)
		FROM verses WHERE persona = ?`, personaKey).Scan(
		&stats.Verses,
		&stats.Chapters,
		&stats.Fallback,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// ListPersonas returns the distinct persona keys with stored verses.
func (s *Store) ListPersonas(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT persona FROM verses ORDER BY persona`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// DeletePersona removes all stored verses for a persona.
func (s *Store) DeletePersona(ctx context.Context, personaKey string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM verses WHERE persona = ?`, personaKey)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// normalizeText trims whitespace and applies Unicode NFC normalization so
// stored text compares consistently regardless of the model's output form.
func normalizeText(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}
