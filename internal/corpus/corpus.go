// Package corpus models the source text as a three-level mapping of
// book → chapter → verse → text and provides deterministic enumeration
// over it. Identifiers are opaque strings; chapters and verses are ordered
// numerically by convention, books lexicographically.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// Corpus is the nested book → chapter → verse → text form produced by the
// preprocess command and consumed by the orchestrator.
type Corpus map[string]map[string]map[string]string

// ChapterRef identifies one chapter of one book.
type ChapterRef struct {
	Book    string
	Chapter string
}

func (r ChapterRef) String() string {
	return fmt.Sprintf("%s %s", r.Book, r.Chapter)
}

// Key returns the checkpoint key for this chapter.
func (r ChapterRef) Key() string {
	return r.Book + "#" + r.Chapter
}

// Load reads a nested corpus JSON file. A missing or malformed file is a
// configuration error and fails immediately.
func Load(path string) (Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	var c Corpus
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse corpus file %s: %w", path, err)
	}
	if len(c) == 0 {
		return nil, fmt.Errorf("corpus file %s contains no books", path)
	}
	return c, nil
}

// Verses returns the verse map for a chapter, or nil if absent.
func (c Corpus) Verses(ref ChapterRef) map[string]string {
	chapters, ok := c[ref.Book]
	if !ok {
		return nil
	}
	return chapters[ref.Chapter]
}

// ChapterRefs enumerates all (book, chapter) pairs in deterministic order:
// books lexicographically, chapters by numeric value. Empty filters match
// everything.
func (c Corpus) ChapterRefs(bookFilter, chapterFilter string) []ChapterRef {
	books := make([]string, 0, len(c))
	for book := range c {
		if bookFilter != "" && book != bookFilter {
			continue
		}
		books = append(books, book)
	}
	sort.Strings(books)

	var refs []ChapterRef
	for _, book := range books {
		chapters := make([]string, 0, len(c[book]))
		for chapter := range c[book] {
			if chapterFilter != "" && chapter != chapterFilter {
				continue
			}
			chapters = append(chapters, chapter)
		}
		sort.Slice(chapters, func(i, j int) bool {
			return numericLess(chapters[i], chapters[j])
		})
		for _, chapter := range chapters {
			refs = append(refs, ChapterRef{Book: book, Chapter: chapter})
		}
	}
	return refs
}

// VerseIDs returns the verse identifiers of a verse map in ascending numeric
// order. Non-numeric identifiers sort after numeric ones, lexicographically.
func VerseIDs(verses map[string]string) []string {
	ids := make([]string, 0, len(verses))
	for id := range verses {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return numericLess(ids[i], ids[j])
	})
	return ids
}

func numericLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}

// VerseRecord is one entry of the flat corpus form distributed by public
// scripture datasets.
type VerseRecord struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Text    string `json:"text"`
}

// FromRecords restructures a flat verse-record list into the nested corpus
// form, NFC-normalizing the text. Records with an empty book or text are
// skipped.
func FromRecords(records []VerseRecord) Corpus {
	c := make(Corpus)
	for _, rec := range records {
		if rec.Book == "" || rec.Text == "" {
			continue
		}
		chapter := strconv.Itoa(rec.Chapter)
		verse := strconv.Itoa(rec.Verse)
		if c[rec.Book] == nil {
			c[rec.Book] = make(map[string]map[string]string)
		}
		if c[rec.Book][chapter] == nil {
			c[rec.Book][chapter] = make(map[string]string)
		}
		c[rec.Book][chapter][verse] = norm.NFC.String(rec.Text)
	}
	return c
}

// Save writes the corpus in nested JSON form.
func (c Corpus) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal corpus: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write corpus file: %w", err)
	}
	return nil
}

// Sample returns up to n verse texts for language detection, walking the
// corpus in deterministic order.
func (c Corpus) Sample(n int) []string {
	var out []string
	for _, ref := range c.ChapterRefs("", "") {
		verses := c.Verses(ref)
		for _, id := range VerseIDs(verses) {
			out = append(out, verses[id])
			if len(out) >= n {
				return out
			}
		}
	}
	return out
}
