package corpus

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func sampleCorpus() Corpus {
	return Corpus{
		"Genesis": {
			"1":  {"1": "In the beginning.", "2": "And the earth.", "10": "Ten."},
			"2":  {"1": "Thus the heavens."},
			"10": {"1": "Noah."},
		},
		"Exodus": {
			"1": {"1": "Now these are the names."},
		},
	}
}

func TestChapterRefs_SortedOrder(t *testing.T) {
	refs := sampleCorpus().ChapterRefs("", "")

	want := []ChapterRef{
		{"Exodus", "1"},
		{"Genesis", "1"},
		{"Genesis", "2"},
		{"Genesis", "10"},
	}
	if !reflect.DeepEqual(refs, want) {
		t.Errorf("ChapterRefs = %v, want %v", refs, want)
	}
}

func TestChapterRefs_Filters(t *testing.T) {
	refs := sampleCorpus().ChapterRefs("Genesis", "2")
	if len(refs) != 1 || refs[0] != (ChapterRef{"Genesis", "2"}) {
		t.Errorf("filtered refs = %v", refs)
	}
}

func TestVerseIDs_NumericOrder(t *testing.T) {
	verses := map[string]string{"10": "j", "2": "b", "1": "a"}
	ids := VerseIDs(verses)
	want := []string{"1", "2", "10"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("VerseIDs = %v, want %v", ids, want)
	}
}

func TestFromRecords(t *testing.T) {
	records := []VerseRecord{
		{Book: "Genesis", Chapter: 1, Verse: 1, Text: "In the beginning."},
		{Book: "Genesis", Chapter: 1, Verse: 2, Text: "And the earth."},
		{Book: "John", Chapter: 3, Verse: 16, Text: "For God so loved."},
		{Book: "", Chapter: 1, Verse: 1, Text: "skipped"},
		{Book: "Mark", Chapter: 1, Verse: 1, Text: ""},
	}

	c := FromRecords(records)

	if got := c["Genesis"]["1"]["2"]; got != "And the earth." {
		t.Errorf("Genesis 1:2 = %q", got)
	}
	if got := c["John"]["3"]["16"]; got != "For God so loved." {
		t.Errorf("John 3:16 = %q", got)
	}
	if _, ok := c[""]; ok {
		t.Error("record with empty book should be skipped")
	}
	if _, ok := c["Mark"]; ok {
		t.Error("record with empty text should be skipped")
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")
	c := sampleCorpus()

	if err := c.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded, c) {
		t.Error("loaded corpus differs from saved corpus")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing corpus file")
	}
}

func TestLoad_EmptyCorpus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for corpus with no books")
	}
}

func TestSample(t *testing.T) {
	got := sampleCorpus().Sample(2)
	if len(got) != 2 {
		t.Fatalf("Sample(2) returned %d texts", len(got))
	}
	if got[0] != "Now these are the names." {
		t.Errorf("first sample = %q, want deterministic first verse", got[0])
	}
}
