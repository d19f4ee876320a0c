package detector

import (
	"testing"

	"github.com/ford-at-home/alt-bible/internal/corpus"
)

func TestDetector_IsEnglish(t *testing.T) {
	d := New()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "empty text",
			text: "",
			want: false,
		},
		{
			name: "english verse",
			text: "In the beginning God created the heaven and the earth.",
			want: true,
		},
		{
			name: "ukrainian text",
			text: "На початку Бог створив небо та землю.",
			want: false,
		},
		{
			name: "german text",
			text: "Am Anfang schuf Gott Himmel und Erde.",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.IsEnglish(tt.text); got != tt.want {
				t.Errorf("IsEnglish(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetector_CheckCorpus(t *testing.T) {
	d := New()

	c := corpus.Corpus{
		"Genesis": {
			"1": {
				"1": "In the beginning God created the heaven and the earth.",
				"2": "And the earth was without form, and void.",
			},
		},
	}

	report := d.CheckCorpus(c, 10)
	if report.Sampled != 2 {
		t.Fatalf("Sampled = %d, want 2", report.Sampled)
	}
	if report.English != 2 {
		t.Errorf("English = %d, want 2", report.English)
	}
	if report.Ratio() != 1.0 {
		t.Errorf("Ratio = %v, want 1.0", report.Ratio())
	}
}

func TestCorpusReport_EmptyRatio(t *testing.T) {
	if got := (CorpusReport{}).Ratio(); got != 0 {
		t.Errorf("Ratio of empty report = %v, want 0", got)
	}
}
