// Package detector sanity-checks corpus text before a run. Personas are
// written against English source verses, so a corpus that is mostly
// something else is almost certainly the wrong file.
package detector

import (
	lingua "github.com/pemistahl/lingua-go"

	"github.com/ford-at-home/alt-bible/internal/corpus"
)

type Detector struct {
	detector lingua.LanguageDetector
}

func New() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		Build()

	return &Detector{detector: detector}
}

func (d *Detector) Detect(text string) (lingua.Language, bool) {
	if text == "" {
		return lingua.Unknown, false
	}
	return d.detector.DetectLanguageOf(text)
}

// IsEnglish reports whether the text is detected as English. Empty or
// undetectable text counts as non-English.
func (d *Detector) IsEnglish(text string) bool {
	lang, ok := d.Detect(text)
	return ok && lang == lingua.English
}

// CorpusReport summarises a language check over sampled verses.
type CorpusReport struct {
	Sampled int
	English int
}

// Ratio is the fraction of sampled verses detected as English.
func (r CorpusReport) Ratio() float64 {
	if r.Sampled == 0 {
		return 0
	}
	return float64(r.English) / float64(r.Sampled)
}

// CheckCorpus samples up to n verses and counts the ones detected as
// English. Callers decide what ratio is acceptable.
func (d *Detector) CheckCorpus(c corpus.Corpus, n int) CorpusReport {
	report := CorpusReport{}
	for _, text := range c.Sample(n) {
		report.Sampled++
		if d.IsEnglish(text) {
			report.English++
		}
	}
	return report
}
