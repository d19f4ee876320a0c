package prompt

import (
	"strings"
	"testing"

	"github.com/ford-at-home/alt-bible/internal/persona"
)

var sampleVerses = map[string]string{
	"1":  "In the beginning.",
	"2":  "And the earth.",
	"10": "Ten.",
}

func TestFormatChapter_NumericOrder(t *testing.T) {
	got := FormatChapter("Genesis", "1", sampleVerses)

	want := "Genesis 1:\n1. In the beginning.\n2. And the earth.\n10. Ten."
	if got != want {
		t.Errorf("FormatChapter =\n%s\nwant\n%s", got, want)
	}
}

func TestBuildChapter_GenericStyleBlock(t *testing.T) {
	got := BuildChapter("Genesis", "1", sampleVerses, nil, "x", persona.IntensityMedium)

	if !strings.HasPrefix(got, "Context: You are x.") {
		t.Errorf("prompt without persona should open with a generic context block, got %q", got[:40])
	}
}

func TestBuildChapter_PersonaStyleBlock(t *testing.T) {
	reg, _ := persona.Load("")
	p, _ := reg.Get("joe_rogan")

	got := BuildChapter("Genesis", "1", sampleVerses, p, "joe_rogan", persona.IntensityNuclear)

	if !strings.Contains(got, p.Instruction(persona.IntensityNuclear).System) {
		t.Error("prompt should embed the persona's nuclear system instruction")
	}
	if strings.Contains(got, p.Instruction(persona.IntensityMild).System) {
		t.Error("prompt should not embed a different intensity's instruction")
	}
}

func TestBuildChapter_OutputContract(t *testing.T) {
	got := BuildChapter("Genesis", "1", sampleVerses, nil, "x", persona.IntensityMedium)

	for _, required := range []string{
		`"book": "Genesis"`,
		`"chapter": 1`,
		`"10": "Last verse in this chapter."`,
		"single JSON object",
		"markdown",
		"Do not add any extra keys",
	} {
		if !strings.Contains(got, required) {
			t.Errorf("chapter prompt missing contract element %q", required)
		}
	}

	// Source verses in ascending order after the contract.
	idx1 := strings.Index(got, "1. In the beginning.")
	idx2 := strings.Index(got, "2. And the earth.")
	idx10 := strings.Index(got, "10. Ten.")
	if idx1 == -1 || idx2 == -1 || idx10 == -1 || !(idx1 < idx2 && idx2 < idx10) {
		t.Error("chapter prompt must render verses in ascending numeric order")
	}
}

func TestBuildVerse_WithPersona(t *testing.T) {
	reg, _ := persona.Load("")
	p, _ := reg.Get("maya_angelou")

	got := BuildVerse("John", "3", "16", "For God so loved.", p, "maya_angelou")

	if !strings.Contains(got, "Maya Angelou") {
		t.Error("verse prompt should name the persona")
	}
	if !strings.Contains(got, "John 3:16 - For God so loved.") {
		t.Error("verse prompt should embed the verse reference and text")
	}
	if !strings.Contains(got, "Return only the rewritten verse:") {
		t.Error("verse prompt should end with the plain-text instruction")
	}
}

func TestBuildVerse_WithoutPersona(t *testing.T) {
	got := BuildVerse("John", "3", "16", "For God so loved.", nil, "x")
	if !strings.HasPrefix(got, "You are x.") {
		t.Errorf("generic verse prompt should open with the persona key, got %q", got[:20])
	}
}
