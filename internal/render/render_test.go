package render

import (
	"strings"
	"testing"

	"github.com/ford-at-home/alt-bible/internal/corpus"
)

var testBooks = corpus.Corpus{
	"Genesis": {
		"1":  {"1": "Dude, creation happened.", "2": "And then, light, man."},
		"10": {"1": "The generations, bro."},
		"2":  {"1": "Thus the heavens were finished."},
	},
}

func TestMarkdown_Layout(t *testing.T) {
	md := Markdown("The Joe Rogan Bible", testBooks)

	if !strings.HasPrefix(md, "# The Joe Rogan Bible\n") {
		t.Errorf("missing title heading:\n%s", md)
	}
	for _, want := range []string{"## Genesis 1\n", "## Genesis 2\n", "## Genesis 10\n", "**1** Dude, creation happened.", "**2** And then, light, man."} {
		if !strings.Contains(md, want) {
			t.Errorf("missing %q in:\n%s", want, md)
		}
	}

	// Chapters must sort numerically: 2 before 10.
	if strings.Index(md, "## Genesis 2\n") > strings.Index(md, "## Genesis 10\n") {
		t.Error("chapter 2 should precede chapter 10")
	}
}

func TestRender_Formats(t *testing.T) {
	htmlOut, err := Render(FormatHTML, "Test", testBooks)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(htmlOut, "<h2>Genesis 1</h2>") {
		t.Errorf("html output missing chapter heading:\n%s", htmlOut)
	}
	if !strings.Contains(htmlOut, "<strong>1</strong>") {
		t.Errorf("html output missing verse number:\n%s", htmlOut)
	}

	textOut, err := Render(FormatText, "Test", testBooks)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(textOut, "<") {
		t.Errorf("text output contains tags:\n%s", textOut)
	}
	if !strings.Contains(textOut, "Dude, creation happened.") {
		t.Errorf("text output missing verse:\n%s", textOut)
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	if _, err := Render("pdf", "Test", testBooks); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestStripHTMLTags(t *testing.T) {
	got := StripHTMLTags(`<p>Hello <strong>world</strong></p>`)
	if got != "Hello world" {
		t.Errorf("StripHTMLTags = %q", got)
	}
}
