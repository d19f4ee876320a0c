// Package render turns a persona's stored translations into shareable
// documents: markdown, HTML via gomarkdown, or plain text.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/ford-at-home/alt-bible/internal/corpus"
)

const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatText     = "text"
)

// Render produces the persona's translations in the requested format.
func Render(format, title string, books corpus.Corpus) (string, error) {
	md := Markdown(title, books)
	switch format {
	case FormatMarkdown:
		return md, nil
	case FormatHTML:
		return ToHTML([]byte(md)), nil
	case FormatText:
		return ToPlainText([]byte(md)), nil
	default:
		return "", fmt.Errorf("unknown format %q (want markdown, html or text)", format)
	}
}

// Markdown lays out the books in canonical order: books ascending, chapters
// numeric, one bolded verse number per line.
func Markdown(title string, books corpus.Corpus) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", title)

	for _, ref := range books.ChapterRefs("", "") {
		fmt.Fprintf(&b, "\n## %s %s\n\n", ref.Book, ref.Chapter)
		verses := books.Verses(ref)
		for _, id := range corpus.VerseIDs(verses) {
			fmt.Fprintf(&b, "**%s** %s\n\n", id, verses[id])
		}
	}

	return b.String()
}

func ToHTML(md []byte) string {
	opts := html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank,
	}
	renderer := html.NewRenderer(opts)
	ext := parser.CommonExtensions | parser.Attributes
	p := parser.NewWithExtensions(ext)
	doc := p.Parse(md)
	return string(markdown.Render(doc, renderer))
}

func ToPlainText(md []byte) string {
	htmlContent := ToHTML(md)
	return StripHTMLTags(htmlContent)
}

func StripHTMLTags(htmlContent string) string {
	var result bytes.Buffer
	inTag := false

	for _, ch := range htmlContent {
		switch ch {
		case '<':
			inTag = true
		case '>':
			inTag = false
		default:
			if !inTag {
				result.WriteRune(ch)
			}
		}
	}

	return result.String()
}
