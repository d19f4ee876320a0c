package response

import (
	"errors"
	"reflect"
	"testing"
)

var expectedVerses = map[string]string{
	"1": "In the beginning.",
	"2": "And the earth.",
}

func TestStripFences(t *testing.T) {
	in := "```json\n{\"a\": 1}\n```"
	got := StripFences(in)
	if got != "\n{\"a\": 1}\n" {
		t.Errorf("StripFences = %q", got)
	}
}

func TestTrimToBraces(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`Sure! Here you go: {"a": 1} Hope that helps.`, `{"a": 1}`},
		{`{"a": 1}`, `{"a": 1}`},
		{`no json here`, ``},
		{`} backwards {`, ``},
	}
	for _, tt := range tests {
		if got := TrimToBraces(tt.in); got != tt.want {
			t.Errorf("TrimToBraces(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDropTrailingCommas(t *testing.T) {
	in := `{"verses": {"1": "a", "2": "b",}, "list": [1, 2,],}`
	want := `{"verses": {"1": "a", "2": "b"}, "list": [1, 2]}`
	if got := DropTrailingCommas(in); got != want {
		t.Errorf("DropTrailingCommas = %q, want %q", got, want)
	}
}

func TestValidateAndRepair_PerfectPayload(t *testing.T) {
	raw := `{"book": "Genesis", "chapter": 1, "verses": {"1": "Dude, in the beginning.", "2": "And the earth, man."}}`

	res, err := ValidateAndRepair(raw, expectedVerses)
	if err != nil {
		t.Fatalf("ValidateAndRepair: %v", err)
	}
	if res.Book != "Genesis" || res.Chapter != "1" {
		t.Errorf("book/chapter = %q/%q", res.Book, res.Chapter)
	}
	want := map[string]string{"1": "Dude, in the beginning.", "2": "And the earth, man."}
	if !reflect.DeepEqual(res.Verses, want) {
		t.Errorf("verses = %v", res.Verses)
	}
}

func TestValidateAndRepair_FencedWithTrailingComma(t *testing.T) {
	raw := "```json\n{\"book\": \"Genesis\", \"chapter\": 1, \"verses\": {\"1\": \"a\", \"2\": \"b\",}}\n```"

	res, err := ValidateAndRepair(raw, expectedVerses)
	if err != nil {
		t.Fatalf("fenced payload with trailing comma should be repaired: %v", err)
	}
	if len(res.Verses) != 2 {
		t.Errorf("verses = %v", res.Verses)
	}
}

func TestValidateAndRepair_LeadingProse(t *testing.T) {
	raw := `Here is your stylized chapter! {"book": "Genesis", "chapter": "1", "verses": {"1": "a", "2": "b"}} Let me know if you need more.`

	if _, err := ValidateAndRepair(raw, expectedVerses); err != nil {
		t.Errorf("leading/trailing prose should be trimmed: %v", err)
	}
}

func TestValidateAndRepair_ExtraVerseDropped(t *testing.T) {
	raw := `{"book": "Genesis", "chapter": 1, "verses": {"1": "a", "2": "b", "3": "invented"}}`

	res, err := ValidateAndRepair(raw, expectedVerses)
	if err != nil {
		t.Fatalf("extra verse must be tolerated: %v", err)
	}
	if _, ok := res.Verses["3"]; ok {
		t.Error("extra verse should be removed from the result")
	}
	if !reflect.DeepEqual(res.Dropped, []string{"3"}) {
		t.Errorf("Dropped = %v, want [3]", res.Dropped)
	}
}

func TestValidateAndRepair_MissingVerseFatal(t *testing.T) {
	raw := `{"book": "Genesis", "chapter": 1, "verses": {"1": "a"}}`

	_, err := ValidateAndRepair(raw, expectedVerses)
	if err == nil {
		t.Fatal("missing verse must be a hard failure")
	}
	var inc *IncompleteError
	if !errors.As(err, &inc) {
		t.Fatalf("expected IncompleteError, got %T", err)
	}
	if !reflect.DeepEqual(inc.Missing, []string{"2"}) {
		t.Errorf("Missing = %v, want [2]", inc.Missing)
	}
}

func TestValidateAndRepair_ParseError(t *testing.T) {
	_, err := ValidateAndRepair(`{"book": "Genesis", "chapter": 1, "verses": {`, expectedVerses)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Errorf("expected ParseError, got %T (%v)", err, err)
	}

	_, err = ValidateAndRepair("no payload at all", expectedVerses)
	if !errors.As(err, &pe) {
		t.Errorf("expected ParseError for proseless response, got %T", err)
	}
}

func TestValidateAndRepair_StructureErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing book", `{"chapter": 1, "verses": {"1": "a", "2": "b"}}`},
		{"missing chapter", `{"book": "Genesis", "verses": {"1": "a", "2": "b"}}`},
		{"missing verses", `{"book": "Genesis", "chapter": 1}`},
		{"empty verses", `{"book": "Genesis", "chapter": 1, "verses": {}}`},
		{"non-numeric key", `{"book": "Genesis", "chapter": 1, "verses": {"one": "a", "2": "b"}}`},
		{"empty content", `{"book": "Genesis", "chapter": 1, "verses": {"1": "  ", "2": "b"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndRepair(tt.raw, expectedVerses)
			var se *StructureError
			if !errors.As(err, &se) {
				t.Errorf("expected StructureError, got %T (%v)", err, err)
			}
		})
	}
}
