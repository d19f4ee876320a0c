package response

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Result is a validated chapter payload whose verse key set exactly matches
// the expected set. Extra keys the model invented are listed in Dropped.
type Result struct {
	Book    string
	Chapter string
	Verses  map[string]string
	Dropped []string
}

// ParseError reports a payload that could not be decoded even after repair.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse payload: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StructureError reports a payload that decoded but violates the contract's
// shape (missing fields, non-numeric keys, empty values).
type StructureError struct {
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("structure validation failed: %s", e.Reason)
}

// IncompleteError reports a payload missing expected verse ids. Missing ids
// are always fatal for the attempt; the caller retries.
type IncompleteError struct {
	Missing []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("missing verses: %s", strings.Join(e.Missing, ", "))
}

// flexString decodes a JSON value that may arrive as either a string or a
// number; models are inconsistent about quoting the chapter id.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type rawPayload struct {
	Book    flexString        `json:"book"`
	Chapter flexString        `json:"chapter"`
	Verses  map[string]string `json:"verses"`
}

// ValidateAndRepair runs the repair pipeline over the raw LLM text, decodes
// the payload, and validates it against the expected verse map.
//
// A parse failure or any structural violation returns an error with no
// result. Missing expected verse ids are a hard IncompleteError. Extra ids
// are tolerated: they are removed from the result and reported via Dropped so
// the caller can log the data loss.
func ValidateAndRepair(raw string, expected map[string]string) (*Result, error) {
	repaired := Repair(raw)
	if repaired == "" {
		return nil, &ParseError{Err: fmt.Errorf("no JSON object found in response")}
	}

	var payload rawPayload
	if err := json.Unmarshal([]byte(repaired), &payload); err != nil {
		return nil, &ParseError{Err: err}
	}

	if payload.Book == "" {
		return nil, &StructureError{Reason: "missing required key: book"}
	}
	if payload.Chapter == "" {
		return nil, &StructureError{Reason: "missing required key: chapter"}
	}
	if payload.Verses == nil {
		return nil, &StructureError{Reason: "missing required key: verses"}
	}
	if len(payload.Verses) == 0 {
		return nil, &StructureError{Reason: "verses object is empty"}
	}
	for id, text := range payload.Verses {
		if !isDigits(id) {
			return nil, &StructureError{Reason: fmt.Sprintf("verse key %q is not numeric", id)}
		}
		if strings.TrimSpace(text) == "" {
			return nil, &StructureError{Reason: fmt.Sprintf("verse %s content is empty", id)}
		}
	}

	var missing, extra []string
	for id := range expected {
		if _, ok := payload.Verses[id]; !ok {
			missing = append(missing, id)
		}
	}
	for id := range payload.Verses {
		if _, ok := expected[id]; !ok {
			extra = append(extra, id)
		}
	}
	sort.Strings(missing)
	sort.Strings(extra)

	if len(missing) > 0 {
		return nil, &IncompleteError{Missing: missing}
	}
	for _, id := range extra {
		delete(payload.Verses, id)
	}

	return &Result{
		Book:    string(payload.Book),
		Chapter: string(payload.Chapter),
		Verses:  payload.Verses,
		Dropped: extra,
	}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
