package service

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrExtractionFailed indicates the assistant text could not be recovered as a
// remix object. Callers fall back to showing the raw text; this is an expected
// condition, not a failure surfaced to the user.
var ErrExtractionFailed = errors.New("could not extract remix from response")

// RemixResult is the structured shape the model is asked to produce. Every
// field is optional: the renderer supplies fallbacks for anything the model
// omitted.
type RemixResult struct {
	Title        string            `json:"title"`
	Ingredients  []RemixIngredient `json:"ingredients"`
	Instructions string            `json:"instructions"`
	Note         string            `json:"note,omitempty"`
}

// RemixIngredient is one entry of a remixed ingredient list. Changed marks
// entries the model altered from the original recipe.
type RemixIngredient struct {
	Name    string `json:"name"`
	Measure string `json:"measure"`
	Changed bool   `json:"changed"`
	Note    string `json:"note,omitempty"`
}

// UnmarshalJSON accepts both "measure" and the legacy "amount" field name.
func (i *RemixIngredient) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name    string `json:"name"`
		Measure string `json:"measure"`
		Amount  string `json:"amount"`
		Changed bool   `json:"changed"`
		Note    string `json:"note"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	i.Name = raw.Name
	i.Measure = raw.Measure
	if i.Measure == "" {
		i.Measure = raw.Amount
	}
	i.Changed = raw.Changed
	i.Note = raw.Note
	return nil
}

// ExtractRemix recovers a RemixResult from an arbitrary assistant text blob.
// The text is supposed to be a single JSON object but may arrive wrapped in
// prose or code fences. Recovery precedence:
//
//  1. parse the trimmed text verbatim;
//  2. parse the substring from the first '{' to the last '}' inclusive;
//  3. report ErrExtractionFailed.
//
// No further heuristics are applied. The original text stays with the caller
// for fallback display.
func ExtractRemix(text string) (*RemixResult, error) {
	trimmed := strings.TrimSpace(text)

	if result, ok := decodeRemixObject(trimmed); ok {
		return result, nil
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		if result, ok := decodeRemixObject(trimmed[start : end+1]); ok {
			return result, nil
		}
	}

	return nil, ErrExtractionFailed
}

// decodeRemixObject parses candidate as a JSON object. Values that parse but
// are not objects (arrays, numbers, null) are rejected.
func decodeRemixObject(candidate string) (*RemixResult, bool) {
	candidate = strings.TrimSpace(candidate)
	if !strings.HasPrefix(candidate, "{") {
		return nil, false
	}
	var result RemixResult
	if err := json.Unmarshal([]byte(candidate), &result); err != nil {
		return nil, false
	}
	return &result, true
}
