package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"crunchlist/internal/catalog"
)

// ErrInvalidFormat is returned when an import payload is not a JSON array of objects.
var ErrInvalidFormat = errors.New("invalid backup: expected a JSON array of entries")

// Result summarizes a decoded backup.
type Result struct {
	Imported   int `json:"imported"`
	Skipped    int `json:"skipped"`
	Duplicates int `json:"duplicates"`
}

// Decode parses a JSON backup and sanitizes every element. Elements without a
// usable title are skipped. When ids repeat, the last element replaces the
// earlier one at the earlier position.
func Decode(r io.Reader, sanitizer catalog.Sanitizer) ([]catalog.Entry, Result, error) {
	var result Result

	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return nil, result, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, result, fmt.Errorf("%w: trailing data after array", ErrInvalidFormat)
	}

	items, ok := payload.([]any)
	if !ok {
		return nil, result, fmt.Errorf("%w: got %s", ErrInvalidFormat, describe(payload))
	}

	raws := make([]map[string]any, 0, len(items))
	for i, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			return nil, result, fmt.Errorf("%w: element %d is %s", ErrInvalidFormat, i, describe(item))
		}
		raws = append(raws, raw)
	}

	entries := make([]catalog.Entry, 0, len(raws))
	index := make(map[string]int, len(raws))
	for _, raw := range raws {
		entry, err := sanitizer.Sanitize(raw)
		if errors.Is(err, catalog.ErrTitleRequired) {
			result.Skipped++
			continue
		}
		if err != nil {
			return nil, result, err
		}
		if pos, seen := index[entry.ID]; seen {
			entries[pos] = entry
			result.Duplicates++
			continue
		}
		index[entry.ID] = len(entries)
		entries = append(entries, entry)
	}
	result.Imported = len(entries)
	return entries, result, nil
}

func describe(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "an object"
	case []any:
		return "an array"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case json.Number, float64:
		return "a number"
	default:
		return fmt.Sprintf("%T", value)
	}
}
