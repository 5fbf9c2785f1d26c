package catalog

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"crunchlist/internal/textutil"
)

// Sanitizer normalizes loosely typed records, typically decoded from a backup
// file, into canonical entries. The zero value is usable.
type Sanitizer struct {
	// Now supplies the import time. Defaults to time.Now.
	Now func() time.Time
	// NewID generates ids for records without one. Defaults to NewID.
	NewID func() string
	// DefaultStatus replaces missing or unknown statuses. Defaults to
	// DefaultStatus.
	DefaultStatus Status
}

// Sanitize converts raw into an Entry. Only an empty title is an error;
// every other field is coerced or defaulted.
func (s Sanitizer) Sanitize(raw map[string]any) (Entry, error) {
	now := s.now()
	e := Entry{
		ID:        s.id(raw["id"]),
		Title:     strings.TrimSpace(coerceString(raw["title"])),
		Status:    s.status(raw["status"]),
		Genres:    coerceList(raw["genres"]),
		Tags:      coerceList(raw["tags"]),
		Synopsis:  coerceString(raw["synopsis"]),
		Favorite:  truthy(raw["favorite"]),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if e.Title == "" {
		return Entry{}, ErrTitleRequired
	}
	if n, ok := finiteNumber(raw["episodes"]); ok && n >= 0 && n <= maxEpisodes {
		v := int(math.Trunc(n))
		e.Episodes = &v
	}
	if n, ok := finiteNumber(raw["score"]); ok {
		e.Score = &n
	}
	if cover, ok := raw["cover"].(string); ok {
		e.Cover = cover
	}
	if n, ok := finiteNumber(raw["createdAt"]); ok && n > 0 && n < maxTimestamp {
		e.CreatedAt = int64(n)
	}
	return e, nil
}

// Numbers past these bounds would wrap on conversion and are treated as
// missing.
const (
	maxEpisodes  = math.MaxInt32
	maxTimestamp = 1 << 53
)

func (s Sanitizer) now() int64 {
	if s.Now != nil {
		return Millis(s.Now())
	}
	return Millis(time.Now())
}

func (s Sanitizer) id(value any) string {
	if id := strings.TrimSpace(coerceString(value)); id != "" {
		return id
	}
	if s.NewID != nil {
		return s.NewID()
	}
	return NewID()
}

func (s Sanitizer) status(value any) Status {
	if text, ok := value.(string); ok {
		if status, ok := ParseStatus(text); ok {
			return status
		}
	}
	if s.DefaultStatus != "" {
		return s.DefaultStatus
	}
	return DefaultStatus
}

// coerceString renders scalar values as text. Falsy values, objects, and
// arrays become the empty string.
func coerceString(value any) string {
	if !truthy(value) {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

func coerceList(value any) []string {
	switch v := value.(type) {
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			if text := strings.TrimSpace(coerceString(item)); text != "" {
				items = append(items, text)
			}
		}
		return items
	case []string:
		return textutil.CleanList(v)
	default:
		return textutil.ParseList(coerceString(value))
	}
}

func finiteNumber(value any) (float64, bool) {
	var n float64
	switch v := value.(type) {
	case float64:
		n = v
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		n = parsed
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// truthy follows JavaScript truthiness, which is what produced the files
// being imported.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0 && !math.IsNaN(v)
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	default:
		return true
	}
}
