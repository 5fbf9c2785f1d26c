package catalog_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"crunchlist/internal/catalog"
)

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func testSanitizer() catalog.Sanitizer {
	return catalog.Sanitizer{
		Now:   func() time.Time { return fixedNow },
		NewID: func() string { return "generated" },
	}
}

func decodeObject(t *testing.T, raw string) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return out
}

func TestSanitizeParsesCommaSeparatedGenres(t *testing.T) {
	e, err := testSanitizer().Sanitize(decodeObject(t, `{"title":"X","genres":"a, b"}`))
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(e.Genres, want) {
		t.Fatalf("genres = %#v, want %#v", e.Genres, want)
	}
	if e.Tags == nil || len(e.Tags) != 0 {
		t.Fatalf("tags = %#v, want empty slice", e.Tags)
	}
}

func TestSanitizeDefaults(t *testing.T) {
	e, err := testSanitizer().Sanitize(decodeObject(t, `{"title":"  Trigun  "}`))
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	now := catalog.Millis(fixedNow)
	want := catalog.Entry{
		ID:        "generated",
		Title:     "Trigun",
		Status:    catalog.StatusWatching,
		Genres:    []string{},
		Tags:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !reflect.DeepEqual(e, want) {
		t.Fatalf("got %#v\nwant %#v", e, want)
	}
}

func TestSanitizePreservesValidFields(t *testing.T) {
	raw := decodeObject(t, `{
		"id": "a_abc123",
		"title": "Monster",
		"status": "Completo",
		"episodes": 74,
		"score": 9.5,
		"genres": ["Thriller", " Mystery ", ""],
		"tags": ["seinen"],
		"synopsis": "  Dr. Tenma  ",
		"cover": "data:image/png;base64,AAAA",
		"favorite": true,
		"createdAt": 1700000000000,
		"updatedAt": 1700000000001
	}`)
	e, err := testSanitizer().Sanitize(raw)
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	if e.ID != "a_abc123" || e.Title != "Monster" || e.Status != catalog.StatusCompleted {
		t.Fatalf("unexpected identity fields: %#v", e)
	}
	if e.Episodes == nil || *e.Episodes != 74 {
		t.Fatalf("episodes = %v", e.Episodes)
	}
	if e.Score == nil || *e.Score != 9.5 {
		t.Fatalf("score = %v", e.Score)
	}
	if want := []string{"Thriller", "Mystery"}; !reflect.DeepEqual(e.Genres, want) {
		t.Fatalf("genres = %#v", e.Genres)
	}
	if e.Synopsis != "  Dr. Tenma  " {
		t.Fatalf("synopsis should not be trimmed, got %q", e.Synopsis)
	}
	if e.Cover != "data:image/png;base64,AAAA" || !e.Favorite {
		t.Fatalf("cover/favorite lost: %#v", e)
	}
	if e.CreatedAt != 1700000000000 {
		t.Fatalf("createdAt = %d", e.CreatedAt)
	}
	if e.UpdatedAt != catalog.Millis(fixedNow) {
		t.Fatalf("updatedAt should refresh, got %d", e.UpdatedAt)
	}
}

func TestSanitizeCoercesBadTypes(t *testing.T) {
	raw := decodeObject(t, `{
		"id": 42,
		"title": 1984,
		"status": "binge",
		"episodes": "12",
		"score": null,
		"genres": null,
		"tags": 7,
		"synopsis": null,
		"cover": {"url": "x"},
		"favorite": "yes",
		"createdAt": "yesterday"
	}`)
	e, err := testSanitizer().Sanitize(raw)
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	if e.ID != "42" || e.Title != "1984" {
		t.Fatalf("id/title = %q/%q", e.ID, e.Title)
	}
	if e.Status != catalog.StatusWatching {
		t.Fatalf("unknown status should default, got %q", e.Status)
	}
	if e.Episodes != nil || e.Score != nil {
		t.Fatalf("non-numeric episodes/score should be nil: %v %v", e.Episodes, e.Score)
	}
	if len(e.Genres) != 0 {
		t.Fatalf("genres = %#v", e.Genres)
	}
	if want := []string{"7"}; !reflect.DeepEqual(e.Tags, want) {
		t.Fatalf("tags = %#v", e.Tags)
	}
	if e.Synopsis != "" || e.Cover != "" {
		t.Fatalf("synopsis/cover = %q/%q", e.Synopsis, e.Cover)
	}
	if !e.Favorite {
		t.Fatal("non-empty string favorite should be truthy")
	}
	if e.CreatedAt != catalog.Millis(fixedNow) {
		t.Fatalf("createdAt = %d", e.CreatedAt)
	}
}

func TestSanitizeEpisodesMustBeNonNegative(t *testing.T) {
	e, err := testSanitizer().Sanitize(decodeObject(t, `{"title":"X","episodes":-1}`))
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	if e.Episodes != nil {
		t.Fatalf("negative episodes kept: %d", *e.Episodes)
	}

	e, err = testSanitizer().Sanitize(decodeObject(t, `{"title":"X","episodes":12.7}`))
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	if e.Episodes == nil || *e.Episodes != 12 {
		t.Fatalf("fractional episodes = %v", e.Episodes)
	}
}

func TestSanitizeRequiresTitle(t *testing.T) {
	for _, raw := range []string{`{}`, `{"title":"   "}`, `{"title":0}`, `{"title":null}`} {
		if _, err := testSanitizer().Sanitize(decodeObject(t, raw)); !errors.Is(err, catalog.ErrTitleRequired) {
			t.Fatalf("%s: expected ErrTitleRequired, got %v", raw, err)
		}
	}
}

func TestSanitizeCustomDefaultStatus(t *testing.T) {
	s := testSanitizer()
	s.DefaultStatus = catalog.StatusPlanned
	e, err := s.Sanitize(decodeObject(t, `{"title":"X"}`))
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	if e.Status != catalog.StatusPlanned {
		t.Fatalf("status = %q", e.Status)
	}
}

func TestSanitizeRejectsOutOfRangeNumbers(t *testing.T) {
	now := catalog.Millis(fixedNow)
	for _, raw := range []string{
		`{"title":"X","episodes":1e300,"createdAt":1e300}`,
		`{"title":"X","episodes":99999999999999999999,"createdAt":99999999999999999999}`,
	} {
		e, err := testSanitizer().Sanitize(decodeObject(t, raw))
		if err != nil {
			t.Fatalf("%s: Sanitize: %v", raw, err)
		}
		if e.Episodes != nil {
			t.Fatalf("%s: episodes = %d, want nil", raw, *e.Episodes)
		}
		if e.CreatedAt != now {
			t.Fatalf("%s: createdAt = %d, want %d", raw, e.CreatedAt, now)
		}
	}

	e, err := testSanitizer().Sanitize(decodeObject(t, `{"title":"X","episodes":2147483647,"createdAt":1700000000000}`))
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	if e.Episodes == nil || *e.Episodes != 2147483647 {
		t.Fatalf("episodes = %v", e.Episodes)
	}
	if e.CreatedAt != 1700000000000 {
		t.Fatalf("createdAt = %d", e.CreatedAt)
	}
}
