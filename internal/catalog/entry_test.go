package catalog_test

import (
	"errors"
	"testing"

	"crunchlist/internal/catalog"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input string
		want  catalog.Status
		ok    bool
	}{
		{"Watching", catalog.StatusWatching, true},
		{"  completed ", catalog.StatusCompleted, true},
		{"PAUSED", catalog.StatusPaused, true},
		{"Assistindo", catalog.StatusWatching, true},
		{"planejado", catalog.StatusPlanned, true},
		{"on hold", catalog.StatusPaused, true},
		{"", "", false},
		{"binge", "", false},
	}
	for _, tt := range tests {
		got, ok := catalog.ParseStatus(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseStatus(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDraftEntry(t *testing.T) {
	episodes := 26
	d := catalog.Draft{
		Title:    "  Cowboy Bebop ",
		Episodes: &episodes,
		Genres:   []string{"Sci-Fi", " "},
		Synopsis: " space bounty hunters ",
	}
	e, err := d.Entry("id-1", catalog.StatusCompleted, 1000)
	if err != nil {
		t.Fatalf("Entry: %v", err)
	}
	if e.Title != "Cowboy Bebop" || e.Status != catalog.StatusCompleted {
		t.Fatalf("unexpected entry: %#v", e)
	}
	if e.CreatedAt != 1000 || e.UpdatedAt != 1000 {
		t.Fatalf("timestamps = %d/%d", e.CreatedAt, e.UpdatedAt)
	}
	if len(e.Genres) != 1 || e.Tags == nil {
		t.Fatalf("lists not cleaned: %#v / %#v", e.Genres, e.Tags)
	}
	if e.Synopsis != "space bounty hunters" {
		t.Fatalf("synopsis = %q", e.Synopsis)
	}

	episodes = 99
	if *e.Episodes != 26 {
		t.Fatal("entry must not alias draft episodes")
	}

	if _, err := (catalog.Draft{Title: " "}).Entry("x", catalog.StatusWatching, 1); !errors.Is(err, catalog.ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
}

func TestPatchApply(t *testing.T) {
	score := 7.0
	base := catalog.Entry{ID: "x", Title: "Old", Status: catalog.StatusWatching, Score: &score, Tags: []string{"a"}}

	newTitle := "New"
	tags := []string{"b", "c"}
	fav := true
	out, err := catalog.Patch{Title: &newTitle, Tags: &tags, Favorite: &fav, SetScore: true}.Apply(base)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out.Title != "New" || !out.Favorite || out.Score != nil || len(out.Tags) != 2 {
		t.Fatalf("unexpected patched entry: %#v", out)
	}
	if base.Title != "Old" || base.Score == nil || len(base.Tags) != 1 {
		t.Fatal("Apply must not mutate its input")
	}

	blank := "  "
	if _, err := (catalog.Patch{Title: &blank}).Apply(base); !errors.Is(err, catalog.ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if !(catalog.Patch{}).Empty() {
		t.Fatal("zero patch should be empty")
	}
}

func TestComputeStats(t *testing.T) {
	stats := catalog.ComputeStats(sampleEntries())
	if stats.Total != 4 || stats.Watching != 1 || stats.Completed != 2 || stats.Favorites != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.ByStatus[catalog.StatusPlanned] != 1 {
		t.Fatalf("by status = %v", stats.ByStatus)
	}
}
