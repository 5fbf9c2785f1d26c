package library_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"crunchlist/internal/backup"
	"crunchlist/internal/catalog"
	"crunchlist/internal/library"
	"crunchlist/internal/testsupport"
)

var start = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*library.Library, *testsupport.Clock) {
	t.Helper()
	clock := testsupport.NewClock(start)
	lib, _ := testsupport.NewLibrary(t, testsupport.NewConfig(t), clock)
	return lib, clock
}

func strPtr(v string) *string { return &v }

func intPtr(v int) *int { return &v }

func mustAdd(t *testing.T, lib *library.Library, d catalog.Draft) catalog.Entry {
	t.Helper()
	entry, err := lib.Add(context.Background(), d)
	if err != nil {
		t.Fatalf("Add(%q) failed: %v", d.Title, err)
	}
	return entry
}

func TestAddAssignsIdentityAndTimestamps(t *testing.T) {
	lib, _ := setup(t)

	entry := mustAdd(t, lib, catalog.Draft{Title: "  Naruto ", Genres: []string{"Action", " "}, Episodes: intPtr(220)})
	if entry.ID != "id-1" || entry.Title != "Naruto" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.Status != catalog.StatusWatching {
		t.Fatalf("expected default status, got %q", entry.Status)
	}
	if entry.CreatedAt != start.UnixMilli() || entry.UpdatedAt != start.UnixMilli() {
		t.Fatalf("unexpected timestamps %d/%d", entry.CreatedAt, entry.UpdatedAt)
	}
	if len(entry.Genres) != 1 || entry.Genres[0] != "Action" {
		t.Fatalf("expected cleaned genres, got %v", entry.Genres)
	}

	got, err := lib.Get(context.Background(), entry.ID)
	if err != nil || got.Title != "Naruto" {
		t.Fatalf("Get returned %+v, %v", got, err)
	}
}

func TestAddRequiresTitle(t *testing.T) {
	lib, _ := setup(t)
	ctx := context.Background()

	if _, err := lib.Add(ctx, catalog.Draft{Title: "   "}); !errors.Is(err, catalog.ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	entries, err := lib.Browse(ctx, catalog.Filter{}, catalog.DefaultSortMode)
	if err != nil {
		t.Fatalf("Browse failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no mutation, got %d entries", len(entries))
	}
}

func TestUpdateKeepsCreatedAtAndAdvancesUpdatedAt(t *testing.T) {
	lib, clock := setup(t)
	ctx := context.Background()
	entry := mustAdd(t, lib, catalog.Draft{Title: "Bleach"})

	clock.Advance(time.Hour)
	status := catalog.StatusCompleted
	updated, err := lib.Update(ctx, entry.ID, catalog.Patch{Title: strPtr("Bleach TYBW"), Status: &status})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.ID != entry.ID || updated.CreatedAt != entry.CreatedAt {
		t.Fatalf("identity changed: %+v", updated)
	}
	if updated.UpdatedAt != start.Add(time.Hour).UnixMilli() {
		t.Fatalf("unexpected updatedAt %d", updated.UpdatedAt)
	}
	if updated.Title != "Bleach TYBW" || updated.Status != catalog.StatusCompleted {
		t.Fatalf("patch not applied: %+v", updated)
	}
}

func TestUpdatedAtNeverMovesBackwards(t *testing.T) {
	lib, clock := setup(t)
	ctx := context.Background()
	entry := mustAdd(t, lib, catalog.Draft{Title: "Mushishi"})

	clock.Advance(-time.Hour)
	updated, err := lib.ToggleFavorite(ctx, entry.ID)
	if err != nil {
		t.Fatalf("ToggleFavorite failed: %v", err)
	}
	if updated.UpdatedAt != entry.UpdatedAt {
		t.Fatalf("expected updatedAt to hold at %d, got %d", entry.UpdatedAt, updated.UpdatedAt)
	}
	if !updated.Favorite {
		t.Fatal("expected favorite to be set")
	}
}

func TestUpdateRejectsEmptyTitleAndUnknownID(t *testing.T) {
	lib, _ := setup(t)
	ctx := context.Background()
	entry := mustAdd(t, lib, catalog.Draft{Title: "Trigun"})

	if _, err := lib.Update(ctx, entry.ID, catalog.Patch{Title: strPtr(" ")}); !errors.Is(err, catalog.ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if _, err := lib.Update(ctx, "missing", catalog.Patch{Title: strPtr("X")}); !errors.Is(err, library.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	got, err := lib.Get(ctx, entry.ID)
	if err != nil || got.Title != "Trigun" {
		t.Fatalf("expected entry unchanged, got %+v, %v", got, err)
	}
}

func TestDelete(t *testing.T) {
	lib, _ := setup(t)
	ctx := context.Background()
	a := mustAdd(t, lib, catalog.Draft{Title: "A"})
	b := mustAdd(t, lib, catalog.Draft{Title: "B"})

	if err := lib.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := lib.Delete(ctx, a.ID); !errors.Is(err, library.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	entries, err := lib.Browse(ctx, catalog.Filter{}, catalog.DefaultSortMode)
	if err != nil {
		t.Fatalf("Browse failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != b.ID {
		t.Fatalf("unexpected entries %+v", entries)
	}
}

func TestBrowseFiltersAndSorts(t *testing.T) {
	lib, clock := setup(t)
	ctx := context.Background()
	mustAdd(t, lib, catalog.Draft{Title: "Naruto", Tags: []string{"shounen"}})
	clock.Advance(time.Minute)
	mustAdd(t, lib, catalog.Draft{Title: "Bleach", Tags: []string{"shounen"}})
	clock.Advance(time.Minute)
	mustAdd(t, lib, catalog.Draft{Title: "Mushishi", Tags: []string{"iyashikei"}, Status: catalog.StatusCompleted})

	all, err := lib.Browse(ctx, catalog.Filter{}, catalog.DefaultSortMode)
	if err != nil {
		t.Fatalf("Browse failed: %v", err)
	}
	if got := titles(all); got != "Mushishi,Bleach,Naruto" {
		t.Fatalf("expected newest first, got %s", got)
	}

	shounen, err := lib.Browse(ctx, catalog.Filter{Tags: []string{"shounen"}}, catalog.SortTitleAsc)
	if err != nil {
		t.Fatalf("Browse failed: %v", err)
	}
	if got := titles(shounen); got != "Bleach,Naruto" {
		t.Fatalf("unexpected filtered titles %s", got)
	}

	completed, err := lib.Browse(ctx, catalog.Filter{Status: catalog.StatusCompleted, Term: "MUSHI"}, catalog.SortTitleAsc)
	if err != nil {
		t.Fatalf("Browse failed: %v", err)
	}
	if got := titles(completed); got != "Mushishi" {
		t.Fatalf("unexpected completed titles %s", got)
	}

	tags, err := lib.Tags(ctx)
	if err != nil {
		t.Fatalf("Tags failed: %v", err)
	}
	if strings.Join(tags, ",") != "iyashikei,shounen" {
		t.Fatalf("unexpected tags %v", tags)
	}

	stats, err := lib.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 3 || stats.Watching != 2 || stats.Completed != 1 || stats.Favorites != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	lib, _ := setup(t)
	ctx := context.Background()
	a := mustAdd(t, lib, catalog.Draft{Title: "Cowboy Bebop", Episodes: intPtr(26), Favorite: true})
	b := mustAdd(t, lib, catalog.Draft{Title: "Trigun"})

	var buf bytes.Buffer
	n, err := lib.Export(ctx, &buf, backup.FormatJSON)
	if err != nil || n != 2 {
		t.Fatalf("Export returned %d, %v", n, err)
	}

	other, _ := setup(t)
	result, err := other.Import(ctx, &buf, library.ImportOptions{})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Imported != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
	for _, want := range []catalog.Entry{a, b} {
		got, err := other.Get(ctx, want.ID)
		if err != nil {
			t.Fatalf("Get(%s) failed: %v", want.ID, err)
		}
		if got.Title != want.Title || got.CreatedAt != want.CreatedAt || got.Favorite != want.Favorite {
			t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
		}
	}
}

func TestImportInvalidLeavesCollectionUnchanged(t *testing.T) {
	lib, _ := setup(t)
	ctx := context.Background()
	mustAdd(t, lib, catalog.Draft{Title: "Keep me"})

	if _, err := lib.Import(ctx, strings.NewReader(`{}`), library.ImportOptions{}); !errors.Is(err, backup.ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
	entries, err := lib.Browse(ctx, catalog.Filter{}, catalog.DefaultSortMode)
	if err != nil {
		t.Fatalf("Browse failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Keep me" {
		t.Fatalf("expected collection unchanged, got %+v", entries)
	}
}

func TestImportReplaceRefusesUntitledBackup(t *testing.T) {
	lib, _ := setup(t)
	ctx := context.Background()
	mustAdd(t, lib, catalog.Draft{Title: "Keep me"})

	payload := `[{"id":"a","title":""},{"id":"b"}]`
	result, err := lib.Import(ctx, strings.NewReader(payload), library.ImportOptions{})
	if !errors.Is(err, library.ErrNoTitledEntries) {
		t.Fatalf("expected ErrNoTitledEntries, got %v", err)
	}
	if result.Skipped != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
	entries, err := lib.Browse(ctx, catalog.Filter{}, catalog.DefaultSortMode)
	if err != nil {
		t.Fatalf("Browse failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Keep me" {
		t.Fatalf("expected collection unchanged, got %+v", entries)
	}

	if _, err := lib.Import(ctx, strings.NewReader(payload), library.ImportOptions{Merge: true}); err != nil {
		t.Fatalf("merge import failed: %v", err)
	}
	if _, err := lib.Import(ctx, strings.NewReader(`[]`), library.ImportOptions{}); err != nil {
		t.Fatalf("empty import failed: %v", err)
	}
	entries, _ = lib.Browse(ctx, catalog.Filter{}, catalog.DefaultSortMode)
	if len(entries) != 0 {
		t.Fatalf("expected empty backup to clear the collection, got %+v", entries)
	}
}

func TestImportReplaceVersusMerge(t *testing.T) {
	ctx := context.Background()
	payload := `[{"id":"id-1","title":"Naruto Shippuden"},{"id":"new","title":"Monster"},{"title":""}]`

	replace, _ := setup(t)
	mustAdd(t, replace, catalog.Draft{Title: "Naruto"})
	mustAdd(t, replace, catalog.Draft{Title: "Bleach"})
	result, err := replace.Import(ctx, strings.NewReader(payload), library.ImportOptions{})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Imported != 2 || result.Skipped != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	replaced, _ := replace.Browse(ctx, catalog.Filter{}, catalog.SortTitleAsc)
	if got := titles(replaced); got != "Monster,Naruto Shippuden" {
		t.Fatalf("expected replaced collection, got %s", got)
	}

	merged, _ := setup(t)
	mustAdd(t, merged, catalog.Draft{Title: "Naruto"})
	mustAdd(t, merged, catalog.Draft{Title: "Bleach"})
	if _, err := merged.Import(ctx, strings.NewReader(payload), library.ImportOptions{Merge: true}); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	all, _ := merged.Browse(ctx, catalog.Filter{}, catalog.SortTitleAsc)
	if got := titles(all); got != "Bleach,Monster,Naruto Shippuden" {
		t.Fatalf("expected merged collection, got %s", got)
	}
}

func TestExportFileWritesTimestampedBackup(t *testing.T) {
	lib, _ := setup(t)
	ctx := context.Background()
	mustAdd(t, lib, catalog.Draft{Title: "Naruto"})

	dir := t.TempDir()
	path, n, err := lib.ExportFile(ctx, dir, backup.FormatCSV)
	if err != nil {
		t.Fatalf("ExportFile failed: %v", err)
	}
	if n != 1 || path != filepath.Join(dir, "crunchlist-backup-2026-10-19-12-00-00.csv") {
		t.Fatalf("unexpected export %q (%d)", path, n)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "Naruto") {
		t.Fatalf("unexpected export content %q", data)
	}
}

func TestThemeToggle(t *testing.T) {
	lib, _ := setup(t)
	ctx := context.Background()

	theme, err := lib.Theme(ctx)
	if err != nil || theme != catalog.ThemeLight {
		t.Fatalf("expected light default, got %q, %v", theme, err)
	}
	next, err := lib.ToggleTheme(ctx)
	if err != nil || next != catalog.ThemeDark {
		t.Fatalf("expected dark after toggle, got %q, %v", next, err)
	}
	if err := lib.SetTheme(ctx, catalog.ThemeLight); err != nil {
		t.Fatalf("SetTheme failed: %v", err)
	}
	theme, _ = lib.Theme(ctx)
	if theme != catalog.ThemeLight {
		t.Fatalf("expected light, got %q", theme)
	}
}

func titles(entries []catalog.Entry) string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Title
	}
	return strings.Join(out, ",")
}
