package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter selects entries for display. Zero values match everything.
type Filter struct {
	// Term is matched case-insensitively against title, genres, and tags.
	Term string
	// Status must match exactly when set.
	Status Status
	// Tags matches entries carrying at least one of the listed tags.
	Tags []string
}

// Query returns the entries matching f, preserving input order.
func Query(entries []Entry, f Filter) []Entry {
	fold := cases.Fold()
	term := fold.String(strings.TrimSpace(f.Term))

	var tagSet map[string]struct{}
	if len(f.Tags) > 0 {
		tagSet = make(map[string]struct{}, len(f.Tags))
		for _, tag := range f.Tags {
			tagSet[tag] = struct{}{}
		}
	}

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if term != "" && !strings.Contains(fold.String(searchText(e)), term) {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		if tagSet != nil && !hasAnyTag(e, tagSet) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func searchText(e Entry) string {
	return e.Title + " " + strings.Join(e.Genres, " ") + " " + strings.Join(e.Tags, " ")
}

func hasAnyTag(e Entry, set map[string]struct{}) bool {
	for _, tag := range e.Tags {
		if _, ok := set[tag]; ok {
			return true
		}
	}
	return false
}
