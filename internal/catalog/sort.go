package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortMode names an ordering of the collection.
type SortMode string

const (
	SortTitleAsc     SortMode = "title_asc"
	SortTitleDesc    SortMode = "title_desc"
	SortScoreDesc    SortMode = "score_desc"
	SortScoreAsc     SortMode = "score_asc"
	SortEpisodesDesc SortMode = "episodes_desc"
	SortEpisodesAsc  SortMode = "episodes_asc"
	SortCreatedAsc   SortMode = "created_asc"
	SortCreatedDesc  SortMode = "created_desc"
	SortFavFirst     SortMode = "fav_first"
)

// DefaultSortMode orders newest entries first.
const DefaultSortMode = SortCreatedDesc

var allSortModes = []SortMode{
	SortCreatedDesc,
	SortCreatedAsc,
	SortTitleAsc,
	SortTitleDesc,
	SortScoreDesc,
	SortScoreAsc,
	SortEpisodesDesc,
	SortEpisodesAsc,
	SortFavFirst,
}

// SortModes lists the supported modes.
func SortModes() []SortMode {
	return slices.Clone(allSortModes)
}

// ParseSortMode validates value. An empty value selects DefaultSortMode.
func ParseSortMode(value string) (SortMode, error) {
	trimmed := SortMode(strings.ToLower(strings.TrimSpace(value)))
	if trimmed == "" {
		return DefaultSortMode, nil
	}
	if slices.Contains(allSortModes, trimmed) {
		return trimmed, nil
	}
	return "", fmt.Errorf("unknown sort mode %q", value)
}

// Sort returns a sorted copy of entries. The sort is stable, so entries with
// equal keys keep their relative order. Missing scores and episode counts
// always sort last. Unknown modes fall back to DefaultSortMode.
func Sort(entries []Entry, mode SortMode, locale language.Tag) []Entry {
	out := slices.Clone(entries)
	byTitle := titleComparer(locale)

	var compare func(a, b Entry) int
	switch mode {
	case SortTitleAsc:
		compare = byTitle
	case SortTitleDesc:
		compare = func(a, b Entry) int { return byTitle(b, a) }
	case SortScoreDesc:
		compare = func(a, b Entry) int { return compareOptional(a.Score, b.Score, true) }
	case SortScoreAsc:
		compare = func(a, b Entry) int { return compareOptional(a.Score, b.Score, false) }
	case SortEpisodesDesc:
		compare = func(a, b Entry) int { return compareOptional(a.Episodes, b.Episodes, true) }
	case SortEpisodesAsc:
		compare = func(a, b Entry) int { return compareOptional(a.Episodes, b.Episodes, false) }
	case SortCreatedAsc:
		compare = func(a, b Entry) int { return cmp.Compare(a.CreatedAt, b.CreatedAt) }
	case SortFavFirst:
		compare = func(a, b Entry) int {
			if a.Favorite != b.Favorite {
				if a.Favorite {
					return -1
				}
				return 1
			}
			return byTitle(a, b)
		}
	default:
		compare = func(a, b Entry) int { return cmp.Compare(b.CreatedAt, a.CreatedAt) }
	}

	slices.SortStableFunc(out, compare)
	return out
}

// Tags returns the distinct tags across entries in collation order.
func Tags(entries []Entry, locale language.Tag) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, e := range entries {
		for _, tag := range e.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	col := newCollator(locale)
	slices.SortStableFunc(tags, col.CompareString)
	return tags
}

// newCollator compares at base strength: case, accents, and width are ignored.
func newCollator(locale language.Tag) *collate.Collator {
	return collate.New(locale, collate.IgnoreCase, collate.IgnoreDiacritics, collate.IgnoreWidth)
}

func titleComparer(locale language.Tag) func(a, b Entry) int {
	col := newCollator(locale)
	return func(a, b Entry) int {
		return col.CompareString(a.Title, b.Title)
	}
}

// compareOptional treats a missing value as -Inf when descending and +Inf when
// ascending, which places it last either way.
func compareOptional[T cmp.Ordered](a, b *T, desc bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	if desc {
		return cmp.Compare(*b, *a)
	}
	return cmp.Compare(*a, *b)
}
