package textutil

import "strings"

// ParseList splits comma separated text into trimmed, non-empty items.
// Order and duplicates are preserved.
func ParseList(value string) []string {
	out := []string{}
	if strings.TrimSpace(value) == "" {
		return out
	}
	for _, part := range strings.Split(value, ",") {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// JoinList renders a list the way ParseList reads it back.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}

// CleanList trims every item and drops the empty ones.
func CleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
