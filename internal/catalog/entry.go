package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// ErrTitleRequired is returned when an entry would be stored without a title.
var ErrTitleRequired = errors.New("title is required")

// Status is the watch state of an entry.
type Status string

const (
	StatusWatching  Status = "Watching"
	StatusCompleted Status = "Completed"
	StatusPlanned   Status = "Planned"
	StatusDropped   Status = "Dropped"
	StatusPaused    Status = "Paused"
)

// DefaultStatus is assigned when a record carries no status.
const DefaultStatus = StatusWatching

var allStatuses = []Status{
	StatusWatching,
	StatusCompleted,
	StatusPlanned,
	StatusDropped,
	StatusPaused,
}

// statusAliases maps folded labels to canonical statuses. The Portuguese
// labels come from backups written by the browser edition.
var statusAliases = func() map[string]Status {
	aliases := map[string]Status{
		"assistindo":    StatusWatching,
		"completo":      StatusCompleted,
		"planejado":     StatusPlanned,
		"abandonado":    StatusDropped,
		"dropado":       StatusDropped,
		"pausado":       StatusPaused,
		"plan to watch": StatusPlanned,
		"on hold":       StatusPaused,
	}
	fold := cases.Fold()
	for _, status := range allStatuses {
		aliases[fold.String(string(status))] = status
	}
	return aliases
}()

// Statuses returns the canonical statuses in display order.
func Statuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// ParseStatus resolves user or file supplied text to a canonical status.
func ParseStatus(value string) (Status, bool) {
	key := cases.Fold().String(strings.TrimSpace(value))
	if key == "" {
		return "", false
	}
	status, ok := statusAliases[key]
	return status, ok
}

// Entry is a single tracked title.
type Entry struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Status    Status   `json:"status"`
	Episodes  *int     `json:"episodes"`
	Score     *float64 `json:"score"`
	Genres    []string `json:"genres"`
	Tags      []string `json:"tags"`
	Synopsis  string   `json:"synopsis"`
	Cover     string   `json:"cover"`
	Favorite  bool     `json:"favorite"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
}

// Clone returns a deep copy so callers can mutate the result freely.
func (e Entry) Clone() Entry {
	out := e
	if e.Episodes != nil {
		v := *e.Episodes
		out.Episodes = &v
	}
	if e.Score != nil {
		v := *e.Score
		out.Score = &v
	}
	out.Genres = append([]string{}, e.Genres...)
	out.Tags = append([]string{}, e.Tags...)
	return out
}

// Normalized replaces nil lists with empty ones so serialized entries always
// carry arrays.
func (e Entry) Normalized() Entry {
	if e.Genres == nil {
		e.Genres = []string{}
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	return e
}

// HasTag reports whether the entry carries tag exactly.
func (e Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Created returns the creation time.
func (e Entry) Created() time.Time {
	return time.UnixMilli(e.CreatedAt)
}

// Updated returns the last modification time.
func (e Entry) Updated() time.Time {
	return time.UnixMilli(e.UpdatedAt)
}

// NewID generates an identifier for a new entry.
func NewID() string {
	return uuid.NewString()
}

// Millis converts t to the timestamp representation stored on entries.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// Stats summarizes a collection.
type Stats struct {
	Total     int            `json:"total"`
	Watching  int            `json:"watching"`
	Completed int            `json:"completed"`
	Favorites int            `json:"favorites"`
	ByStatus  map[Status]int `json:"byStatus"`
}

// ComputeStats counts entries per headline bucket and per status.
func ComputeStats(entries []Entry) Stats {
	stats := Stats{ByStatus: make(map[Status]int, len(allStatuses))}
	for _, e := range entries {
		stats.Total++
		stats.ByStatus[e.Status]++
		switch e.Status {
		case StatusWatching:
			stats.Watching++
		case StatusCompleted:
			stats.Completed++
		}
		if e.Favorite {
			stats.Favorites++
		}
	}
	return stats
}
