package catalog

import (
	"strings"

	"crunchlist/internal/textutil"
)

// Draft carries the fields of a new entry as entered by the user.
type Draft struct {
	Title    string
	Status   Status
	Episodes *int
	Score    *float64
	Genres   []string
	Tags     []string
	Synopsis string
	Cover    string
	Favorite bool
}

// Validate reports ErrTitleRequired when the trimmed title is empty.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrTitleRequired
	}
	return nil
}

// Entry builds a new entry from the draft. Status falls back to
// defaultStatus and timestamps are both set to nowMillis.
func (d Draft) Entry(id string, defaultStatus Status, nowMillis int64) (Entry, error) {
	if err := d.Validate(); err != nil {
		return Entry{}, err
	}
	status := d.Status
	if status == "" {
		status = defaultStatus
	}
	e := Entry{
		ID:        id,
		Title:     strings.TrimSpace(d.Title),
		Status:    status,
		Genres:    textutil.CleanList(d.Genres),
		Tags:      textutil.CleanList(d.Tags),
		Synopsis:  strings.TrimSpace(d.Synopsis),
		Cover:     d.Cover,
		Favorite:  d.Favorite,
		CreatedAt: nowMillis,
		UpdatedAt: nowMillis,
	}
	if d.Episodes != nil && *d.Episodes >= 0 {
		v := *d.Episodes
		e.Episodes = &v
	}
	if d.Score != nil {
		v := *d.Score
		e.Score = &v
	}
	return e, nil
}

// Patch describes an edit to an existing entry. Nil pointers leave the field
// untouched. For the nullable numeric fields the Set flag distinguishes
// "clear" (Set with a nil value) from "unchanged".
type Patch struct {
	Title       *string
	Status      *Status
	SetEpisodes bool
	Episodes    *int
	SetScore    bool
	Score       *float64
	Genres      *[]string
	Tags        *[]string
	Synopsis    *string
	Cover       *string
	Favorite    *bool
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Status == nil && !p.SetEpisodes && !p.SetScore &&
		p.Genres == nil && p.Tags == nil && p.Synopsis == nil && p.Cover == nil && p.Favorite == nil
}

// Apply returns a copy of e with the patch applied. The id and both
// timestamps are left for the caller to manage.
func (p Patch) Apply(e Entry) (Entry, error) {
	out := e.Clone()
	if p.Title != nil {
		out.Title = strings.TrimSpace(*p.Title)
	}
	if out.Title == "" {
		return Entry{}, ErrTitleRequired
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.SetEpisodes {
		out.Episodes = nil
		if p.Episodes != nil && *p.Episodes >= 0 {
			v := *p.Episodes
			out.Episodes = &v
		}
	}
	if p.SetScore {
		out.Score = nil
		if p.Score != nil {
			v := *p.Score
			out.Score = &v
		}
	}
	if p.Genres != nil {
		out.Genres = textutil.CleanList(*p.Genres)
	}
	if p.Tags != nil {
		out.Tags = textutil.CleanList(*p.Tags)
	}
	if p.Synopsis != nil {
		out.Synopsis = strings.TrimSpace(*p.Synopsis)
	}
	if p.Cover != nil {
		out.Cover = *p.Cover
	}
	if p.Favorite != nil {
		out.Favorite = *p.Favorite
	}
	return out, nil
}
