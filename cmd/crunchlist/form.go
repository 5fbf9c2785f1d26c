package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"crunchlist/internal/catalog"
	"crunchlist/internal/config"
	"crunchlist/internal/cover"
	"crunchlist/internal/textutil"
)

// entryFlags mirrors the add/edit form. Numbers stay strings so unparseable
// input clears the field instead of failing the command.
type entryFlags struct {
	title      string
	status     string
	episodes   string
	score      string
	genres     string
	tags       string
	synopsis   string
	coverPath  string
	favorite   bool
	clearCover bool
}

func (f *entryFlags) register(cmd *cobra.Command, edit bool) {
	flags := cmd.Flags()
	flags.StringVarP(&f.title, "title", "t", "", "Title")
	flags.StringVarP(&f.status, "status", "s", "", "Watching, Completed, Planned, Dropped or Paused")
	flags.StringVarP(&f.episodes, "episodes", "e", "", "Episode count")
	flags.StringVar(&f.score, "score", "", "Score, e.g. 8.5")
	flags.StringVarP(&f.genres, "genres", "g", "", "Comma-separated genres")
	flags.StringVar(&f.tags, "tags", "", "Comma-separated tags")
	flags.StringVar(&f.synopsis, "synopsis", "", "Synopsis")
	flags.StringVar(&f.coverPath, "cover", "", "Path to a cover image")
	flags.BoolVarP(&f.favorite, "favorite", "f", false, "Mark as favorite")
	if edit {
		flags.BoolVar(&f.clearCover, "clear-cover", false, "Remove the cover image")
		cmd.MarkFlagsMutuallyExclusive("cover", "clear-cover")
	}
}

func (f *entryFlags) draft(cfg *config.Config) (catalog.Draft, error) {
	status, err := parseStatusFlag(f.status)
	if err != nil {
		return catalog.Draft{}, err
	}
	d := catalog.Draft{
		Title:    f.title,
		Status:   status,
		Episodes: textutil.ParseInt(f.episodes),
		Score:    textutil.ParseFloat(f.score),
		Genres:   textutil.ParseList(f.genres),
		Tags:     textutil.ParseList(f.tags),
		Synopsis: f.synopsis,
		Favorite: f.favorite,
	}
	if err := d.Validate(); err != nil {
		return catalog.Draft{}, err
	}
	if strings.TrimSpace(f.coverPath) != "" {
		d.Cover, err = loadCover(cfg, f.coverPath)
		if err != nil {
			return catalog.Draft{}, err
		}
	}
	return d, nil
}

func (f *entryFlags) patch(cmd *cobra.Command, cfg *config.Config) (catalog.Patch, error) {
	flags := cmd.Flags()
	var p catalog.Patch
	if flags.Changed("title") {
		title := f.title
		p.Title = &title
	}
	if flags.Changed("status") {
		status, err := parseStatusFlag(f.status)
		if err != nil {
			return catalog.Patch{}, err
		}
		if status != "" {
			p.Status = &status
		}
	}
	if flags.Changed("episodes") {
		p.SetEpisodes = true
		p.Episodes = textutil.ParseInt(f.episodes)
	}
	if flags.Changed("score") {
		p.SetScore = true
		p.Score = textutil.ParseFloat(f.score)
	}
	if flags.Changed("genres") {
		genres := textutil.ParseList(f.genres)
		p.Genres = &genres
	}
	if flags.Changed("tags") {
		tags := textutil.ParseList(f.tags)
		p.Tags = &tags
	}
	if flags.Changed("synopsis") {
		synopsis := f.synopsis
		p.Synopsis = &synopsis
	}
	if flags.Changed("favorite") {
		favorite := f.favorite
		p.Favorite = &favorite
	}
	if f.clearCover {
		empty := ""
		p.Cover = &empty
	} else if flags.Changed("cover") {
		data, err := loadCover(cfg, f.coverPath)
		if err != nil {
			return catalog.Patch{}, err
		}
		p.Cover = &data
	}
	if p.Empty() {
		return catalog.Patch{}, errors.New("nothing to change: pass at least one field flag")
	}
	return p, nil
}

func loadCover(cfg *config.Config, path string) (string, error) {
	expanded, err := config.ExpandPath(strings.TrimSpace(path))
	if err != nil {
		return "", fmt.Errorf("resolve cover path: %w", err)
	}
	data, err := cover.Load(expanded, cfg.MaxCoverBytes())
	if err != nil {
		return "", fmt.Errorf("load cover: %w", err)
	}
	return data, nil
}

// parseStatusFlag returns "" for empty input so callers apply their default.
func parseStatusFlag(value string) (catalog.Status, error) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	status, ok := catalog.ParseStatus(value)
	if !ok {
		return "", fmt.Errorf("unknown status %q (choose from %s)", value, joinStatuses())
	}
	return status, nil
}

func joinStatuses() string {
	names := make([]string, 0, len(catalog.Statuses()))
	for _, s := range catalog.Statuses() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}
