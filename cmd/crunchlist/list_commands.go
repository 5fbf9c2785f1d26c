package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"crunchlist/internal/catalog"
	"crunchlist/internal/library"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var (
		search string
		status string
		tags   []string
		sortBy string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List entries with optional search, filters and sorting",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			filterStatus, err := parseStatusFlag(status)
			if err != nil {
				return err
			}
			mode := cfg.DefaultSortMode()
			if cmd.Flags().Changed("sort") {
				if mode, err = catalog.ParseSortMode(sortBy); err != nil {
					return err
				}
			}
			filter := catalog.Filter{
				Term:   search,
				Status: filterStatus,
				Tags:   cleanTags(tags),
			}

			return ctx.withLibrary(cmd, func(runCtx context.Context, lib *library.Library) error {
				entries, err := lib.Browse(runCtx, filter, mode)
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, entries)
				}

				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					if filterActive(filter) {
						fmt.Fprintln(out, "No entries match the current filters.")
					} else {
						fmt.Fprintln(out, "Your list is empty. Add something with `crunchlist add --title ...`.")
					}
					return nil
				}

				theme, err := lib.Theme(runCtx)
				if err != nil {
					return err
				}
				style := tableStyle(theme, isTerminal(out))
				fmt.Fprintln(out, renderTable(entryColumns, entryRows(entries, time.Now()), style))
				fmt.Fprintf(out, "%d %s\n", len(entries), plural(len(entries), "entry", "entries"))
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&search, "search", "q", "", "Match title, genres or tags")
	flags.StringVarP(&status, "status", "s", "", "Only show this status")
	flags.StringArrayVar(&tags, "tag", nil, "Only show entries with this tag (repeatable; any match)")
	flags.StringVar(&sortBy, "sort", "", "Sort order: "+joinSortModes())
	return cmd
}

func newTagsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List every tag in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(cmd, func(runCtx context.Context, lib *library.Library) error {
				tags, err := lib.Tags(runCtx)
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, tags)
				}
				out := cmd.OutOrStdout()
				if len(tags) == 0 {
					fmt.Fprintln(out, "No tags yet.")
					return nil
				}
				for _, tag := range tags {
					fmt.Fprintln(out, tag)
				}
				return nil
			})
		},
	}
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(cmd, func(runCtx context.Context, lib *library.Library) error {
				stats, err := lib.Stats(runCtx)
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, stats)
				}
				theme, err := lib.Theme(runCtx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				rows := [][]string{
					{"Total", strconv.Itoa(stats.Total)},
					{"Watching", strconv.Itoa(stats.Watching)},
					{"Completed", strconv.Itoa(stats.Completed)},
					{"Favorites", strconv.Itoa(stats.Favorites)},
				}
				for _, status := range catalog.Statuses() {
					if status == catalog.StatusWatching || status == catalog.StatusCompleted {
						continue
					}
					rows = append(rows, []string{string(status), strconv.Itoa(stats.ByStatus[status])})
				}
				style := tableStyle(theme, isTerminal(out))
				fmt.Fprintln(out, renderTable([]column{{title: "Metric"}, {title: "Count", right: true}}, rows, style))
				return nil
			})
		},
	}
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func filterActive(f catalog.Filter) bool {
	return strings.TrimSpace(f.Term) != "" || f.Status != "" || len(f.Tags) > 0
}

func joinSortModes() string {
	modes := catalog.SortModes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
