package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"crunchlist/internal/library"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var form entryFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an entry to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			draft, err := form.draft(cfg)
			if err != nil {
				return err
			}
			return ctx.withLibrary(cmd, func(runCtx context.Context, lib *library.Library) error {
				entry, err := lib.Add(runCtx, draft)
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, entry)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s)\n", entry.Title, entry.ID)
				return nil
			})
		},
	}
	form.register(cmd, false)
	return cmd
}

func newEditCommand(ctx *commandContext) *cobra.Command {
	var form entryFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an existing entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			patch, err := form.patch(cmd, cfg)
			if err != nil {
				return err
			}
			return ctx.withLibrary(cmd, func(runCtx context.Context, lib *library.Library) error {
				entry, err := lib.Update(runCtx, args[0], patch)
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, entry)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %q (%s)\n", entry.Title, entry.ID)
				return nil
			})
		},
	}
	form.register(cmd, true)
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Display every field of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(cmd, func(runCtx context.Context, lib *library.Library) error {
				entry, err := lib.Get(runCtx, args[0])
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, entry)
				}
				writeEntryDetail(cmd.OutOrStdout(), entry, time.Now())
				return nil
			})
		},
	}
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an entry after confirmation",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(cmd, func(runCtx context.Context, lib *library.Library) error {
				entry, err := lib.Get(runCtx, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !assumeYes {
					// JSON mode keeps stdout for the result document.
					prompt := out
					if ctx.JSONMode() {
						prompt = cmd.ErrOrStderr()
					}
					fmt.Fprintf(prompt, "Remove %q? [y/N]: ", entry.Title)
					if !confirmed(cmd) {
						fmt.Fprintln(prompt, "Cancelled")
						if ctx.JSONMode() {
							return writeJSON(cmd, map[string]any{"cancelled": entry.ID})
						}
						return nil
					}
				}
				if err := lib.Delete(runCtx, entry.ID); err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, map[string]any{"removed": entry.ID})
				}
				fmt.Fprintf(out, "Removed %q\n", entry.Title)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func confirmed(cmd *cobra.Command) bool {
	reader := bufio.NewReader(cmd.InOrStdin())
	line, _ := reader.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func newFavoriteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "favorite <id>",
		Aliases: []string{"fav"},
		Short:   "Toggle the favorite flag of an entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(cmd, func(runCtx context.Context, lib *library.Library) error {
				entry, err := lib.ToggleFavorite(runCtx, args[0])
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, entry)
				}
				state := "removed from favorites"
				if entry.Favorite {
					state = "marked as favorite ★"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%q %s\n", entry.Title, state)
				return nil
			})
		},
	}
}
