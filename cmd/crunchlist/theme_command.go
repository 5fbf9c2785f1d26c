package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"crunchlist/internal/catalog"
	"crunchlist/internal/library"
)

func newThemeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the display theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(cmd, func(runCtx context.Context, lib *library.Library) error {
				var (
					theme catalog.Theme
					err   error
				)
				switch {
				case len(args) == 0:
					theme, err = lib.Theme(runCtx)
				case strings.EqualFold(strings.TrimSpace(args[0]), "toggle"):
					theme, err = lib.ToggleTheme(runCtx)
				default:
					theme, err = catalog.ParseTheme(args[0])
					if err == nil {
						err = lib.SetTheme(runCtx, theme)
					}
				}
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, map[string]string{"theme": string(theme)})
				}
				title := cases.Title(language.English).String(string(theme))
				fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", title)
				return nil
			})
		},
	}
}
