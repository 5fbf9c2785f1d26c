package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"crunchlist/internal/backup"
	"crunchlist/internal/config"
	"crunchlist/internal/fileutil"
	"crunchlist/internal/library"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var (
		formatFlag string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup of the whole catalog",
		Long: "Write a backup of the whole catalog. JSON backups can be imported again;\n" +
			"CSV and XLSX are for spreadsheets. Without --output the file is written to\n" +
			"the backup directory as crunchlist-backup-<timestamp>.<ext>. Use --output - for stdout.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			value := cfg.Backup.Format
			if cmd.Flags().Changed("format") {
				value = formatFlag
			}
			format, err := backup.ParseFormat(value)
			if err != nil {
				return err
			}

			return ctx.withLibrary(cmd, func(runCtx context.Context, lib *library.Library) error {
				target := strings.TrimSpace(output)
				switch target {
				case "-":
					_, err := lib.Export(runCtx, cmd.OutOrStdout(), format)
					return err
				case "":
					path, n, err := lib.ExportFile(runCtx, cfg.Paths.BackupDir, format)
					if err != nil {
						return err
					}
					return reportExport(cmd, ctx, path, n, format)
				default:
					path, err := config.ExpandPath(target)
					if err != nil {
						return fmt.Errorf("resolve output path: %w", err)
					}
					var n int
					err = fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
						var exportErr error
						n, exportErr = lib.Export(runCtx, w, format)
						return exportErr
					})
					if err != nil {
						return err
					}
					return reportExport(cmd, ctx, path, n, format)
				}
			})
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "", "json, csv or xlsx (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file, or - for stdout")
	return cmd
}

func reportExport(cmd *cobra.Command, ctx *commandContext, path string, n int, format backup.Format) error {
	if ctx.JSONMode() {
		return writeJSON(cmd, map[string]any{"path": path, "entries": n, "format": format})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d %s to %s\n", n, plural(n, "entry", "entries"), path)
	return nil
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	var merge bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Restore the catalog from a JSON backup",
		Long: "Restore the catalog from a JSON backup. By default the current catalog is\n" +
			"replaced; --merge keeps it and updates entries with matching ids. Use - to read stdin.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var reader io.Reader
			if args[0] == "-" {
				reader = cmd.InOrStdin()
			} else {
				path, err := config.ExpandPath(args[0])
				if err != nil {
					return fmt.Errorf("resolve backup path: %w", err)
				}
				file, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("open backup: %w", err)
				}
				defer file.Close()
				reader = file
			}

			return ctx.withLibrary(cmd, func(runCtx context.Context, lib *library.Library) error {
				result, err := lib.Import(runCtx, reader, library.ImportOptions{Merge: merge})
				if errors.Is(err, backup.ErrInvalidFormat) || errors.Is(err, library.ErrNoTitledEntries) {
					return fmt.Errorf("%w; the catalog was not changed", err)
				}
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, result)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Imported %d %s", result.Imported, plural(result.Imported, "entry", "entries"))
				if result.Skipped > 0 {
					fmt.Fprintf(out, " (%d skipped without a title)", result.Skipped)
				}
				fmt.Fprintln(out)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&merge, "merge", false, "Merge into the existing catalog instead of replacing it")
	return cmd
}
