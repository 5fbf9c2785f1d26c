package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"crunchlist/internal/catalog"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// isTerminal reports whether w is an interactive terminal. Buffers and
// redirected files are not.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type column struct {
	title string
	right bool
}

// tableStyle follows the theme on a terminal and falls back to the plain
// rounded style when output is piped.
func tableStyle(theme catalog.Theme, colorize bool) table.Style {
	switch {
	case !colorize:
		return table.StyleRounded
	case theme == catalog.ThemeDark:
		return table.StyleColoredDark
	default:
		return table.StyleColoredBright
	}
}

func renderTable(columns []column, rows [][]string, style table.Style) string {
	if len(columns) == 0 {
		return ""
	}
	tw := table.NewWriter()
	tw.SetStyle(style)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, c := range columns {
		header[i] = c.title
		configs[i] = table.ColumnConfig{Number: i + 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft}
		if c.right {
			configs[i].Align = text.AlignRight
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range r {
			r[i] = ""
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}

type checkLevel int

const (
	checkInfo checkLevel = iota
	checkOK
	checkWarn
	checkFail
)

var checkLabels = map[checkLevel]string{
	checkInfo: "INFO",
	checkOK:   "OK",
	checkWarn: "WARN",
	checkFail: "ERROR",
}

var checkColors = map[checkLevel]text.Colors{
	checkInfo: {text.FgBlue},
	checkOK:   {text.FgGreen},
	checkWarn: {text.FgYellow},
	checkFail: {text.FgRed},
}

const checkNameWidth = 20

func levelFor(passed bool) checkLevel {
	if passed {
		return checkOK
	}
	return checkFail
}

// formatCheck renders one doctor line: `  Name:   [LEVEL] detail`.
func formatCheck(name string, level checkLevel, detail string, colorize bool) string {
	line := fmt.Sprintf("  %-*s [%s]", checkNameWidth, name+":", checkLabels[level])
	if detail != "" {
		line += " " + detail
	}
	if colorize {
		return checkColors[level].Sprint(line)
	}
	return line
}

func formatHeading(title string, colorize bool) string {
	heading := "== " + strings.TrimSpace(title) + " =="
	block := heading + "\n" + strings.Repeat("-", len(heading))
	if colorize {
		return text.Colors{text.FgBlue, text.Bold}.Sprint(block)
	}
	return block
}
