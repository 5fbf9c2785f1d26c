package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"crunchlist/internal/catalog"
)

func TestFormatCheckPlain(t *testing.T) {
	line := formatCheck("Catalog readable", checkOK, "yes", false)
	if strings.Contains(line, "\x1b[") {
		t.Fatalf("expected no ANSI codes, got %q", line)
	}
	if !strings.HasPrefix(line, "  Catalog readable:") || !strings.HasSuffix(line, "[OK] yes") {
		t.Fatalf("unexpected line %q", line)
	}
	if bare := formatCheck("Entries", checkInfo, "", false); !strings.HasSuffix(bare, "[INFO]") {
		t.Fatalf("expected no trailing detail, got %q", bare)
	}
}

func TestFormatCheckColored(t *testing.T) {
	text.EnableColors()

	line := formatCheck("Integrity check", checkFail, "no", true)
	if !strings.Contains(line, "\x1b[31m") || !strings.Contains(line, "[ERROR] no") {
		t.Fatalf("expected red error line, got %q", line)
	}
}

func TestLevelFor(t *testing.T) {
	if levelFor(true) != checkOK || levelFor(false) != checkFail {
		t.Fatal("unexpected level mapping")
	}
}

func TestIsTerminalRejectsBuffers(t *testing.T) {
	var buf bytes.Buffer
	if isTerminal(&buf) {
		t.Fatal("expected buffers to never be terminals")
	}
}

func TestTableStyle(t *testing.T) {
	if got := tableStyle(catalog.ThemeDark, false); got.Name != table.StyleRounded.Name {
		t.Fatalf("expected rounded style without a terminal, got %s", got.Name)
	}
	if got := tableStyle(catalog.ThemeDark, true); got.Name != table.StyleColoredDark.Name {
		t.Fatalf("expected dark style, got %s", got.Name)
	}
	if got := tableStyle(catalog.ThemeLight, true); got.Name != table.StyleColoredBright.Name {
		t.Fatalf("expected bright style, got %s", got.Name)
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]column{{title: "Metric"}, {title: "Count", right: true}}, [][]string{{"Total"}}, table.StyleRounded)
	if !strings.Contains(out, "METRIC") || !strings.Contains(out, "Total") {
		t.Fatalf("unexpected table %q", out)
	}
	if strings.Contains(out, "<nil>") {
		t.Fatalf("missing cells should render empty, got %q", out)
	}
}
