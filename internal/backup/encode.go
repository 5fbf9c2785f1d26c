package backup

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"crunchlist/internal/catalog"
	"crunchlist/internal/textutil"
)

// SheetName is the worksheet that holds XLSX exports.
const SheetName = "Catalog"

var tableHeader = []string{
	"id", "title", "status", "episodes", "score", "genres", "tags",
	"synopsis", "favorite", "createdAt", "updatedAt",
}

// Encode writes entries to w in the given format.
func Encode(w io.Writer, entries []catalog.Entry, format Format) error {
	switch format {
	case FormatJSON:
		return encodeJSON(w, entries)
	case FormatCSV:
		return encodeCSV(w, entries)
	case FormatXLSX:
		return encodeXLSX(w, entries)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

func encodeJSON(w io.Writer, entries []catalog.Entry) error {
	normalized := make([]catalog.Entry, len(entries))
	for i, e := range entries {
		normalized[i] = e.Normalized()
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(normalized); err != nil {
		return fmt.Errorf("encode json backup: %w", err)
	}
	return nil
}

func encodeCSV(w io.Writer, entries []catalog.Entry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(tableHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range entries {
		if err := writer.Write(tableRow(e)); err != nil {
			return fmt.Errorf("write csv row %s: %w", e.ID, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func encodeXLSX(w io.Writer, entries []catalog.Entry) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", closeErr)
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(tableHeader))
	for i, h := range tableHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(tableHeader), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastHeader, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	if err := f.SetColWidth(SheetName, "B", "B", 40); err != nil {
		return fmt.Errorf("size title column: %w", err)
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			e.ID, e.Title, string(e.Status), optionalInt(e.Episodes), optionalFloat(e.Score),
			textutil.JoinList(e.Genres), textutil.JoinList(e.Tags), e.Synopsis, e.Favorite,
			formatMillis(e.CreatedAt), formatMillis(e.UpdatedAt),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %s: %w", e.ID, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func tableRow(e catalog.Entry) []string {
	episodes := ""
	if e.Episodes != nil {
		episodes = strconv.Itoa(*e.Episodes)
	}
	score := ""
	if e.Score != nil {
		score = strconv.FormatFloat(*e.Score, 'f', -1, 64)
	}
	return []string{
		e.ID,
		e.Title,
		string(e.Status),
		episodes,
		score,
		textutil.JoinList(e.Genres),
		textutil.JoinList(e.Tags),
		e.Synopsis,
		strconv.FormatBool(e.Favorite),
		formatMillis(e.CreatedAt),
		formatMillis(e.UpdatedAt),
	}
}

// optionalInt keeps missing numbers as blank cells.
func optionalInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func optionalFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func formatMillis(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
