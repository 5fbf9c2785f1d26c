package backup

import (
	"fmt"
	"strings"
	"time"
)

// Format selects the export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Formats lists every supported export format.
func Formats() []Format {
	return []Format{FormatJSON, FormatCSV, FormatXLSX}
}

// ParseFormat validates user input. Empty selects JSON.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unknown export format %q", value)
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string {
	return string(f)
}

// FileName returns crunchlist-backup-YYYY-MM-DD-HH-MM-SS.<ext> for now in UTC.
func FileName(now time.Time, format Format) string {
	return "crunchlist-backup-" + now.UTC().Format("2006-01-02-15-04-05") + "." + format.Extension()
}
