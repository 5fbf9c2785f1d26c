// Package backup converts a catalog to and from portable files.
//
// JSON is the canonical backup: an indented array of entries that Decode can
// read back. CSV and XLSX are export-only views for spreadsheets. Decode runs
// every element through catalog.Sanitizer so hand-edited or older backups are
// normalized before they reach the store.
package backup
