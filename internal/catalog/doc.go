// Package catalog defines the catalog entry model and the pure functions that
// operate on a collection of entries.
//
// Entries are plain values; nothing in this package performs I/O. The query
// engine filters by free-text term, status, and tag set, and Sort orders a
// copy of the collection by one of the SortMode values using a
// locale-aware collator for titles. The Sanitizer turns loosely typed
// objects decoded from a backup file into canonical entries.
//
// Timestamps are Unix milliseconds so backups stay compatible with files
// produced by the browser edition of crunchlist.
package catalog
