// Package textutil provides the small text parsers shared by form input and
// backup import.
//
// The parsers mirror the lenient behaviour users expect from free-form input:
//   - comma separated lists are split, trimmed, and stripped of empty items
//   - numeric fields accept a leading number and ignore trailing text
//   - anything unparseable becomes "absent" rather than an error
package textutil
