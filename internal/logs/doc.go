// Package logs reads the crunchlist log file for the `logs` command.
//
// Last returns the trailing lines with bounded memory, Since picks up complete
// lines written after a byte offset, and Follow polls until its context ends.
package logs
