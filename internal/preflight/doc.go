// Package preflight provides readiness checks for the filesystem paths that
// crunchlist depends on.
//
// The CLI "crunchlist doctor" command runs RunAll and prints each Result next
// to the store health report. Checks never modify the filesystem.
package preflight
