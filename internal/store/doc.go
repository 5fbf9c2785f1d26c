// Package store persists the crunchlist catalog in SQLite.
//
// The whole collection lives as one JSON blob under a fixed key in a small
// key/value table, alongside the display theme preference. Every save
// overwrites the blob in a single statement. Open takes an exclusive lock on
// the data directory so a second process cannot interleave writes.
//
// Reads fail soft: a blob that cannot be decoded is reported in the log and
// treated as an empty collection. CheckHealth exposes the same state to the
// doctor command.
package store
