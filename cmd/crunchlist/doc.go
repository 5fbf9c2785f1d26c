// Package main hosts the crunchlist CLI entrypoint and command graph.
//
// The Cobra-based command tree is the presentation layer of the catalog: it
// parses flags into drafts, patches, and filters, dispatches them to a
// library.Library, and renders the results as tables, detail panels, or JSON.
// Configuration resolution, logger setup, and store locking live in the
// command context so subcommands can focus on user experience.
//
// Add new functionality to the internal packages first, then surface it
// through a dedicated command or flag here.
package main
