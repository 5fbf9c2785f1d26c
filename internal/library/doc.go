// Package library is the application service behind the crunchlist CLI.
//
// A Library owns a Repository, a clock, and an id generator, and exposes one
// method per user intent: add, edit, delete, favorite, browse, import,
// export, and theme switching. Every mutation loads the collection, changes
// it, and writes the whole collection back through the repository.
package library
