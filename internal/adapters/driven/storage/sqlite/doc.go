// Package sqlite provides a SQLite-backed record store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. The Store implements
// driven.RecordStore, so an external process can feed records into the
// database while the search engine refreshes from it.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// Records keep their insertion position; re-saving an ID replaces its fields
// without moving it. A single-row load_state table holds the "collection
// complete" flag.
//
// # Data Location
//
// By default, the database is stored at ~/.sifter/data/records.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
