// Package sqlite provides a SQLite-based implementation of driven.KeyValueStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Values live in a single kv table.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a NNN_name.up.sql file; applied
// versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.prodsearch/data/state.db
//
// # Thread Safety
//
// All operations are thread-safe. The store relies on SQLite in WAL mode with a
// busy timeout, so several prodsearch processes may share one database.
package sqlite
