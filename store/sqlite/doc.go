// Package sqlite persists run metadata and estimator results in a SQLite
// database (modernc.org/sqlite, no cgo).
//
// Schema changes live in migrations/ as "-- +migrate Up" files and are
// applied once each, in file-name order, and recorded in schema_migrations.
//
// A Store hands out one estimator.Sink per run; every Write is one
// transaction, so a bin is either stored in full or not at all.
package sqlite
