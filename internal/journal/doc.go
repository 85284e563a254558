// Package journal persists preload sessions and their per-asset
// settlements in SQLite.
//
// The Store manages the database connection, schema initialization, and a
// file lock so only one orchestrator writes a journal directory at a time.
// Settlements are recorded at most once per asset per session via a unique
// constraint, mirroring the settle-once guarantee of the scheduler.
//
// The database is operational history, not an archive. Schema changes bump
// the version in schema.go; users clear the journal to adopt a new schema.
package journal
