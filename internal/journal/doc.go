// Package journal records session events in a local SQLite database.
//
// The journal is an append-only audit of project operations (accepts,
// removals, merges, exports). It exists alongside the project files, never
// instead of them: reconciliation derives all authoritative state from the
// files, and a lost journal loses history only.
package journal
