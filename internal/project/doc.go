// Package project owns the in-memory state of one open project: the script
// item list, the removal set, and the artifact store, together with the
// pending recording buffer for the selected item.
//
// All authoritative state is derived from files by reconciliation on load;
// accept and remove apply the same rules incrementally. The package also
// implements the portable archive (zip) and project-directory persistence,
// guarded by an advisory file lock for the single-active-editor model.
package project
