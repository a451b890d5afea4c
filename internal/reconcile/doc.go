// Package reconcile derives the authoritative state of every script item
// from filesystem-shaped inputs.
//
// Given the canonical prompt list, the removal set, and the artifact
// store, a pass computes each item's status, selects the latest complete
// text/audio pair, and prunes every superseded artifact. The pass is
// idempotent and total: re-running it over its own output changes
// nothing, a malformed file only produces a warning, and removal always
// wins over uploaded artifacts.
package reconcile
