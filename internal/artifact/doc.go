// Package artifact gives project files typed identities.
//
// A submission artifact is named script{num:04d}_{date:YYYYMMDD}.{txt|wav};
// ParseName turns that convention into a Key exactly once at the boundary
// so the rest of the core never slices filenames. Store holds the raw
// artifact bytes for one project session and exposes the key-aware
// retention operations reconciliation relies on.
package artifact
