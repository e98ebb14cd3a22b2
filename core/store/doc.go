// Package store implements the content store: the on-disk layout of
// converted image variants and the SQLite-backed index that makes them
// visible to the serving layer.
//
// # Crash consistency
//
// The one invariant everything else leans on: an index row exists if and
// only if both variant files exist and are non-empty. Commit enforces this
// by writing temp files, renaming them into place, and only then upserting
// the row. Remove inverts the order. Sweep and Verify repair the permitted
// failure mode (orphaned files without a row) on startup.
package store
