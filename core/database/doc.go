// Package database manages the SQLite connection backing the image index.
//
// SQLite is a deliberate choice: the index is local, single-writer state that
// must survive crashes and be cheap to query for pagination. The pure-Go
// driver keeps the binary cgo-free, and tests run against ":memory:".
package database
