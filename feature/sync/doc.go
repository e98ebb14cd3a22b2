// Package sync implements the reconciliation engine.
//
// One pass lists the remote albums, diffs each listing against the local
// index, and pushes the resulting work through two bounded worker pools:
// downloads (I/O-bound) feed conversions (CPU-bound), and each successful
// conversion commits atomically through the content store. Failures are
// contained to their item; a listing failure aborts only its album. Nothing
// is retried within a pass — the next pass picks up whatever failed, which
// is safe because commits are idempotent per asset id.
package sync
