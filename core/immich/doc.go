// Package immich implements the remote catalog gateway.
//
// It wraps the Immich HTTP API behind four operations the sync engine needs:
// ping, list albums, fetch one album's asset listing, and download an
// asset's original bytes. Authentication is an opaque API key header; the
// rest of the system never sees it.
package immich
