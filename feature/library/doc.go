// Package library is the read-only serving surface over the content store.
//
// It exposes synced albums, paginated image listings, variant bytes, and
// per-image metadata. All reads go against the index; because the sync pass
// only ever commits whole entries, the library never observes a
// half-written image and never blocks on a running pass.
package library
