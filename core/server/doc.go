// Package server holds the HTTP server configuration.
//
// The Fiber application itself is assembled in cmd/serve.go; this package
// only owns the bind address settings so the config loader can compose them.
package server
