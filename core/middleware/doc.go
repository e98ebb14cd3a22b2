// Package middleware groups the HTTP middlewares used by the server.
//
// Currently this covers request tracing (rayid), which tags every request
// with a unique id that the logger can attach to all related log entries.
package middleware
