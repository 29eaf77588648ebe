// Package middleware provides the HTTP middleware shared by every route:
// trace-ID assignment with a request-scoped logger, and request logging.
package middleware
