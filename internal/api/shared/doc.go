// Package shared holds the request decoding, response writing and trace-ID
// helpers used by both the handlers in package api and its middleware.
package shared
