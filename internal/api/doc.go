// Package api exposes flashcard generation and deck management over HTTP.
//
// Handlers decode and validate requests, call the generation pipeline or the
// deck repository, and write JSON responses. Failures are mapped by their
// domain kind to a status code and an error body carrying the kind, a safe
// message and, for provider failures, a redacted diagnostic.
package api
