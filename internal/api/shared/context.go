package shared

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// ContextKey is the type of the context keys defined by this package.
type ContextKey string

const (
	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of random bytes in a trace ID
	TraceIDLength = 16 // 32 hex characters
)

// fallbackSeq keeps fallback trace IDs distinct within one process.
var fallbackSeq atomic.Uint64

// SetTraceID adds a freshly generated trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, newTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// newTraceID returns a random UUID as 32 hex characters. When the random
// source fails it falls back to a clock and sequence based ID.
func newTraceID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		slog.Error("failed to generate random trace ID",
			"error", err,
			"fallback", "time-based generation")
		return fallbackTraceID(time.Now())
	}
	return hex.EncodeToString(id[:])
}

func fallbackTraceID(now time.Time) string {
	return fmt.Sprintf("%016x%016x", uint64(now.UnixNano()), fallbackSeq.Add(1))
}
