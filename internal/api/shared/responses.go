package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/redact"
)

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	// Error is the human-readable message.
	Error string `json:"error"`

	// Kind is the machine-readable error kind, e.g. "validation_error".
	Kind string `json:"kind"`

	// Field names the offending request field, if any.
	Field string `json:"field,omitempty"`

	// Details is a redacted diagnostic, such as the message reported by the
	// generation provider.
	Details string `json:"details,omitempty"`

	TraceID string `json:"trace_id,omitempty"`
}

// ResponseOption defines a function to customize response behavior.
type ResponseOption func(*responseOptions)

type responseOptions struct {
	elevateLogLevel bool
}

// WithElevatedLogLevel returns a ResponseOption that raises 4xx errors to WARN level
// instead of the default DEBUG level.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevateLogLevel = true
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response of the given kind. The trace
// ID is taken from the request context.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, kind, message string) {
	RespondWithErrorAndLog(w, r, status, ErrorResponse{Error: message, Kind: kind}, nil)
}

// RespondWithErrorAndLog writes body as a JSON error response and logs the
// redacted err alongside it. The trace ID is filled in from the request
// context and Details is redacted before it leaves the process.
//
// Log level strategy:
//   - 5xx errors: ERROR
//   - 4xx errors: DEBUG, or WARN with WithElevatedLogLevel
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	body ErrorResponse,
	err error,
	opts ...ResponseOption,
) {
	body.TraceID = GetTraceID(r.Context())
	body.Details = redact.String(body.Details)

	logAttrs := []slog.Attr{
		slog.String("trace_id", body.TraceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("kind", body.Kind),
		slog.String("user_message", body.Error),
	}

	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	responseOpts := responseOptions{}
	for _, opt := range opts {
		opt(&responseOpts)
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	} else if responseOpts.elevateLogLevel && status >= http.StatusBadRequest {
		logLevel = slog.LevelWarn
	}

	log := logger.FromContextOrDefault(r.Context(), slog.Default())
	log.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, body)
}
