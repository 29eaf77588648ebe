package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// KindInternal is reported for errors that carry no domain kind.
const KindInternal = "internal_error"

// MsgInternal is the message returned for errors without a domain kind.
const MsgInternal = "An unexpected error occurred"

// MapErrorToStatusCode maps an error to an HTTP status code by its domain
// kind. Errors without a kind are internal server errors.
func MapErrorToStatusCode(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorResponse builds the client-facing error body for err. Only
// *domain.Error values contribute a message; anything else yields a generic
// internal error so store or driver text never reaches the client.
func NewErrorResponse(err error) shared.ErrorResponse {
	var de *domain.Error
	if !errors.As(err, &de) {
		return shared.ErrorResponse{Error: MsgInternal, Kind: KindInternal}
	}

	resp := shared.ErrorResponse{
		Error: de.Message,
		Kind:  string(de.Kind),
		Field: de.Field,
	}

	// Caller errors are fully described by Message and Field.
	if de.Kind != domain.KindValidation && de.Kind != domain.KindNotFound {
		resp.Details = de.Detail
		if resp.Details == "" && de.Err != nil {
			resp.Details = de.Err.Error()
		}
	}

	return resp
}

// HandleAPIError writes the error response for err and logs it.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), NewErrorResponse(err), err)
}

// KindMethodNotAllowed is reported for a known path with an unsupported method.
const KindMethodNotAllowed = "method_not_allowed"

// NotFound is the router fallback for unknown paths.
func NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusNotFound, string(domain.KindNotFound), "Resource not found")
}

// MethodNotAllowed is the router fallback for unsupported methods. It logs at
// WARN since it usually points at a misbehaving client.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithErrorAndLog(w, r, http.StatusMethodNotAllowed,
		shared.ErrorResponse{Error: "Method not allowed", Kind: KindMethodNotAllowed},
		nil, shared.WithElevatedLogLevel())
}
