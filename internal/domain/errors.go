package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a domain error. The set of kinds is closed: every failure
// the pipeline or the deck repository reports carries exactly one of them.
type Kind string

// Error kinds.
const (
	// KindValidation means caller-supplied input violates an invariant.
	KindValidation Kind = "validation_error"

	// KindConfiguration means the deployment is misconfigured (e.g. a missing
	// provider credential). It is fixable by an operator, not by the caller.
	KindConfiguration Kind = "configuration_error"

	// KindTransport means the generation provider could not be reached.
	KindTransport Kind = "transport_error"

	// KindUpstream means the provider was reached but answered with a
	// non-success status or a malformed envelope.
	KindUpstream Kind = "upstream_error"

	// KindParse means the provider output is not a JSON array.
	KindParse Kind = "parse_error"

	// KindEmptyResult means the provider output parsed but held no usable card.
	KindEmptyResult Kind = "empty_result_error"

	// KindNotFound means a referenced deck does not exist.
	KindNotFound Kind = "not_found"
)

// Sentinel errors, one per kind. errors.Is(err, ErrNotFound) reports whether
// err is (or wraps) an *Error of kind KindNotFound, regardless of its message.
var (
	ErrValidation    = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrConfiguration = &Error{Kind: KindConfiguration, Message: "invalid configuration"}
	ErrTransport     = &Error{Kind: KindTransport, Message: "provider unreachable"}
	ErrUpstream      = &Error{Kind: KindUpstream, Message: "provider request failed"}
	ErrParse         = &Error{Kind: KindParse, Message: "unparseable provider output"}
	ErrEmptyResult   = &Error{Kind: KindEmptyResult, Message: "no usable cards"}
	ErrNotFound      = &Error{Kind: KindNotFound, Message: "not found"}
)

var sentinels = map[Kind]*Error{
	KindValidation:    ErrValidation,
	KindConfiguration: ErrConfiguration,
	KindTransport:     ErrTransport,
	KindUpstream:      ErrUpstream,
	KindParse:         ErrParse,
	KindEmptyResult:   ErrEmptyResult,
	KindNotFound:      ErrNotFound,
}

// Error is the structured error shared by the generation pipeline and the
// deck repository.
type Error struct {
	// Kind is the machine-distinguishable classification.
	Kind Kind

	// Message is the human-readable explanation shown to callers.
	Message string

	// Field names the offending input field, if any (e.g. "cards[2].back").
	Field string

	// Detail carries supplementary diagnostics such as the message reported
	// by the generation provider. It never replaces Message.
	Detail string

	// Status is the upstream HTTP status code when one is known.
	Status int

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Field != "" {
		fmt.Fprintf(&b, " (field %s)", e.Field)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying cause to support errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the same kind.
func (e *Error) Is(target error) bool {
	sentinel, ok := sentinels[e.Kind]
	return ok && target == sentinel
}

// KindOf returns the Kind of the first *Error in err's chain, or the empty
// Kind if there is none.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// NewValidationError creates a validation error for the given field.
func NewValidationError(field, message string, err error) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message, Err: err}
}

// NewConfigurationError creates a configuration error.
func NewConfigurationError(message string, err error) *Error {
	return &Error{Kind: KindConfiguration, Message: message, Err: err}
}

// NewTransportError creates a transport error.
func NewTransportError(message string, err error) *Error {
	return &Error{Kind: KindTransport, Message: message, Err: err}
}

// NewUpstreamError creates an upstream error carrying the provider-reported
// message and status code.
func NewUpstreamError(message, detail string, status int, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Detail: detail, Status: status, Err: err}
}

// NewParseError creates a parse error.
func NewParseError(message string, err error) *Error {
	return &Error{Kind: KindParse, Message: message, Err: err}
}

// NewEmptyResultError creates an empty-result error.
func NewEmptyResultError(message string) *Error {
	return &Error{Kind: KindEmptyResult, Message: message}
}

// NewNotFoundError creates a not-found error.
func NewNotFoundError(message string, err error) *Error {
	return &Error{Kind: KindNotFound, Message: message, Err: err}
}
