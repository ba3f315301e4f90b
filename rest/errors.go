package rest

import (
	"fmt"
	"net/http"
)

// Symbolic error categories carried in the restCode field of error
// response bodies. Clients are expected to branch on these rather than
// on message text.
const (
	CodeInvalidArgument      = "InvalidArgument"
	CodeInvalidHeader        = "InvalidHeader"
	CodeInvalidCredentials   = "InvalidCredentials"
	CodeRequestTooLarge      = "RequestTooLarge"
	CodeUnsupportedMediaType = "UnsupportedMediaType"
	CodeResourceNotFound     = "ResourceNotFound"
	CodeMethodNotAllowed     = "MethodNotAllowed"
	CodeRequestTimeout       = "RequestTimeout"
	CodeInternalError        = "InternalError"
)

// Error is a structured request error. It is serialized verbatim as the
// JSON response body for every rejection produced by the routing and
// parsing pipeline, and can be returned from handlers via
// Response.SendError.
type Error struct {
	// HTTPCode is the HTTP status code of the response.
	HTTPCode int `json:"httpCode"`

	// RestCode is the symbolic error category (one of the Code*
	// constants).
	RestCode string `json:"restCode"`

	// Message is a human-readable description of the failure.
	Message string `json:"message"`
}

// NewError returns an Error with the given status code, symbolic code,
// and printf-style message.
func NewError(httpCode int, restCode, format string, args ...any) *Error {
	return &Error{
		HTTPCode: httpCode,
		RestCode: restCode,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.RestCode, e.HTTPCode, e.Message)
}

// invalidArgument reports a malformed or conflicting request input.
// 409 Conflict mirrors the wire contract of the original API surface.
func invalidArgument(format string, args ...any) *Error {
	return NewError(http.StatusConflict, CodeInvalidArgument, format, args...)
}

// invalidHeader reports a request header that contradicts the request
// itself, such as a Content-Length that does not match the body.
func invalidHeader(format string, args ...any) *Error {
	return NewError(http.StatusConflict, CodeInvalidHeader, format, args...)
}

// requestTooLarge reports a request body exceeding the configured cap.
func requestTooLarge(format string, args ...any) *Error {
	return NewError(http.StatusRequestEntityTooLarge, CodeRequestTooLarge, format, args...)
}

// unsupportedMediaType reports a content type the server does not serve
// or accept. RFC 9110 Section 15.5.16.
func unsupportedMediaType(format string, args ...any) *Error {
	return NewError(http.StatusUnsupportedMediaType, CodeUnsupportedMediaType, format, args...)
}

// notFound reports a path that matches no registered route under any
// method. RFC 9110 Section 15.5.5.
func notFound(format string, args ...any) *Error {
	return NewError(http.StatusNotFound, CodeResourceNotFound, format, args...)
}

// methodNotAllowed reports a path registered under a different method.
// RFC 9110 Section 15.5.6.
func methodNotAllowed(format string, args ...any) *Error {
	return NewError(http.StatusMethodNotAllowed, CodeMethodNotAllowed, format, args...)
}

// internalError reports a fault on the server side. The message is kept
// generic; details belong in logs, not on the wire.
func internalError(format string, args ...any) *Error {
	return NewError(http.StatusInternalServerError, CodeInternalError, format, args...)
}
