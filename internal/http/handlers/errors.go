// Package handlers defines the HTTP-layer error taxonomy used across all API
// endpoints.
//
// This file centralizes the stable error codes carried by the wire envelope
// and the APIError type handlers raise for explicit failures. Codes form a
// closed set:
//
//   - Passthrough HTTP codes (BAD_REQUEST, UNAUTHORIZED, FORBIDDEN,
//     NOT_FOUND, CONFLICT, VALIDATION_ERROR, RATE_LIMITED, HTTP_ERROR) mirror
//     the transport status of explicitly raised failures.
//   - Constraint codes (UNIQUE_VIOLATION, FOREIGN_KEY_VIOLATION,
//     CHECK_VIOLATION, NOT_NULL_VIOLATION, INTEGRITY_ERROR) classify store
//     integrity failures.
//   - DB_ERROR covers store failures that are not integrity violations;
//     INTERNAL_ERROR covers everything unanticipated.
//
// Handlers never format their own error bodies: they attach an error to the
// Gin context (usually an *APIError) and the normalizer middleware renders
// the single envelope shape.
package handlers

import "net/http"

// Stable error codes carried in the envelope's error.code field.
const (
	CodeBadRequest          = "BAD_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeValidationError     = "VALIDATION_ERROR"
	CodeRateLimited         = "RATE_LIMITED"
	CodeHTTPError           = "HTTP_ERROR"
	CodeUniqueViolation     = "UNIQUE_VIOLATION"
	CodeForeignKeyViolation = "FOREIGN_KEY_VIOLATION"
	CodeCheckViolation      = "CHECK_VIOLATION"
	CodeNotNullViolation    = "NOT_NULL_VIOLATION"
	CodeIntegrityError      = "INTEGRITY_ERROR"
	CodeDBError             = "DB_ERROR"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpErrorCode maps a transport status to its passthrough envelope code.
// Statuses outside the fixed table map to HTTP_ERROR.
func httpErrorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	case http.StatusUnprocessableEntity:
		return CodeValidationError
	case http.StatusTooManyRequests:
		return CodeRateLimited
	default:
		return CodeHTTPError
	}
}

// APIError is a handler-raised failure that already knows its transport
// status and envelope code. The normalizer renders it verbatim, backfilling
// only the request id.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// Error implements the error interface.
func (e *APIError) Error() string { return e.Message }

// NewAPIError builds an APIError for an arbitrary status. The code is derived
// from the status via the fixed passthrough table.
func NewAPIError(status int, message string) *APIError {
	return &APIError{Status: status, Code: httpErrorCode(status), Message: message}
}

// BadRequest builds a 400 BAD_REQUEST failure.
func BadRequest(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: CodeBadRequest, Message: message}
}

// NotFound builds a 404 NOT_FOUND failure.
func NotFound(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
}
