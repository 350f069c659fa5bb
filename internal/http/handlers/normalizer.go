// Error normalization.
//
// Every failure that reaches the end of a request (explicitly raised
// APIErrors, binding/validation failures, store integrity violations, generic
// database errors, anything unclassified) is rendered here into the single
// envelope shape with a stable code and the request's correlation id. This is
// the only place that produces user-visible error bodies; handlers attach
// errors to the Gin context and return.
//
// Classification is checked in priority order:
//
//  1. *APIError (already shaped)           → its own status and code
//  2. validator/binding failures           → 422 VALIDATION_ERROR + field details
//  3. record-not-found sentinel            → 404 NOT_FOUND
//  4. store integrity violations           → 409/400 *_VIOLATION / INTEGRITY_ERROR
//  5. other store-level failures           → 500 DB_ERROR
//  6. everything else                      → 500 INTERNAL_ERROR (no details)
//
// The normalizer never retries and never mutates persisted state. Internal
// error text is not echoed for unclassified failures; store failures expose
// at most a diagnostic code and a coarse Go type name.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/tbourn/go-screentime-backend/internal/http/middleware"
	"github.com/tbourn/go-screentime-backend/internal/repo"
)

// ErrorHandler returns the Gin middleware that renders the error envelope for
// any error attached to the context during request handling. Install it
// before the route handlers (after RequestID, so envelopes carry the
// correlation id). If a handler already wrote a response body, the middleware
// leaves it alone.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, env := Normalize(c, err)

		// Server-side failures are logged with the request-scoped logger.
		if status >= http.StatusInternalServerError {
			lg := middleware.LoggerFrom(c)
			lg.Error().
				Err(err).
				Int("status", status).
				Str("code", env.Error.Code).
				Msg("request failed")
		}

		c.JSON(status, env)
	}
}

// Fail renders an error envelope immediately and aborts the request. Used by
// router fallbacks (no route, method not allowed) that run outside the
// normal handler chain.
func Fail(c *gin.Context, err error) {
	status, env := Normalize(c, err)
	c.AbortWithStatusJSON(status, env)
}

// Normalize classifies err and produces the transport status plus the wire
// envelope. It is deterministic and side-effect free.
func Normalize(c *gin.Context, err error) (int, ErrorEnvelope) {
	rid := requestID(c)

	// 1) Already-shaped failures pass through; request id is backfilled only.
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = fallbackMessage(c, CodeHTTPError)
		}
		return apiErr.Status, envelope(apiErr.Code, msg, rid, apiErr.Details)
	}

	// 2) Structured validation failures with field-level details.
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		details := make([]ValidationDetail, 0, len(vErrs))
		for _, fe := range vErrs {
			details = append(details, ValidationDetail{
				Loc:     []string{"body", toSnake(fe.Field())},
				Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
				Type:    fe.Tag(),
			})
		}
		return http.StatusUnprocessableEntity,
			envelope(CodeValidationError, fallbackMessage(c, CodeValidationError), rid, details)
	}

	// Malformed JSON bodies are a plain bad request, not a field error.
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return http.StatusBadRequest,
			envelope(CodeBadRequest, "invalid JSON body", rid, nil)
	}

	// 3) Missing rows that escaped handler translation.
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound,
			envelope(CodeNotFound, err.Error(), rid, nil)
	}

	// 4) Store integrity violations, classified through the driver-agnostic
	// diagnostic surface.
	if diag, isViolation := repo.AsDiagnostic(err); isViolation {
		status, code := violationStatus(diag.ViolationKind())
		details := map[string]any{}
		if pgcode := diag.DiagnosticCode(); pgcode != "" {
			details["pgcode"] = pgcode
		}
		if constraint := diag.ConstraintName(); constraint != "" {
			details["constraint"] = constraint
		}
		var d any
		if len(details) > 0 {
			d = details
		}
		return status, envelope(code, fallbackMessage(c, code), rid, d)
	}

	// 5) Any other store-level failure.
	if pgcode, isStore := repo.IsStoreError(err); isStore {
		details := map[string]any{"type": fmt.Sprintf("%T", err)}
		if pgcode != "" {
			details["pgcode"] = pgcode
		}
		return http.StatusInternalServerError,
			envelope(CodeDBError, fallbackMessage(c, CodeDBError), rid, details)
	}

	// 6) Unclassified: no internal details leak.
	return http.StatusInternalServerError,
		envelope(CodeInternalError, fallbackMessage(c, CodeInternalError), rid, nil)
}

// violationStatus maps a violation kind to its transport status and code.
func violationStatus(kind repo.ViolationKind) (int, string) {
	switch kind {
	case repo.ViolationUnique:
		return http.StatusConflict, CodeUniqueViolation
	case repo.ViolationForeignKey:
		return http.StatusConflict, CodeForeignKeyViolation
	case repo.ViolationCheck:
		return http.StatusBadRequest, CodeCheckViolation
	case repo.ViolationNotNull:
		return http.StatusBadRequest, CodeNotNullViolation
	default:
		return http.StatusConflict, CodeIntegrityError
	}
}

// envelope assembles the wire envelope.
func envelope(code, message, requestID string, details any) ErrorEnvelope {
	return ErrorEnvelope{
		OK: false,
		Error: ErrorBody{
			Code:      code,
			Message:   message,
			RequestID: requestID,
			Details:   details,
		},
	}
}

// requestID returns the correlation id attached to the response, if any.
func requestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.Writer.Header().Get("X-Request-ID")
}

// toSnake converts a Go struct field name to its snake_case JSON counterpart
// (EmployeeID → employee_id).
func toSnake(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (!unicode.IsUpper(runes[i-1]) || (i+1 < len(runes) && !unicode.IsUpper(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
