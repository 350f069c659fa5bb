// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all
// endpoints: the uniform error envelope, success helpers, and the localized
// fallback phrases for generic failures. The goal is to guarantee uniform
// responses for both success and failure cases, making the API predictable
// and machine-friendly.
//
// Example error response:
//
//	HTTP/1.1 409 Conflict
//	{
//	  "ok": false,
//	  "error": {
//	    "code": "UNIQUE_VIOLATION",
//	    "message": "A record with these unique values already exists",
//	    "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	    "details": {"constraint": "uq_department_code", "pgcode": "23505"}
//	  }
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// ErrorBody is the error object inside the envelope.
type ErrorBody struct {
	// Code is a stable, machine-readable value from the closed set in errors.go.
	Code string `json:"code" example:"NOT_FOUND"`
	// Message is a human-readable description, safe to show to users.
	Message string `json:"message" example:"Department not found"`
	// RequestID correlates server logs and client errors. Present whenever the
	// request carries a correlation id.
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Details is an optional structured payload: validation field paths, or
	// store diagnostic fields.
	Details any `json:"details,omitempty"`
}

// ErrorEnvelope is the uniform wrapper for all error responses. OK is false
// exactly when an error occurred; success responses return their payload
// directly and never use this shape.
type ErrorEnvelope struct {
	OK    bool      `json:"ok"`
	Error ErrorBody `json:"error"`
}

// ValidationDetail is one field-level entry in a VALIDATION_ERROR details
// list, in request field order.
type ValidationDetail struct {
	Loc     []string `json:"loc"`
	Message string   `json:"message"`
	Type    string   `json:"type"`
}

// supportedLocales lists the languages fallback phrases exist for; the first
// entry is the default when negotiation fails.
var supportedLocales = []language.Tag{language.English, language.Russian}

var localeMatcher = language.NewMatcher(supportedLocales)

// fallbackPhrases are the generic messages used when a failure carries no
// caller-controlled detail, keyed by envelope code.
var fallbackPhrases = map[language.Tag]map[string]string{
	language.English: {
		CodeHTTPError:           "Request failed",
		CodeValidationError:     "Invalid request parameters",
		CodeUniqueViolation:     "A record with these unique values already exists",
		CodeForeignKeyViolation: "Operation failed: dependent or missing related data",
		CodeCheckViolation:      "Data constraint violated",
		CodeNotNullViolation:    "Required fields are missing",
		CodeIntegrityError:      "Data integrity error",
		CodeDBError:             "Database error",
		CodeInternalError:       "Internal server error",
	},
	language.Russian: {
		CodeHTTPError:           "Ошибка запроса",
		CodeValidationError:     "Некорректные параметры запроса",
		CodeUniqueViolation:     "Запись с такими уникальными значениями уже существует",
		CodeForeignKeyViolation: "Невозможно выполнить операцию: есть зависимые или отсутствующие связанные данные",
		CodeCheckViolation:      "Нарушено ограничение данных",
		CodeNotNullViolation:    "Не заполнены обязательные поля",
		CodeIntegrityError:      "Ошибка целостности данных",
		CodeDBError:             "Ошибка базы данных",
		CodeInternalError:       "Внутренняя ошибка сервера",
	},
}

// fallbackMessage returns the generic phrase for code in the language
// negotiated from the request's Accept-Language header.
func fallbackMessage(c *gin.Context, code string) string {
	tag := language.English
	if c != nil && c.Request != nil {
		if accept := c.Request.Header.Get("Accept-Language"); accept != "" {
			if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
				matched, _, _ := localeMatcher.Match(tags...)
				// Matcher may return an extended tag; collapse to a base we have.
				base, _ := matched.Base()
				for _, s := range supportedLocales {
					if sb, _ := s.Base(); sb == base {
						tag = s
						break
					}
				}
			}
		}
	}
	if msg, ok := fallbackPhrases[tag][code]; ok {
		return msg
	}
	return fallbackPhrases[language.English][code]
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
