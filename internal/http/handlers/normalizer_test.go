package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func testCtx(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Writer.Header().Set("X-Request-ID", "rid-test")
	return c, w
}

func TestNormalize_APIErrorPassthrough(t *testing.T) {
	c, _ := testCtx(t)

	status, env := Normalize(c, NotFound("Department not found"))
	if status != http.StatusNotFound || env.Error.Code != CodeNotFound {
		t.Fatalf("got %d %s", status, env.Error.Code)
	}
	if env.Error.Message != "Department not found" || env.Error.RequestID != "rid-test" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if env.OK {
		t.Fatalf("ok must be false on errors")
	}
}

func TestNormalize_ValidationErrors(t *testing.T) {
	c, _ := testCtx(t)

	type payload struct {
		FirstName string `validate:"required"`
		Level     int    `validate:"min=1"`
	}
	err := validator.New().Struct(payload{Level: 0})
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		t.Fatalf("setup: expected validator.ValidationErrors, got %T", err)
	}

	status, env := Normalize(c, err)
	if status != http.StatusUnprocessableEntity || env.Error.Code != CodeValidationError {
		t.Fatalf("got %d %s", status, env.Error.Code)
	}
	details, ok := env.Error.Details.([]ValidationDetail)
	if !ok || len(details) != 2 {
		t.Fatalf("expected 2 field details, got %#v", env.Error.Details)
	}
	if details[0].Loc[0] != "body" || details[0].Loc[1] != "first_name" || details[0].Type != "required" {
		t.Fatalf("unexpected first detail: %+v", details[0])
	}
}

func TestNormalize_MalformedJSONBody(t *testing.T) {
	c, _ := testCtx(t)

	var target struct{ X int }
	err := json.Unmarshal([]byte("{nope"), &target)

	status, env := Normalize(c, err)
	if status != http.StatusBadRequest || env.Error.Code != CodeBadRequest {
		t.Fatalf("got %d %s", status, env.Error.Code)
	}
	if env.Error.Message != "invalid JSON body" {
		t.Fatalf("unexpected message: %q", env.Error.Message)
	}
}

func TestNormalize_RecordNotFound(t *testing.T) {
	c, _ := testCtx(t)

	status, env := Normalize(c, gorm.ErrRecordNotFound)
	if status != http.StatusNotFound || env.Error.Code != CodeNotFound {
		t.Fatalf("got %d %s", status, env.Error.Code)
	}
}

func TestNormalize_IntegrityViolations(t *testing.T) {
	cases := []struct {
		name       string
		code       string
		wantStatus int
		wantCode   string
	}{
		{"unique", "23505", http.StatusConflict, CodeUniqueViolation},
		{"foreign key", "23503", http.StatusConflict, CodeForeignKeyViolation},
		{"check", "23514", http.StatusBadRequest, CodeCheckViolation},
		{"not null", "23502", http.StatusBadRequest, CodeNotNullViolation},
		{"other integrity", "23000", http.StatusConflict, CodeIntegrityError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := testCtx(t)
			err := &pgconn.PgError{Code: tc.code, ConstraintName: "uq_department_code"}

			status, env := Normalize(c, err)
			if status != tc.wantStatus || env.Error.Code != tc.wantCode {
				t.Fatalf("got %d %s, want %d %s", status, env.Error.Code, tc.wantStatus, tc.wantCode)
			}
			details, ok := env.Error.Details.(map[string]any)
			if !ok {
				t.Fatalf("expected diagnostic details, got %#v", env.Error.Details)
			}
			if details["pgcode"] != tc.code || details["constraint"] != "uq_department_code" {
				t.Fatalf("unexpected details: %#v", details)
			}
		})
	}
}

func TestNormalize_SQLiteViolationWithoutDiagnostics(t *testing.T) {
	c, _ := testCtx(t)

	status, env := Normalize(c, errors.New("UNIQUE constraint failed: departments.name"))
	if status != http.StatusConflict || env.Error.Code != CodeUniqueViolation {
		t.Fatalf("got %d %s", status, env.Error.Code)
	}
	// No SQLSTATE or constraint name is available; details stay absent.
	if env.Error.Details != nil {
		t.Fatalf("expected no details, got %#v", env.Error.Details)
	}
}

func TestNormalize_StoreError(t *testing.T) {
	c, _ := testCtx(t)

	status, env := Normalize(c, gorm.ErrInvalidTransaction)
	if status != http.StatusInternalServerError || env.Error.Code != CodeDBError {
		t.Fatalf("got %d %s", status, env.Error.Code)
	}
	details, ok := env.Error.Details.(map[string]any)
	if !ok || details["type"] == "" {
		t.Fatalf("expected coarse type detail, got %#v", env.Error.Details)
	}
}

func TestNormalize_UnclassifiedLeaksNothing(t *testing.T) {
	c, _ := testCtx(t)

	status, env := Normalize(c, errors.New("secret internal state"))
	if status != http.StatusInternalServerError || env.Error.Code != CodeInternalError {
		t.Fatalf("got %d %s", status, env.Error.Code)
	}
	if env.Error.Message == "secret internal state" || env.Error.Details != nil {
		t.Fatalf("internal detail leaked: %+v", env.Error)
	}
}

func TestToSnake(t *testing.T) {
	cases := map[string]string{
		"FirstName":  "first_name",
		"EmployeeID": "employee_id",
		"Hostname":   "hostname",
		"OSName":     "os_name",
		"Level":      "level",
	}
	for in, want := range cases {
		if got := toSnake(in); got != want {
			t.Fatalf("toSnake(%q) = %q, want %q", in, got, want)
		}
	}
}
