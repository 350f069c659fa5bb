package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-screentime-backend/internal/domain"
	"github.com/tbourn/go-screentime-backend/internal/http/middleware"
	"github.com/tbourn/go-screentime-backend/internal/repo"
	"github.com/tbourn/go-screentime-backend/internal/services"
)

// newAPITest wires a minimal engine: request id, error normalization, and all
// entity routes against a throwaway SQLite database.
func newAPITest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), fmt.Sprintf("handlers_test_%d.db", time.Now().UnixNano()))
	db, err := repo.OpenSQLite(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Logger = logger.Default.LogMode(logger.Silent)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	h := New(db, &services.ImportService{DB: db})

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(ErrorHandler())

	api := r.Group("/api/v1")
	api.POST("/departments", h.CreateDepartment)
	api.GET("/departments", h.ListDepartments)
	api.GET("/departments/:id", h.GetDepartment)
	api.PUT("/departments/:id", h.UpdateDepartment)
	api.DELETE("/departments/:id", h.DeleteDepartment)
	api.POST("/employees", h.CreateEmployee)
	api.PUT("/employees/:id", h.UpdateEmployee)
	api.POST("/workstations", h.CreateWorkstation)
	api.POST("/sessions", h.CreateSession)
	api.GET("/reports/employee-daily", h.EmployeeDailyReport)
	api.GET("/reports/top-overworked", h.TopOverworkedReport)
	api.POST("/batch-import/sessions", h.ImportSessions)
	api.GET("/batch-import/logs", h.ListImportLogs)
	api.GET("/batch-import/logs/:id", h.GetImportLog)

	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) ErrorEnvelope {
	t.Helper()
	var env ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope from %q: %v", w.Body.String(), err)
	}
	return env
}

func TestDepartmentCRUD(t *testing.T) {
	r, _ := newAPITest(t)

	// Create
	w := doJSON(t, r, http.MethodPost, "/api/v1/departments", gin.H{"name": "Engineering", "code": "ENG"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: got %d body %s", w.Code, w.Body.String())
	}
	var created domain.Department
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == 0 || !created.IsActive {
		t.Fatalf("unexpected created department: %+v", created)
	}

	// Get
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/departments/%d", created.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: got %d", w.Code)
	}

	// Update
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/v1/departments/%d", created.ID),
		gin.H{"name": "Platform", "code": "PLT", "is_active": false})
	if w.Code != http.StatusOK {
		t.Fatalf("update: got %d body %s", w.Code, w.Body.String())
	}
	var updated domain.Department
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode updated: %v", err)
	}
	if updated.Name != "Platform" || updated.IsActive {
		t.Fatalf("unexpected updated department: %+v", updated)
	}

	// Delete
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/departments/%d", created.ID), nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/departments/%d", created.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: got %d", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Error.Message != "Department not found" {
		t.Fatalf("unexpected 404 message: %+v", env)
	}
}

func TestCreateDepartment_DuplicateEnvelope(t *testing.T) {
	r, _ := newAPITest(t)

	if w := doJSON(t, r, http.MethodPost, "/api/v1/departments", gin.H{"name": "Sales", "code": "S1"}); w.Code != http.StatusCreated {
		t.Fatalf("first create: %d", w.Code)
	}
	w := doJSON(t, r, http.MethodPost, "/api/v1/departments", gin.H{"name": "Sales", "code": "S2"})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate: got %d body %s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.OK || env.Error.Code != CodeUniqueViolation || env.Error.RequestID == "" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestCreateDepartment_ValidationEnvelope(t *testing.T) {
	r, _ := newAPITest(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/departments", gin.H{"code": "X"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got %d body %s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.Error.Code != CodeValidationError || env.Error.Details == nil {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if !strings.Contains(w.Body.String(), `"loc":["body","name"]`) {
		t.Fatalf("expected field location in details: %s", w.Body.String())
	}
}

func TestCreateDepartment_MalformedJSON(t *testing.T) {
	r, _ := newAPITest(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/departments", "{not json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d body %s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.Error.Code != CodeBadRequest || env.Error.Message != "invalid JSON body" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestPathID_Invalid(t *testing.T) {
	r, _ := newAPITest(t)

	for _, path := range []string{"/api/v1/departments/abc", "/api/v1/departments/0"} {
		w := doJSON(t, r, http.MethodGet, path, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: got %d", path, w.Code)
		}
		if env := decodeEnvelope(t, w); env.Error.Code != CodeBadRequest {
			t.Fatalf("%s: unexpected envelope: %+v", path, env)
		}
	}
}

func TestCreateSession_InvertedWindow(t *testing.T) {
	r, _ := newAPITest(t)

	start := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	w := doJSON(t, r, http.MethodPost, "/api/v1/sessions", gin.H{
		"employee_id":    1,
		"workstation_id": 1,
		"started_at":     start,
		"ended_at":       start.Add(-time.Hour),
		"active_seconds": 100,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d body %s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.Error.Message != "ended_at must be greater than started_at" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestCreateSession_DanglingReferences(t *testing.T) {
	r, _ := newAPITest(t)

	start := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	w := doJSON(t, r, http.MethodPost, "/api/v1/sessions", gin.H{
		"employee_id":    12345,
		"workstation_id": 12345,
		"started_at":     start,
		"ended_at":       start.Add(time.Hour),
		"active_seconds": 100,
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("got %d body %s", w.Code, w.Body.String())
	}
	if env := decodeEnvelope(t, w); env.Error.Code != CodeForeignKeyViolation {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestUpdateEmployee_Partial(t *testing.T) {
	r, _ := newAPITest(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/employees", gin.H{
		"first_name": "Anna",
		"last_name":  "Petrova",
		"hired_at":   "2023-04-01T00:00:00Z",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create employee: %d body %s", w.Code, w.Body.String())
	}
	var created domain.Employee
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/v1/employees/%d", created.ID),
		gin.H{"last_name": "Smirnova"})
	if w.Code != http.StatusOK {
		t.Fatalf("patch: %d body %s", w.Code, w.Body.String())
	}
	var patched domain.Employee
	if err := json.Unmarshal(w.Body.Bytes(), &patched); err != nil {
		t.Fatalf("decode patched: %v", err)
	}
	if patched.FirstName != "Anna" || patched.LastName != "Smirnova" {
		t.Fatalf("unexpected patched employee: %+v", patched)
	}
}

func TestReportParams_Validation(t *testing.T) {
	r, _ := newAPITest(t)

	cases := []string{
		"/api/v1/reports/employee-daily",                                             // missing everything
		"/api/v1/reports/employee-daily?employee_id=1&stat_date=03.06.2024",          // wrong date form
		"/api/v1/reports/top-overworked?date_from=2024-06-30&date_to=2024-06-01",     // inverted range
		"/api/v1/reports/top-overworked?date_from=2024-06-01&date_to=2024-06-30&min_hours_per_day=-1",
	}
	for _, path := range cases {
		w := doJSON(t, r, http.MethodGet, path, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: got %d body %s", path, w.Code, w.Body.String())
		}
	}
}

func TestImportSessions_Endpoint(t *testing.T) {
	r, db := newAPITest(t)

	// Seed references for the valid row.
	d := domain.Department{Name: "Ops", Code: "OPS", CreatedAt: time.Now().UTC(), IsActive: true}
	if err := db.Create(&d).Error; err != nil {
		t.Fatalf("seed department: %v", err)
	}
	e := domain.Employee{FirstName: "A", LastName: "B", HiredAt: time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC), IsActive: true}
	if err := db.Create(&e).Error; err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	ws := domain.Workstation{Hostname: "ws-1", InventoryNumber: "INV-1", DepartmentID: d.ID, OSName: "Linux", CreatedAt: time.Now().UTC(), IsActive: true}
	if err := db.Create(&ws).Error; err != nil {
		t.Fatalf("seed workstation: %v", err)
	}

	start := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	w := doJSON(t, r, http.MethodPost, "/api/v1/batch-import/sessions", gin.H{
		"file_name": "batch.csv",
		"rows": []gin.H{
			{"employee_id": e.ID, "workstation_id": ws.ID, "started_at": start, "ended_at": start.Add(time.Hour), "active_seconds": 3000},
			{"employee_id": e.ID, "workstation_id": ws.ID, "started_at": start, "ended_at": start, "active_seconds": 3000},
		},
	})
	// Row failures do not fail the request.
	if w.Code != http.StatusCreated {
		t.Fatalf("got %d body %s", w.Code, w.Body.String())
	}
	var resp ImportSessionsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != domain.ImportStatusFailed || resp.TotalRows != 2 || resp.SuccessRows != 1 || resp.ErrorRows != 1 {
		t.Fatalf("unexpected summary: %+v", resp)
	}
	if !strings.Contains(resp.ErrorMessage, "Row 2:") {
		t.Fatalf("unexpected error message: %q", resp.ErrorMessage)
	}

	// The audit record is durable and readable.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/batch-import/logs/%d", resp.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get log: %d body %s", w.Code, w.Body.String())
	}

	// Empty batch is rejected before any audit record exists.
	w = doJSON(t, r, http.MethodPost, "/api/v1/batch-import/sessions", gin.H{"rows": []gin.H{}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty batch: got %d body %s", w.Code, w.Body.String())
	}
	if env := decodeEnvelope(t, w); env.Error.Message != "rows must not be empty" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}
