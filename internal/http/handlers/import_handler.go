// Batch-import HTTP handlers. The import endpoint accepts a batch of
// candidate sessions, delegates to the import service, and always answers
// 201 with the audit summary once a log record exists, even when every row
// failed. The audit log itself is exposed read-only.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-screentime-backend/internal/repo"
	"github.com/tbourn/go-screentime-backend/internal/services"
)

// ImportSessionRow is one candidate session inside an import request. Row
// values are deliberately unvalidated at binding time beyond presence; the
// importer reports per-row failures in the summary instead of rejecting the
// batch.
type ImportSessionRow struct {
	EmployeeID    uint      `json:"employee_id" binding:"required" example:"1"`
	WorkstationID uint      `json:"workstation_id" binding:"required" example:"2"`
	StartedAt     time.Time `json:"started_at" binding:"required" example:"2024-06-03T09:00:00Z"`
	EndedAt       time.Time `json:"ended_at" binding:"required" example:"2024-06-03T10:30:00Z"`
	ActiveSeconds int       `json:"active_seconds" example:"4800"`
}

// ImportSessionsRequest is the JSON payload of one import invocation.
type ImportSessionsRequest struct {
	// ImportType labels the batch in the audit log; defaults to "sessions".
	ImportType string `json:"import_type" binding:"omitempty,max=50" example:"sessions"`
	// FileName optionally records the source file of the batch.
	FileName *string `json:"file_name" binding:"omitempty,max=255" example:"sessions-2024-06-03.csv"`
	// Rows are the candidate sessions.
	Rows []ImportSessionRow `json:"rows" binding:"required"`
}

// ImportSessionsResponse is the terminal audit summary returned to the
// caller. SuccessRows + ErrorRows always equals TotalRows.
type ImportSessionsResponse struct {
	ID           uint   `json:"id"`
	Status       string `json:"status" example:"FAILED"`
	TotalRows    int    `json:"total_rows"`
	SuccessRows  int    `json:"success_rows"`
	ErrorRows    int    `json:"error_rows"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// ImportSessions godoc
// @ID          importSessions
// @Summary     Batch-import screen sessions
// @Description Imports a batch of sessions with per-row fault isolation: a
// @Description failing row is reported in the summary and skipped while the
// @Description rest of the batch proceeds. The whole batch and its audit
// @Description record commit atomically. The response is 201 whenever an
// @Description audit record was written, even if every row failed.
// @Tags        Import
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.ImportSessionsRequest  true  "Import payload"
//
// @Success     201  {object}  handlers.ImportSessionsResponse
// @Failure     400  {object}  handlers.ErrorEnvelope  "Empty batch"
// @Failure     422  {object}  handlers.ErrorEnvelope  "Validation error"
// @Failure     500  {object}  handlers.ErrorEnvelope  "Audit record could not be created"
// @Router      /batch-import/sessions [post]
func (h *Handlers) ImportSessions(c *gin.Context) {
	var req ImportSessionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	importType := req.ImportType
	if importType == "" {
		importType = "sessions"
	}
	rows := make([]services.ImportRow, len(req.Rows))
	for i, r := range req.Rows {
		rows[i] = services.ImportRow{
			EmployeeID:    r.EmployeeID,
			WorkstationID: r.WorkstationID,
			StartedAt:     r.StartedAt,
			EndedAt:       r.EndedAt,
			ActiveSeconds: r.ActiveSeconds,
		}
	}

	sum, err := h.importSvc.ImportSessions(c.Request.Context(), importType, req.FileName, rows)
	if err != nil {
		if errors.Is(err, services.ErrNoRows) {
			_ = c.Error(BadRequest("rows must not be empty"))
			return
		}
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusCreated, ImportSessionsResponse{
		ID:           sum.ID,
		Status:       sum.Status,
		TotalRows:    sum.TotalRows,
		SuccessRows:  sum.SuccessRows,
		ErrorRows:    sum.ErrorRows,
		ErrorMessage: sum.ErrorMessage,
	})
}

// ListImportLogs godoc
// @ID          listImportLogs
// @Summary     List batch-import audit records
// @Description Returns audit records ordered by start time, newest first.
// @Tags        Import
// @Produce     json
//
// @Param       skip   query  int  false  "Rows to skip"       minimum(0) default(0)
// @Param       limit  query  int  false  "Max rows to return"  minimum(1) maximum(500) default(100)
//
// @Success     200  {array}   domain.BatchImportLog
// @Failure     500  {object}  handlers.ErrorEnvelope  "Store failure"
// @Router      /batch-import/logs [get]
func (h *Handlers) ListImportLogs(c *gin.Context) {
	skip, limit := pageParams(c)
	out, err := repo.ListImportLogs(c.Request.Context(), h.db, skip, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusOK, out)
}

// GetImportLog godoc
// @ID          getImportLog
// @Summary     Get a batch-import audit record by id
// @Tags        Import
// @Produce     json
//
// @Param       id  path  int  true  "Import log ID"
//
// @Success     200  {object}  domain.BatchImportLog
// @Failure     404  {object}  handlers.ErrorEnvelope  "Import log not found"
// @Router      /batch-import/logs/{id} [get]
func (h *Handlers) GetImportLog(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	out, err := repo.GetImportLog(c.Request.Context(), h.db, id)
	if err != nil {
		_ = c.Error(notFoundOr(err, "Import log not found"))
		return
	}
	ok(c, http.StatusOK, out)
}
