// Screen-session HTTP handlers. Sessions are append-only: they can be
// created, listed, fetched, and deleted, but never updated.
//
// Time-window sanity (ended_at after started_at, non-negative active seconds)
// is checked at the handler so obviously malformed sessions fail with 400
// before touching the store; the chk_session_time CHECK constraint remains
// the authoritative guard.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-screentime-backend/internal/domain"
	"github.com/tbourn/go-screentime-backend/internal/repo"
)

// SessionRequest is the JSON payload for recording a screen session.
type SessionRequest struct {
	EmployeeID    uint      `json:"employee_id" binding:"required" example:"1"`
	WorkstationID uint      `json:"workstation_id" binding:"required" example:"2"`
	StartedAt     time.Time `json:"started_at" binding:"required" example:"2024-06-03T09:00:00Z"`
	EndedAt       time.Time `json:"ended_at" binding:"required" example:"2024-06-03T10:30:00Z"`
	// ActiveSeconds counts the non-idle portion of the window.
	ActiveSeconds *int `json:"active_seconds" binding:"required" example:"4800"`
}

// CreateSession godoc
// @ID          createSession
// @Summary     Record a screen session
// @Description Persists one finished screen session. The employee and
// @Description workstation must exist.
// @Tags        Sessions
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.SessionRequest  true  "Session payload"
//
// @Success     201  {object}  domain.ScreenSession
// @Failure     400  {object}  handlers.ErrorEnvelope  "Inverted time window or negative active seconds"
// @Failure     409  {object}  handlers.ErrorEnvelope  "Unknown employee or workstation"
// @Failure     422  {object}  handlers.ErrorEnvelope  "Validation error"
// @Router      /sessions [post]
func (h *Handlers) CreateSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	if !req.EndedAt.After(req.StartedAt) {
		_ = c.Error(BadRequest("ended_at must be greater than started_at"))
		return
	}
	if *req.ActiveSeconds < 0 {
		_ = c.Error(BadRequest("active_seconds must be non-negative"))
		return
	}
	s := &domain.ScreenSession{
		EmployeeID:    req.EmployeeID,
		WorkstationID: req.WorkstationID,
		StartedAt:     req.StartedAt,
		EndedAt:       req.EndedAt,
		ActiveSeconds: *req.ActiveSeconds,
	}
	out, err := repo.CreateSession(c.Request.Context(), h.db, s)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusCreated, out)
}

// ListSessions godoc
// @ID          listSessions
// @Summary     List screen sessions
// @Description Returns sessions ordered by start time, newest first.
// @Tags        Sessions
// @Produce     json
//
// @Param       skip   query  int  false  "Rows to skip"       minimum(0) default(0)
// @Param       limit  query  int  false  "Max rows to return"  minimum(1) maximum(500) default(100)
//
// @Success     200  {array}   domain.ScreenSession
// @Failure     500  {object}  handlers.ErrorEnvelope  "Store failure"
// @Router      /sessions [get]
func (h *Handlers) ListSessions(c *gin.Context) {
	skip, limit := pageParams(c)
	out, err := repo.ListSessions(c.Request.Context(), h.db, skip, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusOK, out)
}

// GetSession godoc
// @ID          getSession
// @Summary     Get a screen session by id
// @Tags        Sessions
// @Produce     json
//
// @Param       id  path  int  true  "Session ID"
//
// @Success     200  {object}  domain.ScreenSession
// @Failure     404  {object}  handlers.ErrorEnvelope  "Session not found"
// @Router      /sessions/{id} [get]
func (h *Handlers) GetSession(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	out, err := repo.GetSession(c.Request.Context(), h.db, id)
	if err != nil {
		_ = c.Error(notFoundOr(err, "Session not found"))
		return
	}
	ok(c, http.StatusOK, out)
}

// DeleteSession godoc
// @ID          deleteSession
// @Summary     Delete a screen session
// @Tags        Sessions
//
// @Param       id  path  int  true  "Session ID"
//
// @Success     204  "Deleted"
// @Failure     404  {object}  handlers.ErrorEnvelope  "Session not found"
// @Router      /sessions/{id} [delete]
func (h *Handlers) DeleteSession(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	if err := repo.DeleteSession(c.Request.Context(), h.db, id); err != nil {
		_ = c.Error(notFoundOr(err, "Session not found"))
		return
	}
	noContent(c)
}
