// Position HTTP handlers: CRUD for job positions. The seniority level is
// bounded both at binding time (validator) and by the store CHECK constraint.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-screentime-backend/internal/domain"
	"github.com/tbourn/go-screentime-backend/internal/repo"
)

// PositionRequest is the JSON payload for creating or replacing a position.
type PositionRequest struct {
	// Name is the unique position name.
	Name string `json:"name" binding:"required,min=1,max=100" example:"Senior Developer"`
	// Level is the seniority level, 1 (junior) through 10 (executive).
	Level int `json:"level" binding:"required,min=1,max=10" example:"5"`
	// Description optionally annotates the position.
	Description *string `json:"description"`
	// IsActive marks the position active; defaults to true on create.
	IsActive *bool `json:"is_active"`
}

func (r *PositionRequest) toModel() *domain.Position {
	p := &domain.Position{
		Name:        strings.TrimSpace(r.Name),
		Level:       r.Level,
		Description: r.Description,
		IsActive:    true,
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	return p
}

// CreatePosition godoc
// @ID          createPosition
// @Summary     Create a position
// @Tags        Positions
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.PositionRequest  true  "Position payload"
//
// @Success     201  {object}  domain.Position
// @Failure     409  {object}  handlers.ErrorEnvelope  "Name already taken"
// @Failure     422  {object}  handlers.ErrorEnvelope  "Validation error"
// @Router      /positions [post]
func (h *Handlers) CreatePosition(c *gin.Context) {
	var req PositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	out, err := repo.CreatePosition(c.Request.Context(), h.db, req.toModel())
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusCreated, out)
}

// ListPositions godoc
// @ID          listPositions
// @Summary     List positions
// @Tags        Positions
// @Produce     json
//
// @Param       skip   query  int  false  "Rows to skip"       minimum(0) default(0)
// @Param       limit  query  int  false  "Max rows to return"  minimum(1) maximum(500) default(100)
//
// @Success     200  {array}   domain.Position
// @Failure     500  {object}  handlers.ErrorEnvelope  "Store failure"
// @Router      /positions [get]
func (h *Handlers) ListPositions(c *gin.Context) {
	skip, limit := pageParams(c)
	out, err := repo.ListPositions(c.Request.Context(), h.db, skip, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusOK, out)
}

// GetPosition godoc
// @ID          getPosition
// @Summary     Get a position by id
// @Tags        Positions
// @Produce     json
//
// @Param       id  path  int  true  "Position ID"
//
// @Success     200  {object}  domain.Position
// @Failure     404  {object}  handlers.ErrorEnvelope  "Position not found"
// @Router      /positions/{id} [get]
func (h *Handlers) GetPosition(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	out, err := repo.GetPosition(c.Request.Context(), h.db, id)
	if err != nil {
		_ = c.Error(notFoundOr(err, "Position not found"))
		return
	}
	ok(c, http.StatusOK, out)
}

// UpdatePosition godoc
// @ID          updatePosition
// @Summary     Replace a position
// @Tags        Positions
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                       true  "Position ID"
// @Param       body  body  handlers.PositionRequest  true  "Position payload"
//
// @Success     200  {object}  domain.Position
// @Failure     404  {object}  handlers.ErrorEnvelope  "Position not found"
// @Failure     422  {object}  handlers.ErrorEnvelope  "Validation error"
// @Router      /positions/{id} [put]
func (h *Handlers) UpdatePosition(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req PositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	out, err := repo.UpdatePosition(c.Request.Context(), h.db, id, req.toModel())
	if err != nil {
		_ = c.Error(notFoundOr(err, "Position not found"))
		return
	}
	ok(c, http.StatusOK, out)
}

// DeletePosition godoc
// @ID          deletePosition
// @Summary     Delete a position
// @Description Deletes a position. Employees holding it keep their rows with
// @Description a cleared position reference.
// @Tags        Positions
//
// @Param       id  path  int  true  "Position ID"
//
// @Success     204  "Deleted"
// @Failure     404  {object}  handlers.ErrorEnvelope  "Position not found"
// @Router      /positions/{id} [delete]
func (h *Handlers) DeletePosition(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	if err := repo.DeletePosition(c.Request.Context(), h.db, id); err != nil {
		_ = c.Error(notFoundOr(err, "Position not found"))
		return
	}
	noContent(c)
}
