// Workstation HTTP handlers: CRUD for tracked machines. Hostname uniqueness
// is scoped to the owning department and enforced by the store; violations
// surface through the error normalizer as 409 UNIQUE_VIOLATION.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-screentime-backend/internal/domain"
	"github.com/tbourn/go-screentime-backend/internal/repo"
)

// WorkstationRequest is the JSON payload for creating or replacing a
// workstation.
type WorkstationRequest struct {
	// Hostname is unique within the owning department.
	Hostname string `json:"hostname" binding:"required,min=1,max=100" example:"ws-eng-042"`
	// InventoryNumber is the globally unique asset tag.
	InventoryNumber string `json:"inventory_number" binding:"required,min=1,max=50" example:"INV-2024-0042"`
	// DepartmentID references the owning department.
	DepartmentID uint `json:"department_id" binding:"required" example:"1"`
	// OSName names the installed operating system.
	OSName string `json:"os_name" binding:"required,min=1,max=50" example:"Ubuntu 24.04"`
	// IsActive marks the workstation active; defaults to true on create.
	IsActive *bool `json:"is_active"`
}

func (r *WorkstationRequest) toModel() *domain.Workstation {
	w := &domain.Workstation{
		Hostname:        strings.TrimSpace(r.Hostname),
		InventoryNumber: strings.TrimSpace(r.InventoryNumber),
		DepartmentID:    r.DepartmentID,
		OSName:          strings.TrimSpace(r.OSName),
		IsActive:        true,
	}
	if r.IsActive != nil {
		w.IsActive = *r.IsActive
	}
	return w
}

// CreateWorkstation godoc
// @ID          createWorkstation
// @Summary     Create a workstation
// @Description Registers a machine in a department. The department must exist.
// @Tags        Workstations
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.WorkstationRequest  true  "Workstation payload"
//
// @Success     201  {object}  domain.Workstation
// @Failure     409  {object}  handlers.ErrorEnvelope  "Duplicate hostname or inventory number, or unknown department"
// @Failure     422  {object}  handlers.ErrorEnvelope  "Validation error"
// @Router      /workstations [post]
func (h *Handlers) CreateWorkstation(c *gin.Context) {
	var req WorkstationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	out, err := repo.CreateWorkstation(c.Request.Context(), h.db, req.toModel())
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusCreated, out)
}

// ListWorkstations godoc
// @ID          listWorkstations
// @Summary     List workstations
// @Tags        Workstations
// @Produce     json
//
// @Param       skip   query  int  false  "Rows to skip"       minimum(0) default(0)
// @Param       limit  query  int  false  "Max rows to return"  minimum(1) maximum(500) default(100)
//
// @Success     200  {array}   domain.Workstation
// @Failure     500  {object}  handlers.ErrorEnvelope  "Store failure"
// @Router      /workstations [get]
func (h *Handlers) ListWorkstations(c *gin.Context) {
	skip, limit := pageParams(c)
	out, err := repo.ListWorkstations(c.Request.Context(), h.db, skip, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusOK, out)
}

// GetWorkstation godoc
// @ID          getWorkstation
// @Summary     Get a workstation by id
// @Tags        Workstations
// @Produce     json
//
// @Param       id  path  int  true  "Workstation ID"
//
// @Success     200  {object}  domain.Workstation
// @Failure     404  {object}  handlers.ErrorEnvelope  "Workstation not found"
// @Router      /workstations/{id} [get]
func (h *Handlers) GetWorkstation(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	out, err := repo.GetWorkstation(c.Request.Context(), h.db, id)
	if err != nil {
		_ = c.Error(notFoundOr(err, "Workstation not found"))
		return
	}
	ok(c, http.StatusOK, out)
}

// UpdateWorkstation godoc
// @ID          updateWorkstation
// @Summary     Replace a workstation
// @Tags        Workstations
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                          true  "Workstation ID"
// @Param       body  body  handlers.WorkstationRequest  true  "Workstation payload"
//
// @Success     200  {object}  domain.Workstation
// @Failure     404  {object}  handlers.ErrorEnvelope  "Workstation not found"
// @Failure     409  {object}  handlers.ErrorEnvelope  "Duplicate hostname or inventory number"
// @Failure     422  {object}  handlers.ErrorEnvelope  "Validation error"
// @Router      /workstations/{id} [put]
func (h *Handlers) UpdateWorkstation(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req WorkstationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	out, err := repo.UpdateWorkstation(c.Request.Context(), h.db, id, req.toModel())
	if err != nil {
		_ = c.Error(notFoundOr(err, "Workstation not found"))
		return
	}
	ok(c, http.StatusOK, out)
}

// DeleteWorkstation godoc
// @ID          deleteWorkstation
// @Summary     Delete a workstation
// @Description Deletes a workstation along with its sessions and assignments.
// @Tags        Workstations
//
// @Param       id  path  int  true  "Workstation ID"
//
// @Success     204  "Deleted"
// @Failure     404  {object}  handlers.ErrorEnvelope  "Workstation not found"
// @Router      /workstations/{id} [delete]
func (h *Handlers) DeleteWorkstation(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	if err := repo.DeleteWorkstation(c.Request.Context(), h.db, id); err != nil {
		_ = c.Error(notFoundOr(err, "Workstation not found"))
		return
	}
	noContent(c)
}
