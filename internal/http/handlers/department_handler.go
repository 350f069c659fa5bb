// Department HTTP handlers.
//
// This file exposes REST endpoints for department resources:
//   - POST   /departments        (create)
//   - GET    /departments        (list, paginated)
//   - GET    /departments/{id}   (get)
//   - PUT    /departments/{id}   (full update)
//   - DELETE /departments/{id}   (delete)
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-screentime-backend/internal/domain"
	"github.com/tbourn/go-screentime-backend/internal/repo"
)

// DepartmentRequest is the JSON payload for creating or replacing a
// department.
type DepartmentRequest struct {
	// Name is the unique department name.
	Name string `json:"name" binding:"required,min=1,max=100" example:"Engineering"`
	// Code is the unique short code.
	Code string `json:"code" binding:"required,min=1,max=20" example:"ENG"`
	// Description optionally annotates the department.
	Description *string `json:"description" example:"Product engineering"`
	// IsActive marks the department active; defaults to true on create.
	IsActive *bool `json:"is_active"`
}

func (r *DepartmentRequest) toModel() *domain.Department {
	d := &domain.Department{
		Name:        strings.TrimSpace(r.Name),
		Code:        strings.TrimSpace(r.Code),
		Description: r.Description,
		IsActive:    true,
	}
	if r.IsActive != nil {
		d.IsActive = *r.IsActive
	}
	return d
}

// CreateDepartment godoc
// @ID          createDepartment
// @Summary     Create a department
// @Description Creates a department with a unique name and code.
// @Tags        Departments
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.DepartmentRequest  true  "Department payload"
//
// @Success     201  {object}  domain.Department
// @Failure     409  {object}  handlers.ErrorEnvelope  "Name or code already taken"
// @Failure     422  {object}  handlers.ErrorEnvelope  "Validation error"
// @Router      /departments [post]
func (h *Handlers) CreateDepartment(c *gin.Context) {
	var req DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	out, err := repo.CreateDepartment(c.Request.Context(), h.db, req.toModel())
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusCreated, out)
}

// ListDepartments godoc
// @ID          listDepartments
// @Summary     List departments
// @Tags        Departments
// @Produce     json
//
// @Param       skip   query  int  false  "Rows to skip"      minimum(0) default(0)
// @Param       limit  query  int  false  "Max rows to return" minimum(1) maximum(500) default(100)
//
// @Success     200  {array}   domain.Department
// @Failure     500  {object}  handlers.ErrorEnvelope  "Store failure"
// @Router      /departments [get]
func (h *Handlers) ListDepartments(c *gin.Context) {
	skip, limit := pageParams(c)
	out, err := repo.ListDepartments(c.Request.Context(), h.db, skip, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusOK, out)
}

// GetDepartment godoc
// @ID          getDepartment
// @Summary     Get a department by id
// @Tags        Departments
// @Produce     json
//
// @Param       id  path  int  true  "Department ID"
//
// @Success     200  {object}  domain.Department
// @Failure     404  {object}  handlers.ErrorEnvelope  "Department not found"
// @Router      /departments/{id} [get]
func (h *Handlers) GetDepartment(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	out, err := repo.GetDepartment(c.Request.Context(), h.db, id)
	if err != nil {
		_ = c.Error(notFoundOr(err, "Department not found"))
		return
	}
	ok(c, http.StatusOK, out)
}

// UpdateDepartment godoc
// @ID          updateDepartment
// @Summary     Replace a department
// @Description Replaces the mutable fields of an existing department.
// @Tags        Departments
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                         true  "Department ID"
// @Param       body  body  handlers.DepartmentRequest  true  "Department payload"
//
// @Success     200  {object}  domain.Department
// @Failure     404  {object}  handlers.ErrorEnvelope  "Department not found"
// @Failure     409  {object}  handlers.ErrorEnvelope  "Name or code already taken"
// @Failure     422  {object}  handlers.ErrorEnvelope  "Validation error"
// @Router      /departments/{id} [put]
func (h *Handlers) UpdateDepartment(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	out, err := repo.UpdateDepartment(c.Request.Context(), h.db, id, req.toModel())
	if err != nil {
		_ = c.Error(notFoundOr(err, "Department not found"))
		return
	}
	ok(c, http.StatusOK, out)
}

// DeleteDepartment godoc
// @ID          deleteDepartment
// @Summary     Delete a department
// @Description Deletes a department. Workstations in the department are
// @Description cascade-deleted; employees keep their rows with a cleared
// @Description department reference.
// @Tags        Departments
//
// @Param       id  path  int  true  "Department ID"
//
// @Success     204  "Deleted"
// @Failure     404  {object}  handlers.ErrorEnvelope  "Department not found"
// @Router      /departments/{id} [delete]
func (h *Handlers) DeleteDepartment(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	if err := repo.DeleteDepartment(c.Request.Context(), h.db, id); err != nil {
		_ = c.Error(notFoundOr(err, "Department not found"))
		return
	}
	noContent(c)
}
