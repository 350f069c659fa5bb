// Employee HTTP handlers.
//
// Unlike the other entities, the employee update endpoint is a partial
// update: omitted fields are left untouched. The update DTO therefore uses
// pointer fields throughout and is translated into a repo.EmployeePatch.
package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-screentime-backend/internal/domain"
	"github.com/tbourn/go-screentime-backend/internal/repo"
)

// EmployeeCreateRequest is the JSON payload for creating an employee.
// Department and position references are optional and validated by the store.
type EmployeeCreateRequest struct {
	FirstName string `json:"first_name" binding:"required,min=1,max=50" example:"Anna"`
	LastName  string `json:"last_name"  binding:"required,min=1,max=50" example:"Petrova"`
	// Email must be unique across employees when present.
	Email        *string `json:"email" binding:"omitempty,email,max=100" example:"anna.petrova@example.com"`
	DepartmentID *uint   `json:"department_id" example:"1"`
	PositionID   *uint   `json:"position_id" example:"3"`
	// HiredAt is the hire date in RFC 3339 form.
	HiredAt  time.Time `json:"hired_at" binding:"required" example:"2023-04-01T00:00:00Z"`
	IsActive *bool     `json:"is_active"`
}

// EmployeeUpdateRequest is the JSON payload for partially updating an
// employee. Every field is optional; absent fields are not modified.
type EmployeeUpdateRequest struct {
	FirstName    *string    `json:"first_name" binding:"omitempty,min=1,max=50"`
	LastName     *string    `json:"last_name"  binding:"omitempty,min=1,max=50"`
	Email        *string    `json:"email" binding:"omitempty,email,max=100"`
	DepartmentID *uint      `json:"department_id"`
	PositionID   *uint      `json:"position_id"`
	HiredAt      *time.Time `json:"hired_at"`
	IsActive     *bool      `json:"is_active"`
}

// CreateEmployee godoc
// @ID          createEmployee
// @Summary     Create an employee
// @Tags        Employees
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.EmployeeCreateRequest  true  "Employee payload"
//
// @Success     201  {object}  domain.Employee
// @Failure     409  {object}  handlers.ErrorEnvelope  "Email already taken or unknown department/position"
// @Failure     422  {object}  handlers.ErrorEnvelope  "Validation error"
// @Router      /employees [post]
func (h *Handlers) CreateEmployee(c *gin.Context) {
	var req EmployeeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	e := &domain.Employee{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        req.Email,
		DepartmentID: req.DepartmentID,
		PositionID:   req.PositionID,
		HiredAt:      req.HiredAt,
		IsActive:     true,
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}
	out, err := repo.CreateEmployee(c.Request.Context(), h.db, e)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusCreated, out)
}

// ListEmployees godoc
// @ID          listEmployees
// @Summary     List employees
// @Tags        Employees
// @Produce     json
//
// @Param       skip   query  int  false  "Rows to skip"       minimum(0) default(0)
// @Param       limit  query  int  false  "Max rows to return"  minimum(1) maximum(500) default(100)
//
// @Success     200  {array}   domain.Employee
// @Failure     500  {object}  handlers.ErrorEnvelope  "Store failure"
// @Router      /employees [get]
func (h *Handlers) ListEmployees(c *gin.Context) {
	skip, limit := pageParams(c)
	out, err := repo.ListEmployees(c.Request.Context(), h.db, skip, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusOK, out)
}

// GetEmployee godoc
// @ID          getEmployee
// @Summary     Get an employee by id
// @Tags        Employees
// @Produce     json
//
// @Param       id  path  int  true  "Employee ID"
//
// @Success     200  {object}  domain.Employee
// @Failure     404  {object}  handlers.ErrorEnvelope  "Employee not found"
// @Router      /employees/{id} [get]
func (h *Handlers) GetEmployee(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	out, err := repo.GetEmployee(c.Request.Context(), h.db, id)
	if err != nil {
		_ = c.Error(notFoundOr(err, "Employee not found"))
		return
	}
	ok(c, http.StatusOK, out)
}

// UpdateEmployee godoc
// @ID          updateEmployee
// @Summary     Partially update an employee
// @Description Updates only the fields present in the payload. An empty
// @Description payload is a no-op that still verifies the employee exists.
// @Tags        Employees
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                             true  "Employee ID"
// @Param       body  body  handlers.EmployeeUpdateRequest  true  "Sparse employee payload"
//
// @Success     200  {object}  domain.Employee
// @Failure     404  {object}  handlers.ErrorEnvelope  "Employee not found"
// @Failure     409  {object}  handlers.ErrorEnvelope  "Email already taken or unknown department/position"
// @Failure     422  {object}  handlers.ErrorEnvelope  "Validation error"
// @Router      /employees/{id} [put]
func (h *Handlers) UpdateEmployee(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req EmployeeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	patch := repo.EmployeePatch{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		DepartmentID: req.DepartmentID,
		PositionID:   req.PositionID,
		HiredAt:      req.HiredAt,
		IsActive:     req.IsActive,
	}
	out, err := repo.UpdateEmployee(c.Request.Context(), h.db, id, patch)
	if err != nil {
		_ = c.Error(notFoundOr(err, "Employee not found"))
		return
	}
	ok(c, http.StatusOK, out)
}

// DeleteEmployee godoc
// @ID          deleteEmployee
// @Summary     Delete an employee
// @Description Deletes an employee along with their sessions and workstation
// @Description assignments.
// @Tags        Employees
//
// @Param       id  path  int  true  "Employee ID"
//
// @Success     204  "Deleted"
// @Failure     404  {object}  handlers.ErrorEnvelope  "Employee not found"
// @Router      /employees/{id} [delete]
func (h *Handlers) DeleteEmployee(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	if err := repo.DeleteEmployee(c.Request.Context(), h.db, id); err != nil {
		_ = c.Error(notFoundOr(err, "Employee not found"))
		return
	}
	noContent(c)
}
