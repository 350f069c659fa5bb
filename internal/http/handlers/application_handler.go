// Application HTTP handlers: CRUD for tracked software. Application codes are
// globally unique; deleting an application referenced by usage rows is
// rejected by the store (ON DELETE RESTRICT) and surfaces as 409.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-screentime-backend/internal/domain"
	"github.com/tbourn/go-screentime-backend/internal/repo"
)

// ApplicationRequest is the JSON payload for creating or replacing an
// application.
type ApplicationRequest struct {
	// Name is the human-readable application name.
	Name string `json:"name" binding:"required,min=1,max=100" example:"Visual Studio Code"`
	// Code is the unique machine identifier.
	Code string `json:"code" binding:"required,min=1,max=50" example:"vscode"`
	// Category groups applications for reporting.
	Category string `json:"category" binding:"required,min=1,max=50" example:"development"`
	// IsProductive marks time in this application as productive.
	IsProductive *bool `json:"is_productive" binding:"required"`
	// IsActive marks the application tracked; defaults to true on create.
	IsActive *bool `json:"is_active"`
}

func (r *ApplicationRequest) toModel() *domain.Application {
	a := &domain.Application{
		Name:     strings.TrimSpace(r.Name),
		Code:     strings.TrimSpace(r.Code),
		Category: strings.TrimSpace(r.Category),
		IsActive: true,
	}
	if r.IsProductive != nil {
		a.IsProductive = *r.IsProductive
	}
	if r.IsActive != nil {
		a.IsActive = *r.IsActive
	}
	return a
}

// CreateApplication godoc
// @ID          createApplication
// @Summary     Create an application
// @Tags        Applications
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.ApplicationRequest  true  "Application payload"
//
// @Success     201  {object}  domain.Application
// @Failure     409  {object}  handlers.ErrorEnvelope  "Code already taken"
// @Failure     422  {object}  handlers.ErrorEnvelope  "Validation error"
// @Router      /applications [post]
func (h *Handlers) CreateApplication(c *gin.Context) {
	var req ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	out, err := repo.CreateApplication(c.Request.Context(), h.db, req.toModel())
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusCreated, out)
}

// ListApplications godoc
// @ID          listApplications
// @Summary     List applications
// @Tags        Applications
// @Produce     json
//
// @Param       skip   query  int  false  "Rows to skip"       minimum(0) default(0)
// @Param       limit  query  int  false  "Max rows to return"  minimum(1) maximum(500) default(100)
//
// @Success     200  {array}   domain.Application
// @Failure     500  {object}  handlers.ErrorEnvelope  "Store failure"
// @Router      /applications [get]
func (h *Handlers) ListApplications(c *gin.Context) {
	skip, limit := pageParams(c)
	out, err := repo.ListApplications(c.Request.Context(), h.db, skip, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusOK, out)
}

// GetApplication godoc
// @ID          getApplication
// @Summary     Get an application by id
// @Tags        Applications
// @Produce     json
//
// @Param       id  path  int  true  "Application ID"
//
// @Success     200  {object}  domain.Application
// @Failure     404  {object}  handlers.ErrorEnvelope  "Application not found"
// @Router      /applications/{id} [get]
func (h *Handlers) GetApplication(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	out, err := repo.GetApplication(c.Request.Context(), h.db, id)
	if err != nil {
		_ = c.Error(notFoundOr(err, "Application not found"))
		return
	}
	ok(c, http.StatusOK, out)
}

// UpdateApplication godoc
// @ID          updateApplication
// @Summary     Replace an application
// @Tags        Applications
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                          true  "Application ID"
// @Param       body  body  handlers.ApplicationRequest  true  "Application payload"
//
// @Success     200  {object}  domain.Application
// @Failure     404  {object}  handlers.ErrorEnvelope  "Application not found"
// @Failure     409  {object}  handlers.ErrorEnvelope  "Code already taken"
// @Failure     422  {object}  handlers.ErrorEnvelope  "Validation error"
// @Router      /applications/{id} [put]
func (h *Handlers) UpdateApplication(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	out, err := repo.UpdateApplication(c.Request.Context(), h.db, id, req.toModel())
	if err != nil {
		_ = c.Error(notFoundOr(err, "Application not found"))
		return
	}
	ok(c, http.StatusOK, out)
}

// DeleteApplication godoc
// @ID          deleteApplication
// @Summary     Delete an application
// @Description Deletes an application. Rejected with 409 when usage rows
// @Description still reference it.
// @Tags        Applications
//
// @Param       id  path  int  true  "Application ID"
//
// @Success     204  "Deleted"
// @Failure     404  {object}  handlers.ErrorEnvelope  "Application not found"
// @Failure     409  {object}  handlers.ErrorEnvelope  "Application still referenced by usage rows"
// @Router      /applications/{id} [delete]
func (h *Handlers) DeleteApplication(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	if err := repo.DeleteApplication(c.Request.Context(), h.db, id); err != nil {
		_ = c.Error(notFoundOr(err, "Application not found"))
		return
	}
	noContent(c)
}
