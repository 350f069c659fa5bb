// Handler wiring and shared request helpers.
//
// Handlers are transport-thin: they bind input, call the repository or
// service layer, and translate results into HTTP responses. They never format
// error bodies; failures are attached to the Gin context and rendered by the
// error normalizer.
package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-screentime-backend/internal/repo"
	"github.com/tbourn/go-screentime-backend/internal/services"
	"github.com/tbourn/go-screentime-backend/internal/utils"
)

// ImportService defines the batch-import operation consumed by HTTP handlers.
//
// Implementations must be safe for concurrent use and must honor the provided
// context for cancellation.
type ImportService interface {
	// ImportSessions persists candidate rows with per-row fault isolation and
	// returns the audit summary. It fails only on empty input or when the
	// initial audit record cannot be created.
	ImportSessions(ctx context.Context, importType string, fileName *string, rows []services.ImportRow) (*services.ImportSummary, error)
}

// Handlers groups the HTTP endpoints for all entities, reports, and the batch
// importer. CRUD endpoints talk to the repository directly; the importer goes
// through its service.
type Handlers struct {
	db        *gorm.DB
	importSvc ImportService
}

// New constructs a Handlers instance bound to the given database handle and
// import service.
func New(db *gorm.DB, importSvc ImportService) *Handlers {
	return &Handlers{db: db, importSvc: importSvc}
}

// notFoundOr translates the missing-record sentinel into an entity-specific
// 404 message; any other error passes through for the normalizer to classify.
func notFoundOr(err error, message string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return NotFound(message)
	}
	return err
}

// pathID parses the numeric :id path parameter. A non-numeric or non-positive
// value yields (0, false) after attaching a BAD_REQUEST failure.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		_ = c.Error(BadRequest("id must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}

// pageParams parses the skip/limit query parameters with the API defaults
// (skip=0, limit=100, limit capped at 500).
func pageParams(c *gin.Context) (skip, limit int) {
	const (
		defaultLimit = 100
		maxLimit     = 500
	)
	skip = utils.AtoiDefault(c.Query("skip"), 0)
	if skip < 0 {
		skip = 0
	}
	limit = utils.AtoiDefault(c.Query("limit"), defaultLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return
}
