// Package services – ImportService
//
// This file implements the batch session importer. It persists a list of
// candidate session rows with per-row fault isolation and always leaves
// behind exactly one BatchImportLog audit record describing the outcome,
// even when a fatal (non-row) failure interrupts processing.
//
// Design:
//   - Row failures are bookkeeping, not control flow: an explicit accumulator
//     (counters plus a message list) records them and the loop continues.
//     Error signaling is reserved for the single fatal path.
//   - The decision of "commit what succeeded" is made exactly once, at the
//     end: all staged rows and the finalized log commit atomically. Each row
//     insert runs under a savepoint so one rejected row does not poison the
//     surrounding transaction.
//   - On a fatal failure the whole transaction is discarded and the log is
//     re-inserted FAILED in a fresh transaction, so the audit trail survives
//     whatever broke the batch. The importer then still returns a summary,
//     never an error.
//
// The importer does not deduplicate: resubmitting the same batch with live
// foreign-key references creates duplicate session rows. There is no dedup
// key in the schema, and callers are expected to track their own submissions.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-screentime-backend/internal/domain"
)

var (
	// importRows counts processed candidate rows by result (success|error).
	importRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batch_import_rows_total",
			Help: "Total number of batch-import rows processed, by result.",
		},
		[]string{"result"},
	)

	// importRuns counts completed import invocations by terminal status.
	importRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batch_imports_total",
			Help: "Total number of batch-import invocations, by terminal status.",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(importRows, importRuns)
}

// ImportRow is one candidate screen-session record submitted to the importer.
// References to employees and workstations are validated only by the store's
// referential-integrity checks, not by the importer itself.
type ImportRow struct {
	EmployeeID    uint
	WorkstationID uint
	StartedAt     time.Time
	EndedAt       time.Time
	ActiveSeconds int
}

// ImportSummary describes the terminal outcome of one import invocation.
// SuccessRows + ErrorRows always equals TotalRows.
type ImportSummary struct {
	ID           uint
	Status       string
	TotalRows    int
	SuccessRows  int
	ErrorRows    int
	ErrorMessage string
}

// ImportService implements the batch-import use case. It is safe for
// concurrent use; concurrent imports own independent audit records and
// transactions, and rely on the store for integrity.
type ImportService struct {
	// DB is the database handle used for all import operations.
	DB *gorm.DB
}

// ImportSessions persists the given rows with per-row fault isolation and
// records a BatchImportLog describing the outcome.
//
// Contract:
//   - rows must be non-empty; an empty slice returns ErrNoRows before any
//     audit record is created.
//   - A row fails locally when ended_at <= started_at or active_seconds < 0,
//     and at staging time when the store rejects it (foreign keys, CHECKs).
//     Each failure appends "Row {1-based index}: {reason}" and processing
//     continues.
//   - All staged rows plus the finalized log commit atomically. Status is
//     SUCCESS iff no row failed, else FAILED with the newline-joined
//     messages.
//   - A fatal failure (broken transaction, commit error) discards the row
//     data, re-inserts the log FAILED with a "Fatal error: ..." message in a
//     fresh transaction, and still returns a summary. The recovery insert is
//     best-effort: if the store is unusable it is logged and the returned
//     summary references a log row that may not be durable.
//
// ImportSessions never propagates an error past its boundary except ErrNoRows
// and a failure to create the initial audit record (a store-level error the
// HTTP layer renders as DB_ERROR).
func (s *ImportService) ImportSessions(ctx context.Context, importType string, fileName *string, rows []ImportRow) (*ImportSummary, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	logRec := &domain.BatchImportLog{
		ImportType: importType,
		FileName:   fileName,
		StartedAt:  time.Now().UTC(),
		Status:     domain.ImportStatusInProgress,
	}

	tx := s.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	// Flush the log row inside the transaction so it receives an id without
	// being committed yet.
	if err := tx.Create(logRec).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	successRows := 0
	errorMessages := make([]string, 0)

	fatal := func(cause error) *ImportSummary {
		tx.Rollback()
		logRec.TotalRows = len(rows)
		return s.recoverFatal(ctx, logRec, cause)
	}

	for i, row := range rows {
		idx := i + 1 // row indices are 1-based and stable under reordering

		if reason := validateRow(row); reason != "" {
			errorMessages = append(errorMessages, fmt.Sprintf("Row %d: %s", idx, reason))
			importRows.WithLabelValues("error").Inc()
			continue
		}

		sp := fmt.Sprintf("sp_row_%d", idx)
		if err := tx.SavePoint(sp).Error; err != nil {
			return fatal(err), nil
		}
		sess := domain.ScreenSession{
			EmployeeID:    row.EmployeeID,
			WorkstationID: row.WorkstationID,
			StartedAt:     row.StartedAt,
			EndedAt:       row.EndedAt,
			ActiveSeconds: row.ActiveSeconds,
			CreatedAt:     time.Now().UTC(),
		}
		if err := tx.Create(&sess).Error; err != nil {
			// The row was rejected by the store; roll back to the savepoint
			// so the surrounding transaction stays usable.
			if rbErr := tx.RollbackTo(sp).Error; rbErr != nil {
				return fatal(rbErr), nil
			}
			errorMessages = append(errorMessages, fmt.Sprintf("Row %d: %s", idx, err.Error()))
			importRows.WithLabelValues("error").Inc()
			continue
		}
		successRows++
		importRows.WithLabelValues("success").Inc()
	}

	// Finalize the audit record and commit log + staged rows atomically.
	now := time.Now().UTC()
	logRec.TotalRows = len(rows)
	logRec.SuccessRows = successRows
	logRec.ErrorRows = len(errorMessages)
	logRec.FinishedAt = &now
	if len(errorMessages) == 0 {
		logRec.Status = domain.ImportStatusSuccess
	} else {
		logRec.Status = domain.ImportStatusFailed
		msg := strings.Join(errorMessages, "\n")
		logRec.ErrorMessage = &msg
	}

	if err := tx.Save(logRec).Error; err != nil {
		return fatal(err), nil
	}
	if err := tx.Commit().Error; err != nil {
		return fatal(err), nil
	}

	importRuns.WithLabelValues(logRec.Status).Inc()
	return summaryOf(logRec), nil
}

// validateRow performs the importer's local per-row validation. It returns a
// non-empty reason when the row is rejected.
func validateRow(row ImportRow) string {
	if !row.EndedAt.After(row.StartedAt) {
		return "ended_at must be greater than started_at"
	}
	if row.ActiveSeconds < 0 {
		return "active_seconds must be non-negative"
	}
	return ""
}

// recoverFatal finalizes the audit record after a fatal (non-row) failure.
// The in-flight transaction has already been discarded, which also discarded
// the uncommitted log row, so the record is re-inserted under its assigned id
// in a fresh transaction. That commit is independent of whatever caused the
// fatal failure; if it fails too, the loss is logged loudly rather than
// silently swallowed.
func (s *ImportService) recoverFatal(ctx context.Context, logRec *domain.BatchImportLog, cause error) *ImportSummary {
	now := time.Now().UTC()
	msg := fmt.Sprintf("Fatal error: %v", cause)
	logRec.Status = domain.ImportStatusFailed
	logRec.ErrorMessage = &msg
	logRec.FinishedAt = &now
	logRec.SuccessRows = 0
	logRec.ErrorRows = logRec.TotalRows

	if err := s.DB.WithContext(ctx).Create(logRec).Error; err != nil {
		log.Error().
			Err(err).
			Uint("import_log_id", logRec.ID).
			Str("cause", cause.Error()).
			Msg("failed to persist import audit record after fatal error")
	}

	importRuns.WithLabelValues(domain.ImportStatusFailed).Inc()
	return summaryOf(logRec)
}

// summaryOf builds the caller-facing summary from the finalized audit record.
func summaryOf(logRec *domain.BatchImportLog) *ImportSummary {
	sum := &ImportSummary{
		ID:          logRec.ID,
		Status:      logRec.Status,
		TotalRows:   logRec.TotalRows,
		SuccessRows: logRec.SuccessRows,
		ErrorRows:   logRec.ErrorRows,
	}
	if logRec.ErrorMessage != nil {
		sum.ErrorMessage = *logRec.ErrorMessage
	}
	return sum
}
