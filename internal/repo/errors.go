// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file classifies heterogeneous store failures into a
// small driver-agnostic surface that the HTTP error normalizer consumes.
//
// The classification depends only on the DiagnosticError capability: a
// violation kind, an optional SQLSTATE-style diagnostic code, and an optional
// constraint name. Two implementations exist: one reading pgconn.PgError
// diagnostics (PostgreSQL), one matching the SQLite driver's message formats.
// Handlers and the normalizer never inspect driver error types directly.
package repo

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ViolationKind enumerates the integrity-constraint classes the store can
// report.
type ViolationKind int

const (
	// ViolationUnique is a unique-constraint violation (SQLSTATE 23505).
	ViolationUnique ViolationKind = iota
	// ViolationForeignKey is a foreign-key violation (SQLSTATE 23503).
	ViolationForeignKey
	// ViolationCheck is a check-constraint violation (SQLSTATE 23514).
	ViolationCheck
	// ViolationNotNull is a not-null violation (SQLSTATE 23502).
	ViolationNotNull
	// ViolationOther is an integrity error with an unrecognized diagnostic.
	ViolationOther
)

// PostgreSQL SQLSTATE codes for integrity violations.
// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgIntegrityClass      = "23"
)

// DiagnosticError exposes driver-specific failure diagnostics behind a
// driver-agnostic capability surface.
type DiagnosticError interface {
	error
	// ViolationKind reports which integrity-constraint class was violated.
	ViolationKind() ViolationKind
	// DiagnosticCode returns the raw store diagnostic code (SQLSTATE for
	// Postgres), or "" when the driver does not supply one.
	DiagnosticCode() string
	// ConstraintName returns the violated constraint's name, or "" when the
	// driver does not supply one.
	ConstraintName() string
}

// pgDiagnostic adapts a pgconn.PgError to DiagnosticError.
type pgDiagnostic struct {
	pgErr *pgconn.PgError
}

func (d pgDiagnostic) Error() string { return d.pgErr.Error() }

func (d pgDiagnostic) ViolationKind() ViolationKind {
	switch d.pgErr.Code {
	case pgUniqueViolation:
		return ViolationUnique
	case pgForeignKeyViolation:
		return ViolationForeignKey
	case pgCheckViolation:
		return ViolationCheck
	case pgNotNullViolation:
		return ViolationNotNull
	default:
		return ViolationOther
	}
}

func (d pgDiagnostic) DiagnosticCode() string { return d.pgErr.Code }

func (d pgDiagnostic) ConstraintName() string { return d.pgErr.ConstraintName }

// sqliteDiagnostic classifies SQLite integrity failures by message. The pure
// Go driver does not expose structured diagnostics, so this is a best-effort
// mapping used in development and tests; no SQLSTATE or constraint name is
// available.
type sqliteDiagnostic struct {
	err  error
	kind ViolationKind
}

func (d sqliteDiagnostic) Error() string { return d.err.Error() }

func (d sqliteDiagnostic) ViolationKind() ViolationKind { return d.kind }

func (d sqliteDiagnostic) DiagnosticCode() string { return "" }

func (d sqliteDiagnostic) ConstraintName() string { return "" }

// sqliteViolationKind maps SQLite error messages to a violation kind.
// SQLite reports e.g. "UNIQUE constraint failed: departments.name".
func sqliteViolationKind(msg string) (ViolationKind, bool) {
	m := strings.ToLower(msg)
	switch {
	case strings.Contains(m, "unique constraint failed"):
		return ViolationUnique, true
	case strings.Contains(m, "foreign key constraint failed"):
		return ViolationForeignKey, true
	case strings.Contains(m, "check constraint failed"):
		return ViolationCheck, true
	case strings.Contains(m, "not null constraint failed"):
		return ViolationNotNull, true
	case strings.Contains(m, "constraint failed"):
		return ViolationOther, true
	}
	return ViolationOther, false
}

// AsDiagnostic extracts a DiagnosticError from err when the failure is an
// integrity-constraint violation reported by a known driver. It returns
// (nil, false) for non-integrity failures.
func AsDiagnostic(err error) (DiagnosticError, bool) {
	if err == nil {
		return nil, false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if strings.HasPrefix(pgErr.Code, pgIntegrityClass) {
			return pgDiagnostic{pgErr: pgErr}, true
		}
		return nil, false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return sqliteDiagnostic{err: err, kind: ViolationUnique}, true
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return sqliteDiagnostic{err: err, kind: ViolationForeignKey}, true
	}

	if kind, ok := sqliteViolationKind(err.Error()); ok {
		return sqliteDiagnostic{err: err, kind: kind}, true
	}
	return nil, false
}

// IsStoreError reports whether err is a store-level failure that is not an
// integrity violation (driver errors, broken transactions, invalid handles).
// The returned code is the raw diagnostic code when the driver supplies one.
//
// gorm.ErrRecordNotFound is deliberately excluded: missing rows are an
// expected outcome that handlers translate to 404 themselves.
func IsStoreError(err error) (code string, ok bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return "", true
	}

	for _, sentinel := range []error{
		gorm.ErrInvalidTransaction,
		gorm.ErrInvalidDB,
		gorm.ErrInvalidData,
		gorm.ErrNotImplemented,
		gorm.ErrMissingWhereClause,
		gorm.ErrUnsupportedDriver,
		gorm.ErrPrimaryKeyRequired,
		gorm.ErrInvalidField,
		gorm.ErrInvalidValue,
	} {
		if errors.Is(err, sentinel) {
			return "", true
		}
	}

	// SQLite failures beyond integrity (locked database, missing table).
	m := strings.ToLower(err.Error())
	if strings.Contains(m, "sqlite") || strings.Contains(m, "no such table") || strings.Contains(m, "database is locked") {
		return "", true
	}

	return "", false
}
