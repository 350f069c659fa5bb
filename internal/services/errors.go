// Package services defines the business logic of the screen-time backend.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the
// handler layer.
package services

import "errors"

var (
	// ErrNoRows is returned when a batch import is invoked with an empty row
	// list. This is the only failure the importer propagates to its caller;
	// it is raised before any audit record exists.
	ErrNoRows = errors.New("no rows provided")
)
