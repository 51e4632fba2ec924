// Package tracker implements the state transitions of the maintenance
// tracker as pure functions.
//
// Every transition takes the current models.AppState and returns a new one.
// Inputs are never modified, so a caller can discard the result on error and
// keep using the state it had. Persisting the result is the caller's job.
package tracker

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrEmptyBikeName is returned by AddBike when the name is blank.
	ErrEmptyBikeName = errors.New("bike name is required")

	// ErrMissingMonth is returned by SaveRecord when no month is given.
	ErrMissingMonth = errors.New("please choose a month")

	// ErrInvalidMonth is returned by SaveRecord when the month is not YYYY-MM.
	ErrInvalidMonth = errors.New("month must be in YYYY-MM format")

	// ErrMissingServiceType is returned by SaveRecord when the service type is blank.
	ErrMissingServiceType = errors.New("please enter a service type")

	// ErrNoBikeSelected is returned when adding a record without a valid selected bike.
	ErrNoBikeSelected = errors.New("no bike selected")

	// ErrRecordNotFound is returned when a record ID matches no record.
	ErrRecordNotFound = errors.New("service record not found")

	// ErrNotConfirmed is returned by DeleteRecord when the user declines.
	ErrNotConfirmed = errors.New("deletion not confirmed")
)

// newID generates IDs for created bikes and records. Random UUIDs make
// collisions negligible; existing IDs are not re-checked.
var newID = func() string {
	return uuid.New().String()
}

