// Package errs holds the internal error taxonomy. Handlers wrap these
// sentinels so controllers can map them to wire statuses while logs keep the
// typed cause.
package errs

import "github.com/pkg/errors"

// ErrNotFound is returned when a form or employee does not exist
var ErrNotFound = errors.New("record not found")

// ErrInvalidReference is returned on a dangling foreign reference
var ErrInvalidReference = errors.New("invalid reference")

// ErrValidation is returned when a required field is missing or malformed
var ErrValidation = errors.New("validation failed")

// ErrPersistence is returned when the datastore is unavailable or a write fails
var ErrPersistence = errors.New("persistence failure")

// ErrNotification is returned when mail dispatch fails
var ErrNotification = errors.New("notification failure")

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalidReference(err error) bool {
	return errors.Is(err, ErrInvalidReference)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
