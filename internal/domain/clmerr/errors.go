// Package clmerr defines the sentinel errors shared across the domain. Services
// wrap them with context and the REST layer maps them to status codes.
package clmerr

import (
	"errors"

	"github.com/rpsg-tech/clm-sub005/internal/pkg/validators"
)

var (
	// ErrNotFound is returned when a row does not exist or belongs to another organization.
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition is returned for a contract status change the lifecycle forbids.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrConflict is returned when the current state does not allow the operation.
	ErrConflict = errors.New("conflict")
	// ErrForbidden is returned when the caller may not perform the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthorized is returned for missing or bad credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrValidation is returned when input fails validation. Errors from
	// validators.ValidateStruct match it too.
	ErrValidation = validators.ErrInvalid
)
