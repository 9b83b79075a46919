package model

import (
	"errors"
	"fmt"
)

// Catalog lookups.
var (
	ErrCampNotFound = errors.New("camp not found")
	ErrUnitNotFound = errors.New("unit not found")
)

// Inventory outcomes. ErrSoldOut is a normal business outcome;
// ErrInvalidInventory signals corrupt counters upstream and is never
// shown raw to the end user.
var (
	ErrSoldOut              = errors.New("no seats left for this unit")
	ErrInvalidInventory     = errors.New("inventory counters are invalid")
	ErrInvalidToken         = errors.New("reservation token is unknown or already released")
	ErrInventoryUnavailable = errors.New("inventory is temporarily unavailable")
)

// Pricing.
var ErrInvalidUnit = errors.New("unit has an invalid price")

// Workflow.
var (
	ErrSessionNotFound  = errors.New("registration session not found")
	ErrAlreadyConfirmed = errors.New("registration is already confirmed")
	ErrSessionClosed    = errors.New("registration session is closed")
	ErrWrongStep        = errors.New("payload does not match the current step")
)

// ValidationError reports a user-correctable problem with one field of
// a step payload. The workflow stays in its current step when one is
// returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
