// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors. All four taxonomy errors are local, non-fatal
// conditions that the transport layer reports to the caller.
var (
	// ErrNotFound indicates a referenced budget, line, policy rule, venue
	// or event does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")
	// ErrBudgetExceeded indicates a transaction would push spent past allocated.
	ErrBudgetExceeded = errors.New("budget exceeded")
	// ErrConflict indicates a concurrent-update race was detected.
	ErrConflict = errors.New("conflicting concurrent update")
	// ErrFeatureDisabled indicates the budget ledger toggle is off.
	ErrFeatureDisabled = errors.New("budget ledger feature is not enabled")
)

// ValidationError describes which input failed validation and why.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// BudgetExceededError carries the remaining amount so callers can report
// how much budget is actually left.
type BudgetExceededError struct {
	LineID    int64
	Remaining int64
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("transaction would exceed allocated amount on line %d, remaining: %d", e.LineID, e.Remaining)
}

// Unwrap lets errors.Is match ErrBudgetExceeded.
func (e *BudgetExceededError) Unwrap() error {
	return ErrBudgetExceeded
}

// NotFoundError names the entity that could not be resolved.
type NotFoundError struct {
	ID     any
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

// Unwrap lets errors.Is match ErrNotFound.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not-found error for an entity reference.
func NewNotFoundError(entity string, id any) error {
	return &NotFoundError{Entity: entity, ID: id}
}
