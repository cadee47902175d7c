package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("amount", "must be positive")

	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "amount")

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "amount", verr.Field)
}

func TestBudgetExceededError(t *testing.T) {
	err := &BudgetExceededError{LineID: 7, Remaining: 50_000}

	assert.ErrorIs(t, err, ErrBudgetExceeded)
	assert.Contains(t, err.Error(), "50000")

	// Survives wrapping.
	wrapped := fmt.Errorf("recording spend: %w", err)
	var berr *BudgetExceededError
	require.True(t, errors.As(wrapped, &berr))
	assert.Equal(t, int64(50_000), berr.Remaining)
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("budget", int64(42))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "budget")
	assert.Contains(t, err.Error(), "42")
}
