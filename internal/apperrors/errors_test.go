package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusinessRuleSentinels(t *testing.T) {
	for _, sentinel := range []error{ErrInactiveAccount, ErrInsufficientBalance, ErrInvalidTransition, ErrCurrencyMismatch} {
		wrapped := fmt.Errorf("%w: account ACC-1", sentinel)
		assert.ErrorIs(t, wrapped, ErrBusinessRule, sentinel.Error())
		assert.ErrorIs(t, wrapped, sentinel)
		assert.NotErrorIs(t, wrapped, ErrValidation)
		assert.NotErrorIs(t, wrapped, ErrNotFound)
	}
	assert.NotErrorIs(t, ErrInactiveAccount, ErrInsufficientBalance)
}

func TestNewDuplicate(t *testing.T) {
	err := NewDuplicate("customer with email %s already exists", "ana@x.com")

	assert.ErrorIs(t, err, ErrDuplicate)
	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrBusinessRule)
	assert.Contains(t, err.Error(), "ana@x.com")
}

func TestAppError(t *testing.T) {
	err := NewAppError(500, "failed to begin transaction", context.Canceled)

	assert.Equal(t, "failed to begin transaction: context canceled", err.Error())
	assert.True(t, errors.Is(err, context.Canceled))

	bare := NewAppError(503, "unavailable", nil)
	assert.Equal(t, "unavailable", bare.Error())
	assert.Nil(t, errors.Unwrap(bare))
}
