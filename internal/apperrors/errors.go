package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
// It is always reported together with ErrValidation.
var ErrDuplicate = errors.New("resource already exists")

// ErrBusinessRule is the parent of every business-rule violation raised by the accounting engine.
var ErrBusinessRule = errors.New("business rule violation")

var (
	// ErrInactiveAccount is returned when a status-gated operation targets a non-ACTIVE account.
	ErrInactiveAccount = &businessRuleError{msg: "account is not active"}
	// ErrInsufficientBalance is returned when a withdraw or transfer exceeds the available funds.
	ErrInsufficientBalance = &businessRuleError{msg: "insufficient balance"}
	// ErrInvalidTransition is returned for an illegal account status change.
	ErrInvalidTransition = &businessRuleError{msg: "invalid account status transition"}
	// ErrCurrencyMismatch is returned when a transfer spans accounts held in different currencies.
	ErrCurrencyMismatch = &businessRuleError{msg: "account currencies do not match"}
)

type businessRuleError struct {
	msg string
}

func (e *businessRuleError) Error() string { return e.msg }

// Is lets every business-rule sentinel match ErrBusinessRule.
func (e *businessRuleError) Is(target error) bool {
	return target == ErrBusinessRule
}

// NewDuplicate wraps a uniqueness violation so it matches both ErrDuplicate and ErrValidation.
func NewDuplicate(format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", ErrValidation, ErrDuplicate, fmt.Sprintf(format, args...))
}

// AppError carries an HTTP-ish status code alongside an infrastructure failure.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
