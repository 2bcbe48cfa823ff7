package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by every "entity does not exist" error
	ErrNotFound = errors.New("domain: not found")

	ErrCarNotFound      = fmt.Errorf("%w: car", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("%w: user", ErrNotFound)
	ErrContractNotFound = fmt.Errorf("%w: contract", ErrNotFound)

	// ErrUnavailable is matched by storage failures that may succeed on a later call
	ErrUnavailable = errors.New("domain: storage temporarily unavailable")

	// Value object errors
	ErrNegativeAmount   = errors.New("domain: amount must not be negative")
	ErrInvalidCurrency  = errors.New("domain: invalid currency code")
	ErrCurrencyMismatch = errors.New("domain: currency mismatch")
	ErrInvalidDateRange = errors.New("domain: invalid date range")
	ErrInvalidExtension = errors.New("domain: invalid extension")

	// Entity errors
	ErrInvalidCar           = errors.New("domain: invalid car")
	ErrInvalidUser          = errors.New("domain: invalid user")
	ErrInvalidContract      = errors.New("domain: invalid contract")
	ErrInvalidBookingType   = errors.New("domain: invalid booking type")
	ErrInvalidTransition    = errors.New("domain: invalid status transition")
	ErrCarNotAvailable      = errors.New("domain: car is not available")
	ErrContractNotActive    = errors.New("domain: contract is not active")
	ErrCannotCancel         = errors.New("domain: contract cannot be cancelled")
	ErrInsufficientFunds    = errors.New("domain: insufficient wallet balance")
	ErrCancelReasonRequired = errors.New("domain: cancellation reason is required")
)
