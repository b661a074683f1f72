package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrPrecondition    = errors.New("precondition failed")
	ErrInvalidPayment  = errors.New("invalid payment")
	ErrPledgeClosed    = errors.New("pledge is closed")
	ErrPledgeNotFound  = errors.New("pledge not found")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrConflict        = errors.New("concurrent modification detected")
	ErrInvalidPledge   = errors.New("invalid pledge")
	ErrLockNotAcquired = errors.New("pledge is locked by another operation")
	ErrRateNotSet      = errors.New("interest rate is not set")
	ErrPrincipalNotSet = errors.New("principal is not set")
	ErrCreatedAtNotSet = errors.New("created date is not set")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodePrecondition    = "PRECONDITION_FAILED"
	ErrCodeInvalidPayment  = "INVALID_PAYMENT"
	ErrCodePledgeClosed    = "PLEDGE_CLOSED"
	ErrCodePledgeNotFound  = "PLEDGE_NOT_FOUND"
	ErrCodePaymentNotFound = "PAYMENT_NOT_FOUND"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeInvalidPledge   = "INVALID_PLEDGE"
	ErrCodeDatabaseError   = "DATABASE_ERROR"
	ErrCodeLockError       = "LOCK_ERROR"
)

// WrapPrecondition reports a missing or invalid numeric input, e.g. a pledge without a rate.
func WrapPrecondition(cause error) *BusinessError {
	return NewBusinessError(
		ErrCodePrecondition,
		"cannot accrue interest without a principal, a rate and a creation date",
		errors.Join(ErrPrecondition, cause),
	)
}

func WrapInvalidPayment(message string) *BusinessError {
	return NewBusinessError(ErrCodeInvalidPayment, message, ErrInvalidPayment)
}

func WrapPaymentExceedsPrincipal(amount, principal string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPayment,
		fmt.Sprintf("Payment amount %s exceeds outstanding principal %s", amount, principal),
		ErrInvalidPayment,
	)
}

func WrapPledgeClosed(pledgeID string) *BusinessError {
	return NewBusinessError(
		ErrCodePledgeClosed,
		fmt.Sprintf("Pledge with ID %s is closed", pledgeID),
		ErrPledgeClosed,
	)
}

func WrapPledgeNotFound(pledgeID string) *BusinessError {
	return NewBusinessError(
		ErrCodePledgeNotFound,
		fmt.Sprintf("Pledge with ID %s not found", pledgeID),
		ErrPledgeNotFound,
	)
}

func WrapPaymentNotFound(paymentID string) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentNotFound,
		fmt.Sprintf("Payment with ID %s not found", paymentID),
		ErrPaymentNotFound,
	)
}

func WrapConflict(pledgeID string, expected, actual int64) *BusinessError {
	return NewBusinessError(
		ErrCodeConflict,
		fmt.Sprintf("Pledge with ID %s was modified concurrently (expected version %d, found %d)", pledgeID, expected, actual),
		ErrConflict,
	)
}

func WrapInvalidPledge(message string) *BusinessError {
	return NewBusinessError(ErrCodeInvalidPledge, message, ErrInvalidPledge)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapLockError(pledgeID string, err error) *BusinessError {
	return NewBusinessError(
		ErrCodeLockError,
		fmt.Sprintf("could not lock pledge %s", pledgeID),
		err,
	)
}

// IsNotFound reports whether err names a missing pledge or payment.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPledgeNotFound) || errors.Is(err, ErrPaymentNotFound)
}

// IsRetryable reports whether the caller may retry with fresh data.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, ErrLockNotAcquired)
}

// IsClientError reports whether err was caused by the request itself.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidPayment) ||
		errors.Is(err, ErrInvalidPledge) ||
		errors.Is(err, ErrPrecondition) ||
		errors.Is(err, ErrPledgeClosed)
}
