package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidation            = 4000
	CodeInvalidRequest        = 4001
	CodeUnauthorized          = 4010
	CodeNotFound              = 4040
	CodeTransactionNotFound   = 4041
	CodePartyNotFound         = 4042
	CodeCommissionNotFound    = 4043
	CodeConflict              = 4090
	CodeInvalidTransition     = 4220
	CodeUnmetPartyRequirement = 4221
	CodeOperationBlocked      = 4222

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrValidation is returned when an input value is malformed or out of range
	ErrValidation = errors.New("validation failed")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidTransition is returned when the requested status change is not in the transition table
	ErrInvalidTransition = errors.New("status transition not permitted")

	// ErrUnmetPartyRequirement is returned when approval is attempted without the minimum roster
	ErrUnmetPartyRequirement = errors.New("approval requires at least one buyer, one seller and one broker")

	// ErrOperationBlocked is returned when an edit is attempted on a locked transaction
	ErrOperationBlocked = errors.New("transaction is locked for editing")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrPartyNotFound is returned when the requested party doesn't exist
	ErrPartyNotFound = errors.New("party not found")

	// ErrCommissionNotFound is returned when the requested commission doesn't exist
	ErrCommissionNotFound = errors.New("commission not found")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned when a storage uniqueness or integrity constraint is violated
	ErrConflict = errors.New("conflicts with existing data")

	// ErrUnauthorized is returned when the request carries no valid credential
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrPartyNotFound):
		return CodePartyNotFound
	case errors.Is(err, ErrCommissionNotFound):
		return CodeCommissionNotFound
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.Is(err, ErrInvalidTransition):
		return CodeInvalidTransition
	case errors.Is(err, ErrUnmetPartyRequirement):
		return CodeUnmetPartyRequirement
	case errors.Is(err, ErrOperationBlocked):
		return CodeOperationBlocked
	default:
		return CodeInternalServer
	}
}

// TransitionError carries the rejected edge of a status change
type TransitionError struct {
	From string
	To   string
}

// Error implements the error interface
func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition %s -> %s not permitted", e.From, e.To)
}

// Is checks if the target error is an ErrInvalidTransition
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// LogFields returns a map of fields for structured logging
func (e *TransitionError) LogFields() map[string]any {
	return map[string]any{
		"error_type":  "invalid_transition",
		"from_status": e.From,
		"to_status":   e.To,
		"error_code":  CodeInvalidTransition,
	}
}

// NewTransitionError creates a detailed invalid transition error
func NewTransitionError(from, to string) error {
	return &TransitionError{From: from, To: to}
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrPartyNotFound) ||
		errors.Is(err, ErrCommissionNotFound)
}

// IsConflictError checks if the error is a storage conflict error
func IsConflictError(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsDomainRuleError checks if the error is one of the business-rule
// violations that the boundary surfaces as an unprocessable request
func IsDomainRuleError(err error) bool {
	return errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrUnmetPartyRequirement) ||
		errors.Is(err, ErrOperationBlocked)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidRequest)
}
