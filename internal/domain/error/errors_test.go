package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"Validation", ErrValidation, 4000},
		{"InvalidRequest", ErrInvalidRequest, 4001},
		{"Unauthorized", ErrUnauthorized, 4010},
		{"NotFound", ErrNotFound, 4040},
		{"TransactionNotFound", ErrTransactionNotFound, 4041},
		{"PartyNotFound", ErrPartyNotFound, 4042},
		{"CommissionNotFound", ErrCommissionNotFound, 4043},
		{"Conflict", ErrConflict, 4090},
		{"InvalidTransition", ErrInvalidTransition, 4220},
		{"UnmetPartyRequirement", ErrUnmetPartyRequirement, 4221},
		{"OperationBlocked", ErrOperationBlocked, 4222},
		{"InternalServer", ErrInternalServer, 5000},
		{"DatabaseConnection", ErrDatabaseConnection, 5000},
		{"UnknownError", errors.New("unknown error"), 5000},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrOperationBlocked), 4222},
		{"TransitionErrorValue", NewTransitionError("created", "completed"), 4220},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestTransitionError(t *testing.T) {
	err := NewTransitionError("approved", "under_review")

	expectedMsg := "transition approved -> under_review not permitted"
	if err.Error() != expectedMsg {
		t.Errorf("TransitionError.Error() = %s, want %s", err.Error(), expectedMsg)
	}

	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("errors.Is(err, ErrInvalidTransition) = false, want true")
	}

	var transitionErr *TransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("errors.As(err, *TransitionError) = false, want true")
	}
	if transitionErr.From != "approved" || transitionErr.To != "under_review" {
		t.Errorf("TransitionError fields = %s -> %s, want approved -> under_review", transitionErr.From, transitionErr.To)
	}

	fields := transitionErr.LogFields()
	if fields["from_status"] != "approved" || fields["to_status"] != "under_review" {
		t.Errorf("LogFields() = %v, missing from/to statuses", fields)
	}
}

func TestErrorClassifiers(t *testing.T) {
	if !IsNotFoundError(ErrTransactionNotFound) || !IsNotFoundError(ErrPartyNotFound) ||
		!IsNotFoundError(ErrCommissionNotFound) || !IsNotFoundError(ErrNotFound) {
		t.Error("IsNotFoundError should accept all not-found sentinels")
	}
	if IsNotFoundError(ErrConflict) {
		t.Error("IsNotFoundError should reject ErrConflict")
	}

	if !IsConflictError(fmt.Errorf("insert failed: %w", ErrConflict)) {
		t.Error("IsConflictError should unwrap ErrConflict")
	}

	if !IsDomainRuleError(ErrInvalidTransition) || !IsDomainRuleError(ErrUnmetPartyRequirement) ||
		!IsDomainRuleError(ErrOperationBlocked) {
		t.Error("IsDomainRuleError should accept all rule sentinels")
	}
	if IsDomainRuleError(ErrValidation) {
		t.Error("IsDomainRuleError should reject ErrValidation")
	}

	if !IsValidationError(ErrValidation) || !IsValidationError(ErrInvalidRequest) {
		t.Error("IsValidationError should accept validation sentinels")
	}
}
