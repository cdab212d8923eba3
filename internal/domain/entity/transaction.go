package entity

import (
	"fmt"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/realty-processor/internal/domain/error"
	tport "github.com/amirhossein-jamali/realty-processor/internal/domain/port/core"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxPropertyCodeLen = 64

// Transaction is the aggregate root for a real-estate sale. It owns its
// parties and commissions and is the sole authority on whether a mutation
// is legal: status changes go through the transition table, edits are
// rejected once the transaction is locked, and approval requires the
// minimum roster.
type Transaction struct {
	ID           uuid.UUID
	PropertyCode string
	SaleValue    decimal.Decimal
	Status       TransactionStatus
	Parties      []Party
	Commissions  []Commission
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewTransaction creates a new transaction with status Created. The sale
// value must be positive and is normalized to two decimal places.
func NewTransaction(propertyCode string, saleValue decimal.Decimal, timeProvider tport.TimeProvider) (*Transaction, error) {
	if err := validatePropertyCode(propertyCode); err != nil {
		return nil, err
	}
	if !saleValue.IsPositive() {
		return nil, fmt.Errorf("%w: sale value must be greater than zero", errs.ErrValidation)
	}

	now := timeProvider.Now()
	return &Transaction{
		ID:           uuid.New(),
		PropertyCode: propertyCode,
		SaleValue:    RoundMoney(saleValue),
		Status:       StatusCreated,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Editable reports whether the transaction still accepts edits to its sale
// value and party roster. Approval locks the transaction; Rejected does not.
func (t *Transaction) Editable() bool {
	switch t.Status {
	case StatusApproved, StatusCompleted, StatusCanceled:
		return false
	}
	return true
}

// UpdateSaleValue replaces the sale value. Fails with OperationBlocked on a
// locked transaction and with a validation error for non-positive values.
func (t *Transaction) UpdateSaleValue(newValue decimal.Decimal, timeProvider tport.TimeProvider) error {
	if !t.Editable() {
		return fmt.Errorf("%w: sale value cannot change after approval", errs.ErrOperationBlocked)
	}
	if !newValue.IsPositive() {
		return fmt.Errorf("%w: sale value must be greater than zero", errs.ErrValidation)
	}
	t.SaleValue = RoundMoney(newValue)
	t.UpdatedAt = timeProvider.Now()
	return nil
}

// UpdatePropertyCode replaces the property code under the same lock rule
// as the sale value.
func (t *Transaction) UpdatePropertyCode(code string, timeProvider tport.TimeProvider) error {
	if !t.Editable() {
		return fmt.Errorf("%w: property code cannot change after approval", errs.ErrOperationBlocked)
	}
	if err := validatePropertyCode(code); err != nil {
		return err
	}
	t.PropertyCode = code
	t.UpdatedAt = timeProvider.Now()
	return nil
}

// AddParty attaches a party to the roster while the transaction is editable
func (t *Transaction) AddParty(party Party, timeProvider tport.TimeProvider) error {
	if !t.Editable() {
		return fmt.Errorf("%w: parties cannot change after approval", errs.ErrOperationBlocked)
	}
	t.Parties = append(t.Parties, party)
	t.UpdatedAt = timeProvider.Now()
	return nil
}

// RemoveParty detaches a party from the roster under the same lock rule
func (t *Transaction) RemoveParty(partyID uuid.UUID, timeProvider tport.TimeProvider) error {
	if !t.Editable() {
		return fmt.Errorf("%w: parties cannot change after approval", errs.ErrOperationBlocked)
	}
	for i, p := range t.Parties {
		if p.ID == partyID {
			t.Parties = append(t.Parties[:i], t.Parties[i+1:]...)
			t.UpdatedAt = timeProvider.Now()
			return nil
		}
	}
	return errs.ErrPartyNotFound
}

// RoleCounts groups the attached parties by role
func (t *Transaction) RoleCounts() RoleCounts {
	counts := make(RoleCounts, 3)
	for _, p := range t.Parties {
		counts[p.Role]++
	}
	return counts
}

// TransitionStatus moves the transaction to a new status. The edge must be
// present in the transition table; the roster gate for approval is run by
// the caller against the persisted roster before committing the change.
func (t *Transaction) TransitionStatus(newStatus TransactionStatus, timeProvider tport.TimeProvider) error {
	if !CanTransition(t.Status, newStatus) {
		return errs.NewTransitionError(string(t.Status), string(newStatus))
	}
	t.Status = newStatus
	t.UpdatedAt = timeProvider.Now()
	return nil
}

// Approve transitions to Approved after verifying the in-memory roster.
// It requires at least one buyer, one seller and one broker.
func (t *Transaction) Approve(timeProvider tport.TimeProvider) error {
	if !CanTransition(t.Status, StatusApproved) {
		return errs.NewTransitionError(string(t.Status), string(StatusApproved))
	}
	if err := CheckApprovalRoster(t.RoleCounts()); err != nil {
		return err
	}
	return t.TransitionStatus(StatusApproved, timeProvider)
}

// AddCommission creates a commission from the current sale value and
// appends it to the aggregate. The computed amount stays frozen even if
// the sale value changes afterwards.
func (t *Transaction) AddCommission(percentage decimal.Decimal, timeProvider tport.TimeProvider) (*Commission, error) {
	commission, err := NewCommission(t.ID, percentage, t.SaleValue)
	if err != nil {
		return nil, err
	}
	t.Commissions = append(t.Commissions, *commission)
	t.UpdatedAt = timeProvider.Now()
	return commission, nil
}

func validatePropertyCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" || len(code) > maxPropertyCodeLen {
		return fmt.Errorf("%w: property code must have between 1 and %d characters", errs.ErrValidation, maxPropertyCodeLen)
	}
	return nil
}
