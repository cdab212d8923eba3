package entity

import (
	"fmt"

	errs "github.com/amirhossein-jamali/realty-processor/internal/domain/error"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Commission represents a sales commission owed on a transaction. The
// calculated amount is frozen at creation time: a later change to the
// transaction's sale value does not recompute it.
type Commission struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	Percentage    decimal.Decimal
	Amount        decimal.Decimal
	Paid          bool
}

// ComputeCommission calculates a commission amount from a sale value and a
// percentage expressed as a fraction (0.05 = 5%). The percentage must be
// within [0, 1]; the result carries exactly two decimal digits.
func ComputeCommission(saleValue, percentage decimal.Decimal) (decimal.Decimal, error) {
	if percentage.IsNegative() || percentage.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("%w: percentage must be between 0 and 1", errs.ErrValidation)
	}
	return RoundMoney(saleValue.Mul(percentage)), nil
}

// NewCommission creates a commission for a transaction, computing the
// amount from the sale value at the time of creation.
func NewCommission(transactionID uuid.UUID, percentage, saleValue decimal.Decimal) (*Commission, error) {
	amount, err := ComputeCommission(saleValue, percentage)
	if err != nil {
		return nil, err
	}

	return &Commission{
		ID:            uuid.New(),
		TransactionID: transactionID,
		Percentage:    percentage,
		Amount:        amount,
		Paid:          false,
	}, nil
}

// Pay marks the commission as paid. Paying an already-paid commission is a
// no-op success, not an error. It returns true when the call changed state.
func (c *Commission) Pay() bool {
	if c.Paid {
		return false
	}
	c.Paid = true
	return true
}
