package entity

import (
	"strings"
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/realty-processor/internal/domain/error"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestTransaction(t *testing.T) *Transaction {
	t.Helper()
	tx, err := NewTransaction("PROP-001", decimal.NewFromInt(500000), newFixedTimeProvider(testTime))
	require.NoError(t, err)
	return tx
}

func mustParty(t *testing.T, transactionID uuid.UUID, role PartyRole) Party {
	t.Helper()
	party, err := NewParty(transactionID, "Party "+string(role), "12345678901", role, "")
	require.NoError(t, err)
	return *party
}

func TestNewTransaction(t *testing.T) {
	tp := newFixedTimeProvider(testTime)

	t.Run("Valid transaction", func(t *testing.T) {
		tx, err := NewTransaction("PROP-001", decimal.RequireFromString("500000.559"), tp)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, tx.ID)
		assert.Equal(t, "PROP-001", tx.PropertyCode)
		assert.Equal(t, "500000.56", tx.SaleValue.StringFixed(MoneyDecimalPlaces))
		assert.Equal(t, StatusCreated, tx.Status)
		assert.Equal(t, testTime, tx.CreatedAt)
		assert.Equal(t, testTime, tx.UpdatedAt)
		assert.Empty(t, tx.Parties)
		assert.Empty(t, tx.Commissions)
	})

	t.Run("Empty property code", func(t *testing.T) {
		_, err := NewTransaction("", decimal.NewFromInt(1000), tp)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("Property code too long", func(t *testing.T) {
		_, err := NewTransaction(strings.Repeat("x", 65), decimal.NewFromInt(1000), tp)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("Zero sale value", func(t *testing.T) {
		_, err := NewTransaction("PROP-001", decimal.Zero, tp)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("Negative sale value", func(t *testing.T) {
		_, err := NewTransaction("PROP-001", decimal.NewFromInt(-10), tp)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestTransactionEditable(t *testing.T) {
	testCases := []struct {
		status   TransactionStatus
		editable bool
	}{
		{StatusCreated, true},
		{StatusUnderReview, true},
		{StatusRejected, true},
		{StatusApproved, false},
		{StatusCompleted, false},
		{StatusCanceled, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.status), func(t *testing.T) {
			tx := newTestTransaction(t)
			tx.Status = tc.status
			assert.Equal(t, tc.editable, tx.Editable())
		})
	}
}

func TestUpdateSaleValue(t *testing.T) {
	later := newFixedTimeProvider(testTime.Add(time.Hour))

	t.Run("Updates and rounds while editable", func(t *testing.T) {
		tx := newTestTransaction(t)

		err := tx.UpdateSaleValue(decimal.RequireFromString("600000.005"), later)

		require.NoError(t, err)
		assert.Equal(t, "600000.01", tx.SaleValue.StringFixed(MoneyDecimalPlaces))
		assert.Equal(t, testTime.Add(time.Hour), tx.UpdatedAt)
	})

	t.Run("Blocked after approval", func(t *testing.T) {
		tx := newTestTransaction(t)
		tx.Status = StatusApproved

		err := tx.UpdateSaleValue(decimal.NewFromInt(600000), later)

		assert.ErrorIs(t, err, errs.ErrOperationBlocked)
		assert.Equal(t, "500000.00", tx.SaleValue.StringFixed(MoneyDecimalPlaces))
	})

	t.Run("Rejects non-positive value", func(t *testing.T) {
		tx := newTestTransaction(t)
		err := tx.UpdateSaleValue(decimal.Zero, later)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestUpdatePropertyCode(t *testing.T) {
	later := newFixedTimeProvider(testTime.Add(time.Hour))

	t.Run("Updates while editable", func(t *testing.T) {
		tx := newTestTransaction(t)

		err := tx.UpdatePropertyCode("PROP-002", later)

		require.NoError(t, err)
		assert.Equal(t, "PROP-002", tx.PropertyCode)
	})

	t.Run("Blocked on canceled transaction", func(t *testing.T) {
		tx := newTestTransaction(t)
		tx.Status = StatusCanceled

		err := tx.UpdatePropertyCode("PROP-002", later)

		assert.ErrorIs(t, err, errs.ErrOperationBlocked)
		assert.Equal(t, "PROP-001", tx.PropertyCode)
	})
}

func TestAddRemoveParty(t *testing.T) {
	tp := newFixedTimeProvider(testTime)

	t.Run("Add and remove while editable", func(t *testing.T) {
		tx := newTestTransaction(t)
		buyer := mustParty(t, tx.ID, RoleBuyer)

		require.NoError(t, tx.AddParty(buyer, tp))
		assert.Len(t, tx.Parties, 1)

		require.NoError(t, tx.RemoveParty(buyer.ID, tp))
		assert.Empty(t, tx.Parties)
	})

	t.Run("Add blocked after approval", func(t *testing.T) {
		tx := newTestTransaction(t)
		tx.Status = StatusApproved

		err := tx.AddParty(mustParty(t, tx.ID, RoleBuyer), tp)
		assert.ErrorIs(t, err, errs.ErrOperationBlocked)
	})

	t.Run("Remove blocked after completion", func(t *testing.T) {
		tx := newTestTransaction(t)
		buyer := mustParty(t, tx.ID, RoleBuyer)
		require.NoError(t, tx.AddParty(buyer, tp))
		tx.Status = StatusCompleted

		err := tx.RemoveParty(buyer.ID, tp)
		assert.ErrorIs(t, err, errs.ErrOperationBlocked)
	})

	t.Run("Remove unknown party", func(t *testing.T) {
		tx := newTestTransaction(t)
		err := tx.RemoveParty(uuid.New(), tp)
		assert.ErrorIs(t, err, errs.ErrPartyNotFound)
	})
}

func TestRoleCounts(t *testing.T) {
	tp := newFixedTimeProvider(testTime)
	tx := newTestTransaction(t)

	require.NoError(t, tx.AddParty(mustParty(t, tx.ID, RoleBuyer), tp))
	require.NoError(t, tx.AddParty(mustParty(t, tx.ID, RoleBuyer), tp))
	require.NoError(t, tx.AddParty(mustParty(t, tx.ID, RoleSeller), tp))

	counts := tx.RoleCounts()
	assert.Equal(t, 2, counts[RoleBuyer])
	assert.Equal(t, 1, counts[RoleSeller])
	assert.Equal(t, 0, counts[RoleBroker])
}

func TestTransitionStatus(t *testing.T) {
	later := newFixedTimeProvider(testTime.Add(time.Hour))

	t.Run("Allowed transition", func(t *testing.T) {
		tx := newTestTransaction(t)

		err := tx.TransitionStatus(StatusUnderReview, later)

		require.NoError(t, err)
		assert.Equal(t, StatusUnderReview, tx.Status)
		assert.Equal(t, testTime.Add(time.Hour), tx.UpdatedAt)
	})

	t.Run("Disallowed transition keeps status", func(t *testing.T) {
		tx := newTestTransaction(t)

		err := tx.TransitionStatus(StatusCompleted, later)

		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, StatusCreated, tx.Status)
		assert.Equal(t, testTime, tx.UpdatedAt)

		var transitionErr *errs.TransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, "created", transitionErr.From)
		assert.Equal(t, "completed", transitionErr.To)
	})

	t.Run("Terminal status rejects everything", func(t *testing.T) {
		tx := newTestTransaction(t)
		tx.Status = StatusCanceled

		for _, to := range AllStatuses() {
			assert.ErrorIs(t, tx.TransitionStatus(to, later), errs.ErrInvalidTransition)
		}
	})
}

func TestApprove(t *testing.T) {
	tp := newFixedTimeProvider(testTime)

	t.Run("Approves with full roster", func(t *testing.T) {
		tx := newTestTransaction(t)
		require.NoError(t, tx.AddParty(mustParty(t, tx.ID, RoleBuyer), tp))
		require.NoError(t, tx.AddParty(mustParty(t, tx.ID, RoleSeller), tp))
		require.NoError(t, tx.AddParty(mustParty(t, tx.ID, RoleBroker), tp))
		require.NoError(t, tx.TransitionStatus(StatusUnderReview, tp))

		require.NoError(t, tx.Approve(tp))
		assert.Equal(t, StatusApproved, tx.Status)
	})

	t.Run("Rejects with missing broker", func(t *testing.T) {
		tx := newTestTransaction(t)
		require.NoError(t, tx.AddParty(mustParty(t, tx.ID, RoleBuyer), tp))
		require.NoError(t, tx.AddParty(mustParty(t, tx.ID, RoleSeller), tp))
		require.NoError(t, tx.TransitionStatus(StatusUnderReview, tp))

		err := tx.Approve(tp)

		assert.ErrorIs(t, err, errs.ErrUnmetPartyRequirement)
		assert.Equal(t, StatusUnderReview, tx.Status)
	})

	t.Run("Rejects from wrong status", func(t *testing.T) {
		tx := newTestTransaction(t)
		err := tx.Approve(tp)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestAddCommission(t *testing.T) {
	tp := newFixedTimeProvider(testTime)

	t.Run("Amount computed from current sale value", func(t *testing.T) {
		tx := newTestTransaction(t)

		commission, err := tx.AddCommission(decimal.RequireFromString("0.05"), tp)

		require.NoError(t, err)
		assert.Equal(t, "25000.00", commission.Amount.StringFixed(MoneyDecimalPlaces))
		assert.Equal(t, tx.ID, commission.TransactionID)
		assert.Len(t, tx.Commissions, 1)
	})

	t.Run("Amount frozen after sale value change", func(t *testing.T) {
		tx := newTestTransaction(t)
		commission, err := tx.AddCommission(decimal.RequireFromString("0.05"), tp)
		require.NoError(t, err)

		require.NoError(t, tx.UpdateSaleValue(decimal.NewFromInt(900000), tp))

		assert.Equal(t, "25000.00", tx.Commissions[0].Amount.StringFixed(MoneyDecimalPlaces))
		assert.Equal(t, "25000.00", commission.Amount.StringFixed(MoneyDecimalPlaces))
	})

	t.Run("Invalid percentage", func(t *testing.T) {
		tx := newTestTransaction(t)
		_, err := tx.AddCommission(decimal.RequireFromString("1.01"), tp)
		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.Empty(t, tx.Commissions)
	})
}
