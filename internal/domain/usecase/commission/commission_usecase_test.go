package commission

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/realty-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/realty-processor/internal/domain/error"
	"github.com/amirhossein-jamali/realty-processor/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/realty-processor/internal/testutil"
)

type useCaseFixture struct {
	useCase         *UseCase
	commissionRepo  *testutil.CommissionRepo
	transactionRepo *testutil.TransactionRepo
	timeProvider    *testutil.FixedTimeProvider
}

func newUseCaseFixture(t *testing.T) *useCaseFixture {
	t.Helper()

	commissionRepo := testutil.NewCommissionRepo()
	transactionRepo := testutil.NewTransactionRepo()
	timeProvider := testutil.NewFixedTimeProvider(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))

	return &useCaseFixture{
		useCase:         NewUseCase(commissionRepo, transactionRepo, timeProvider, logger.NewNoopLogger()),
		commissionRepo:  commissionRepo,
		transactionRepo: transactionRepo,
		timeProvider:    timeProvider,
	}
}

func (f *useCaseFixture) seedTransaction(t *testing.T, saleValue decimal.Decimal) *entity.Transaction {
	t.Helper()

	transaction, err := entity.NewTransaction("PROP-001", saleValue, f.timeProvider)
	require.NoError(t, err)
	require.NoError(t, f.transactionRepo.Create(context.Background(), transaction))
	return transaction
}

func TestCommissionCreate(t *testing.T) {
	t.Run("computes the amount from the current sale value", func(t *testing.T) {
		f := newUseCaseFixture(t)
		transaction := f.seedTransaction(t, decimal.NewFromInt(500000))

		commission, err := f.useCase.Create(context.Background(), transaction.ID, decimal.RequireFromString("0.05"))

		require.NoError(t, err)
		assert.Equal(t, transaction.ID, commission.TransactionID)
		assert.Equal(t, "25000.00", commission.Amount.StringFixed(2))
		assert.False(t, commission.Paid)

		stored, err := f.commissionRepo.GetByID(context.Background(), commission.ID)
		require.NoError(t, err)
		assert.Equal(t, "25000.00", stored.Amount.StringFixed(2))
	})

	t.Run("rounds the amount to cents", func(t *testing.T) {
		f := newUseCaseFixture(t)
		transaction := f.seedTransaction(t, decimal.RequireFromString("333.33"))

		commission, err := f.useCase.Create(context.Background(), transaction.ID, decimal.RequireFromString("0.1"))

		require.NoError(t, err)
		assert.Equal(t, "33.33", commission.Amount.StringFixed(2))
	})

	t.Run("rejects a percentage outside the unit interval", func(t *testing.T) {
		f := newUseCaseFixture(t)
		transaction := f.seedTransaction(t, decimal.NewFromInt(500000))

		for _, percentage := range []string{"-0.01", "1.01"} {
			_, err := f.useCase.Create(context.Background(), transaction.ID, decimal.RequireFromString(percentage))
			assert.ErrorIs(t, err, errs.ErrValidation)
		}
		assert.Equal(t, 0, f.commissionRepo.Count())
	})

	t.Run("returns not found for an unknown transaction", func(t *testing.T) {
		f := newUseCaseFixture(t)

		_, err := f.useCase.Create(context.Background(), uuid.New(), decimal.RequireFromString("0.05"))

		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})
}

func TestCommissionListByTransaction(t *testing.T) {
	f := newUseCaseFixture(t)
	transaction := f.seedTransaction(t, decimal.NewFromInt(500000))
	other := f.seedTransaction(t, decimal.NewFromInt(200000))

	_, err := f.useCase.Create(context.Background(), transaction.ID, decimal.RequireFromString("0.05"))
	require.NoError(t, err)
	_, err = f.useCase.Create(context.Background(), transaction.ID, decimal.RequireFromString("0.02"))
	require.NoError(t, err)
	_, err = f.useCase.Create(context.Background(), other.ID, decimal.RequireFromString("0.03"))
	require.NoError(t, err)

	commissions, err := f.useCase.ListByTransaction(context.Background(), transaction.ID)

	require.NoError(t, err)
	assert.Len(t, commissions, 2)
	for _, commission := range commissions {
		assert.Equal(t, transaction.ID, commission.TransactionID)
	}
}

func TestCommissionPay(t *testing.T) {
	t.Run("marks an unpaid commission as paid", func(t *testing.T) {
		f := newUseCaseFixture(t)
		transaction := f.seedTransaction(t, decimal.NewFromInt(500000))
		created, err := f.useCase.Create(context.Background(), transaction.ID, decimal.RequireFromString("0.05"))
		require.NoError(t, err)

		commission, err := f.useCase.Pay(context.Background(), created.ID)

		require.NoError(t, err)
		assert.True(t, commission.Paid)

		stored, err := f.commissionRepo.GetByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.True(t, stored.Paid)
	})

	t.Run("paying twice is a no-op", func(t *testing.T) {
		f := newUseCaseFixture(t)
		transaction := f.seedTransaction(t, decimal.NewFromInt(500000))
		created, err := f.useCase.Create(context.Background(), transaction.ID, decimal.RequireFromString("0.05"))
		require.NoError(t, err)

		first, err := f.useCase.Pay(context.Background(), created.ID)
		require.NoError(t, err)
		require.True(t, first.Paid)

		second, err := f.useCase.Pay(context.Background(), created.ID)

		require.NoError(t, err)
		assert.True(t, second.Paid)
		assert.Equal(t, first.Amount.StringFixed(2), second.Amount.StringFixed(2))
		assert.Equal(t, 1, f.commissionRepo.MarkPaidCalls)
	})

	t.Run("returns not found for an unknown commission", func(t *testing.T) {
		f := newUseCaseFixture(t)

		_, err := f.useCase.Pay(context.Background(), uuid.New())

		assert.ErrorIs(t, err, errs.ErrCommissionNotFound)
	})
}
