package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/realty-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/realty-processor/internal/domain/error"
	"github.com/amirhossein-jamali/realty-processor/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/realty-processor/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/realty-processor/internal/testutil"
)

type serviceFixture struct {
	service         *Service
	transactionRepo *testutil.TransactionRepo
	partyRepo       *testutil.PartyRepo
	commissionRepo  *testutil.CommissionRepo
	uow             *testutil.UnitOfWork
	timeProvider    *testutil.FixedTimeProvider
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	transactionRepo := testutil.NewTransactionRepo()
	partyRepo := testutil.NewPartyRepo()
	commissionRepo := testutil.NewCommissionRepo()
	uow := testutil.NewUnitOfWork(transactionRepo, partyRepo, commissionRepo)
	timeProvider := testutil.NewFixedTimeProvider(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))

	return &serviceFixture{
		service:         NewService(transactionRepo, partyRepo, uow, timeProvider, logger.NewNoopLogger()),
		transactionRepo: transactionRepo,
		partyRepo:       partyRepo,
		commissionRepo:  commissionRepo,
		uow:             uow,
		timeProvider:    timeProvider,
	}
}

func (f *serviceFixture) seedTransaction(t *testing.T, status entity.TransactionStatus) *entity.Transaction {
	t.Helper()

	transaction, err := entity.NewTransaction("PROP-001", decimal.NewFromInt(500000), f.timeProvider)
	require.NoError(t, err)
	transaction.Status = status
	require.NoError(t, f.transactionRepo.Create(context.Background(), transaction))
	return transaction
}

func (f *serviceFixture) seedParty(t *testing.T, transactionID uuid.UUID, role entity.PartyRole) *entity.Party {
	t.Helper()

	party, err := entity.NewParty(transactionID, "Party "+string(role), "12345678901", role, "")
	require.NoError(t, err)
	require.NoError(t, f.partyRepo.Create(context.Background(), party))
	return party
}

func TestServiceCreate(t *testing.T) {
	t.Run("creates a transaction with status created", func(t *testing.T) {
		f := newServiceFixture(t)

		transaction, err := f.service.Create(context.Background(), "PROP-100", decimal.RequireFromString("350000.559"))

		require.NoError(t, err)
		assert.Equal(t, entity.StatusCreated, transaction.Status)
		assert.Equal(t, "PROP-100", transaction.PropertyCode)
		assert.Equal(t, "350000.56", transaction.SaleValue.StringFixed(2))
		assert.Equal(t, f.timeProvider.Current, transaction.CreatedAt)

		stored, err := f.transactionRepo.GetByID(context.Background(), transaction.ID)
		require.NoError(t, err)
		assert.Equal(t, transaction.ID, stored.ID)
	})

	t.Run("rejects invalid input without touching storage", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.service.Create(context.Background(), "", decimal.NewFromInt(100000))

		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.Equal(t, 0, f.transactionRepo.Count())
	})

	t.Run("propagates repository failure", func(t *testing.T) {
		f := newServiceFixture(t)
		f.transactionRepo.Err = errs.ErrDatabaseConnection

		_, err := f.service.Create(context.Background(), "PROP-100", decimal.NewFromInt(100000))

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})
}

func TestServiceGet(t *testing.T) {
	t.Run("returns stored transaction", func(t *testing.T) {
		f := newServiceFixture(t)
		seeded := f.seedTransaction(t, entity.StatusCreated)

		transaction, err := f.service.Get(context.Background(), seeded.ID)

		require.NoError(t, err)
		assert.Equal(t, seeded.ID, transaction.ID)
		assert.Equal(t, "PROP-001", transaction.PropertyCode)
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.service.Get(context.Background(), uuid.New())

		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})
}

func TestServiceList(t *testing.T) {
	seed := func(t *testing.T, f *serviceFixture, n int) {
		t.Helper()
		for i := 0; i < n; i++ {
			_, err := f.service.Create(context.Background(), "PROP-001", decimal.NewFromInt(100000))
			require.NoError(t, err)
			f.timeProvider.Advance(time.Minute)
		}
	}

	t.Run("defaults limit to 50", func(t *testing.T) {
		f := newServiceFixture(t)
		seed(t, f, 60)

		transactions, total, err := f.service.List(context.Background(), persistence.TransactionFilter{})

		require.NoError(t, err)
		assert.Equal(t, int64(60), total)
		assert.Len(t, transactions, 50)
	})

	t.Run("caps limit at 100", func(t *testing.T) {
		f := newServiceFixture(t)
		seed(t, f, 3)

		_, _, err := f.service.List(context.Background(), persistence.TransactionFilter{Limit: 500})
		require.NoError(t, err)
	})

	t.Run("normalizes negative offset", func(t *testing.T) {
		f := newServiceFixture(t)
		seed(t, f, 2)

		transactions, total, err := f.service.List(context.Background(), persistence.TransactionFilter{Offset: -10})

		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, transactions, 2)
	})

	t.Run("orders by creation timestamp descending", func(t *testing.T) {
		f := newServiceFixture(t)
		seed(t, f, 3)

		transactions, _, err := f.service.List(context.Background(), persistence.TransactionFilter{})

		require.NoError(t, err)
		require.Len(t, transactions, 3)
		assert.True(t, transactions[0].CreatedAt.After(transactions[1].CreatedAt))
		assert.True(t, transactions[1].CreatedAt.After(transactions[2].CreatedAt))
	})

	t.Run("filters by status", func(t *testing.T) {
		f := newServiceFixture(t)
		f.seedTransaction(t, entity.StatusCreated)
		f.seedTransaction(t, entity.StatusApproved)

		status := entity.StatusApproved
		transactions, total, err := f.service.List(context.Background(), persistence.TransactionFilter{Status: &status})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, transactions, 1)
		assert.Equal(t, entity.StatusApproved, transactions[0].Status)
	})

	t.Run("date range start includes and end excludes", func(t *testing.T) {
		f := newServiceFixture(t)
		first, err := f.service.Create(context.Background(), "PROP-001", decimal.NewFromInt(100000))
		require.NoError(t, err)
		f.timeProvider.Advance(time.Hour)
		second, err := f.service.Create(context.Background(), "PROP-002", decimal.NewFromInt(100000))
		require.NoError(t, err)

		from := first.CreatedAt
		to := second.CreatedAt
		transactions, total, err := f.service.List(context.Background(), persistence.TransactionFilter{
			CreatedFrom: &from,
			CreatedTo:   &to,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, transactions, 1)
		assert.Equal(t, first.ID, transactions[0].ID)
	})

	t.Run("rejects inverted date range", func(t *testing.T) {
		f := newServiceFixture(t)
		from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		to := from.Add(-time.Hour)

		_, _, err := f.service.List(context.Background(), persistence.TransactionFilter{
			CreatedFrom: &from,
			CreatedTo:   &to,
		})

		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})
}

func TestServiceUpdate(t *testing.T) {
	t.Run("updates property code and sale value", func(t *testing.T) {
		f := newServiceFixture(t)
		seeded := f.seedTransaction(t, entity.StatusUnderReview)
		f.timeProvider.Advance(time.Hour)

		transaction, err := f.service.Update(context.Background(), seeded.ID, "PROP-099", decimal.RequireFromString("750000.005"))

		require.NoError(t, err)
		assert.Equal(t, "PROP-099", transaction.PropertyCode)
		assert.Equal(t, "750000.01", transaction.SaleValue.StringFixed(2))
		assert.True(t, transaction.UpdatedAt.After(seeded.UpdatedAt))

		stored, err := f.transactionRepo.GetByID(context.Background(), seeded.ID)
		require.NoError(t, err)
		assert.Equal(t, "PROP-099", stored.PropertyCode)
	})

	t.Run("rejects edits once approved", func(t *testing.T) {
		f := newServiceFixture(t)
		seeded := f.seedTransaction(t, entity.StatusApproved)

		_, err := f.service.Update(context.Background(), seeded.ID, "PROP-099", decimal.NewFromInt(900000))

		assert.ErrorIs(t, err, errs.ErrOperationBlocked)

		stored, getErr := f.transactionRepo.GetByID(context.Background(), seeded.ID)
		require.NoError(t, getErr)
		assert.Equal(t, "PROP-001", stored.PropertyCode)
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.service.Update(context.Background(), uuid.New(), "PROP-099", decimal.NewFromInt(900000))

		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})
}

func TestServiceChangeStatus(t *testing.T) {
	t.Run("moves along a permitted edge", func(t *testing.T) {
		f := newServiceFixture(t)
		seeded := f.seedTransaction(t, entity.StatusCreated)
		f.timeProvider.Advance(time.Hour)

		transaction, err := f.service.ChangeStatus(context.Background(), seeded.ID, entity.StatusUnderReview)

		require.NoError(t, err)
		assert.Equal(t, entity.StatusUnderReview, transaction.Status)
		assert.True(t, transaction.UpdatedAt.After(seeded.UpdatedAt))

		stored, err := f.transactionRepo.GetByID(context.Background(), seeded.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusUnderReview, stored.Status)
	})

	t.Run("rejects a forbidden edge with a transition error", func(t *testing.T) {
		f := newServiceFixture(t)
		seeded := f.seedTransaction(t, entity.StatusCreated)

		_, err := f.service.ChangeStatus(context.Background(), seeded.ID, entity.StatusCompleted)

		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		var transitionErr *errs.TransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, "created", transitionErr.From)
		assert.Equal(t, "completed", transitionErr.To)

		stored, getErr := f.transactionRepo.GetByID(context.Background(), seeded.ID)
		require.NoError(t, getErr)
		assert.Equal(t, entity.StatusCreated, stored.Status)
	})

	t.Run("approval requires a full roster", func(t *testing.T) {
		f := newServiceFixture(t)
		seeded := f.seedTransaction(t, entity.StatusUnderReview)
		f.seedParty(t, seeded.ID, entity.RoleBuyer)
		f.seedParty(t, seeded.ID, entity.RoleSeller)

		_, err := f.service.ChangeStatus(context.Background(), seeded.ID, entity.StatusApproved)

		assert.ErrorIs(t, err, errs.ErrUnmetPartyRequirement)

		stored, getErr := f.transactionRepo.GetByID(context.Background(), seeded.ID)
		require.NoError(t, getErr)
		assert.Equal(t, entity.StatusUnderReview, stored.Status)
	})

	t.Run("approves when buyer, seller and broker are present", func(t *testing.T) {
		f := newServiceFixture(t)
		seeded := f.seedTransaction(t, entity.StatusUnderReview)
		f.seedParty(t, seeded.ID, entity.RoleBuyer)
		f.seedParty(t, seeded.ID, entity.RoleSeller)
		f.seedParty(t, seeded.ID, entity.RoleBroker)

		transaction, err := f.service.ChangeStatus(context.Background(), seeded.ID, entity.StatusApproved)

		require.NoError(t, err)
		assert.Equal(t, entity.StatusApproved, transaction.Status)
	})

	t.Run("roster gate only guards the approved target", func(t *testing.T) {
		f := newServiceFixture(t)
		seeded := f.seedTransaction(t, entity.StatusUnderReview)

		transaction, err := f.service.ChangeStatus(context.Background(), seeded.ID, entity.StatusRejected)

		require.NoError(t, err)
		assert.Equal(t, entity.StatusRejected, transaction.Status)
	})

	t.Run("terminal statuses accept no transitions", func(t *testing.T) {
		f := newServiceFixture(t)
		seeded := f.seedTransaction(t, entity.StatusCompleted)

		_, err := f.service.ChangeStatus(context.Background(), seeded.ID, entity.StatusCanceled)

		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.service.ChangeStatus(context.Background(), uuid.New(), entity.StatusUnderReview)

		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})
}

func TestServiceDelete(t *testing.T) {
	t.Run("removes the transaction with its parties and commissions", func(t *testing.T) {
		f := newServiceFixture(t)
		seeded := f.seedTransaction(t, entity.StatusApproved)
		f.seedParty(t, seeded.ID, entity.RoleBuyer)
		f.seedParty(t, seeded.ID, entity.RoleSeller)
		commission, err := seeded.AddCommission(decimal.RequireFromString("0.05"), f.timeProvider)
		require.NoError(t, err)
		require.NoError(t, f.commissionRepo.Create(context.Background(), commission))

		err = f.service.Delete(context.Background(), seeded.ID)

		require.NoError(t, err)
		assert.Equal(t, 0, f.transactionRepo.Count())
		assert.Equal(t, 0, f.partyRepo.Count())
		assert.Equal(t, 0, f.commissionRepo.Count())
		assert.Equal(t, 1, f.uow.Begun)
		assert.Equal(t, 1, f.uow.Committed)
		assert.Equal(t, 0, f.uow.RolledBack)
	})

	t.Run("leaves other transactions untouched", func(t *testing.T) {
		f := newServiceFixture(t)
		doomed := f.seedTransaction(t, entity.StatusCreated)
		survivor := f.seedTransaction(t, entity.StatusCreated)
		f.seedParty(t, survivor.ID, entity.RoleBroker)

		require.NoError(t, f.service.Delete(context.Background(), doomed.ID))

		assert.Equal(t, 1, f.transactionRepo.Count())
		assert.Equal(t, 1, f.partyRepo.Count())
		_, err := f.transactionRepo.GetByID(context.Background(), survivor.ID)
		assert.NoError(t, err)
	})

	t.Run("returns not found without opening a unit of work", func(t *testing.T) {
		f := newServiceFixture(t)

		err := f.service.Delete(context.Background(), uuid.New())

		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
		assert.Equal(t, 0, f.uow.Begun)
	})

	t.Run("rolls back when a delete inside the unit of work fails", func(t *testing.T) {
		f := newServiceFixture(t)
		seeded := f.seedTransaction(t, entity.StatusCreated)
		f.partyRepo.Err = errs.ErrDatabaseConnection

		err := f.service.Delete(context.Background(), seeded.ID)

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		assert.Equal(t, 1, f.uow.Begun)
		assert.Equal(t, 0, f.uow.Committed)
		assert.Equal(t, 1, f.uow.RolledBack)
		assert.Equal(t, 1, f.transactionRepo.Count())
	})

	t.Run("rolls back when commit fails", func(t *testing.T) {
		f := newServiceFixture(t)
		seeded := f.seedTransaction(t, entity.StatusCreated)
		f.uow.CommitErr = errors.New("connection reset")

		err := f.service.Delete(context.Background(), seeded.ID)

		assert.Error(t, err)
		assert.Equal(t, 1, f.uow.RolledBack)
	})
}
