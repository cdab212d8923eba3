package commission

import (
	"context"

	"github.com/amirhossein-jamali/realty-processor/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/realty-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/realty-processor/internal/domain/port/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UseCase manages commissions: creation computes the amount from the sale
// value at that moment and freezes it; payment is idempotent.
type UseCase struct {
	commissionRepo  persistence.CommissionRepository
	transactionRepo persistence.TransactionRepository
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
}

// NewUseCase creates a new commission use case
func NewUseCase(
	commissionRepo persistence.CommissionRepository,
	transactionRepo persistence.TransactionRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *UseCase {
	return &UseCase{
		commissionRepo:  commissionRepo,
		transactionRepo: transactionRepo,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Create computes and stores a commission for a transaction
func (u *UseCase) Create(ctx context.Context, transactionID uuid.UUID, percentage decimal.Decimal) (*entity.Commission, error) {
	transaction, err := u.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	commission, err := transaction.AddCommission(percentage, u.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := u.commissionRepo.Create(ctx, commission); err != nil {
		u.logger.Error("Failed to create commission", map[string]any{
			"transaction_id": transactionID.String(),
			"percentage":     percentage.String(),
			"error":          err.Error(),
		})
		return nil, err
	}

	u.logger.Info("Commission created", map[string]any{
		"commission_id":  commission.ID.String(),
		"transaction_id": transactionID.String(),
		"percentage":     commission.Percentage.String(),
		"amount":         commission.Amount.String(),
	})
	return commission, nil
}

// ListByTransaction returns the commissions of a transaction
func (u *UseCase) ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]entity.Commission, error) {
	return u.commissionRepo.ListByTransaction(ctx, transactionID)
}

// Pay marks a commission as paid. Paying an already-paid commission
// returns the unchanged commission without touching storage.
func (u *UseCase) Pay(ctx context.Context, commissionID uuid.UUID) (*entity.Commission, error) {
	commission, err := u.commissionRepo.GetByID(ctx, commissionID)
	if err != nil {
		return nil, err
	}

	if !commission.Pay() {
		u.logger.Debug("Commission already paid", map[string]any{
			"commission_id": commissionID.String(),
		})
		return commission, nil
	}

	if err := u.commissionRepo.MarkPaid(ctx, commissionID); err != nil {
		u.logger.Error("Failed to mark commission paid", map[string]any{
			"commission_id": commissionID.String(),
			"error":         err.Error(),
		})
		return nil, err
	}

	u.logger.Info("Commission paid", map[string]any{
		"commission_id":  commissionID.String(),
		"transaction_id": commission.TransactionID.String(),
		"amount":         commission.Amount.String(),
	})
	return commission, nil
}
