package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/realty-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/realty-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/realty-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/realty-processor/internal/infrastructure/adapter/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CommissionRepository implements persistence.CommissionRepository using GORM
type CommissionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewCommissionRepository creates a new CommissionRepository instance
func NewCommissionRepository(db *gorm.DB, logger coreport.Logger) *CommissionRepository {
	return &CommissionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func commissionEntityToModel(commission *entity.Commission) model.Commission {
	return model.Commission{
		ID:            commission.ID,
		TransactionID: commission.TransactionID,
		Percentage:    commission.Percentage.String(),
		Amount:        commission.Amount.StringFixed(entity.MoneyDecimalPlaces),
		Paid:          commission.Paid,
	}
}

// modelToEntity converts a commission model to an entity
func (r *CommissionRepository) modelToEntity(commissionModel *model.Commission) (*entity.Commission, error) {
	percentage, err := decimal.NewFromString(commissionModel.Percentage)
	if err != nil {
		r.logger.Error("Failed to parse stored percentage", map[string]any{
			"commission_id": commissionModel.ID,
			"percentage":    commissionModel.Percentage,
			"error":         err.Error(),
		})
		return nil, fmt.Errorf("%w: invalid stored percentage: %s", errs.ErrInternalServer, err.Error())
	}
	amount, err := decimal.NewFromString(commissionModel.Amount)
	if err != nil {
		r.logger.Error("Failed to parse stored amount", map[string]any{
			"commission_id": commissionModel.ID,
			"amount":        commissionModel.Amount,
			"error":         err.Error(),
		})
		return nil, fmt.Errorf("%w: invalid stored amount: %s", errs.ErrInternalServer, err.Error())
	}

	return &entity.Commission{
		ID:            commissionModel.ID,
		TransactionID: commissionModel.TransactionID,
		Percentage:    percentage,
		Amount:        amount,
		Paid:          commissionModel.Paid,
	}, nil
}

// handleDatabaseError standardizes database error handling
func (r *CommissionRepository) handleDatabaseError(operation string, err error, commissionID uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("Commission not found", map[string]any{
			"commission_id": commissionID,
		})
		return errs.ErrCommissionNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"commission_id": commissionID,
		"error":         err.Error(),
	})

	if r.errorClassifier.IsConstraintError(err) {
		return errs.ErrConflict
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create persists a new commission
func (r *CommissionRepository) Create(ctx context.Context, commission *entity.Commission) error {
	r.logger.Debug("Creating commission", map[string]any{
		"commission_id":  commission.ID,
		"transaction_id": commission.TransactionID,
		"amount":         commission.Amount.String(),
	})

	commissionModel := commissionEntityToModel(commission)
	result := r.db.WithContext(ctx).Create(&commissionModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating commission", result.Error, commission.ID)
	}

	r.logger.Info("Commission created successfully", map[string]any{
		"commission_id":  commission.ID,
		"transaction_id": commission.TransactionID,
		"amount":         commission.Amount.String(),
	})
	return nil
}

// GetByID retrieves a commission by its identifier
func (r *CommissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Commission, error) {
	var commissionModel model.Commission
	result := r.db.WithContext(ctx).First(&commissionModel, "id = ?", id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting commission", result.Error, id)
	}

	return r.modelToEntity(&commissionModel)
}

// ListByTransaction retrieves all commissions attached to a transaction
func (r *CommissionRepository) ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]entity.Commission, error) {
	var commissionModels []model.Commission
	result := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Find(&commissionModels)
	if result.Error != nil {
		r.logger.Error("Database error when listing commissions", map[string]any{
			"transaction_id": transactionID,
			"error":          result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	commissions := make([]entity.Commission, 0, len(commissionModels))
	for i := range commissionModels {
		commission, err := r.modelToEntity(&commissionModels[i])
		if err != nil {
			return nil, err
		}
		commissions = append(commissions, *commission)
	}
	return commissions, nil
}

// MarkPaid flags a commission as paid
func (r *CommissionRepository) MarkPaid(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&model.Commission{}).
		Where("id = ?", id).
		Update("paid", true)
	if result.Error != nil {
		return r.handleDatabaseError("marking commission paid", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrCommissionNotFound
	}

	r.logger.Info("Commission marked as paid", map[string]any{
		"commission_id": id,
	})
	return nil
}

// DeleteByTransaction removes all commissions attached to a transaction
func (r *CommissionRepository) DeleteByTransaction(ctx context.Context, transactionID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Delete(&model.Commission{})
	if result.Error != nil {
		r.logger.Error("Database error when deleting transaction commissions", map[string]any{
			"transaction_id": transactionID,
			"error":          result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	r.logger.Debug("Transaction commissions deleted", map[string]any{
		"transaction_id": transactionID,
		"count":          result.RowsAffected,
	})
	return nil
}
