package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/realty-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/realty-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/realty-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/realty-processor/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/realty-processor/internal/infrastructure/adapter/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionRepository implements persistence.TransactionRepository using GORM
type TransactionRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// entityToModel converts a transaction entity to its database model
func entityToModel(transaction *entity.Transaction) model.Transaction {
	return model.Transaction{
		ID:           transaction.ID,
		PropertyCode: transaction.PropertyCode,
		SaleValue:    transaction.SaleValue.StringFixed(entity.MoneyDecimalPlaces),
		Status:       string(transaction.Status),
		CreatedAt:    transaction.CreatedAt,
		UpdatedAt:    transaction.UpdatedAt,
	}
}

// modelToEntity converts a transaction model to an entity
func (r *TransactionRepository) modelToEntity(transactionModel *model.Transaction) (*entity.Transaction, error) {
	saleValue, err := decimal.NewFromString(transactionModel.SaleValue)
	if err != nil {
		r.logger.Error("Failed to parse stored sale value", map[string]any{
			"transaction_id": transactionModel.ID,
			"sale_value":     transactionModel.SaleValue,
			"error":          err.Error(),
		})
		return nil, fmt.Errorf("%w: invalid stored sale value: %s", errs.ErrInternalServer, err.Error())
	}

	return &entity.Transaction{
		ID:           transactionModel.ID,
		PropertyCode: transactionModel.PropertyCode,
		SaleValue:    saleValue,
		Status:       entity.TransactionStatus(transactionModel.Status),
		CreatedAt:    transactionModel.CreatedAt,
		UpdatedAt:    transactionModel.UpdatedAt,
	}, nil
}

// handleDatabaseError standardizes database error handling
func (r *TransactionRepository) handleDatabaseError(operation string, err error, transactionID uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("Transaction not found", map[string]any{
			"transaction_id": transactionID,
		})
		return errs.ErrTransactionNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"transaction_id": transactionID,
		"error":          err.Error(),
	})

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrConflict
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create persists a new transaction
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	r.logger.Debug("Creating transaction", map[string]any{
		"transaction_id": transaction.ID,
		"property_code":  transaction.PropertyCode,
		"sale_value":     transaction.SaleValue.String(),
	})

	transactionModel := entityToModel(transaction)
	result := r.db.WithContext(ctx).Create(&transactionModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating transaction", result.Error, transaction.ID)
	}

	r.logger.Info("Transaction created successfully", map[string]any{
		"transaction_id": transaction.ID,
		"property_code":  transaction.PropertyCode,
	})
	return nil
}

// GetByID retrieves a transaction by its identifier
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	r.logger.Debug("Getting transaction by ID", map[string]any{
		"transaction_id": id,
	})

	var transactionModel model.Transaction
	result := r.db.WithContext(ctx).First(&transactionModel, "id = ?", id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting transaction", result.Error, id)
	}

	return r.modelToEntity(&transactionModel)
}

// List retrieves transactions matching the filter ordered by newest first,
// returning the page and the total count of matching rows
func (r *TransactionRepository) List(ctx context.Context, filter persistence.TransactionFilter) ([]entity.Transaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Transaction{})

	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.PropertyCode != "" {
		query = query.Where("property_code = ?", filter.PropertyCode)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at < ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("Database error when counting transactions", map[string]any{
			"error": err.Error(),
		})
		return nil, 0, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	var transactionModels []model.Transaction
	result := query.
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&transactionModels)
	if result.Error != nil {
		r.logger.Error("Database error when listing transactions", map[string]any{
			"error": result.Error.Error(),
		})
		return nil, 0, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	transactions := make([]entity.Transaction, 0, len(transactionModels))
	for i := range transactionModels {
		transaction, err := r.modelToEntity(&transactionModels[i])
		if err != nil {
			return nil, 0, err
		}
		transactions = append(transactions, *transaction)
	}

	r.logger.Debug("Transactions listed", map[string]any{
		"count": len(transactions),
		"total": total,
	})
	return transactions, total, nil
}

// Update persists the mutable fields of an existing transaction
func (r *TransactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	r.logger.Debug("Updating transaction", map[string]any{
		"transaction_id": transaction.ID,
		"status":         string(transaction.Status),
	})

	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ?", transaction.ID).
		Updates(map[string]interface{}{
			"property_code": transaction.PropertyCode,
			"sale_value":    transaction.SaleValue.StringFixed(entity.MoneyDecimalPlaces),
			"status":        string(transaction.Status),
			"updated_at":    transaction.UpdatedAt,
		})
	if result.Error != nil {
		return r.handleDatabaseError("updating transaction", result.Error, transaction.ID)
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("Transaction not found during update", map[string]any{
			"transaction_id": transaction.ID,
		})
		return errs.ErrTransactionNotFound
	}

	r.logger.Info("Transaction updated successfully", map[string]any{
		"transaction_id": transaction.ID,
		"status":         string(transaction.Status),
	})
	return nil
}

// Delete removes a transaction row
func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Transaction{}, "id = ?", id)
	if result.Error != nil {
		return r.handleDatabaseError("deleting transaction", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrTransactionNotFound
	}

	r.logger.Info("Transaction deleted", map[string]any{
		"transaction_id": id,
	})
	return nil
}
