package transaction

import (
	"context"

	"github.com/amirhossein-jamali/realty-processor/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Update replaces the property code and sale value of a transaction.
// Both edits go through the aggregate, which rejects them with
// OperationBlocked once the transaction is locked.
func (s *Service) Update(ctx context.Context, id uuid.UUID, propertyCode string, saleValue decimal.Decimal) (*entity.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := transaction.UpdatePropertyCode(propertyCode, s.timeProvider); err != nil {
		return nil, err
	}
	if err := transaction.UpdateSaleValue(saleValue, s.timeProvider); err != nil {
		return nil, err
	}

	if err := s.transactionRepo.Update(ctx, transaction); err != nil {
		s.logger.Error("Failed to update transaction", map[string]any{
			"transaction_id": id.String(),
			"error":          err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Transaction updated", map[string]any{
		"transaction_id": id.String(),
		"property_code":  transaction.PropertyCode,
		"sale_value":     transaction.SaleValue.String(),
	})
	return transaction, nil
}
