package transaction

import (
	"context"

	"github.com/amirhossein-jamali/realty-processor/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Create registers a new transaction with status Created
func (s *Service) Create(ctx context.Context, propertyCode string, saleValue decimal.Decimal) (*entity.Transaction, error) {
	transaction, err := entity.NewTransaction(propertyCode, saleValue, s.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		s.logger.Error("Failed to create transaction", map[string]any{
			"property_code": propertyCode,
			"error":         err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Transaction created", map[string]any{
		"transaction_id": transaction.ID.String(),
		"property_code":  transaction.PropertyCode,
		"sale_value":     transaction.SaleValue.String(),
	})
	return transaction, nil
}
