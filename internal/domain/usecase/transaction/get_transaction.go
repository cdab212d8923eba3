package transaction

import (
	"context"

	"github.com/amirhossein-jamali/realty-processor/internal/domain/entity"
	"github.com/google/uuid"
)

// Get retrieves a transaction by its identifier
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return s.transactionRepo.GetByID(ctx, id)
}
