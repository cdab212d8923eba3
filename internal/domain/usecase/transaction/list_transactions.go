package transaction

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/realty-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/realty-processor/internal/domain/error"
	"github.com/amirhossein-jamali/realty-processor/internal/domain/port/persistence"
)

// List returns the transactions matching the filter ordered by creation
// timestamp descending, plus the total count before pagination. The filter
// is normalized: limit defaults to 50 and is capped at 100, a negative
// offset becomes 0, and a date range with from after to is rejected.
func (s *Service) List(ctx context.Context, filter persistence.TransactionFilter) ([]entity.Transaction, int64, error) {
	if filter.CreatedFrom != nil && filter.CreatedTo != nil && filter.CreatedFrom.After(*filter.CreatedTo) {
		return nil, 0, fmt.Errorf("%w: date range start cannot be after its end", errs.ErrInvalidRequest)
	}

	if filter.Limit <= 0 {
		filter.Limit = persistence.DefaultListLimit
	}
	if filter.Limit > persistence.MaxListLimit {
		filter.Limit = persistence.MaxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	return s.transactionRepo.List(ctx, filter)
}
