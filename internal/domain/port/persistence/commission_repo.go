package persistence

import (
	"context"

	"github.com/amirhossein-jamali/realty-processor/internal/domain/entity"
	"github.com/google/uuid"
)

// CommissionRepository defines methods to interact with commission data
type CommissionRepository interface {
	// Create saves a new commission attached to a transaction
	Create(ctx context.Context, commission *entity.Commission) error

	// GetByID retrieves a commission by its identifier
	//
	// Possible errors:
	// - ErrCommissionNotFound: If no commission with the given ID exists
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Commission, error)

	// ListByTransaction returns all commissions attached to a transaction
	ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]entity.Commission, error)

	// MarkPaid flips the paid flag of a commission to true
	//
	// Possible errors:
	// - ErrCommissionNotFound: If no commission with the given ID exists
	// - ErrDatabaseConnection: If database connection fails
	MarkPaid(ctx context.Context, id uuid.UUID) error

	// DeleteByTransaction removes every commission of a transaction. Used by
	// the explicit delete cascade.
	DeleteByTransaction(ctx context.Context, transactionID uuid.UUID) error
}
