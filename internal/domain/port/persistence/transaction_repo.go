package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/realty-processor/internal/domain/entity"
	"github.com/google/uuid"
)

// Listing bounds for transaction pagination
const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// TransactionFilter narrows a transaction listing. CreatedFrom is an
// inclusive lower bound on the creation timestamp; CreatedTo is exclusive.
type TransactionFilter struct {
	Status       *entity.TransactionStatus
	PropertyCode string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Limit        int
	Offset       int
}

// TransactionRepository defines essential methods to interact with transaction data
type TransactionRepository interface {
	// Create saves a new transaction
	//
	// Possible errors:
	// - ErrConflict: If the row violates a uniqueness or integrity constraint
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// GetByID retrieves a transaction by its identifier
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no transaction with the given ID exists
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// List returns the transactions matching the filter ordered by creation
	// timestamp descending, plus the total count before pagination
	List(ctx context.Context, filter TransactionFilter) ([]entity.Transaction, int64, error)

	// Update persists the mutable fields of the transaction: property code,
	// sale value, status and the last-modified timestamp
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no transaction with the given ID exists
	// - ErrConflict: If the update violates a constraint
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes the transaction row. Parties and commissions are
	// removed by the caller through their repositories before this call.
	Delete(ctx context.Context, id uuid.UUID) error
}
