package persistence

import (
	"context"

	"github.com/amirhossein-jamali/realty-processor/internal/domain/entity"
	"github.com/google/uuid"
)

// PartyRepository defines methods to interact with party data
type PartyRepository interface {
	// Create saves a new party attached to a transaction
	//
	// Possible errors:
	// - ErrConflict: If the referenced transaction does not exist or a constraint is violated
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, party *entity.Party) error

	// GetByID retrieves a party by its identifier
	//
	// Possible errors:
	// - ErrPartyNotFound: If no party with the given ID exists
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Party, error)

	// ListByTransaction returns all parties attached to a transaction
	ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]entity.Party, error)

	// CountByRole groups the parties of a transaction by role. Roles with
	// no parties are absent from the result.
	CountByRole(ctx context.Context, transactionID uuid.UUID) (entity.RoleCounts, error)

	// Delete removes a party
	//
	// Possible errors:
	// - ErrPartyNotFound: If no party with the given ID exists
	// - ErrDatabaseConnection: If database connection fails
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByTransaction removes every party of a transaction. Used by the
	// explicit delete cascade.
	DeleteByTransaction(ctx context.Context, transactionID uuid.UUID) error
}
