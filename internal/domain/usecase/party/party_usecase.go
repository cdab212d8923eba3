package party

import (
	"context"

	"github.com/amirhossein-jamali/realty-processor/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/realty-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/realty-processor/internal/domain/port/persistence"
	"github.com/google/uuid"
)

// UseCase manages the party roster of transactions. Roster edits are
// resolved through the owning aggregate so the post-approval lock is
// always enforced.
type UseCase struct {
	partyRepo       persistence.PartyRepository
	transactionRepo persistence.TransactionRepository
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
}

// NewUseCase creates a new party use case
func NewUseCase(
	partyRepo persistence.PartyRepository,
	transactionRepo persistence.TransactionRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *UseCase {
	return &UseCase{
		partyRepo:       partyRepo,
		transactionRepo: transactionRepo,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// AddParty attaches a new party to a transaction while it is editable
func (u *UseCase) AddParty(ctx context.Context, transactionID uuid.UUID, name, document string, role entity.PartyRole, email string) (*entity.Party, error) {
	transaction, err := u.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	party, err := entity.NewParty(transactionID, name, document, role, email)
	if err != nil {
		return nil, err
	}

	if err := transaction.AddParty(*party, u.timeProvider); err != nil {
		return nil, err
	}

	if err := u.partyRepo.Create(ctx, party); err != nil {
		u.logger.Error("Failed to create party", map[string]any{
			"transaction_id": transactionID.String(),
			"role":           string(role),
			"error":          err.Error(),
		})
		return nil, err
	}

	u.logger.Info("Party added", map[string]any{
		"party_id":       party.ID.String(),
		"transaction_id": transactionID.String(),
		"role":           string(role),
	})
	return party, nil
}

// ListByTransaction returns the roster of a transaction
func (u *UseCase) ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]entity.Party, error) {
	return u.partyRepo.ListByTransaction(ctx, transactionID)
}

// RemoveParty detaches a party from its transaction under the same lock
// rule as adding one
func (u *UseCase) RemoveParty(ctx context.Context, partyID uuid.UUID) error {
	party, err := u.partyRepo.GetByID(ctx, partyID)
	if err != nil {
		return err
	}

	transaction, err := u.transactionRepo.GetByID(ctx, party.TransactionID)
	if err != nil {
		return err
	}

	if !transaction.Editable() {
		return u.blockedRemoval(transaction, party)
	}

	if err := u.partyRepo.Delete(ctx, partyID); err != nil {
		return err
	}

	u.logger.Info("Party removed", map[string]any{
		"party_id":       partyID.String(),
		"transaction_id": party.TransactionID.String(),
	})
	return nil
}

func (u *UseCase) blockedRemoval(transaction *entity.Transaction, party *entity.Party) error {
	u.logger.Warn("Party removal rejected: transaction locked", map[string]any{
		"party_id":       party.ID.String(),
		"transaction_id": transaction.ID.String(),
		"status":         string(transaction.Status),
	})
	// RemoveParty on the aggregate carries the lock check; calling it here
	// keeps the error shape identical to the add path.
	return transaction.RemoveParty(party.ID, u.timeProvider)
}
