package persistence

import (
	"context"
)

// UnitOfWork defines an interface for coordinating operations across
// multiple repositories within one atomic storage transaction. The delete
// cascade (commissions, then parties, then the transaction) runs through it.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetTransactionRepository returns a transaction repository bound to the current transaction
	GetTransactionRepository(ctx context.Context) TransactionRepository

	// GetPartyRepository returns a party repository bound to the current transaction
	GetPartyRepository(ctx context.Context) PartyRepository

	// GetCommissionRepository returns a commission repository bound to the current transaction
	GetCommissionRepository(ctx context.Context) CommissionRepository
}
