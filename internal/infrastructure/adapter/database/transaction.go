package database

import (
	"context"
	"fmt"
	"strings"

	coreport "github.com/amirhossein-jamali/realty-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/realty-processor/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/realty-processor/internal/infrastructure/adapter/repository"
	"gorm.io/gorm"
)

// contextKey avoids collisions with other context values
type contextKey string

const txKey contextKey = "tx"

// UnitOfWork carries a database transaction through the context so a
// multi-repository operation commits or rolls back as one
type UnitOfWork struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) persistence.UnitOfWork {
	return &UnitOfWork{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// Begin opens a database transaction and returns a context carrying it
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	u.logger.Debug("Beginning database transaction", nil)

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return ctx, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	return context.WithValue(ctx, txKey, tx), nil
}

// Commit commits the transaction carried by the context
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, err := txFromContext(ctx)
	if err != nil {
		return err
	}

	u.logger.Debug("Committing database transaction", nil)
	if err := tx.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback aborts the transaction carried by the context. Rolling back a
// transaction that already finished is treated as a no-op so deferred
// rollbacks after a commit stay silent.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, err := txFromContext(ctx)
	if err != nil {
		return err
	}

	u.logger.Debug("Rolling back database transaction", nil)
	rollbackErr := tx.Rollback().Error
	if rollbackErr == nil {
		return nil
	}
	if strings.Contains(rollbackErr.Error(), "already been committed or rolled back") {
		u.logger.Warn("Transaction already finished", map[string]any{"error": rollbackErr.Error()})
		return nil
	}

	u.logger.Error("Failed to rollback transaction", map[string]any{"error": rollbackErr.Error()})
	return fmt.Errorf("failed to rollback transaction: %w", rollbackErr)
}

// GetTransactionRepository returns a transaction repository bound to the
// transaction in the context, or to the base connection outside one
func (u *UnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return repository.NewTransactionRepository(u.dbFor(ctx), u.timeProvider, u.logger)
}

// GetPartyRepository returns a party repository bound to the context
func (u *UnitOfWork) GetPartyRepository(ctx context.Context) persistence.PartyRepository {
	return repository.NewPartyRepository(u.dbFor(ctx), u.logger)
}

// GetCommissionRepository returns a commission repository bound to the context
func (u *UnitOfWork) GetCommissionRepository(ctx context.Context) persistence.CommissionRepository {
	return repository.NewCommissionRepository(u.dbFor(ctx), u.logger)
}

func (u *UnitOfWork) dbFor(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return u.db.WithContext(ctx)
}

func txFromContext(ctx context.Context) (*gorm.DB, error) {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return nil, fmt.Errorf("no transaction found in context")
	}
	return tx, nil
}
