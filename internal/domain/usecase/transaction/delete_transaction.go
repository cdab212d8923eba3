package transaction

import (
	"context"

	"github.com/google/uuid"
)

// Delete removes a transaction at any status. The cascade to commissions
// and parties is explicit: all three deletes run inside one unit of work so
// the aggregate either disappears completely or not at all.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.transactionRepo.GetByID(ctx, id); err != nil {
		return err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}

	commissionRepo := s.uow.GetCommissionRepository(txCtx)
	partyRepo := s.uow.GetPartyRepository(txCtx)
	transactionRepo := s.uow.GetTransactionRepository(txCtx)

	if err := commissionRepo.DeleteByTransaction(txCtx, id); err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}
	if err := partyRepo.DeleteByTransaction(txCtx, id); err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}
	if err := transactionRepo.Delete(txCtx, id); err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}

	s.logger.Info("Transaction deleted", map[string]any{
		"transaction_id": id.String(),
	})
	return nil
}
