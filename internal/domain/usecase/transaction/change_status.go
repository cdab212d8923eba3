package transaction

import (
	"context"

	"github.com/amirhossein-jamali/realty-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/realty-processor/internal/domain/error"
	"github.com/google/uuid"
)

// ChangeStatus moves a transaction to a new status. The edge must be in
// the transition table; when the target is Approved the roster gate runs
// against the persisted party counts before the change is committed.
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, newStatus entity.TransactionStatus) (*entity.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !entity.CanTransition(transaction.Status, newStatus) {
		s.logger.Warn("Status transition rejected", map[string]any{
			"transaction_id": id.String(),
			"from_status":    string(transaction.Status),
			"to_status":      string(newStatus),
		})
		return nil, errs.NewTransitionError(string(transaction.Status), string(newStatus))
	}

	if newStatus == entity.StatusApproved {
		counts, err := s.partyRepo.CountByRole(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := entity.CheckApprovalRoster(counts); err != nil {
			s.logger.Warn("Approval rejected: roster requirement unmet", map[string]any{
				"transaction_id": id.String(),
				"buyers":         counts[entity.RoleBuyer],
				"sellers":        counts[entity.RoleSeller],
				"brokers":        counts[entity.RoleBroker],
			})
			return nil, err
		}
	}

	if err := transaction.TransitionStatus(newStatus, s.timeProvider); err != nil {
		return nil, err
	}

	if err := s.transactionRepo.Update(ctx, transaction); err != nil {
		s.logger.Error("Failed to persist status change", map[string]any{
			"transaction_id": id.String(),
			"to_status":      string(newStatus),
			"error":          err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Transaction status changed", map[string]any{
		"transaction_id": id.String(),
		"status":         string(newStatus),
	})
	return transaction, nil
}
