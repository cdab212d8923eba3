package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/realty-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/realty-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/realty-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/realty-processor/internal/infrastructure/adapter/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PartyRepository implements persistence.PartyRepository using GORM
type PartyRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewPartyRepository creates a new PartyRepository instance
func NewPartyRepository(db *gorm.DB, logger coreport.Logger) *PartyRepository {
	return &PartyRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func partyEntityToModel(party *entity.Party) model.Party {
	return model.Party{
		ID:            party.ID,
		TransactionID: party.TransactionID,
		Name:          party.Name,
		Document:      party.Document,
		Role:          string(party.Role),
		Email:         party.Email,
	}
}

func partyModelToEntity(partyModel *model.Party) entity.Party {
	return entity.Party{
		ID:            partyModel.ID,
		TransactionID: partyModel.TransactionID,
		Name:          partyModel.Name,
		Document:      partyModel.Document,
		Role:          entity.PartyRole(partyModel.Role),
		Email:         partyModel.Email,
	}
}

// handleDatabaseError standardizes database error handling
func (r *PartyRepository) handleDatabaseError(operation string, err error, partyID uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("Party not found", map[string]any{
			"party_id": partyID,
		})
		return errs.ErrPartyNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"party_id": partyID,
		"error":    err.Error(),
	})

	if r.errorClassifier.IsConstraintError(err) {
		return errs.ErrConflict
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create persists a new party
func (r *PartyRepository) Create(ctx context.Context, party *entity.Party) error {
	r.logger.Debug("Creating party", map[string]any{
		"party_id":       party.ID,
		"transaction_id": party.TransactionID,
		"role":           string(party.Role),
	})

	partyModel := partyEntityToModel(party)
	result := r.db.WithContext(ctx).Create(&partyModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating party", result.Error, party.ID)
	}

	r.logger.Info("Party created successfully", map[string]any{
		"party_id":       party.ID,
		"transaction_id": party.TransactionID,
		"role":           string(party.Role),
	})
	return nil
}

// GetByID retrieves a party by its identifier
func (r *PartyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Party, error) {
	var partyModel model.Party
	result := r.db.WithContext(ctx).First(&partyModel, "id = ?", id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting party", result.Error, id)
	}

	party := partyModelToEntity(&partyModel)
	return &party, nil
}

// ListByTransaction retrieves all parties attached to a transaction
func (r *PartyRepository) ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]entity.Party, error) {
	var partyModels []model.Party
	result := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Find(&partyModels)
	if result.Error != nil {
		r.logger.Error("Database error when listing parties", map[string]any{
			"transaction_id": transactionID,
			"error":          result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	parties := make([]entity.Party, 0, len(partyModels))
	for i := range partyModels {
		parties = append(parties, partyModelToEntity(&partyModels[i]))
	}
	return parties, nil
}

// CountByRole returns the number of parties per role for a transaction
func (r *PartyRepository) CountByRole(ctx context.Context, transactionID uuid.UUID) (entity.RoleCounts, error) {
	type roleCount struct {
		Role  string
		Count int
	}

	var rows []roleCount
	result := r.db.WithContext(ctx).Model(&model.Party{}).
		Select("role, count(*) as count").
		Where("transaction_id = ?", transactionID).
		Group("role").
		Scan(&rows)
	if result.Error != nil {
		r.logger.Error("Database error when counting parties by role", map[string]any{
			"transaction_id": transactionID,
			"error":          result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	counts := make(entity.RoleCounts, len(rows))
	for _, row := range rows {
		counts[entity.PartyRole(row.Role)] = row.Count
	}
	return counts, nil
}

// Delete removes a party row
func (r *PartyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Party{}, "id = ?", id)
	if result.Error != nil {
		return r.handleDatabaseError("deleting party", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrPartyNotFound
	}

	r.logger.Info("Party deleted", map[string]any{
		"party_id": id,
	})
	return nil
}

// DeleteByTransaction removes all parties attached to a transaction
func (r *PartyRepository) DeleteByTransaction(ctx context.Context, transactionID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Delete(&model.Party{})
	if result.Error != nil {
		r.logger.Error("Database error when deleting transaction parties", map[string]any{
			"transaction_id": transactionID,
			"error":          result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	r.logger.Debug("Transaction parties deleted", map[string]any{
		"transaction_id": transactionID,
		"count":          result.RowsAffected,
	})
	return nil
}
