package database

import (
	"errors"
	"fmt"
	"strings"

	domainErr "github.com/amirhossein-jamali/realty-processor/internal/domain/error"
	"gorm.io/gorm"
)

// EntityType names an aggregate for not-found mapping
type EntityType string

const (
	EntityTypeTransaction EntityType = "transaction"
	EntityTypeParty       EntityType = "party"
	EntityTypeCommission  EntityType = "commission"
)

// notFoundByEntity resolves a missing row to the sentinel of its aggregate
var notFoundByEntity = map[EntityType]error{
	EntityTypeTransaction: domainErr.ErrTransactionNotFound,
	EntityTypeParty:       domainErr.ErrPartyNotFound,
	EntityTypeCommission:  domainErr.ErrCommissionNotFound,
}

// ErrorMapper translates raw database errors into domain sentinels so the
// layers above never see gorm or driver types
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// MapError maps a database error to a domain error. Integrity violations
// become conflicts, connectivity failures become ErrDatabaseConnection,
// anything unrecognized becomes an internal error.
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr.ErrNotFound
	}

	message := strings.ToLower(err.Error())
	switch {
	case containsAny(message, "duplicate key", "unique constraint"):
		return domainErr.ErrConflict
	case containsAny(message, "check constraint", "foreign key constraint"):
		return domainErr.ErrConflict
	case containsAny(message, "connection refused", "no connection", "connection reset"):
		return domainErr.ErrDatabaseConnection
	case containsAny(message, "timeout", "deadline exceeded"):
		return fmt.Errorf("%w: %s operation timed out", domainErr.ErrDatabaseConnection, operation)
	default:
		return domainErr.ErrInternalServer
	}
}

// MapEntityNotFoundError is MapError with missing rows resolved to the
// aggregate-specific not-found sentinel
func (m *ErrorMapper) MapEntityNotFoundError(err error, entityType EntityType) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if sentinel, ok := notFoundByEntity[entityType]; ok {
			return sentinel
		}
		return domainErr.ErrNotFound
	}
	return m.MapError(err, string(entityType))
}

func containsAny(message string, candidates ...string) bool {
	for _, candidate := range candidates {
		if strings.Contains(message, candidate) {
			return true
		}
	}
	return false
}
