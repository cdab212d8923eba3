package transaction

import (
	coreport "github.com/amirhossein-jamali/realty-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/realty-processor/internal/domain/port/persistence"
)

// Service orchestrates transaction mutations. Every request loads the
// aggregate, validates guards in memory and persists the result; the
// aggregate is the sole authority on whether a mutation is legal.
type Service struct {
	transactionRepo persistence.TransactionRepository
	partyRepo       persistence.PartyRepository
	uow             persistence.UnitOfWork
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
}

// NewService creates a new transaction service
func NewService(
	transactionRepo persistence.TransactionRepository,
	partyRepo persistence.PartyRepository,
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		transactionRepo: transactionRepo,
		partyRepo:       partyRepo,
		uow:             uow,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}
