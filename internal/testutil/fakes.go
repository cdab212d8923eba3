// Package testutil provides in-memory fakes for the domain ports, used by
// the use case tests in place of a real database.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/amirhossein-jamali/realty-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/realty-processor/internal/domain/error"
	"github.com/amirhossein-jamali/realty-processor/internal/domain/port/persistence"
	"github.com/google/uuid"
)

// FixedTimeProvider returns a controllable instant on every call
type FixedTimeProvider struct {
	Current time.Time
}

// NewFixedTimeProvider creates a time provider frozen at the given instant
func NewFixedTimeProvider(now time.Time) *FixedTimeProvider {
	return &FixedTimeProvider{Current: now}
}

func (f *FixedTimeProvider) Now() time.Time {
	return f.Current
}

func (f *FixedTimeProvider) Since(t time.Time) time.Duration {
	return f.Current.Sub(t)
}

func (f *FixedTimeProvider) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// Advance moves the provider forward
func (f *FixedTimeProvider) Advance(d time.Duration) {
	f.Current = f.Current.Add(d)
}

// TransactionRepo is an in-memory persistence.TransactionRepository.
// Err, when set, is returned by every method.
type TransactionRepo struct {
	mu           sync.Mutex
	transactions map[uuid.UUID]entity.Transaction
	Err          error
}

// NewTransactionRepo creates an empty in-memory transaction repository
func NewTransactionRepo() *TransactionRepo {
	return &TransactionRepo{transactions: make(map[uuid.UUID]entity.Transaction)}
}

func (r *TransactionRepo) Create(_ context.Context, transaction *entity.Transaction) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.transactions[transaction.ID]; exists {
		return errs.ErrConflict
	}
	r.transactions[transaction.ID] = *transaction
	return nil
}

func (r *TransactionRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	transaction, ok := r.transactions[id]
	if !ok {
		return nil, errs.ErrTransactionNotFound
	}
	copied := transaction
	return &copied, nil
}

func (r *TransactionRepo) List(_ context.Context, filter persistence.TransactionFilter) ([]entity.Transaction, int64, error) {
	if r.Err != nil {
		return nil, 0, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []entity.Transaction
	for _, transaction := range r.transactions {
		if filter.Status != nil && transaction.Status != *filter.Status {
			continue
		}
		if filter.PropertyCode != "" && transaction.PropertyCode != filter.PropertyCode {
			continue
		}
		if filter.CreatedFrom != nil && transaction.CreatedAt.Before(*filter.CreatedFrom) {
			continue
		}
		if filter.CreatedTo != nil && !transaction.CreatedAt.Before(*filter.CreatedTo) {
			continue
		}
		matched = append(matched, transaction)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *TransactionRepo) Update(_ context.Context, transaction *entity.Transaction) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transactions[transaction.ID]; !ok {
		return errs.ErrTransactionNotFound
	}
	r.transactions[transaction.ID] = *transaction
	return nil
}

func (r *TransactionRepo) Delete(_ context.Context, id uuid.UUID) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transactions[id]; !ok {
		return errs.ErrTransactionNotFound
	}
	delete(r.transactions, id)
	return nil
}

// Count returns the number of stored transactions
func (r *TransactionRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.transactions)
}

// PartyRepo is an in-memory persistence.PartyRepository
type PartyRepo struct {
	mu      sync.Mutex
	parties map[uuid.UUID]entity.Party
	Err     error
}

// NewPartyRepo creates an empty in-memory party repository
func NewPartyRepo() *PartyRepo {
	return &PartyRepo{parties: make(map[uuid.UUID]entity.Party)}
}

func (r *PartyRepo) Create(_ context.Context, party *entity.Party) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parties[party.ID] = *party
	return nil
}

func (r *PartyRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Party, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	party, ok := r.parties[id]
	if !ok {
		return nil, errs.ErrPartyNotFound
	}
	copied := party
	return &copied, nil
}

func (r *PartyRepo) ListByTransaction(_ context.Context, transactionID uuid.UUID) ([]entity.Party, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var parties []entity.Party
	for _, party := range r.parties {
		if party.TransactionID == transactionID {
			parties = append(parties, party)
		}
	}
	return parties, nil
}

func (r *PartyRepo) CountByRole(_ context.Context, transactionID uuid.UUID) (entity.RoleCounts, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(entity.RoleCounts)
	for _, party := range r.parties {
		if party.TransactionID == transactionID {
			counts[party.Role]++
		}
	}
	return counts, nil
}

func (r *PartyRepo) Delete(_ context.Context, id uuid.UUID) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.parties[id]; !ok {
		return errs.ErrPartyNotFound
	}
	delete(r.parties, id)
	return nil
}

func (r *PartyRepo) DeleteByTransaction(_ context.Context, transactionID uuid.UUID) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, party := range r.parties {
		if party.TransactionID == transactionID {
			delete(r.parties, id)
		}
	}
	return nil
}

// Count returns the number of stored parties
func (r *PartyRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.parties)
}

// CommissionRepo is an in-memory persistence.CommissionRepository
type CommissionRepo struct {
	mu          sync.Mutex
	commissions map[uuid.UUID]entity.Commission
	Err         error

	// MarkPaidCalls counts MarkPaid invocations that reached storage
	MarkPaidCalls int
}

// NewCommissionRepo creates an empty in-memory commission repository
func NewCommissionRepo() *CommissionRepo {
	return &CommissionRepo{commissions: make(map[uuid.UUID]entity.Commission)}
}

func (r *CommissionRepo) Create(_ context.Context, commission *entity.Commission) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commissions[commission.ID] = *commission
	return nil
}

func (r *CommissionRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Commission, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	commission, ok := r.commissions[id]
	if !ok {
		return nil, errs.ErrCommissionNotFound
	}
	copied := commission
	return &copied, nil
}

func (r *CommissionRepo) ListByTransaction(_ context.Context, transactionID uuid.UUID) ([]entity.Commission, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var commissions []entity.Commission
	for _, commission := range r.commissions {
		if commission.TransactionID == transactionID {
			commissions = append(commissions, commission)
		}
	}
	return commissions, nil
}

func (r *CommissionRepo) MarkPaid(_ context.Context, id uuid.UUID) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.MarkPaidCalls++
	commission, ok := r.commissions[id]
	if !ok {
		return errs.ErrCommissionNotFound
	}
	commission.Paid = true
	r.commissions[id] = commission
	return nil
}

func (r *CommissionRepo) DeleteByTransaction(_ context.Context, transactionID uuid.UUID) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, commission := range r.commissions {
		if commission.TransactionID == transactionID {
			delete(r.commissions, id)
		}
	}
	return nil
}

// Count returns the number of stored commissions
func (r *CommissionRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.commissions)
}

// UnitOfWork is a persistence.UnitOfWork fake that hands out the shared
// in-memory repositories and records begin/commit/rollback calls
type UnitOfWork struct {
	TransactionRepo *TransactionRepo
	PartyRepo       *PartyRepo
	CommissionRepo  *CommissionRepo

	BeginErr  error
	CommitErr error

	Begun      int
	Committed  int
	RolledBack int
}

// NewUnitOfWork creates a unit of work fake over the given repositories
func NewUnitOfWork(transactionRepo *TransactionRepo, partyRepo *PartyRepo, commissionRepo *CommissionRepo) *UnitOfWork {
	return &UnitOfWork{
		TransactionRepo: transactionRepo,
		PartyRepo:       partyRepo,
		CommissionRepo:  commissionRepo,
	}
}

func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if u.BeginErr != nil {
		return ctx, u.BeginErr
	}
	u.Begun++
	return ctx, nil
}

func (u *UnitOfWork) Commit(context.Context) error {
	if u.CommitErr != nil {
		return u.CommitErr
	}
	u.Committed++
	return nil
}

func (u *UnitOfWork) Rollback(context.Context) error {
	u.RolledBack++
	return nil
}

func (u *UnitOfWork) GetTransactionRepository(context.Context) persistence.TransactionRepository {
	return u.TransactionRepo
}

func (u *UnitOfWork) GetPartyRepository(context.Context) persistence.PartyRepository {
	return u.PartyRepo
}

func (u *UnitOfWork) GetCommissionRepository(context.Context) persistence.CommissionRepository {
	return u.CommissionRepo
}
