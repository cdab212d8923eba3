package entity

// TransactionStatus defines possible lifecycle states of a transaction
type TransactionStatus string

// TransactionStatus constants
const (
	StatusCreated     TransactionStatus = "created"
	StatusUnderReview TransactionStatus = "under_review"
	StatusApproved    TransactionStatus = "approved"
	StatusRejected    TransactionStatus = "rejected"
	StatusCompleted   TransactionStatus = "completed"
	StatusCanceled    TransactionStatus = "canceled"
)

// allowedTransitions maps each status to the statuses it may move to.
// Completed and Canceled are terminal: no outgoing edges. Self-transitions
// are not permitted.
var allowedTransitions = map[TransactionStatus][]TransactionStatus{
	StatusCreated:     {StatusUnderReview, StatusCanceled},
	StatusUnderReview: {StatusApproved, StatusRejected, StatusCanceled},
	StatusApproved:    {StatusCompleted, StatusCanceled},
	StatusRejected:    {StatusCanceled},
	StatusCompleted:   {},
	StatusCanceled:    {},
}

// AllStatuses lists every status in the enumeration
func AllStatuses() []TransactionStatus {
	return []TransactionStatus{
		StatusCreated,
		StatusUnderReview,
		StatusApproved,
		StatusRejected,
		StatusCompleted,
		StatusCanceled,
	}
}

// CanTransition reports whether moving from one status to another is allowed.
// It is pure and total: an unknown `from` status yields no allowed destinations.
func CanTransition(from, to TransactionStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether the raw value is a member of the enumeration
func IsValidStatus(raw string) bool {
	for _, s := range AllStatuses() {
		if s == TransactionStatus(raw) {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outgoing transitions
func (s TransactionStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0 && IsValidStatus(string(s))
}
