package repository

import "strings"

// ErrorType categorizes a database failure
type ErrorType string

const (
	DuplicateKeyError ErrorType = "duplicate_key"
	TransientError    ErrorType = "transient"
	ConnectionError   ErrorType = "connection"
	ConstraintError   ErrorType = "constraint"
)

// Postgres surfaces most failures as driver messages, so classification
// is by substring. SQLSTATE codes: 23505 unique, 23503 foreign key.
var (
	duplicateKeyMarkers = []string{
		"duplicate key",
		"SQLSTATE 23505",
		"unique constraint",
	}
	transientMarkers = []string{
		"connection reset",
		"connection refused",
		"timeout",
		"EOF",
		"server closed",
		"broken pipe",
		"the database system is starting up",
	}
	connectionMarkers = []string{
		"connection",
		"dial",
		"network",
	}
	constraintMarkers = []string{
		"constraint",
		"violates",
		"SQLSTATE 23503",
		"foreign key",
		"not null",
	}
)

// ErrorClassifier categorizes raw database errors for the repositories
type ErrorClassifier struct{}

// NewErrorClassifier creates a new ErrorClassifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// Classify returns the category of the error, or an empty type when it
// matches none
func (c *ErrorClassifier) Classify(err error) ErrorType {
	switch {
	case err == nil:
		return ""
	case c.IsDuplicateKeyError(err):
		return DuplicateKeyError
	case c.IsTransientError(err):
		return TransientError
	case c.IsConnectionError(err):
		return ConnectionError
	case c.IsConstraintError(err):
		return ConstraintError
	default:
		return ""
	}
}

// IsDuplicateKeyError reports whether the error is a unique-key violation
func (c *ErrorClassifier) IsDuplicateKeyError(err error) bool {
	return matchesAny(err, duplicateKeyMarkers)
}

// IsTransientError reports whether the operation is worth retrying
func (c *ErrorClassifier) IsTransientError(err error) bool {
	return matchesAny(err, transientMarkers)
}

// IsConnectionError reports whether the error is a connectivity failure
func (c *ErrorClassifier) IsConnectionError(err error) bool {
	return matchesAny(err, connectionMarkers) || c.IsTransientError(err)
}

// IsConstraintError reports whether the error is an integrity violation,
// unique keys included
func (c *ErrorClassifier) IsConstraintError(err error) bool {
	return matchesAny(err, constraintMarkers) || c.IsDuplicateKeyError(err)
}

func matchesAny(err error, markers []string) bool {
	if err == nil {
		return false
	}
	message := err.Error()
	for _, marker := range markers {
		if strings.Contains(message, marker) {
			return true
		}
	}
	return false
}
