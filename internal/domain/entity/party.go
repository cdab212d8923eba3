package entity

import (
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/realty-processor/internal/domain/error"
	"github.com/google/uuid"
)

// PartyRole represents the role a party plays in a transaction
type PartyRole string

// Party roles
const (
	RoleBuyer  PartyRole = "buyer"
	RoleSeller PartyRole = "seller"
	RoleBroker PartyRole = "broker"
)

// Document length constraints: 11 digits for a personal tax id,
// 14 digits for a company tax id
const (
	personDocumentLen  = 11
	companyDocumentLen = 14
	maxNameLen         = 100
	maxEmailLen        = 100
)

// Party represents a participant attached to a transaction. Parties are
// immutable after creation; there is no update operation.
type Party struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	Name          string
	Document      string
	Role          PartyRole
	Email         string
}

// NewParty creates a new party with validation. Email is optional.
func NewParty(transactionID uuid.UUID, name, document string, role PartyRole, email string) (*Party, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLen {
		return nil, fmt.Errorf("%w: name must have between 1 and %d characters", errs.ErrValidation, maxNameLen)
	}
	if err := validateDocument(document); err != nil {
		return nil, err
	}
	if !IsValidRole(string(role)) {
		return nil, fmt.Errorf("%w: invalid party role %q", errs.ErrValidation, role)
	}
	if email != "" {
		if len(email) > maxEmailLen || !strings.Contains(email, "@") {
			return nil, fmt.Errorf("%w: invalid email address", errs.ErrValidation)
		}
	}

	return &Party{
		ID:            uuid.New(),
		TransactionID: transactionID,
		Name:          name,
		Document:      document,
		Role:          role,
		Email:         email,
	}, nil
}

// IsValidRole validates if the role is one of the allowed values
func IsValidRole(role string) bool {
	return role == string(RoleBuyer) ||
		role == string(RoleSeller) ||
		role == string(RoleBroker)
}

// validateDocument checks the tax-id document: a fixed-length numeric
// string of 11 or 14 digits
func validateDocument(document string) error {
	if len(document) != personDocumentLen && len(document) != companyDocumentLen {
		return fmt.Errorf("%w: document must have %d or %d digits", errs.ErrValidation, personDocumentLen, companyDocumentLen)
	}
	for _, r := range document {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: document must contain only digits", errs.ErrValidation)
		}
	}
	return nil
}

// RoleCounts maps each party role to the number of parties holding it
type RoleCounts map[PartyRole]int

// CheckApprovalRoster verifies the minimum participant composition required
// to approve a transaction: at least one buyer, one seller and one broker.
// This gate runs only when the requested target status is Approved.
func CheckApprovalRoster(counts RoleCounts) error {
	if counts[RoleBuyer] < 1 || counts[RoleSeller] < 1 || counts[RoleBroker] < 1 {
		return errs.ErrUnmetPartyRequirement
	}
	return nil
}
