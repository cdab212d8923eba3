package dto

import (
	"github.com/amirhossein-jamali/realty-processor/internal/domain/entity"
)

// AddPartyRequest represents the API request for attaching a party to a transaction
type AddPartyRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Document string `json:"document" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=buyer seller broker"`
	Email    string `json:"email" binding:"omitempty,max=100"`
}

// PartyResponse represents the API response for a transaction party
type PartyResponse struct {
	ID            string `json:"id"`
	TransactionID string `json:"transactionId"`
	Name          string `json:"name"`
	Document      string `json:"document"`
	Role          string `json:"role"`
	Email         string `json:"email,omitempty"`
}

// NewPartyResponse maps a party entity to its API representation
func NewPartyResponse(party *entity.Party) PartyResponse {
	return PartyResponse{
		ID:            party.ID.String(),
		TransactionID: party.TransactionID.String(),
		Name:          party.Name,
		Document:      party.Document,
		Role:          string(party.Role),
		Email:         party.Email,
	}
}
