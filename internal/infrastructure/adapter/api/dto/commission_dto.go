package dto

import (
	"github.com/amirhossein-jamali/realty-processor/internal/domain/entity"
)

// CreateCommissionRequest represents the API request for creating a commission
type CreateCommissionRequest struct {
	Percentage string `json:"percentage" binding:"required"`
}

// CommissionResponse represents the API response for a commission
type CommissionResponse struct {
	ID            string `json:"id"`
	TransactionID string `json:"transactionId"`
	Percentage    string `json:"percentage"`
	Amount        string `json:"amount"`
	Paid          bool   `json:"paid"`
}

// NewCommissionResponse maps a commission entity to its API representation
func NewCommissionResponse(commission *entity.Commission) CommissionResponse {
	return CommissionResponse{
		ID:            commission.ID.String(),
		TransactionID: commission.TransactionID.String(),
		Percentage:    commission.Percentage.String(),
		Amount:        commission.Amount.StringFixed(entity.MoneyDecimalPlaces),
		Paid:          commission.Paid,
	}
}
