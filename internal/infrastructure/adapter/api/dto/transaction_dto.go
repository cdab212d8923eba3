package dto

import (
	"time"

	"github.com/amirhossein-jamali/realty-processor/internal/domain/entity"
)

// CreateTransactionRequest represents the API request for creating a sale transaction
type CreateTransactionRequest struct {
	PropertyCode string `json:"propertyCode" binding:"required,max=64"`
	SaleValue    string `json:"saleValue" binding:"required"`
}

// UpdateTransactionRequest represents the API request for updating a sale transaction
type UpdateTransactionRequest struct {
	PropertyCode string `json:"propertyCode" binding:"required,max=64"`
	SaleValue    string `json:"saleValue" binding:"required"`
}

// ChangeStatusRequest represents the API request for a status transition
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=created under_review approved rejected completed canceled"`
}

// TransactionResponse represents the API response for a sale transaction
type TransactionResponse struct {
	ID           string    `json:"id"`
	PropertyCode string    `json:"propertyCode"`
	SaleValue    string    `json:"saleValue"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TransactionDetailResponse includes the roster and commissions of a transaction
type TransactionDetailResponse struct {
	TransactionResponse
	Parties     []PartyResponse      `json:"parties"`
	Commissions []CommissionResponse `json:"commissions"`
}

// NewTransactionResponse maps a transaction entity to its API representation
func NewTransactionResponse(transaction *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           transaction.ID.String(),
		PropertyCode: transaction.PropertyCode,
		SaleValue:    transaction.SaleValue.StringFixed(entity.MoneyDecimalPlaces),
		Status:       string(transaction.Status),
		CreatedAt:    transaction.CreatedAt,
		UpdatedAt:    transaction.UpdatedAt,
	}
}
