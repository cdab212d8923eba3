package model

import (
	"time"

	"github.com/google/uuid"
)

// Transaction represents the database model for sale transactions
type Transaction struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	PropertyCode string    `gorm:"not null;size:64;index"`
	SaleValue    string    `gorm:"type:numeric(12,2);not null"`
	Status       string    `gorm:"not null;size:50;index"`
	CreatedAt    time.Time `gorm:"not null;index"`
	UpdatedAt    time.Time `gorm:"not null"`

	// Define relationships
	Parties     []Party      `gorm:"foreignKey:TransactionID;references:ID;constraint:OnDelete:CASCADE"`
	Commissions []Commission `gorm:"foreignKey:TransactionID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
