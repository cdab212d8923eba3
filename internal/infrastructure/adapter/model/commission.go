package model

import (
	"github.com/google/uuid"
)

// Commission represents the database model for broker commissions
type Commission struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index"`
	Percentage    string    `gorm:"type:numeric(5,4);not null"`
	Amount        string    `gorm:"type:numeric(12,2);not null"`
	Paid          bool      `gorm:"not null;default:false"`
}

// TableName specifies the table name for Commission
func (Commission) TableName() string {
	return "commissions"
}
