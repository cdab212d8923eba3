package model

import (
	"github.com/google/uuid"
)

// Party represents the database model for transaction parties
type Party struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name          string    `gorm:"not null;size:100"`
	Document      string    `gorm:"not null;size:14"`
	Role          string    `gorm:"not null;size:20;index"`
	Email         string    `gorm:"size:100"`
}

// TableName specifies the table name for Party
func (Party) TableName() string {
	return "parties"
}
