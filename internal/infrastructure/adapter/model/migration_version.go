package model

import "time"

// MigrationVersion records an applied schema migration. Rows are append
// only; the newest one is the active version.
type MigrationVersion struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Version   string    `gorm:"type:varchar(32);not null;index"`
	AppliedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	Details   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName maps the model to its table
func (MigrationVersion) TableName() string {
	return "migration_versions"
}
