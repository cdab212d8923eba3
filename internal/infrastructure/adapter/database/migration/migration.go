package migration

import (
	"context"
	"errors"

	coreport "github.com/amirhossein-jamali/realty-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/realty-processor/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// CurrentSchemaVersion is the schema version this binary expects
const CurrentSchemaVersion = "1.0.0"

// Manager applies the schema and records the applied version
type Manager struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewManager creates a new migration manager
func NewManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *Manager {
	return &Manager{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// MigrateAll brings the schema to the current version: auto-migrates the
// models, creates the query indexes, and stamps the version. A database
// already at the current version is left untouched.
func (m *Manager) MigrateAll(ctx context.Context) error {
	m.logger.Info("Starting database migrations", map[string]any{
		"target_version": CurrentSchemaVersion,
	})

	if err := m.db.AutoMigrate(&model.MigrationVersion{}); err != nil {
		return m.failStep("create migration version table", err)
	}

	currentVersion, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return m.failStep("read current schema version", err)
	}
	if currentVersion == CurrentSchemaVersion {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{
			"version": currentVersion,
		})
		return nil
	}

	if err := m.migrateModels(); err != nil {
		return m.failStep("auto-migrate models", err)
	}
	if err := m.createIndexes(); err != nil {
		return m.failStep("create indexes", err)
	}
	if err := m.stampVersion(ctx, CurrentSchemaVersion, "Full schema migration"); err != nil {
		return m.failStep("record schema version", err)
	}

	m.logger.Info("Database migrations completed successfully", map[string]any{
		"version": CurrentSchemaVersion,
	})
	return nil
}

// GetCurrentVersion returns the most recently applied schema version, or
// an empty string on a fresh database
func (m *Manager) GetCurrentVersion(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var version model.MigrationVersion
	result := m.db.WithContext(ctx).Order("applied_at desc").First(&version)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if result.Error != nil {
		return "", result.Error
	}
	return version.Version, nil
}

func (m *Manager) stampVersion(ctx context.Context, version, details string) error {
	record := model.MigrationVersion{
		Version:   version,
		AppliedAt: m.timeProvider.Now(),
		Details:   details,
	}
	return m.db.WithContext(ctx).Create(&record).Error
}

func (m *Manager) migrateModels() error {
	m.logger.Info("Auto-migrating database models", nil)
	return m.db.AutoMigrate(
		&model.Transaction{},
		&model.Party{},
		&model.Commission{},
	)
}

// createIndexes covers the listing filters and the roster aggregation
func (m *Manager) createIndexes() error {
	m.logger.Info("Creating database indexes", nil)

	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_transactions_status ON transactions (status)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_property_code ON transactions (property_code)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_created_at ON transactions (created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_parties_transaction_role ON parties (transaction_id, role)",
		"CREATE INDEX IF NOT EXISTS idx_commissions_transaction_id ON commissions (transaction_id)",
	}
	for _, statement := range statements {
		if err := m.db.Exec(statement).Error; err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) failStep(step string, err error) error {
	m.logger.Error("Migration step failed", map[string]any{
		"step":  step,
		"error": err.Error(),
	})
	return err
}
