package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
)

//go:embed sql/*.sql
var migrationFS embed.FS

// Migrator applies the embedded schema migrations to a PostgreSQL database
type Migrator struct {
	dsn    string
	logger zerolog.Logger
}

// NewMigrator creates a new migrator for the given connection string
func NewMigrator(dsn string, logger zerolog.Logger) *Migrator {
	return &Migrator{
		dsn:    dsn,
		logger: logger,
	}
}

func (m *Migrator) open() (*migrate.Migrate, error) {
	source, err := iofs.New(migrationFS, "sql")
	if err != nil {
		return nil, fmt.Errorf("migrate source: %w", err)
	}

	mg, err := migrate.NewWithSourceInstance("iofs", source, m.dsn)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return mg, nil
}

// Up applies all pending migrations. Being already up to date is not an error.
func (m *Migrator) Up() error {
	mg, err := m.open()
	if err != nil {
		return err
	}
	defer func() { _, _ = mg.Close() }()

	if err := mg.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info().Msg("Database schema is up to date")
			return nil
		}
		return fmt.Errorf("error occurred during SQL migration execution: %w", err)
	}

	version, dirty, _ := mg.Version()
	m.logger.Info().Uint("version", version).Bool("dirty", dirty).Msg("Database migrations applied")
	return nil
}

// Down rolls back every migration
func (m *Migrator) Down() error {
	mg, err := m.open()
	if err != nil {
		return err
	}
	defer func() { _, _ = mg.Close() }()

	if err := mg.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error occurred during SQL migration rollback: %w", err)
	}
	return nil
}
