package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registers the pgx5:// driver
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

// Migrator applies the embedded SQL migrations. Rollbacks are left to the
// migrate CLI, which reads the same .down.sql files.
type Migrator struct {
	databaseURL string
	logger      zerolog.Logger
}

// NewMigrator creates a migrator for a pgx5:// database URL
func NewMigrator(databaseURL string, logger zerolog.Logger) *Migrator {
	return &Migrator{databaseURL: databaseURL, logger: logger}
}

func embeddedSource() (source.Driver, error) {
	src, err := iofs.New(migrationFiles, "sql")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	return src, nil
}

func (m *Migrator) open() (*migrate.Migrate, error) {
	src, err := embeddedSource()
	if err != nil {
		return nil, err
	}

	mg, err := migrate.NewWithSourceInstance("iofs", src, m.databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise migrator: %w", err)
	}
	mg.Log = migrateLogger{m.logger}
	return mg, nil
}

// Up applies all pending migrations
func (m *Migrator) Up() error {
	mg, err := m.open()
	if err != nil {
		return err
	}
	defer closeMigrate(mg, m.logger)

	if err := mg.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info().Msg("Database schema is up to date")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := mg.Version()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	m.logger.Info().Uint("version", version).Bool("dirty", dirty).Msg("Database migrations applied")
	return nil
}

func closeMigrate(mg *migrate.Migrate, logger zerolog.Logger) {
	srcErr, dbErr := mg.Close()
	if srcErr != nil {
		logger.Warn().Err(srcErr).Msg("Failed to close migration source")
	}
	if dbErr != nil {
		logger.Warn().Err(dbErr).Msg("Failed to close migration database")
	}
}

// migrateLogger adapts zerolog to migrate.Logger
type migrateLogger struct {
	logger zerolog.Logger
}

func (l migrateLogger) Printf(format string, v ...interface{}) {
	l.logger.Debug().Msgf(format, v...)
}

func (l migrateLogger) Verbose() bool {
	return l.logger.GetLevel() <= zerolog.DebugLevel
}
