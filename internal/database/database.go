// Package database opens the shared *gorm.DB and brings its schema up to date.
package database

import (
	"embed"
	"errors"
	"fmt"

	"taskboard/internal/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// Open connects with the configured driver and applies pending migrations.
// The caller owns the returned handle and closes it on shutdown.
func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	var (
		dialector    gorm.Dialector
		migrationDir string
		migrationURL string
	)
	switch cfg.DBDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.PostgresDSN())
		migrationDir = "migrations/postgres"
		migrationURL = cfg.PostgresURL()
	case config.DriverSQLite:
		// Cascading deletes need foreign keys switched on per connection.
		dialector = sqlite.Open(cfg.SQLitePath + "?_foreign_keys=on")
		migrationDir = "migrations/sqlite"
		migrationURL = "sqlite3://" + cfg.SQLitePath + "?_foreign_keys=on"
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	if err := migrateUp(migrationDir, migrationURL); err != nil {
		return nil, fmt.Errorf("migrate %s: %w", cfg.DBDriver, err)
	}
	log.Info("Database schema is up to date", zap.String("driver", cfg.DBDriver))

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(gormLogLevel(cfg.IsProduction())),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.DBDriver, err)
	}
	log.Info("Connected to database", zap.String("driver", cfg.DBDriver))

	return db, nil
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func migrateUp(dir, url string) error {
	src, err := iofs.New(migrations, dir)
	if err != nil {
		return err
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func gormLogLevel(production bool) logger.LogLevel {
	if production {
		return logger.Error
	}
	return logger.Warn
}
