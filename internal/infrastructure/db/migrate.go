package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrationSource exposes the embedded schema migrations.
func MigrationSource() (source.Driver, error) {
	return iofs.New(migrationFiles, "migrations")
}

// Migrate applies every pending up migration to the MySQL database behind
// sqlDB. Running it on an up-to-date schema is a no-op.
func Migrate(sqlDB *sql.DB, dbName string) error {
	src, err := MigrationSource()
	if err != nil {
		return fmt.Errorf("migrations source: %w", err)
	}
	driver, err := migratemysql.WithInstance(sqlDB, &migratemysql.Config{DatabaseName: dbName})
	if err != nil {
		return fmt.Errorf("migrations driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, dbName, driver)
	if err != nil {
		return fmt.Errorf("migrations init: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrations up: %w", err)
	}
	return nil
}
