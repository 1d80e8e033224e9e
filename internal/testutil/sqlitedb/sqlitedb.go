// Package sqlitedb opens in-memory sqlite databases carrying the service
// schema, for repository and usecase tests.
package sqlitedb

import (
	"testing"

	"loan-origination/internal/domain/application"
	"loan-origination/internal/domain/audit"
	"loan-origination/internal/domain/receipt"
	"loan-origination/internal/infrastructure/db"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated database closed at test cleanup. The pool holds a
// single connection, so concurrent transactions queue behind each other.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	gdb, err := db.OpenGormWithDialector(sqlite.Open(":memory:"), db.WithPool(1, 1), db.WithLogLevel(logger.Silent))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&application.Application{}, &receipt.Receipt{}, &audit.Entry{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}
