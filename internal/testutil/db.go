// Package testutil holds helpers shared by package tests.
package testutil

import (
	"io"
	"log/slog"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rentapp_backend/internal/model"
	"rentapp_backend/pkg/database"
)

// DiscardLogger drops everything; tests assert on behaviour, not log lines.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewTestDB returns a migrated in-memory SQLite database with foreign keys on.
// A single connection keeps every query on the same in-memory database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), database.GormConfig(DiscardLogger()))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.MigrateDatabase(db, DiscardLogger(), model.AllModels()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}
