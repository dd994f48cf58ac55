// Package dbtest provides a migrated in-memory database for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/dougladias/Clinica-vida-plena-sub000/internal/config"
	"github.com/dougladias/Clinica-vida-plena-sub000/internal/database"
)

// New opens a fresh in-memory SQLite database with every table migrated.
// The database is closed when the test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := &config.Config{DBDriver: config.DriverSQLite, SQLitePath: ":memory:"}
	db, err := database.Open(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}
