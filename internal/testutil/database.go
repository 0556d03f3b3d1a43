package testutil

import (
	"database/sql"
	"testing"

	"github.com/themepulse/theme-returns-backend/internal/database"
)

// SetupTestDB creates an in-memory SQLite database with all migrations
// applied. The database is closed automatically when the test finishes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// An in-memory database lives per connection; pooling past one
	// connection would silently hand out empty databases.
	db.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}
