package testutil

import (
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"yatube/internal/db"
	"yatube/pkg/config"
)

// NewDB returns a migrated in-memory SQLite database that lives as long as
// the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := db.Open(&config.DatabaseConfig{Driver: "sqlite", URL: ":memory:"}, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create in memory db: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("Failed to migrate db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return conn
}
