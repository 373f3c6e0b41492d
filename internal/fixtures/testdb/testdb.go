// Package testdb opens a migrated in-memory SQLite database for service
// tests.
package testdb

import (
	"testing"

	"github.com/amirasaad/finance-tracker/infra"
	infrarepo "github.com/amirasaad/finance-tracker/infra/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns a fresh migrated database closed at test cleanup.
func New(tb testing.TB) *gorm.DB {
	tb.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(tb, err)
	sqlDB, err := db.DB()
	require.NoError(tb, err)
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(tb, infra.Migrate(db))
	return db
}

// NewUoW is New wrapped in a unit of work.
func NewUoW(tb testing.TB) *infrarepo.UoW {
	return infrarepo.NewUoW(New(tb))
}
