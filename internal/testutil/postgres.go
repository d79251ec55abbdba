//go:build integration

package testutil

import (
	"io"
	"os"
	"testing"

	"github.com/sangkips/ledger-api/internal/config"
	"github.com/sangkips/ledger-api/internal/infrastructure/database"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewPostgresDB connects to the PostgreSQL database named by the DB_* variables and
// migrates it. Tests share the database and keep apart by using fresh tenant ids.
func NewPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	if os.Getenv("DB_HOST") == "" {
		t.Skip("DB_HOST not set")
	}

	cfg := config.Load()
	if cfg.Database.MaxOpenConns < 8 {
		cfg.Database.MaxOpenConns = 8
	}
	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := database.NewPostgresDB(&cfg.Database, log)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}
