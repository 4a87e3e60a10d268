package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/logger"
	timeprovider "github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/time"
	coremocks "github.com/amirhossein-jamali/wager-ledger/mocks/port/core"
)

// testDB connects to the Postgres named by TEST_DB_HOST and migrates a clean
// schema. Tests using it are skipped when no database is configured.
type testDB struct {
	Manager *Manager
	DB      *gorm.DB
	UoW     *UnitOfWork
}

func newTestDB(t *testing.T) *testDB {
	t.Helper()
	return newTestDBWithIsolation(t, "serializable")
}

func newTestDBWithIsolation(t *testing.T, isolation string) *testDB {
	t.Helper()

	host, ok := os.LookupEnv("TEST_DB_HOST")
	if !ok || host == "" {
		t.Skip("TEST_DB_HOST not set; skipping Postgres integration test")
	}

	config := DefaultConfig()
	config.Host = host
	config.Port = ParsePort(getEnvOrDefault("TEST_DB_PORT", "5432"))
	config.Username = getEnvOrDefault("TEST_DB_USERNAME", "postgres")
	config.Password = getEnvOrDefault("TEST_DB_PASSWORD", "postgres")
	config.Database = getEnvOrDefault("TEST_DB_DATABASE", "wager_ledger_test")
	config.MaxOpenConns = 10
	config.MaxIdleConns = 5
	config.LogLevel = "silent"
	config.RetryAttempts = 0
	config.PoolMonitorInterval = time.Minute
	config.Isolation = isolation

	metrics := coremocks.NewMockMetrics(t)
	metrics.EXPECT().SetPoolStats(mock.Anything, mock.Anything, mock.Anything).Maybe()

	log := logger.NewNoopLogger()
	manager := NewManager(config, log, timeprovider.NewRealTimeProvider(), metrics)

	ctx := context.Background()
	db, err := manager.Connect(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = manager.Close() })

	require.NoError(t, dropAllTables(db))
	require.NoError(t, manager.Migrate(ctx))

	return &testDB{
		Manager: manager,
		DB:      db,
		UoW:     manager.CreateUnitOfWork().(*UnitOfWork),
	}
}

// dropAllTables drops all tables in the test schema
func dropAllTables(db *gorm.DB) error {
	return db.Exec(`
		DO $$ DECLARE
			r RECORD;
		BEGIN
			FOR r IN (SELECT tablename FROM pg_tables WHERE schemaname = current_schema()) LOOP
				EXECUTE 'DROP TABLE IF EXISTS ' || quote_ident(r.tablename) || ' CASCADE';
			END LOOP;
		END $$;
	`).Error
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
