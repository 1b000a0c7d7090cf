package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/database"
)

const attendancesSchema = `
	CREATE TABLE IF NOT EXISTS attendances (
		id          BIGSERIAL PRIMARY KEY,
		employee_id TEXT NOT NULL,
		date        DATE NOT NULL,
		clock_in    TIMESTAMPTZ,
		clock_out   TIMESTAMPTZ,
		status      TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

// TestDatabaseSetup holds the connection used by repository tests
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL, skipping the test when it is unset
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if _, err := db.Exec(ctx, attendancesSchema); err != nil {
		db.Close()
		t.Fatalf("failed to create schema: %v", err)
	}

	setup := &TestDatabaseSetup{DB: db}
	t.Cleanup(setup.Close)
	return setup
}

// TruncateAllTables removes all rows from the tables the repositories read
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tables := []string{"attendances"}

	for _, table := range tables {
		if _, err := t.DB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the pool
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
