package products

import (
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Product rows use Postgres text[] columns, so repository tests need a real
// Postgres database rather than the in-memory sqlite used elsewhere.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("HADYSHOP_TEST_DB_DSN")
	if dsn == "" {
		t.Skip("HADYSHOP_TEST_DB_DSN is not set")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return conn
}
