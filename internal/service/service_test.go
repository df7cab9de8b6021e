package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/palime/palime-api/internal/platform/sqlite"
	"github.com/stretchr/testify/require"
)

// testNow is a fixed clock for deterministic scheduling assertions.
var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestDB opens a migrated in-memory database. Services are tested
// against the real SQLite stores so transactional behavior is covered.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.MigrateUp(db))
	return db
}
