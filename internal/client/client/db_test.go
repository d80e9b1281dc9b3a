package client

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestInitDatabase_CreatesPrefsTable(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "app.db")

	db, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	assert.True(t, tableExists(t, db, "goose_db_version"))
	assert.True(t, tableExists(t, db, "prefs"))

	var v string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT value FROM prefs WHERE key = 'is_first_run'`).Scan(&v))
	assert.Equal(t, "true", v)
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "app.db")

	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	_, err = db.ExecContext(ctx, `UPDATE prefs SET value = 'false' WHERE key = 'is_first_run'`)
	require.NoError(t, err)
	require.NoError(t, RunMigrations(ctx, db))

	var v string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT value FROM prefs WHERE key = 'is_first_run'`).Scan(&v))
	assert.Equal(t, "false", v)
}
