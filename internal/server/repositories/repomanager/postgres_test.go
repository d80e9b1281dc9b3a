package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/moviedeck/internal/server/repositories/favorites"
	"github.com/dmitrijs2005/moviedeck/internal/server/repositories/movies"
	"github.com/dmitrijs2005/moviedeck/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestManagers_SatisfyInterface(t *testing.T) {
	var _ RepositoryManager = NewPostgresRepositoryManager()
	var _ RepositoryManager = NewMemoryRepositoryManager()
}

func TestPostgresFactories_ReturnPostgresRepos(t *testing.T) {
	db := newDB(t)
	m := NewPostgresRepositoryManager()

	assert.IsType(t, &users.PostgresRepository{}, m.Users(db))
	assert.IsType(t, &movies.PostgresRepository{}, m.Movies(db))
	assert.IsType(t, &favorites.PostgresRepository{}, m.Favorites(db))
	assert.NotNil(t, m.RefreshTokens(db))
	assert.NotNil(t, m.ResetTokens(db))
}

func TestMemoryFactories_ShareState(t *testing.T) {
	m := NewMemoryRepositoryManager()
	ctx := context.Background()

	require.NoError(t, m.Favorites(nil).Set(ctx, "u1", "inception"))
	fav, err := m.Favorites(nil).Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, fav["inception"])
	assert.Same(t, m.Movies(nil), m.Movies(nil))
	assert.NoError(t, m.RunMigrations(ctx, nil))
}

func TestRunMigrations(t *testing.T) {
	db := newDB(t)
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	var gotDir string
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}
	require.NoError(t, NewPostgresRepositoryManager().RunMigrations(context.Background(), db))
	assert.Equal(t, ".", gotDir)

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	assert.EqualError(t, NewPostgresRepositoryManager().RunMigrations(context.Background(), db), "boom")
}
