package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/moviedeck/internal/dbx"
	"github.com/dmitrijs2005/moviedeck/internal/server/repositories/favorites"
	"github.com/dmitrijs2005/moviedeck/internal/server/repositories/movies"
	"github.com/dmitrijs2005/moviedeck/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/moviedeck/internal/server/repositories/resettokens"
	"github.com/dmitrijs2005/moviedeck/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory. The handle
// passed to each factory is ignored; pair it with dbx.NopStore.
type MemoryRepositoryManager struct {
	users         *users.MemoryRepository
	refreshTokens *refreshtokens.MemoryRepository
	resetTokens   *resettokens.MemoryRepository
	movies        *movies.MemoryRepository
	favorites     *favorites.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:         users.NewMemoryRepository(),
		refreshTokens: refreshtokens.NewMemoryRepository(),
		resetTokens:   resettokens.NewMemoryRepository(),
		movies:        movies.NewMemoryRepository(),
		favorites:     favorites.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *MemoryRepositoryManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository {
	return m.refreshTokens
}

func (m *MemoryRepositoryManager) ResetTokens(dbx.DBTX) resettokens.Repository {
	return m.resetTokens
}

func (m *MemoryRepositoryManager) Movies(dbx.DBTX) movies.Repository { return m.movies }

func (m *MemoryRepositoryManager) Favorites(dbx.DBTX) favorites.Repository { return m.favorites }
