// Package repomanager vends repositories bound to a dbx.DBTX, so services can
// use the same code path inside and outside transactions.
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

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	ResetTokens(db dbx.DBTX) resettokens.Repository
	Movies(db dbx.DBTX) movies.Repository
	Favorites(db dbx.DBTX) favorites.Repository
}
