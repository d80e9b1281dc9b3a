package client

import (
	"context"

	"github.com/dmitrijs2005/moviedeck/internal/client/models"
)

// Client is the transport contract between the CLI facades and the
// MovieDeck backend.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	SignUp(ctx context.Context, email, password, displayName string) (*models.AuthResult, error)
	SignIn(ctx context.Context, email, password string) (*models.AuthResult, error)
	SignInFederated(ctx context.Context, idToken string) (*models.AuthResult, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
	SignOut(ctx context.Context) error
	GetProfile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, displayName string) (*models.Identity, error)

	ListMovies(ctx context.Context) ([]models.CatalogEntry, error)
	GetMovie(ctx context.Context, id string) (*models.CatalogEntry, error)
	SearchMovies(ctx context.Context, query string) ([]models.CatalogEntry, error)
	ListFavorites(ctx context.Context, userID string) ([]models.CatalogEntry, error)
	SetFavorite(ctx context.Context, userID, movieID string, isFavorite bool) (bool, error)
	SeedCatalog(ctx context.Context) (int, error)
	AddMovie(ctx context.Context, in models.NewCatalogEntry) (*models.CatalogEntry, error)
	CreatePosterUpload(ctx context.Context, contentType string) (*models.PosterUpload, error)
}
