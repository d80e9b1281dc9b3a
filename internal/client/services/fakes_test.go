package services

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/dmitrijs2005/moviedeck/internal/client/client"
	"github.com/dmitrijs2005/moviedeck/internal/client/models"
	"github.com/dmitrijs2005/moviedeck/internal/client/repositories/prefs"
	"github.com/dmitrijs2005/moviedeck/internal/common"
	"github.com/stretchr/testify/require"
)

// fakeClient is an in-memory client.Client. Fields ending in Err force a
// failure of the matching call.
type fakeClient struct {
	identity models.Identity
	movies   []models.CatalogEntry
	favs     map[string]map[string]bool

	AuthErr    error
	SignOutErr error
	SeedErr    error
	UploadErr  error

	SeedCalls     int
	SignOutCalls  int
	LastSearch    string
	LastUploadCT  string
	RemoteFetches int
}

func newFakeClient() *fakeClient {
	return &fakeClient{favs: map[string]map[string]bool{}}
}

func (f *fakeClient) auth() (*models.AuthResult, error) {
	if f.AuthErr != nil {
		return nil, f.AuthErr
	}
	return &models.AuthResult{Identity: f.identity}, nil
}

func (f *fakeClient) Close() error                 { return nil }
func (f *fakeClient) Ping(ctx context.Context) error { return nil }

func (f *fakeClient) SignUp(ctx context.Context, email, password, displayName string) (*models.AuthResult, error) {
	f.identity = models.Identity{ID: "u-" + email, Email: email, DisplayName: displayName, FavoriteIDs: []string{}}
	res, err := f.auth()
	if res != nil {
		res.IsNewUser = true
	}
	return res, err
}

func (f *fakeClient) SignIn(ctx context.Context, email, password string) (*models.AuthResult, error) {
	return f.auth()
}

func (f *fakeClient) SignInFederated(ctx context.Context, idToken string) (*models.AuthResult, error) {
	return f.auth()
}

func (f *fakeClient) RequestPasswordReset(ctx context.Context, email string) error { return f.AuthErr }

func (f *fakeClient) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	return f.AuthErr
}

func (f *fakeClient) SignOut(ctx context.Context) error {
	f.SignOutCalls++
	return f.SignOutErr
}

func (f *fakeClient) GetProfile(ctx context.Context) (*models.Profile, error) {
	if f.AuthErr != nil {
		return nil, f.AuthErr
	}
	return &models.Profile{Identity: f.identity, FavoritesCount: len(f.identity.FavoriteIDs)}, nil
}

func (f *fakeClient) UpdateProfile(ctx context.Context, displayName string) (*models.Identity, error) {
	if f.AuthErr != nil {
		return nil, f.AuthErr
	}
	f.identity.DisplayName = displayName
	id := f.identity
	return &id, nil
}

func (f *fakeClient) ListMovies(ctx context.Context) ([]models.CatalogEntry, error) {
	f.RemoteFetches++
	return slices.Clone(f.movies), nil
}

func (f *fakeClient) GetMovie(ctx context.Context, id string) (*models.CatalogEntry, error) {
	for _, m := range f.movies {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, common.E(common.KindNotFound, "GetMovie", nil)
}

func (f *fakeClient) SearchMovies(ctx context.Context, query string) ([]models.CatalogEntry, error) {
	f.LastSearch = query
	var out []models.CatalogEntry
	for _, m := range f.movies {
		if strings.Contains(strings.ToLower(m.Title), strings.ToLower(query)) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeClient) ListFavorites(ctx context.Context, userID string) ([]models.CatalogEntry, error) {
	var out []models.CatalogEntry
	for _, m := range f.movies {
		if f.favs[userID][m.ID] {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeClient) SetFavorite(ctx context.Context, userID, movieID string, isFavorite bool) (bool, error) {
	if f.favs[userID] == nil {
		f.favs[userID] = map[string]bool{}
	}
	if isFavorite {
		f.favs[userID][movieID] = true
	} else {
		delete(f.favs[userID], movieID)
	}
	return isFavorite, nil
}

func (f *fakeClient) SeedCatalog(ctx context.Context) (int, error) {
	f.SeedCalls++
	if f.SeedErr != nil {
		return 0, f.SeedErr
	}
	f.movies = []models.CatalogEntry{
		{ID: "inception", Title: "Inception", ReleaseYear: 2010, Rating: 8.8},
		{ID: "the_matrix", Title: "The Matrix", ReleaseYear: 1999, Rating: 8.7},
	}
	return 10, nil
}

func (f *fakeClient) AddMovie(ctx context.Context, in models.NewCatalogEntry) (*models.CatalogEntry, error) {
	e := models.CatalogEntry{ID: "added", Title: in.Title, ReleaseYear: in.ReleaseYear, Rating: in.Rating, ImageURL: in.ImageURL}
	f.movies = append(f.movies, e)
	return &e, nil
}

func (f *fakeClient) CreatePosterUpload(ctx context.Context, contentType string) (*models.PosterUpload, error) {
	f.LastUploadCT = contentType
	if f.UploadErr != nil {
		return nil, f.UploadErr
	}
	return &models.PosterUpload{Key: "movie_posters/k", UploadURL: "https://upload", PublicURL: "https://cdn/movie_posters/k"}, nil
}

var _ client.Client = (*fakeClient)(nil)

func setupPrefs(t *testing.T) *prefs.SQLiteRepository {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return prefs.NewSQLiteRepository(db)
}
