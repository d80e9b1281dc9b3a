package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/moviedeck/internal/client/client"
	"github.com/dmitrijs2005/moviedeck/internal/client/models"
	"github.com/dmitrijs2005/moviedeck/internal/client/session"
)

// CatalogService is the catalog facade used by the screens.
type CatalogService interface {
	ListAll(ctx context.Context) ([]models.CatalogEntry, error)
	GetByID(ctx context.Context, id string) (*models.CatalogEntry, error)
	ListFavorites(ctx context.Context, userID string) ([]models.CatalogEntry, error)
	SetFavorite(ctx context.Context, userID, entryID string, isFavorite bool) (bool, error)
	Search(ctx context.Context, text string) ([]models.CatalogEntry, error)
	SeedDefaultCatalog(ctx context.Context) (bool, error)
	Add(ctx context.Context, in models.NewCatalogEntry) (*models.CatalogEntry, error)
}

type catalogService struct {
	client  client.Client
	session *session.Holder
}

func NewCatalogService(c client.Client, s *session.Holder) CatalogService {
	return &catalogService{client: c, session: s}
}

func (s *catalogService) ListAll(ctx context.Context) ([]models.CatalogEntry, error) {
	return s.client.ListMovies(ctx)
}

// GetByID returns a KindNotFound error for an unknown id.
func (s *catalogService) GetByID(ctx context.Context, id string) (*models.CatalogEntry, error) {
	return s.client.GetMovie(ctx, id)
}

func (s *catalogService) ListFavorites(ctx context.Context, userID string) ([]models.CatalogEntry, error) {
	entries, err := s.client.ListFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].IsFavorite = true
	}
	return entries, nil
}

// SetFavorite returns the new flag and mirrors it into the session when the
// toggle is for the signed-in user.
func (s *catalogService) SetFavorite(ctx context.Context, userID, entryID string, isFavorite bool) (bool, error) {
	on, err := s.client.SetFavorite(ctx, userID, entryID, isFavorite)
	if err != nil {
		return false, err
	}
	if userID == s.session.UserID() {
		s.session.SetFavorite(entryID, on)
	}
	return on, nil
}

// Search unions title-prefix hits with description matches. Blank text is
// an empty result without a round trip.
func (s *catalogService) Search(ctx context.Context, text string) ([]models.CatalogEntry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []models.CatalogEntry{}, nil
	}
	return s.client.SearchMovies(ctx, text)
}

// SeedDefaultCatalog upserts the ten default entries.
func (s *catalogService) SeedDefaultCatalog(ctx context.Context) (bool, error) {
	n, err := s.client.SeedCatalog(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *catalogService) Add(ctx context.Context, in models.NewCatalogEntry) (*models.CatalogEntry, error) {
	return s.client.AddMovie(ctx, in)
}
