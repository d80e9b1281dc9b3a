package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/moviedeck/internal/common"
	"github.com/dmitrijs2005/moviedeck/internal/dbx"
	"github.com/dmitrijs2005/moviedeck/internal/logging"
	"github.com/dmitrijs2005/moviedeck/internal/server/models"
	"github.com/dmitrijs2005/moviedeck/internal/server/repositories/repomanager"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// NewMovie is the input of AddMovie.
type NewMovie struct {
	Title       string  `validate:"required,max=200"`
	Description string  `validate:"max=2000"`
	ImageURL    string  `validate:"omitempty,url"`
	ReleaseYear int     `validate:"gte=1888,lte=2100"`
	Rating      float64 `validate:"gte=0,lte=10"`
}

// CatalogService serves the movie catalog and the per-user favorites
// documents. Every method that takes a viewer id marks IsFavorite for that
// viewer; an empty viewer sees no favorites.
type CatalogService struct {
	store       dbx.Store
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	validate    *validator.Validate
	newID       func() string
	now         func() time.Time
}

func NewCatalogService(store dbx.Store, m repomanager.RepositoryManager, log logging.Logger) *CatalogService {
	return &CatalogService{
		store:       store,
		repomanager: m,
		log:         log.With("module", "catalog"),
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		newID:       uuid.NewString,
		now:         time.Now,
	}
}

// ListAll returns the whole catalog ordered by title.
func (s *CatalogService) ListAll(ctx context.Context, viewerID string) ([]*models.CatalogEntry, error) {
	const op = "catalog.ListAll"

	ms, err := s.repomanager.Movies(s.store.DB()).List(ctx)
	if err != nil {
		return nil, s.internal(ctx, op, err)
	}
	fav, err := s.favoritesOf(ctx, viewerID)
	if err != nil {
		return nil, s.internal(ctx, op, err)
	}
	return s.entries(ctx, ms, fav), nil
}

// GetByID returns one entry or a KindNotFound error.
func (s *CatalogService) GetByID(ctx context.Context, viewerID, id string) (*models.CatalogEntry, error) {
	const op = "catalog.GetByID"

	m, err := s.repomanager.Movies(s.store.DB()).GetByID(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.E(common.KindNotFound, op, nil)
	}
	if err != nil {
		return nil, s.internal(ctx, op, err)
	}

	fav, err := s.favoritesOf(ctx, viewerID)
	if err != nil {
		return nil, s.internal(ctx, op, err)
	}
	out := s.entries(ctx, []*models.Movie{m}, fav)
	if len(out) == 0 {
		return nil, common.E(common.KindNotFound, op, nil)
	}
	return out[0], nil
}

// ListFavorites expands the user's favorites document. Ids are resolved in
// batches of common.FavoritesBatchSize fetched concurrently; the result keeps
// batch order. A missing document yields an empty list.
func (s *CatalogService) ListFavorites(ctx context.Context, userID string) ([]*models.CatalogEntry, error) {
	const op = "catalog.ListFavorites"

	fav, err := s.repomanager.Favorites(s.store.DB()).Get(ctx, userID)
	if err != nil {
		return nil, s.internal(ctx, op, err)
	}
	ids := fav.IDs()
	if len(ids) == 0 {
		return []*models.CatalogEntry{}, nil
	}
	slices.Sort(ids)

	batches := common.Chunk(ids, common.FavoritesBatchSize)
	results := make([][]*models.Movie, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	for i, batch := range batches {
		g.Go(func() error {
			ms, err := s.repomanager.Movies(s.store.DB()).GetByIDs(gctx, batch)
			if err != nil {
				return fmt.Errorf("batch %d: %w", i, err)
			}
			results[i] = ms
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, s.internal(ctx, op, err)
	}

	var merged []*models.Movie
	for _, ms := range results {
		merged = append(merged, ms...)
	}
	return s.entries(ctx, merged, fav), nil
}

// SetFavorite sets or clears one flag of the user's favorites document and
// returns the new flag. Clearing removes the field.
func (s *CatalogService) SetFavorite(ctx context.Context, userID, movieID string, isFavorite bool) (bool, error) {
	const op = "catalog.SetFavorite"

	if movieID == "" {
		return false, common.E(common.KindValidation, op, fmt.Errorf("%w: movie id is required", common.ErrValidation))
	}

	db := s.store.DB()
	if isFavorite {
		if _, err := s.repomanager.Movies(db).GetByID(ctx, movieID); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return false, common.E(common.KindNotFound, op, nil)
			}
			return false, s.internal(ctx, op, err)
		}
		if err := s.repomanager.Favorites(db).Set(ctx, userID, movieID); err != nil {
			return false, s.internal(ctx, op, err)
		}
		return true, nil
	}

	if err := s.repomanager.Favorites(db).Unset(ctx, userID, movieID); err != nil {
		return false, s.internal(ctx, op, err)
	}
	return false, nil
}

// Search runs a title prefix match (on the whole title or any word of it)
// and a description substring scan, both case-insensitive. Title hits come
// first; duplicates are dropped by id. Blank text yields an empty result.
func (s *CatalogService) Search(ctx context.Context, viewerID, text string) ([]*models.CatalogEntry, error) {
	const op = "catalog.Search"

	q := strings.ToLower(strings.TrimSpace(text))
	if q == "" {
		return []*models.CatalogEntry{}, nil
	}

	repo := s.repomanager.Movies(s.store.DB())
	byTitle, err := repo.SearchTitlePrefix(ctx, q)
	if err != nil {
		return nil, s.internal(ctx, op, err)
	}
	all, err := repo.List(ctx)
	if err != nil {
		return nil, s.internal(ctx, op, err)
	}

	seen := make(map[string]struct{}, len(byTitle))
	hits := make([]*models.Movie, 0, len(byTitle))
	add := func(m *models.Movie) {
		if _, ok := seen[m.ID]; ok {
			return
		}
		seen[m.ID] = struct{}{}
		hits = append(hits, m)
	}
	for _, m := range byTitle {
		add(m)
	}
	for _, m := range all {
		if strings.Contains(strings.ToLower(m.Description), q) {
			add(m)
		}
	}

	fav, err := s.favoritesOf(ctx, viewerID)
	if err != nil {
		return nil, s.internal(ctx, op, err)
	}
	return s.entries(ctx, hits, fav), nil
}

// Seed upserts the default catalog in one transaction and returns the number
// of documents written.
func (s *CatalogService) Seed(ctx context.Context) (int, error) {
	docs := SeedMovies()
	err := s.store.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Movies(tx).UpsertMany(ctx, docs)
	})
	if err != nil {
		return 0, s.internal(ctx, "catalog.Seed", err)
	}
	s.log.Info(ctx, "catalog seeded", "count", len(docs))
	return len(docs), nil
}

// AddMovie validates in and stores it under a fresh id.
func (s *CatalogService) AddMovie(ctx context.Context, userID string, in NewMovie) (*models.Movie, error) {
	const op = "catalog.AddMovie"

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if err := s.validate.Struct(in); err != nil {
		return nil, common.E(common.KindValidation, op, fmt.Errorf("%w: %v", common.ErrValidation, err))
	}

	m := &models.Movie{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		ReleaseYear: in.ReleaseYear,
		Rating:      in.Rating,
		CreatedBy:   userID,
		CreatedAt:   s.now(),
	}
	if err := s.repomanager.Movies(s.store.DB()).Create(ctx, m); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.E(common.KindAlreadyExists, op, err)
		}
		return nil, s.internal(ctx, op, err)
	}
	s.log.Info(ctx, "movie added", "movie_id", m.ID, "user_id", userID)
	return m, nil
}

func (s *CatalogService) favoritesOf(ctx context.Context, viewerID string) (models.Favorites, error) {
	if viewerID == "" {
		return nil, nil
	}
	return s.repomanager.Favorites(s.store.DB()).Get(ctx, viewerID)
}

// entries joins ms with fav. Documents that cannot be presented are logged
// and skipped.
func (s *CatalogService) entries(ctx context.Context, ms []*models.Movie, fav models.Favorites) []*models.CatalogEntry {
	out := make([]*models.CatalogEntry, 0, len(ms))
	for _, m := range ms {
		if err := checkMovie(m); err != nil {
			s.log.Warn(ctx, "skipping malformed catalog document", "movie_id", m.ID, "error", err)
			continue
		}
		out = append(out, &models.CatalogEntry{Movie: *m, IsFavorite: fav[m.ID]})
	}
	return out
}

func checkMovie(m *models.Movie) error {
	switch {
	case m.ID == "":
		return errors.New("empty id")
	case strings.TrimSpace(m.Title) == "":
		return errors.New("empty title")
	case m.Rating < 0 || m.Rating > 10:
		return fmt.Errorf("rating %v out of range", m.Rating)
	}
	return nil
}

func (s *CatalogService) internal(ctx context.Context, op string, err error) error {
	s.log.Error(ctx, "operation failed", "op", op, "error", err)
	return common.E(common.KindInternal, op, err)
}
