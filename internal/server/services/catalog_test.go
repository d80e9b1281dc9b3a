package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/moviedeck/internal/common"
	"github.com/dmitrijs2005/moviedeck/internal/dbx"
	"github.com/dmitrijs2005/moviedeck/internal/logging"
	"github.com/dmitrijs2005/moviedeck/internal/server/models"
	"github.com/dmitrijs2005/moviedeck/internal/server/repositories/movies"
	"github.com/dmitrijs2005/moviedeck/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogService(t *testing.T) (*CatalogService, *repomanager.MemoryRepositoryManager) {
	t.Helper()
	rm := repomanager.NewMemoryRepositoryManager()
	return NewCatalogService(dbx.NopStore{}, rm, logging.Nop()), rm
}

func seeded(t *testing.T) (*CatalogService, *repomanager.MemoryRepositoryManager) {
	t.Helper()
	svc, rm := newCatalogService(t)
	n, err := svc.Seed(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10, n)
	return svc, rm
}

func ids(es []*models.CatalogEntry) []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.ID)
	}
	return out
}

func TestSeed_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := seeded(t)

	_, err := svc.Seed(ctx)
	require.NoError(t, err)

	all, err := svc.ListAll(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 10)

	byID := map[string]*models.CatalogEntry{}
	for _, e := range all {
		byID[e.ID] = e
	}
	for _, want := range SeedMovies() {
		got, ok := byID[want.ID]
		require.True(t, ok, want.ID)
		assert.Equal(t, want.Title, got.Title)
		assert.Equal(t, want.ReleaseYear, got.ReleaseYear)
		assert.Equal(t, want.Rating, got.Rating)
		assert.False(t, got.IsFavorite)
	}
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	svc, _ := seeded(t)

	e, err := svc.GetByID(ctx, "", "gladiator")
	require.NoError(t, err)
	assert.Equal(t, "Gladiator", e.Title)

	_, err = svc.GetByID(ctx, "", "nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, common.KindNotFound, common.KindOf(err))
}

func TestFavorites_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := seeded(t)

	on, err := svc.SetFavorite(ctx, "u1", "inception", true)
	require.NoError(t, err)
	assert.True(t, on)

	favs, err := svc.ListFavorites(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"inception"}, ids(favs))
	assert.True(t, favs[0].IsFavorite)

	all, err := svc.ListAll(ctx, "u1")
	require.NoError(t, err)
	for _, e := range all {
		assert.Equal(t, e.ID == "inception", e.IsFavorite, e.ID)
	}

	off, err := svc.SetFavorite(ctx, "u1", "inception", false)
	require.NoError(t, err)
	assert.False(t, off)

	favs, err = svc.ListFavorites(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestListFavorites_MissingDocument(t *testing.T) {
	svc, _ := seeded(t)

	favs, err := svc.ListFavorites(context.Background(), "fresh-user")
	require.NoError(t, err)
	assert.NotNil(t, favs)
	assert.Empty(t, favs)
}

func TestSetFavorite_Errors(t *testing.T) {
	ctx := context.Background()
	svc, _ := seeded(t)

	_, err := svc.SetFavorite(ctx, "u1", "unknown", true)
	assert.Equal(t, common.KindNotFound, common.KindOf(err))

	_, err = svc.SetFavorite(ctx, "u1", "", true)
	assert.Equal(t, common.KindValidation, common.KindOf(err))
}

// countingMovies records GetByIDs batch sizes.
type countingMovies struct {
	movies.Repository
	mu      sync.Mutex
	batches []int
	fail    bool
}

func (c *countingMovies) GetByIDs(ctx context.Context, ids []string) ([]*models.Movie, error) {
	c.mu.Lock()
	c.batches = append(c.batches, len(ids))
	c.mu.Unlock()
	if c.fail {
		return nil, errors.New("db down")
	}
	return c.Repository.GetByIDs(ctx, ids)
}

type countingManager struct {
	*repomanager.MemoryRepositoryManager
	movies *countingMovies
}

func (m *countingManager) Movies(dbx.DBTX) movies.Repository { return m.movies }

func TestListFavorites_Batches(t *testing.T) {
	ctx := context.Background()
	mem := repomanager.NewMemoryRepositoryManager()
	cm := &countingManager{MemoryRepositoryManager: mem, movies: &countingMovies{Repository: mem.Movies(nil)}}
	svc := NewCatalogService(dbx.NopStore{}, cm, logging.Nop())

	var docs []*models.Movie
	for i := range 23 {
		docs = append(docs, &models.Movie{ID: fmt.Sprintf("m%02d", i), Title: fmt.Sprintf("Movie %02d", i), Rating: 5})
	}
	require.NoError(t, mem.Movies(nil).UpsertMany(ctx, docs))
	for _, d := range docs {
		_, err := svc.SetFavorite(ctx, "u1", d.ID, true)
		require.NoError(t, err)
	}

	favs, err := svc.ListFavorites(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, favs, 23)
	assert.ElementsMatch(t, []int{10, 10, 3}, cm.movies.batches)
	for i, e := range favs {
		assert.Equal(t, fmt.Sprintf("m%02d", i), e.ID)
	}

	cm.movies.fail = true
	_, err = svc.ListFavorites(ctx, "u1")
	assert.Equal(t, common.KindInternal, common.KindOf(err))
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	svc, _ := seeded(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"Matrix", []string{"the_matrix"}},
		{"the", []string{"the_dark_knight", "the_godfather", "the_matrix", "the_shawshank_redemption", "forrest_gump", "gladiator", "inception", "interstellar", "pulp_fiction"}},
		{"GLAD", []string{"gladiator"}},
		{"wormhole", []string{"interstellar"}},
		{"   ", []string{}},
		{"zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := svc.Search(ctx, "", tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))

			again, err := svc.Search(ctx, "", tt.query)
			require.NoError(t, err)
			assert.Equal(t, ids(got), ids(again))
		})
	}
}

func TestEntries_SkipsMalformed(t *testing.T) {
	ctx := context.Background()
	svc, rm := newCatalogService(t)

	require.NoError(t, rm.Movies(nil).UpsertMany(ctx, []*models.Movie{
		{ID: "ok", Title: "Fine", Rating: 7},
		{ID: "bad-rating", Title: "Broken", Rating: 11},
		{ID: "no-title", Title: " ", Rating: 5},
	}))

	all, err := svc.ListAll(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, ids(all))
}

func TestAddMovie(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCatalogService(t)
	svc.newID = func() string { return "fixed-id" }

	m, err := svc.AddMovie(ctx, "u1", NewMovie{Title: " Alien ", ReleaseYear: 1979, Rating: 8.5, ImageURL: "https://example.com/a.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", m.ID)
	assert.Equal(t, "Alien", m.Title)
	assert.Equal(t, "u1", m.CreatedBy)

	got, err := svc.GetByID(ctx, "", "fixed-id")
	require.NoError(t, err)
	assert.Equal(t, "Alien", got.Title)

	_, err = svc.AddMovie(ctx, "u1", NewMovie{Title: "Alien", ReleaseYear: 1979})
	assert.Equal(t, common.KindAlreadyExists, common.KindOf(err))

	bad := []NewMovie{
		{Title: "", ReleaseYear: 2000},
		{Title: "x", ReleaseYear: 1700},
		{Title: "x", ReleaseYear: 2000, Rating: 10.5},
		{Title: "x", ReleaseYear: 2000, ImageURL: "not a url"},
	}
	for _, in := range bad {
		_, err := svc.AddMovie(ctx, "u1", in)
		assert.Equal(t, common.KindValidation, common.KindOf(err), "%+v", in)
	}
}
