package movies

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/moviedeck/internal/common"
	"github.com/dmitrijs2005/moviedeck/internal/server/models"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	movies map[string]models.Movie
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{movies: make(map[string]models.Movie)}
}

func byTitle(a, b *models.Movie) int {
	return cmp.Or(cmp.Compare(a.Title, b.Title), cmp.Compare(a.ID, b.ID))
}

func (r *MemoryRepository) collect(match func(models.Movie) bool) []*models.Movie {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*models.Movie
	for _, m := range r.movies {
		if match(m) {
			c := m
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, byTitle)
	return out
}

func (r *MemoryRepository) List(context.Context) ([]*models.Movie, error) {
	return r.collect(func(models.Movie) bool { return true }), nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.movies[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &m, nil
}

func (r *MemoryRepository) GetByIDs(_ context.Context, ids []string) ([]*models.Movie, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.collect(func(m models.Movie) bool { return slices.Contains(ids, m.ID) }), nil
}

func (r *MemoryRepository) SearchTitlePrefix(_ context.Context, prefix string) ([]*models.Movie, error) {
	return r.collect(func(m models.Movie) bool {
		t := strings.ToLower(m.Title)
		return strings.HasPrefix(t, prefix) || strings.Contains(t, " "+prefix)
	}), nil
}

func (r *MemoryRepository) Create(_ context.Context, m *models.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.movies[m.ID]; ok {
		return common.ErrAlreadyExists
	}
	m.CreatedAt = time.Now()
	r.movies[m.ID] = *m
	return nil
}

func (r *MemoryRepository) UpsertMany(_ context.Context, ms []*models.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, m := range ms {
		c := *m
		if prev, ok := r.movies[m.ID]; ok {
			c.CreatedAt = prev.CreatedAt
			c.CreatedBy = prev.CreatedBy
		} else {
			c.CreatedAt = now
		}
		r.movies[m.ID] = c
	}
	return nil
}
