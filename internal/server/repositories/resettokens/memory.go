package resettokens

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/moviedeck/internal/common"
	"github.com/dmitrijs2005/moviedeck/internal/server/models"
)

type MemoryRepository struct {
	mu     sync.Mutex
	tokens map[string]models.ResetToken
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tokens: make(map[string]models.ResetToken)}
}

func (r *MemoryRepository) Create(_ context.Context, t *models.ResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *t
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	r.tokens[t.Token] = c
	return nil
}

func (r *MemoryRepository) Find(_ context.Context, token string) (*models.ResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &t, nil
}

func (r *MemoryRepository) Delete(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tokens[token]
	delete(r.tokens, token)
	return ok, nil
}

func (r *MemoryRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, t := range r.tokens {
		if t.Expires.Before(now) {
			delete(r.tokens, k)
			n++
		}
	}
	return n, nil
}
