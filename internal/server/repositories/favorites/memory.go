package favorites

import (
	"context"
	"maps"
	"sync"

	"github.com/dmitrijs2005/moviedeck/internal/server/models"
)

type MemoryRepository struct {
	mu   sync.Mutex
	docs map[string]models.Favorites
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{docs: make(map[string]models.Favorites)}
}

func (r *MemoryRepository) Get(_ context.Context, userID string) (models.Favorites, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[userID]
	if !ok {
		return nil, nil
	}
	return maps.Clone(doc), nil
}

func (r *MemoryRepository) doc(userID string) models.Favorites {
	doc, ok := r.docs[userID]
	if !ok {
		doc = models.Favorites{}
		r.docs[userID] = doc
	}
	return doc
}

func (r *MemoryRepository) Set(_ context.Context, userID, movieID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doc(userID)[movieID] = true
	return nil
}

func (r *MemoryRepository) Unset(_ context.Context, userID, movieID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.doc(userID), movieID)
	return nil
}
