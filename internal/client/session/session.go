// Package session holds the identity of the signed-in user for the lifetime
// of a CLI process.
package session

import (
	"slices"
	"sync"

	"github.com/dmitrijs2005/moviedeck/internal/client/models"
)

// Holder is the last-known identity reported by the identity provider.
// It is created once per process and passed to whoever needs it.
type Holder struct {
	mu      sync.RWMutex
	current *models.Identity
}

func NewHolder() *Holder {
	return &Holder{}
}

// Current returns a copy of the signed-in identity, or nil.
func (h *Holder) Current() *models.Identity {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.current == nil {
		return nil
	}
	id := *h.current
	id.FavoriteIDs = slices.Clone(h.current.FavoriteIDs)
	return &id
}

// UserID returns the signed-in user's id, or "" when signed out.
func (h *Holder) UserID() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.current == nil {
		return ""
	}
	return h.current.ID
}

func (h *Holder) Set(id models.Identity) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id.FavoriteIDs = slices.Clone(id.FavoriteIDs)
	h.current = &id
}

// SetFavorite keeps the cached favoriteIds in step with a confirmed toggle.
func (h *Holder) SetFavorite(entryID string, on bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return
	}
	i := slices.Index(h.current.FavoriteIDs, entryID)
	switch {
	case on && i < 0:
		h.current.FavoriteIDs = append(h.current.FavoriteIDs, entryID)
		slices.Sort(h.current.FavoriteIDs)
	case !on && i >= 0:
		h.current.FavoriteIDs = slices.Delete(h.current.FavoriteIDs, i, i+1)
	}
}

// SignOut forgets the local identity.
func (h *Holder) SignOut() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = nil
}
