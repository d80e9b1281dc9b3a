// Package favorites stores the per-user favorites document, a JSON object
// mapping movie id to a favorite flag.
package favorites

import (
	"context"

	"github.com/dmitrijs2005/moviedeck/internal/server/models"
)

type Repository interface {
	// Get returns the user's document, or (nil, nil) if it was never created.
	Get(ctx context.Context, userID string) (models.Favorites, error)
	// Set creates the document if needed and sets movieID to true.
	Set(ctx context.Context, userID, movieID string) error
	// Unset creates the document if needed and removes movieID from it.
	Unset(ctx context.Context, userID, movieID string) error
}
