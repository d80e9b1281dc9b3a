// Package movies stores the canonical catalog documents.
package movies

import (
	"context"

	"github.com/dmitrijs2005/moviedeck/internal/server/models"
)

// Repository persists catalog documents. Listing order is title, then id.
type Repository interface {
	List(ctx context.Context) ([]*models.Movie, error)
	// GetByID returns common.ErrNotFound for an unknown id.
	GetByID(ctx context.Context, id string) (*models.Movie, error)
	// GetByIDs resolves one batch of ids; unknown ids are silently absent.
	GetByIDs(ctx context.Context, ids []string) ([]*models.Movie, error)
	// SearchTitlePrefix matches titles, or any word in them, starting with
	// prefix. prefix must already be lower case.
	SearchTitlePrefix(ctx context.Context, prefix string) ([]*models.Movie, error)
	// Create returns common.ErrAlreadyExists when the id is taken.
	Create(ctx context.Context, m *models.Movie) error
	// UpsertMany writes every document, replacing existing ones with the same id.
	UpsertMany(ctx context.Context, ms []*models.Movie) error
}
