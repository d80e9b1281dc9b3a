// Package refreshtokens stores the server-side half of refresh tokens.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/moviedeck/internal/server/models"
)

type Repository interface {
	// Create stores a token for userID expiring at now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find returns common.ErrNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes one token and reports whether it was present.
	// Of two concurrent deletes of the same token only one reports true.
	Delete(ctx context.Context, token string) (bool, error)

	// DeleteByUser revokes every token of a user.
	DeleteByUser(ctx context.Context, userID string) error

	// DeleteExpired purges tokens that expired before now and reports how many.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
