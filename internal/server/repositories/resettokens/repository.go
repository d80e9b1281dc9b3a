// Package resettokens stores one-time password reset tokens.
package resettokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/moviedeck/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, t *models.ResetToken) error
	// Find returns common.ErrNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.ResetToken, error)
	// Delete consumes a token and reports whether it was present.
	Delete(ctx context.Context, token string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
