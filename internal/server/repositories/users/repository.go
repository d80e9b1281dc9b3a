// Package users stores MovieDeck accounts.
package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/moviedeck/internal/server/models"
)

// Repository persists users. Lookups return common.ErrNotFound when the user
// is absent; Create returns common.ErrAlreadyExists on a duplicate email or
// federated subject.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByFederatedSubject(ctx context.Context, provider, subject string) (*models.User, error)
	LinkFederated(ctx context.Context, userID, provider, subject string) error
	UpdateDisplayName(ctx context.Context, userID, displayName string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID string, hash []byte) error
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error
}
