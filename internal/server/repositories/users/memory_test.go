package users

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/moviedeck/internal/common"
	"github.com/dmitrijs2005/moviedeck/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_Lifecycle(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	u, err := r.Create(ctx, &models.User{Email: "neo@example.com", DisplayName: "Neo"})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)

	_, err = r.Create(ctx, &models.User{Email: "neo@example.com"})
	assert.ErrorIs(t, err, common.ErrAlreadyExists)

	got, err := r.GetByEmail(ctx, "neo@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	require.NoError(t, r.LinkFederated(ctx, u.ID, "google", "sub-1"))
	got, err = r.GetByFederatedSubject(ctx, "google", "sub-1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, r.TouchLastLogin(ctx, u.ID, at))
	renamed, err := r.UpdateDisplayName(ctx, u.ID, "The One")
	require.NoError(t, err)
	assert.Equal(t, "The One", renamed.DisplayName)
	assert.Equal(t, at, *renamed.LastLoginAt)

	got.DisplayName = "mutated copy"
	again, _ := r.GetByID(ctx, u.ID)
	assert.Equal(t, "The One", again.DisplayName)

	_, err = r.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.ErrorIs(t, r.UpdatePassword(ctx, "nope", nil), common.ErrNotFound)
	_, err = r.GetByEmail(ctx, "")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
