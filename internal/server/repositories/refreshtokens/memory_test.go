package refreshtokens

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/moviedeck/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, "u1", "live", time.Hour))
	require.NoError(t, r.Create(ctx, "u1", "stale", -time.Minute))
	require.NoError(t, r.Create(ctx, "u2", "other", time.Hour))

	got, err := r.Find(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)

	n, err := r.DeleteExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, r.DeleteByUser(ctx, "u1"))
	_, err = r.Find(ctx, "live")
	assert.ErrorIs(t, err, common.ErrNotFound)

	deleted, err := r.Delete(ctx, "other")
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = r.Delete(ctx, "other")
	require.NoError(t, err)
	assert.False(t, deleted)
	_, err = r.Find(ctx, "other")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
