package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	a, err := MakeRandHexString(32)
	require.NoError(t, err)
	assert.Len(t, a, 64)
	_, err = hex.DecodeString(a)
	assert.NoError(t, err)

	b, err := MakeRandHexString(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "reset and refresh tokens must not repeat")

	empty, err := MakeRandHexString(0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestWipeByteArray(t *testing.T) {
	pw := []byte("secret1")
	WipeByteArray(pw)
	assert.Equal(t, make([]byte, 7), pw)

	assert.NotPanics(t, func() { WipeByteArray(nil) })
}

func TestChunk(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}

	got := Chunk(ids, FavoritesBatchSize)
	require.Len(t, got, 2)
	assert.Len(t, got[0], FavoritesBatchSize)
	assert.Equal(t, []string{"k", "l"}, got[1])

	assert.Equal(t, [][]int{{1, 2}, {3}}, Chunk([]int{1, 2, 3}, 2))
	assert.Nil(t, Chunk([]int{}, 3))
	assert.Nil(t, Chunk([]int{1, 2}, 0))
}
