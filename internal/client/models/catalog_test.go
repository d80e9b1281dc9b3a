package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDs(t *testing.T) {
	got := IDs([]CatalogEntry{{ID: "b"}, {ID: "a"}})
	assert.Equal(t, []string{"b", "a"}, got)
	assert.Empty(t, IDs(nil))
}
