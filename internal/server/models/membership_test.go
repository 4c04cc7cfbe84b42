package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetKind_Table(t *testing.T) {
	assert.Equal(t, "favorites", SetFavorites.Table())
	assert.Equal(t, "watches", SetWatchlist.Table())
	assert.Panics(t, func() { SetKind("bogus").Table() })
}

func TestSetKind_Valid(t *testing.T) {
	assert.True(t, SetFavorites.Valid())
	assert.True(t, SetWatchlist.Valid())
	assert.False(t, SetKind("").Valid())
}
