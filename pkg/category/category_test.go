package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, Rent, Normalize("rent"))
	assert.Equal(t, Other, Normalize("crypto"))
	assert.Equal(t, Other, Normalize(""))
}

func TestSharedForSettlement(t *testing.T) {
	assert.True(t, Rent.SharedForSettlement())
	assert.True(t, Groceries.SharedForSettlement())
	assert.False(t, Leisure.SharedForSettlement())
	// settlement transfers themselves must never re-enter the pool
	assert.False(t, Settlement.SharedForSettlement())
}

func TestAllCategoriesHaveTraits(t *testing.T) {
	for _, c := range All() {
		assert.NotEmpty(t, TraitsOf(c).DisplayGroup, "category %s has no display group", c)
	}
}
