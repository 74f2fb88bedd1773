package main

import (
	"math/rand"
	"testing"

	"bookcatalog/internal/book"
	"bookcatalog/internal/platform/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBooks(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	books := generateBooks(rng, 25, 7)

	require.Len(t, books, 25)
	for i, b := range books {
		assert.Equal(t, int64(7+i), b.ID)
		require.NotNil(t, b.PublishDate)

		req := book.Request{
			Title:       b.Title,
			Author:      b.Author,
			Description: b.Description,
			PublishDate: b.PublishDate,
			Rating:      b.Rating,
		}
		assert.NoError(t, validation.Struct(req), "generated book %d must pass validation", b.ID)
	}
}

func TestGenerateBooks_Zero(t *testing.T) {
	assert.Empty(t, generateBooks(rand.New(rand.NewSource(1)), 0, 1))
}
