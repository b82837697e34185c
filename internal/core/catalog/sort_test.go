// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openreader/storefront/internal/core/catalog"
)

func ids(books []catalog.Book) []string {
	out := make([]string, 0, len(books))
	for _, book := range books {
		out = append(out, book.ID)
	}
	return out
}

func TestSortBooks_Popular(t *testing.T) {
	books := []catalog.Book{
		{ID: "a", ReviewsCount: 5},
		{ID: "b", ReviewsCount: 50},
		{ID: "c", ReviewsCount: 5},
		{ID: "d", ReviewsCount: 20},
	}

	sorted := catalog.SortBooks(books, catalog.SortPopular)

	assert.Equal(t, []string{"b", "d", "a", "c"}, ids(sorted))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(books), "input must not be mutated")
}

func TestSortBooks_RatingStable(t *testing.T) {
	books := []catalog.Book{
		{ID: "a", Rating: catalog.Rating{Average: 4.5, Votes: 10}},
		{ID: "b", Rating: catalog.Rating{Average: 4.8, Votes: 3}},
		{ID: "c", Rating: catalog.Rating{Average: 4.5, Votes: 30}},
		{ID: "d", Rating: catalog.Rating{Average: 4.5, Votes: 10}},
		{ID: "e", Rating: catalog.Rating{Average: 4.5, Votes: 10}},
	}

	sorted := catalog.SortBooks(books, catalog.SortRating)

	// a, d, e tie on (average, votes) and keep their input order.
	assert.Equal(t, []string{"b", "c", "a", "d", "e"}, ids(sorted))
}

func TestSortBooks_New(t *testing.T) {
	books := []catalog.Book{
		{ID: "undated"},
		{ID: "old", PublishedAt: "1999-01-01T00:00:00Z"},
		{ID: "garbage", PublishedAt: "not a date"},
		{ID: "recent", PublishedAt: "2024-05-01"},
	}

	sorted := catalog.SortBooks(books, catalog.SortNew)

	assert.Equal(t, []string{"recent", "old", "undated", "garbage"}, ids(sorted))
}

func TestSortBooks_NewBeforeEpoch(t *testing.T) {
	books := []catalog.Book{
		{ID: "undated"},
		{ID: "classic", PublishedAt: "1866-01-01"},
		{ID: "modern", PublishedAt: "1967-05-30"},
	}

	sorted := catalog.SortBooks(books, catalog.SortNew)

	assert.Equal(t, []string{"modern", "classic", "undated"}, ids(sorted))
}

func TestSortBooks_UnknownFallsBackToPopular(t *testing.T) {
	books := []catalog.Book{{ID: "a", ReviewsCount: 1}, {ID: "b", ReviewsCount: 2}}
	assert.Equal(t, []string{"b", "a"}, ids(catalog.SortBooks(books, "random")))
}

func TestSortBooks_Empty(t *testing.T) {
	sorted := catalog.SortBooks(nil, catalog.SortNew)
	assert.NotNil(t, sorted)
	assert.Empty(t, sorted)
}
