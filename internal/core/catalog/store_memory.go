// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"

	"github.com/openreader/storefront/internal/platform/apperr"
)

// MemoryRepository serves a [Dataset] from memory.
//
// It is safe for concurrent use because the dataset is never mutated.
type MemoryRepository struct {
	dataset       *Dataset
	booksByID     map[string]int
	reviewsByBook map[string][]Review
}

// NewMemoryRepository indexes dataset for lookups.
func NewMemoryRepository(dataset *Dataset) *MemoryRepository {
	booksByID := make(map[string]int, len(dataset.Books))
	for index, book := range dataset.Books {
		booksByID[book.ID] = index
	}

	reviewsByBook := make(map[string][]Review)
	for _, review := range dataset.Reviews {
		reviewsByBook[review.BookID] = append(reviewsByBook[review.BookID], review)
	}

	return &MemoryRepository{
		dataset:       dataset,
		booksByID:     booksByID,
		reviewsByBook: reviewsByBook,
	}
}

func (repository *MemoryRepository) ListBooks(_ context.Context) ([]Book, error) {
	return repository.dataset.Books, nil
}

func (repository *MemoryRepository) FindBook(_ context.Context, id string) (*Book, error) {
	index, ok := repository.booksByID[id]
	if !ok {
		return nil, apperr.NotFound("Book")
	}

	book := repository.dataset.Books[index]
	return &book, nil
}

func (repository *MemoryRepository) ListCategories(_ context.Context) ([]Category, error) {
	return repository.dataset.Categories, nil
}

func (repository *MemoryRepository) ListReviews(_ context.Context, bookID string) ([]Review, error) {
	return repository.reviewsByBook[bookID], nil
}
