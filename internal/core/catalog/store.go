// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "context"

// # Catalog Data Access

// Repository defines the read-only data access contract for the catalog.
//
// Implementations return shared slices; callers must not mutate them.
type Repository interface {

	/*
		ListBooks returns every book in fixture order.

		Parameters:
		  - context: context.Context

		Returns:
		  - []Book: The full collection
		  - error: Retrieval failures
	*/
	ListBooks(context context.Context) ([]Book, error)

	/*
		FindBook returns the book with the exact given id.

		Returns:
		  - *Book: A copy of the record
		  - error: apperr NOT_FOUND when missing
	*/
	FindBook(context context.Context, id string) (*Book, error)

	// ListCategories returns the real (non-virtual) categories.
	ListCategories(context context.Context) ([]Category, error)

	// ListReviews returns every review of a book, unordered.
	ListReviews(context context.Context, bookID string) ([]Review, error)
}
