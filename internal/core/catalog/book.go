// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog defines the storefront's browsable content: books, categories
and reader reviews.

The dataset is static. It is loaded once at startup from JSON fixtures and
never mutated afterwards, which lets every read path share the same slices
without locking.

Core Responsibility:

  - Discovery: Category-scoped listings with search, tag filters and sorting.
  - Detail: Single-book lookup and paginated reviews.
  - Presentation helpers: Rating formatting and star states for clients.
*/
package catalog

// # Domain Enums

// BookSort selects the ordering of a book listing.
type BookSort string

const (
	// SortPopular orders by review count, most reviewed first.
	SortPopular BookSort = "popular"

	// SortRating orders by average rating, ties broken by vote count.
	SortRating BookSort = "rating"

	// SortNew orders by publication date, newest first.
	SortNew BookSort = "new"
)

// IsValid reports whether s is a recognised [BookSort] value.
func (s BookSort) IsValid() bool {
	switch s {
	case SortPopular, SortRating, SortNew:
		return true
	}
	return false
}

// # Domain Entities

// Rating is the aggregated reader score of a book.
type Rating struct {
	Average float64 `json:"average"`
	Votes   int     `json:"votes"`
}

// Book is a purchasable title in the catalog.
type Book struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Authors      []string `json:"authors"`
	Categories   []string `json:"categories"`
	CoverURL     string   `json:"coverUrl"`
	Description  string   `json:"description"`
	Rating       Rating   `json:"rating"`
	Tags         []string `json:"tags"`
	PublishedAt  string   `json:"publishedAt,omitempty"`
	ReviewsCount int      `json:"reviewsCount"`
	PriceStars   int      `json:"priceStars"`
}

// InCategory reports whether the book lists categoryID among its categories.
func (b Book) InCategory(categoryID string) bool {
	for _, id := range b.Categories {
		if id == categoryID {
			return true
		}
	}
	return false
}

// HasAllTags reports whether the book carries every tag in tags.
func (b Book) HasAllTags(tags []string) bool {
	for _, wanted := range tags {
		found := false
		for _, tag := range b.Tags {
			if tag == wanted {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Category groups books for browsing.
//
// Special categories are virtual: they have no membership of their own and
// only impose a fixed sort over the whole catalog.
type Category struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Emoji      string   `json:"emoji,omitempty"`
	BooksCount int      `json:"booksCount"`
	Special    bool     `json:"special,omitempty"`
	Sort       BookSort `json:"sort,omitempty"`
	Path       string   `json:"path,omitempty"`
}

// Review is a reader's opinion on a book. Reviews are append-only.
type Review struct {
	ID         string  `json:"id"`
	BookID     string  `json:"bookId"`
	AuthorName string  `json:"authorName"`
	Rating     float64 `json:"rating"`
	Text       string  `json:"text"`
	CreatedAt  string  `json:"createdAt"`
}

// # Queries

// BookQuery holds the optional criteria of a book listing.
type BookQuery struct {
	CategoryID string
	Search     string
	Sort       BookSort
	Tags       []string
	Cursor     string
	Limit      int
}

// # Special Categories

const (
	// CategoryMostRead lists the whole catalog by popularity.
	CategoryMostRead = "most-read"

	// CategoryTopRated lists the whole catalog by rating.
	CategoryTopRated = "top-rated"
)

// specialCategories returns fresh copies of the virtual categories, sized
// against a catalog of total books.
func specialCategories(total int) []Category {
	return []Category{
		{ID: CategoryMostRead, Title: "Самые читаемые", Slug: CategoryMostRead, Emoji: "📖", BooksCount: total, Special: true, Sort: SortPopular, Path: "/top/" + CategoryMostRead},
		{ID: CategoryTopRated, Title: "Самые рейтинговые", Slug: CategoryTopRated, Emoji: "⭐", BooksCount: total, Special: true, Sort: SortRating, Path: "/top/" + CategoryTopRated},
	}
}

// specialSort returns the fixed sort of a special category id.
func specialSort(categoryID string) (BookSort, bool) {
	switch categoryID {
	case CategoryMostRead:
		return SortPopular, true
	case CategoryTopRated:
		return SortRating, true
	}
	return "", false
}
