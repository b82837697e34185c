// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/openreader/storefront/pkg/pagination"
	"github.com/openreader/storefront/pkg/query"
)

// # Service Layer

// Service implements catalog discovery over a read-only [Repository].
//
// Search lowercasing and tag collation follow the configured catalog locale.
type Service struct {
	repo   Repository
	locale language.Tag

	tagsMu sync.Mutex
	tags   map[string][]string
}

// NewService constructs a catalog [Service].
//
// locale is a BCP 47 tag such as "ru"; unknown tags fall back to root rules.
func NewService(repo Repository, locale string) *Service {
	return &Service{
		repo:   repo,
		locale: language.Make(locale),
		tags:   make(map[string][]string),
	}
}

// # Book Listing

/*
ListBooks returns one page of books matching params.

Description: Filters are conjunctive: category membership, a case-insensitive
substring search over title and author names, and tags (a book must carry
every requested tag). The filtered set is sorted, then cut at the cursor.
Special categories drop the membership filter and impose their own sort.

Parameters:
  - context: context.Context
  - params: BookQuery

Returns:
  - pagination.Page[Book]: Items plus NextCursor when more remain
  - error: Repository failures
*/
func (service *Service) ListBooks(context context.Context, params BookQuery) (pagination.Page[Book], error) {
	books, err := service.repo.ListBooks(context)
	if err != nil {
		return pagination.Page[Book]{}, err
	}

	sort := params.Sort
	categoryID := strings.TrimSpace(params.CategoryID)
	if fixed, ok := specialSort(categoryID); ok {
		sort = fixed
		categoryID = ""
	}

	lower := cases.Lower(service.locale)
	search := lower.String(strings.TrimSpace(params.Search))
	tags := normaliseTags(params.Tags)

	filtered := make([]Book, 0, len(books))
	for _, book := range books {
		if categoryID != "" && !book.InCategory(categoryID) {
			continue
		}
		if search != "" && !matchesSearch(lower, book, search) {
			continue
		}
		if len(tags) > 0 && !book.HasAllTags(tags) {
			continue
		}
		filtered = append(filtered, book)
	}

	return pagination.Slice(SortBooks(filtered, sort), params.Cursor, params.Limit), nil
}

func matchesSearch(lower cases.Caser, book Book, search string) bool {
	if strings.Contains(lower.String(book.Title), search) {
		return true
	}
	for _, author := range book.Authors {
		if strings.Contains(lower.String(author), search) {
			return true
		}
	}
	return false
}

func normaliseTags(tags []string) []string {
	trimmed := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			trimmed = append(trimmed, tag)
		}
	}
	return query.Dedupe(trimmed)
}

// # Book Detail

/*
GetBook fetches a single book by exact id.

Returns:
  - *Book: The book
  - error: NOT_FOUND when no book has that id
*/
func (service *Service) GetBook(context context.Context, id string) (*Book, error) {
	return service.repo.FindBook(context, id)
}

/*
ListReviews returns one page of a book's reviews, newest first.

Unknown books simply have no reviews.
*/
func (service *Service) ListReviews(context context.Context, bookID, cursor string, limit int) (pagination.Page[Review], error) {
	reviews, err := service.repo.ListReviews(context, bookID)
	if err != nil {
		return pagination.Page[Review]{}, err
	}

	sorted := slices.Clone(reviews)
	slices.SortStableFunc(sorted, func(a, b Review) int {
		return cmp.Compare(publishedUnix(b.CreatedAt), publishedUnix(a.CreatedAt))
	})

	return pagination.Slice(sorted, cursor, limit), nil
}

// # Categories

/*
ListCategories returns the special categories followed by the real ones.

Parameters:
  - context: context.Context
  - search: Optional case-insensitive match against title or slug

Returns:
  - []Category: Never nil
  - error: Repository failures
*/
func (service *Service) ListCategories(context context.Context, search string) ([]Category, error) {
	categories, err := service.repo.ListCategories(context)
	if err != nil {
		return nil, err
	}

	books, err := service.repo.ListBooks(context)
	if err != nil {
		return nil, err
	}

	all := append(specialCategories(len(books)), categories...)

	lower := cases.Lower(service.locale)
	needle := lower.String(strings.TrimSpace(search))
	if needle == "" {
		return all, nil
	}

	matched := make([]Category, 0, len(all))
	for _, category := range all {
		if strings.Contains(lower.String(category.Title), needle) || strings.Contains(lower.String(category.Slug), needle) {
			matched = append(matched, category)
		}
	}

	return matched, nil
}

/*
CategoryTags returns the distinct tags of a category's books in collation order.

Description: The full sorted list is computed once per category id and kept
for the life of the process; unknown ids yield an empty list and are not
cached. limit, when positive, truncates the result
returned to the caller; the cached list is never truncated. Special
categories aggregate over the whole catalog.

Parameters:
  - context: context.Context
  - categoryID: string
  - limit: int (0 means no truncation)

Returns:
  - []string: Tags, never nil
  - error: Repository failures
*/
func (service *Service) CategoryTags(context context.Context, categoryID string, limit int) ([]string, error) {
	service.tagsMu.Lock()
	defer service.tagsMu.Unlock()

	tags, cached := service.tags[categoryID]
	if !cached {
		known, err := service.knownCategory(context, categoryID)
		if err != nil {
			return nil, err
		}
		if !known {
			return []string{}, nil
		}

		books, err := service.repo.ListBooks(context)
		if err != nil {
			return nil, err
		}

		tags = service.aggregateTags(books, categoryID)
		service.tags[categoryID] = tags
	}

	if limit > 0 && limit < len(tags) {
		tags = tags[:limit]
	}

	return slices.Clone(tags), nil
}

// knownCategory reports whether categoryID is special or present in the
// repository. Only known ids enter the tag cache.
func (service *Service) knownCategory(context context.Context, categoryID string) (bool, error) {
	if _, special := specialSort(categoryID); special {
		return true, nil
	}

	categories, err := service.repo.ListCategories(context)
	if err != nil {
		return false, err
	}

	return slices.ContainsFunc(categories, func(category Category) bool {
		return category.ID == categoryID
	}), nil
}

func (service *Service) aggregateTags(books []Book, categoryID string) []string {
	_, special := specialSort(categoryID)

	var tags []string
	for _, book := range books {
		if special || book.InCategory(categoryID) {
			tags = append(tags, book.Tags...)
		}
	}

	tags = query.Dedupe(tags)
	if tags == nil {
		tags = []string{}
	}

	collate.New(service.locale).SortStrings(tags)
	return tags
}
