// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/openreader/storefront/pkg/slug"
)

//go:embed fixtures/*.json
var embeddedFixtures embed.FS

// Fixture file names inside a catalog directory.
const (
	fileCategories = "categories.json"
	fileBooks      = "books.json"
	fileReviews    = "reviews.json"
)

// Dataset is the immutable catalog content.
type Dataset struct {
	Categories []Category
	Books      []Book
	Reviews    []Review
}

// bookFixture mirrors [Book] but lets the price be omitted.
type bookFixture struct {
	Book
	PriceStars *int `json:"priceStars"`
}

/*
LoadDataset reads the catalog fixtures.

Parameters:
  - dir: Directory holding categories.json, books.json and reviews.json.
    Empty loads the fixtures compiled into the binary.

Returns:
  - *Dataset: Normalised content ready for a [MemoryRepository]
  - error: Unreadable or inconsistent fixtures
*/
func LoadDataset(dir string) (*Dataset, error) {
	var source fs.FS
	if dir == "" {
		sub, err := fs.Sub(embeddedFixtures, "fixtures")
		if err != nil {
			return nil, fmt.Errorf("catalog: open embedded fixtures: %w", err)
		}
		source = sub
	} else {
		source = os.DirFS(dir)
	}

	return loadFrom(source)
}

func loadFrom(source fs.FS) (*Dataset, error) {
	var (
		categories []Category
		rawBooks   []bookFixture
		reviews    []Review
	)

	if err := readJSON(source, fileCategories, &categories); err != nil {
		return nil, err
	}
	if err := readJSON(source, fileBooks, &rawBooks); err != nil {
		return nil, err
	}
	if err := readJSON(source, fileReviews, &reviews); err != nil {
		return nil, err
	}

	books, err := normaliseBooks(rawBooks)
	if err != nil {
		return nil, err
	}

	normaliseCategories(categories, books)

	for _, review := range reviews {
		if review.ID == "" || review.BookID == "" {
			return nil, fmt.Errorf("catalog: review %q has no id or book id", review.ID)
		}
	}

	return &Dataset{Categories: categories, Books: books, Reviews: reviews}, nil
}

func readJSON(source fs.FS, name string, target any) error {
	data, err := fs.ReadFile(source, name)
	if err != nil {
		return fmt.Errorf("catalog: read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("catalog: decode %s: %w", name, err)
	}
	return nil
}

func normaliseBooks(raw []bookFixture) ([]Book, error) {
	books := make([]Book, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for index, fixture := range raw {
		book := fixture.Book

		if book.ID == "" {
			return nil, fmt.Errorf("catalog: book at position %d has no id", index)
		}
		if _, dup := seen[book.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate book id %q", book.ID)
		}
		if len(book.Authors) == 0 {
			return nil, fmt.Errorf("catalog: book %q has no authors", book.ID)
		}
		seen[book.ID] = struct{}{}

		if fixture.PriceStars != nil {
			book.PriceStars = *fixture.PriceStars
		} else {
			book.PriceStars = fallbackPrice(book.Rating.Average, index)
		}

		if book.Categories == nil {
			book.Categories = []string{}
		}
		if book.Tags == nil {
			book.Tags = []string{}
		}

		books = append(books, book)
	}

	return books, nil
}

// fallbackPrice derives a price in stars for fixtures that omit one.
func fallbackPrice(average float64, index int) int {
	base := max(1, int(math.Round(average)))
	return min(10, base+3+index%3)
}

// normaliseCategories fills missing slugs and counts in place.
func normaliseCategories(categories []Category, books []Book) {
	for i := range categories {
		category := &categories[i]

		if category.Slug == "" {
			category.Slug = slug.From(category.Title)
		}
		if category.Slug == "" {
			category.Slug = category.ID
		}

		if category.BooksCount == 0 {
			for _, book := range books {
				if book.InCategory(category.ID) {
					category.BooksCount++
				}
			}
		}
	}
}
