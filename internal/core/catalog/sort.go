// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"cmp"
	"math"
	"slices"
	"time"
)

// SortBooks returns a sorted copy of books; the input is left untouched.
//
// The sort is stable, so books comparing equal keep their relative order.
// Unknown modes fall back to [SortPopular].
func SortBooks(books []Book, sort BookSort) []Book {
	sorted := slices.Clone(books)
	if sorted == nil {
		sorted = []Book{}
	}

	slices.SortStableFunc(sorted, comparator(sort))
	return sorted
}

func comparator(sort BookSort) func(a, b Book) int {
	switch sort {
	case SortRating:
		return byRating
	case SortNew:
		return byNew
	default:
		return byPopular
	}
}

func byPopular(a, b Book) int {
	return cmp.Compare(b.ReviewsCount, a.ReviewsCount)
}

func byRating(a, b Book) int {
	if c := cmp.Compare(b.Rating.Average, a.Rating.Average); c != 0 {
		return c
	}
	return cmp.Compare(b.Rating.Votes, a.Rating.Votes)
}

func byNew(a, b Book) int {
	return cmp.Compare(publishedUnix(b.PublishedAt), publishedUnix(a.PublishedAt))
}

// undated ranks below every real date, including those before 1970.
const undated = math.MinInt64

// publishedUnix parses an ISO-8601 timestamp or date. Missing or unparsable
// values return [undated] so they sort last.
func publishedUnix(value string) int64 {
	if value == "" {
		return undated
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UnixMilli()
		}
	}
	return undated
}
