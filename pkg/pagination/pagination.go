// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides the cursor scheme shared by list endpoints.
//
// # Overview
//
// A cursor is the decimal encoding of a zero-based offset into a
// deterministically sorted sequence. Clients treat it as opaque: they pass
// back the nextCursor of the previous page until it is absent.
package pagination

import (
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 10
	// MaxLimit is the upper bound accepted by the request validation layer.
	MaxLimit = 50
)

// Page is one slice of a cursor-paginated sequence.
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
}

// EncodeCursor renders an offset as a cursor.
func EncodeCursor(offset int) string {
	return strconv.Itoa(offset)
}

// DecodeCursor parses a cursor back into an offset.
//
// Missing, malformed or negative cursors decode to 0 so a stale client link
// restarts from the first page instead of failing.
func DecodeCursor(cursor string) int {
	cursor = strings.TrimSpace(cursor)
	if cursor == "" {
		return 0
	}

	offset, err := strconv.Atoi(cursor)
	if err != nil || offset < 0 {
		return 0
	}

	return offset
}

// ClampLimit makes limit usable for slicing: non-positive values fall back
// to [DefaultLimit].
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

// Slice cuts the page starting at cursor out of a fully sorted sequence.
//
// NextCursor is set only when items remain after the returned window.
func Slice[T any](sorted []T, cursor string, limit int) Page[T] {
	limit = ClampLimit(limit)
	start := DecodeCursor(cursor)

	if start >= len(sorted) {
		return Page[T]{Items: []T{}}
	}

	end := start + limit
	if end > len(sorted) {
		end = len(sorted)
	}

	items := make([]T, end-start)
	copy(items, sorted[start:end])

	page := Page[T]{Items: items}
	if end < len(sorted) {
		page.NextCursor = EncodeCursor(end)
	}

	return page
}
