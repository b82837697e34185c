// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openreader/storefront/internal/core/catalog"
)

func TestFormatRating(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		digits int
		want   string
	}{
		{"whole", 4.0, 1, "4"},
		{"rounds_down", 4.34, 1, "4.3"},
		{"rounds_up", 4.36, 1, "4.4"},
		{"nan", math.NaN(), 1, "0"},
		{"two_digits", 3.456, 2, "3.46"},
		{"trailing_zero_in_two_digits", 3.5, 2, "3.5"},
		{"zero_digits", 4.6, 0, "5"},
		{"negative_digits", 4.2, -1, "4"},
		{"zero", 0, 1, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.FormatRating(tt.value, tt.digits))
		})
	}
}

func TestBuildStarStates(t *testing.T) {
	full, half, empty := catalog.StarFull, catalog.StarHalf, catalog.StarEmpty

	tests := []struct {
		name   string
		rating float64
		want   []catalog.StarState
	}{
		{"half_star", 3.5, []catalog.StarState{full, full, full, half, empty}},
		{"whole", 4, []catalog.StarState{full, full, full, full, empty}},
		{"above_max", 7, []catalog.StarState{full, full, full, full, full}},
		{"negative", -2, []catalog.StarState{empty, empty, empty, empty, empty}},
		{"nan", math.NaN(), []catalog.StarState{empty, empty, empty, empty, empty}},
		{"small_fraction", 0.2, []catalog.StarState{half, empty, empty, empty, empty}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.BuildStarStates(tt.rating, catalog.DefaultStars))
		})
	}
}

func TestBuildStarStates_Properties(t *testing.T) {
	for rating := -1.0; rating <= 6.0; rating += 0.05 {
		stars := catalog.BuildStarStates(rating, catalog.DefaultStars)
		assert.Len(t, stars, catalog.DefaultStars)

		var fullCount, halfCount int
		for _, star := range stars {
			switch star {
			case catalog.StarFull:
				fullCount++
			case catalog.StarHalf:
				halfCount++
			}
		}

		clamped := math.Max(0, math.Min(rating, catalog.DefaultStars))
		assert.Equal(t, int(math.Floor(clamped)), fullCount, "rating %.2f", rating)
		assert.LessOrEqual(t, halfCount, 1, "rating %.2f", rating)
	}
}

func TestBuildStarStates_NonPositiveMax(t *testing.T) {
	assert.Empty(t, catalog.BuildStarStates(3, 0))
	assert.NotNil(t, catalog.BuildStarStates(3, -1))
}
