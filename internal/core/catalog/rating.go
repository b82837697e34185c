// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"math"
	"strconv"
	"strings"
)

// StarState is the fill of a single rating star.
type StarState string

const (
	StarFull  StarState = "full"
	StarHalf  StarState = "half"
	StarEmpty StarState = "empty"
)

// DefaultStars is the length of a star row.
const DefaultStars = 5

/*
FormatRating renders a rating for display.

The value is rounded to fractionDigits, then trailing zeros and a dangling
decimal point are removed: 4.0 becomes "4" and 4.34 becomes "4.3". NaN renders
as "0". A negative fractionDigits is treated as 0.
*/
func FormatRating(value float64, fractionDigits int) string {
	if math.IsNaN(value) {
		return "0"
	}
	if fractionDigits < 0 {
		fractionDigits = 0
	}

	formatted := strconv.FormatFloat(value, 'f', fractionDigits, 64)
	if strings.Contains(formatted, ".") {
		formatted = strings.TrimRight(formatted, "0")
		formatted = strings.TrimSuffix(formatted, ".")
	}

	// -0.0 rounds to "-0".
	if formatted == "-0" {
		return "0"
	}

	return formatted
}

/*
BuildStarStates expands a rating into max star states.

The rating is clamped to [0, max]. Star i (1-based) is full when at least a
whole point remains for it, half when only a fraction remains, empty
otherwise. At most one half star is produced.
*/
func BuildStarStates(rating float64, max int) []StarState {
	if max <= 0 {
		return []StarState{}
	}
	if math.IsNaN(rating) {
		rating = 0
	}

	clamped := math.Max(0, math.Min(rating, float64(max)))
	stars := make([]StarState, 0, max)

	for index := 1; index <= max; index++ {
		diff := clamped - float64(index-1)

		switch {
		case diff >= 1:
			stars = append(stars, StarFull)
		case diff > 0:
			stars = append(stars, StarHalf)
		default:
			stars = append(stars, StarEmpty)
		}
	}

	return stars
}
