// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openreader/storefront/pkg/pagination"
)

func TestDecodeCursor(t *testing.T) {
	tests := []struct {
		name   string
		cursor string
		want   int
	}{
		{"empty", "", 0},
		{"zero", "0", 0},
		{"offset", "20", 20},
		{"padded", " 4 ", 4},
		{"garbage", "abc", 0},
		{"negative", "-3", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pagination.DecodeCursor(tt.cursor))
		})
	}
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, pagination.DefaultLimit, pagination.ClampLimit(0))
	assert.Equal(t, pagination.DefaultLimit, pagination.ClampLimit(-5))
	assert.Equal(t, 3, pagination.ClampLimit(3))
}

/*
TestSlice_Partition walks a sequence cursor by cursor and checks that the
pages partition it with no duplicate and no gap.
*/
func TestSlice_Partition(t *testing.T) {
	sorted := []int{1, 2, 3, 4, 5, 6, 7}

	for _, limit := range []int{1, 2, 3, 7, 10} {
		var collected []int
		cursor := ""
		calls := 0

		for {
			page := pagination.Slice(sorted, cursor, limit)
			collected = append(collected, page.Items...)
			calls++
			require.LessOrEqual(t, calls, len(sorted)+1, "pagination did not terminate")

			if page.NextCursor == "" {
				break
			}
			cursor = page.NextCursor
		}

		assert.Equal(t, sorted, collected, "limit %d", limit)
	}
}

func TestSlice_PastEnd(t *testing.T) {
	page := pagination.Slice([]string{"a", "b"}, "5", 10)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.NextCursor)
}

func TestSlice_DoesNotAliasInput(t *testing.T) {
	sorted := []int{1, 2, 3}
	page := pagination.Slice(sorted, "", 2)
	page.Items[0] = 99
	assert.Equal(t, 1, sorted[0])
}
