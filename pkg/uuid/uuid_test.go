// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openreader/storefront/pkg/uuid"
)

func TestGenerators_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 500; i++ {
		for _, id := range []string{uuid.New(), uuid.Random()} {
			assert.True(t, uuid.Valid(id))
			assert.False(t, seen[id], "duplicate id %s", id)
			seen[id] = true
		}
	}
}

func TestValid(t *testing.T) {
	assert.False(t, uuid.Valid(""))
	assert.False(t, uuid.Valid("book-1"))
}
