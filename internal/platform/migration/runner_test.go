// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/store", "pgx5://u:p@db:5432/store"},
		{"postgresql://u@db/store", "pgx5://u@db/store"},
		{"pgx5://u@db/store", "pgx5://u@db/store"},
		{"host=db user=u", "host=db user=u"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, toPgx5DSN(tt.in), tt.in)
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(embedded, Embedded)
	require.NoError(t, err)

	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	assert.Contains(t, names, "000001_create_proposals.up.sql")
	assert.Contains(t, names, "000001_create_proposals.down.sql")
}
