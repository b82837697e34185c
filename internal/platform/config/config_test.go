// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openreader/storefront/internal/platform/config"
)

/*
TestLoad_Defaults checks the zero-configuration startup path.
*/
func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.ServerPort)
	assert.True(t, cfg.RequireTestEnv)
	assert.Equal(t, config.PurchaseStoreMemory, cfg.PurchaseStore)
	assert.Equal(t, "https://t.me/test-stars-invoice", cfg.InvoiceBaseURL)
	assert.Equal(t, 24*time.Hour, cfg.VoterTokenTTL)
	assert.False(t, cfg.VotingEnabled())
	assert.Equal(t, 0, cfg.VoterAllowList().Len())
}

func TestLoad_AllowList(t *testing.T) {
	t.Setenv("ALLOWED_TELEGRAM_IDS", "1001, 1002,,1003")

	cfg, err := config.Load()
	require.NoError(t, err)

	allowList := cfg.VoterAllowList()
	assert.Equal(t, 3, allowList.Len())
	assert.True(t, allowList.Contains("1002"))
	assert.False(t, allowList.Contains("2000"))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown_store", map[string]string{"PURCHASE_STORE": "sqlite"}},
		{"redis_without_url", map[string]string{"PURCHASE_STORE": "redis"}},
		{"non_numeric_voter", map[string]string{"ALLOWED_TELEGRAM_IDS": "alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
