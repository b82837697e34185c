// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openreader/storefront/internal/platform/sec"
)

/*
TestTokenService_RoundTrip verifies that a generated voter token verifies and
carries the Telegram identity.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService("super-secret", "openreader.test")
	require.NoError(t, err)

	token, expiresAt, err := service.GenerateVoterToken(424242, "reader", time.Hour)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(424242), claims.TelegramID)
	assert.Equal(t, "424242", claims.VoterID())
	assert.Equal(t, "424242", claims.Subject)
	assert.Equal(t, "reader", claims.Username)
}

/*
TestTokenService_Rejects covers tampered, foreign and expired tokens.
*/
func TestTokenService_Rejects(t *testing.T) {
	service, err := sec.NewTokenService("super-secret", "openreader.test")
	require.NoError(t, err)

	other, err := sec.NewTokenService("another-secret", "openreader.test")
	require.NoError(t, err)

	foreign, _, err := other.GenerateVoterToken(1, "", time.Hour)
	require.NoError(t, err)

	expired, _, err := service.GenerateVoterToken(1, "", -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"foreign_secret", foreign},
		{"expired", expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.VerifyToken(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", "openreader.test")
	assert.ErrorIs(t, err, sec.ErrEmptySecret)
}
