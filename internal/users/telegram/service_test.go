// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package telegram_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openreader/storefront/internal/platform/sec"
	"github.com/openreader/storefront/internal/users/telegram"
)

type allowOnly int64

func (id allowOnly) CanVote(telegramID int64) bool { return int64(id) == telegramID }

func newService(t *testing.T, voter int64) (*telegram.Service, *sec.TokenService) {
	t.Helper()
	tokens, err := sec.NewTokenService("session-secret", "openreader.test")
	require.NoError(t, err)

	service, err := telegram.NewService(botToken, 24*time.Hour, time.Hour, tokens, allowOnly(voter))
	require.NoError(t, err)
	return service, tokens
}

func TestNewService_RequiresBotToken(t *testing.T) {
	_, err := telegram.NewService("", time.Hour, time.Hour, nil, allowOnly(0))
	assert.ErrorIs(t, err, telegram.ErrBotTokenMissing)
}

func TestSignIn(t *testing.T) {
	service, tokens := newService(t, 1001)

	session, err := service.SignIn(context.Background(), signedInitData(botToken, time.Now().Add(-time.Minute), aliceJSON))
	require.NoError(t, err)

	assert.True(t, session.CanVote)
	assert.Equal(t, int64(1001), session.User.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, time.Minute)

	claims, err := tokens.VerifyToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), claims.TelegramID)
	assert.Equal(t, "alice", claims.Username)
}

func TestSignIn_NotOnAllowList(t *testing.T) {
	service, _ := newService(t, 42)

	session, err := service.SignIn(context.Background(), signedInitData(botToken, time.Now(), aliceJSON))
	require.NoError(t, err)
	assert.False(t, session.CanVote)
}

func TestHandler_SignIn(t *testing.T) {
	service, _ := newService(t, 1001)
	routes := telegram.NewHandler(service).Routes()

	post := func(body string) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/telegram", strings.NewReader(body))
		routes.ServeHTTP(recorder, request)
		return recorder
	}

	payload, err := json.Marshal(map[string]string{
		"initData": signedInitData(botToken, time.Now(), aliceJSON),
	})
	require.NoError(t, err)

	recorder := post(string(payload))
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var envelope struct {
		Data telegram.Session `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Data.Token)
	assert.True(t, envelope.Data.CanVote)

	assert.Equal(t, http.StatusBadRequest, post(`{}`).Code)
	assert.Equal(t, http.StatusUnauthorized, post(`{"initData":"auth_date=1&hash=00"}`).Code)
}
