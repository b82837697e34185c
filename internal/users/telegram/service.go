// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package telegram

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/openreader/storefront/internal/platform/apperr"
	"github.com/openreader/storefront/internal/platform/ctxutil"
)

// ErrBotTokenMissing is returned when the service is built without a bot token.
var ErrBotTokenMissing = errors.New("telegram: bot token must not be empty")

// # Dependencies

// TokenIssuer signs voter tokens.
type TokenIssuer interface {
	GenerateVoterToken(telegramID int64, username string, timeToLive time.Duration) (string, time.Time, error)
}

// VoterPolicy decides whether a Telegram user may vote on proposals.
type VoterPolicy interface {
	CanVote(telegramID int64) bool
}

// Session is the result of a successful sign-in.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
	CanVote   bool      `json:"canVote"`
}

// # Service Layer

// Service exchanges verified init data for voter tokens.
type Service struct {
	botToken string
	maxAge   time.Duration
	tokenTTL time.Duration
	tokens   TokenIssuer
	voters   VoterPolicy
	now      func() time.Time
}

// NewService constructs a Telegram identity [Service].
func NewService(botToken string, maxAge, tokenTTL time.Duration, tokens TokenIssuer, voters VoterPolicy) (*Service, error) {
	if botToken == "" {
		return nil, ErrBotTokenMissing
	}

	return &Service{
		botToken: botToken,
		maxAge:   maxAge,
		tokenTTL: tokenTTL,
		tokens:   tokens,
		voters:   voters,
		now:      time.Now,
	}, nil
}

/*
SignIn validates init data and issues a voter token.

Description: Any Telegram user can sign in; CanVote tells the client whether
vote and review actions will be accepted for them.

Parameters:
  - context: context.Context
  - initData: string (raw Telegram.WebApp.initData)

Returns:
  - *Session: Token, expiry, user and voting permission
  - error: UNAUTHORIZED for invalid init data
*/
func (service *Service) SignIn(context context.Context, initData string) (*Session, error) {
	logger := ctxutil.GetLogger(context)

	data, err := ParseInitData(initData, service.botToken, service.maxAge, service.now())
	if err != nil {
		logger.WarnContext(context, "telegram_init_data_rejected", slog.String("reason", err.Error()))
		return nil, err
	}

	token, expiresAt, err := service.tokens.GenerateVoterToken(data.User.ID, data.User.Username, service.tokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	canVote := service.voters.CanVote(data.User.ID)

	logger.InfoContext(context, "telegram_signed_in",
		slog.Int64("telegram_id", data.User.ID),
		slog.Bool("can_vote", canVote),
	)

	return &Session{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      data.User,
		CanVote:   canVote,
	}, nil
}
