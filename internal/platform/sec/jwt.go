// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (JWT signing) from the domain
// logic. It is injected into the Telegram identity flow and the voter
// middleware through small interfaces.
package sec

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret is returned when a token service is built without a signing secret.
var ErrEmptySecret = errors.New("sec: signing secret must not be empty")

// VoterClaims represents the payload embedded inside a voter token.
//
// The Telegram user id is carried both as the registered subject and as a
// typed claim so handlers never re-parse the subject string.
type VoterClaims struct {
	jwt.RegisteredClaims

	TelegramID int64  `json:"tid"`
	Username   string `json:"unm,omitempty"`
}

// VoterID returns the Telegram user id in its canonical decimal form.
func (c *VoterClaims) VoterID() string {
	return strconv.FormatInt(c.TelegramID, 10)
}

// TokenService handles generation and verification of voter tokens using HS256.
type TokenService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewTokenService creates a new TokenService signing with the shared secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}, nil
}

// GenerateVoterToken creates a signed token for a Telegram user.
// It returns the token together with its expiry instant.
func (service *TokenService) GenerateVoterToken(telegramID int64, username string, timeToLive time.Duration) (string, time.Time, error) {
	currentTime := service.now()
	expiresAt := currentTime.Add(timeToLive)

	claims := VoterClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(telegramID, 10),
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		TelegramID: telegramID,
		Username:   username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, expiresAt, nil
}

// VerifyToken checks the signature and validity of a voter token string.
func (service *TokenService) VerifyToken(tokenString string) (*VoterClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &VoterClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	},
		jwt.WithIssuer(service.issuer),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*VoterClaims)
	if !ok || !token.Valid {
		return nil, errors.New("sec: invalid token claims")
	}

	return claims, nil
}
