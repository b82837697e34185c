// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package telegram turns Telegram Web App launch data into voter tokens.

# Flow

 1. The Mini App forwards its raw initData query string.
 2. The signature is checked against the bot token and auth_date is bounded.
 3. A short-lived voter token is issued for the Telegram user.

Only the signature proves the payload came from Telegram; the user object is
trusted once the hash matches.
*/
package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/openreader/storefront/internal/platform/apperr"
)

// webAppDataKey is the constant HMAC key Telegram uses to derive the secret
// from the bot token.
const webAppDataKey = "WebAppData"

// # Errors

var (
	ErrInitDataMalformed = apperr.Unauthorized("Telegram init data is malformed")
	ErrInitDataSignature = apperr.Unauthorized("Telegram init data signature mismatch")
	ErrInitDataExpired   = apperr.Unauthorized("Telegram init data has expired")
)

// # Entities

// User is the Telegram account embedded in init data.
type User struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"languageCode,omitempty"`
	IsPremium    bool   `json:"isPremium,omitempty"`
}

// telegramUser mirrors the snake_case wire format Telegram signs.
type telegramUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	LanguageCode string `json:"language_code"`
	IsPremium    bool   `json:"is_premium"`
}

// InitData is the verified subset of the launch payload.
type InitData struct {
	User     User
	AuthDate time.Time
	QueryID  string
}

// # Validation

/*
ParseInitData verifies and decodes a raw initData string.

Description: The data-check-string is every key=value pair except "hash",
sorted by key and joined with newlines. Its HMAC-SHA256 under
HMAC-SHA256("WebAppData", botToken) must equal the hex "hash" value.

Parameters:
  - raw: string (URL-encoded query string from Telegram.WebApp.initData)
  - botToken: string
  - maxAge: time.Duration (zero disables the freshness check)
  - now: time.Time

Returns:
  - *InitData: The verified payload
  - error: UNAUTHORIZED on malformed, forged or stale data
*/
func ParseInitData(raw, botToken string, maxAge time.Duration, now time.Time) (*InitData, error) {
	values, err := url.ParseQuery(strings.TrimSpace(raw))
	if err != nil {
		return nil, ErrInitDataMalformed
	}

	receivedHash := values.Get("hash")
	if receivedHash == "" {
		return nil, ErrInitDataMalformed
	}

	expected := Sign(values, botToken)
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(receivedHash))) {
		return nil, ErrInitDataSignature
	}

	authUnix, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return nil, ErrInitDataMalformed
	}
	authDate := time.Unix(authUnix, 0).UTC()
	if maxAge > 0 && now.Sub(authDate) > maxAge {
		return nil, ErrInitDataExpired
	}

	var user telegramUser
	if err := json.Unmarshal([]byte(values.Get("user")), &user); err != nil || user.ID == 0 {
		return nil, ErrInitDataMalformed
	}

	return &InitData{
		User: User{
			ID:           user.ID,
			FirstName:    user.FirstName,
			LastName:     user.LastName,
			Username:     user.Username,
			LanguageCode: user.LanguageCode,
			IsPremium:    user.IsPremium,
		},
		AuthDate: authDate,
		QueryID:  values.Get("query_id"),
	}, nil
}

// Sign computes the hex hash Telegram attaches to init data. The "hash" key
// of values, if present, is ignored.
func Sign(values url.Values, botToken string) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		if key != "hash" {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+values.Get(key))
	}

	secret := hmacSHA256([]byte(webAppDataKey), []byte(botToken))
	return hex.EncodeToString(hmacSHA256(secret, []byte(strings.Join(pairs, "\n"))))
}

func hmacSHA256(key, message []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(message)
	return mac.Sum(nil)
}
