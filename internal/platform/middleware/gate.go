// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/openreader/storefront/internal/platform/apperr"
	"github.com/openreader/storefront/internal/platform/constants"
	"github.com/openreader/storefront/internal/platform/respond"
)

// RequireTestEnv rejects requests that do not carry "X-Test-Env: true".
//
// The testnet backend only serves Mini App builds that announce themselves as
// test builds; anything else is refused before reaching a handler.
func RequireTestEnv() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !strings.EqualFold(strings.TrimSpace(request.Header.Get(constants.HeaderTestEnv)), "true") {
				respond.Error(writer, request, apperr.Forbidden("X-Test-Env header required for testnet"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
