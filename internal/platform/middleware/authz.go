// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/openreader/storefront/internal/platform/apperr"
	"github.com/openreader/storefront/internal/platform/constants"
	"github.com/openreader/storefront/internal/platform/ctxutil"
	"github.com/openreader/storefront/internal/platform/respond"
	"github.com/openreader/storefront/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify voter tokens in middleware.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.VoterClaims, error)
}

// Authenticate extracts and verifies the voter token from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent (or no verifier is configured), request proceeds as anonymous.
//  3. If present, verify the token via [TokenVerifier].
//  4. Inject [*sec.VoterClaims] into the request context for downstream use.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" || verifier == nil {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(token)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithVoter(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireVoter blocks requests that did not present a valid voter token.
//
// Must be registered in the router AFTER [Authenticate]. Allow-list checks
// happen in the proposal service, not here.
func RequireVoter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetVoter(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Voter token required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
