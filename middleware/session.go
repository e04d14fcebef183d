// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielhkuo/sevis-watch/auth"
)

type sessionCtxKey int

const sessionKey sessionCtxKey = 1

// RequireSession gates a handler behind a valid dashboard session token.
// The token is issued by the verify endpoint after a successful existence
// check; clients send it as "Authorization: Bearer <token>" for the rest
// of the session. Anything missing, malformed, or expired is a 401 - the
// gate never falls open.
func RequireSession(next http.HandlerFunc, secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ErrorResponse(w, http.StatusUnauthorized, "Dashboard session token required")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		claims, err := auth.ParseSessionToken(token, secret)
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired session token")
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// SessionFromContext returns the session claims attached by RequireSession.
func SessionFromContext(ctx context.Context) (*auth.SessionClaims, bool) {
	claims, ok := ctx.Value(sessionKey).(*auth.SessionClaims)
	return claims, ok
}
