package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it via the auth service, and — on success — stores the
// authenticated user's ID in the request context under [utils.UserIDCtxKey]
// before delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized in the following cases:
//   - The "Authorization" header is absent ([ErrEmptyAuthorizationHeader]).
//   - The header value cannot be parsed as a bearer token
//     ([ErrInvalidAuthorizationHeader] or [ErrEmptyToken]).
//   - The token is expired, malformed, or carries the wrong issuer.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		// Store the authenticated user's ID in the context so that downstream
		// handlers can retrieve it without re-parsing the token.
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// The header is expected to follow the standard format:
//
//	Authorization: <scheme> <token>
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] — if the header contains fewer than
//     two space-separated parts (i.e. the token is missing entirely).
//   - [ErrEmptyToken] — if the second part exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
