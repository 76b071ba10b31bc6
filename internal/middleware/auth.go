package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vancomm/minesweeper-server/internal/config"
)

type CtxKey int

const (
	CtxAccountClaims CtxKey = iota
	CtxRequestID
)

// bearerToken reads the token from the Authorization header, falling back
// to the token query parameter browsers use for websockets.
func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return r.URL.Query().Get("token")
}

// Auth stores the claims of a valid token in the request context. Requests
// without one pass through anonymously.
func Auth(logger *slog.Logger, jwt *config.JWT) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				h.ServeHTTP(w, r)
				return
			}
			claims, err := jwt.ParseAccountClaims(token)
			if err != nil {
				logger.Debug("rejected token", slog.Any("error", err))
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxAccountClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
