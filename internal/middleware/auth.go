package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/minelogic/minesweeper-agent/internal/config"
)

type CtxKey int

const (
	CtxPlayerClaims CtxKey = iota
)

// Auth resolves the auth cookie into player claims when present.
// Anonymous requests pass through; handlers decide what needs a login.
func Auth(log *slog.Logger, auth *config.Auth) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := auth.ParsePlayerClaims(r)
			if err != nil {
				auth.Clear(w)
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxPlayerClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
