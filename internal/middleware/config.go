package middleware

import (
	"net/http"

	"github.com/templui/diary/internal/config"
	"github.com/templui/diary/internal/ctxkeys"
)

// Config adds the sanitized app configuration to the request context.
// Secrets (JWT secret, DB connection, API keys) never reach templates.
func Config(cfg *config.Config) func(http.Handler) http.Handler {
	safe := cfg.Sanitized()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithConfig(r.Context(), safe)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
