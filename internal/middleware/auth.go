package middleware

import (
	"log/slog"
	"net/http"

	"github.com/templui/diary/internal/ctxkeys"
	"github.com/templui/diary/internal/model"
	"github.com/templui/diary/internal/service"
)

// Session resolves the auth_token cookie into a model.Identity on the request
// context. The user is re-read on every request so the verification state is
// always current. Bad or stale cookies are cleared and the request continues
// anonymously.
func Session(authService *service.AuthService, userService *service.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			anonymous := func() {
				ctx := ctxkeys.WithIdentity(r.Context(), model.NewIdentity(nil))
				next.ServeHTTP(w, r.WithContext(ctx))
			}

			token, ok := authService.SessionToken(r)
			if !ok {
				anonymous()
				return
			}

			userID, err := authService.VerifyJWT(token)
			if err != nil {
				authService.ClearJWTCookie(w)
				anonymous()
				return
			}

			user, err := userService.ByID(r.Context(), userID)
			if err != nil {
				slog.Debug("session user not loadable", "error", err, "user_id", userID)
				authService.ClearJWTCookie(w)
				anonymous()
				return
			}

			ctx := ctxkeys.WithIdentity(r.Context(), model.NewIdentity(user.Public()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
