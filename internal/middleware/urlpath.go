package middleware

import (
	"net/http"
	"path"

	"github.com/templui/diary/internal/ctxkeys"
)

// WithURLPath stores the cleaned request path so the layout can mark the
// active navigation link. "/diary/abc/edit/" and "/diary//abc/edit" both
// become "/diary/abc/edit".
func WithURLPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := path.Clean("/" + r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctxkeys.WithURLPath(r.Context(), p)))
	})
}
