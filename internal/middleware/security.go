package middleware

import (
	"fmt"
	"net/http"
)

// SecurityHeaders sets CSP and the usual hardening headers. Inline scripts
// must carry the per-request nonce from NonceMiddleware.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scriptSrc := "'self'"
		if nonce := GetNonce(r.Context()); nonce != "" {
			scriptSrc = fmt.Sprintf("'self' 'nonce-%s'", nonce)
		}

		h := w.Header()
		h.Set("Content-Security-Policy", fmt.Sprintf(
			"default-src 'self'; script-src %s; style-src 'self'; img-src 'self' data:; form-action 'self'; frame-ancestors 'none'; base-uri 'self'",
			scriptSrc,
		))
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}
