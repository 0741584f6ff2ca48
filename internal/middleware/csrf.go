package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/templui/diary/internal/ctxkeys"
	"github.com/templui/diary/internal/model"
)

const (
	csrfCookieName = "csrf_token"
	csrfFormField  = "csrf_token"
	csrfHeader     = "X-CSRF-Token"
	csrfTokenLen   = 32

	MsgFormExpired = "Your form has expired. Please try again."
)

// CSRFProtection issues a per-browser token on every request and checks it
// on POST/PUT/PATCH/DELETE. Forms post it as csrf_token and get the usual
// flash-and-redirect on failure; scripts send X-CSRF-Token and get a 403.
func CSRFProtection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := csrfCookieToken(w, r)
		r = r.WithContext(ctxkeys.WithCSRFToken(r.Context(), token))

		if isSafeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		submitted := r.Header.Get(csrfHeader)
		fromScript := submitted != ""
		if !fromScript {
			submitted = r.PostFormValue(csrfFormField)
		}

		if !validCSRFToken(token, submitted) {
			slog.Warn("csrf validation failed",
				"path", r.URL.Path,
				"method", r.Method,
				"ip", getClientIP(r),
				"user_id", ctxkeys.Identity(r.Context()).UserID(),
			)
			if fromScript {
				http.Error(w, "Invalid CSRF token", http.StatusForbidden)
				return
			}
			deny(w, r, Deny("csrf token mismatch", sameOriginReferer(r), model.ErrorFlash(MsgFormExpired)))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isSafeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

// sameOriginReferer returns the path of the page the form was posted from,
// or "/" when the referer is missing or points elsewhere.
func sameOriginReferer(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}

// csrfCookieToken returns the browser's token, issuing a new cookie when
// it is missing or malformed.
func csrfCookieToken(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(csrfCookieName)
	if err == nil && len(cookie.Value) == base64.RawURLEncoding.EncodedLen(csrfTokenLen) {
		return cookie.Value
	}

	token := generateCSRFToken()
	cfg := ctxkeys.Config(r.Context())
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg != nil && cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	return token
}

func generateCSRFToken() string {
	b := make([]byte, csrfTokenLen)
	_, err := rand.Read(b)
	if err != nil {
		panic("failed to generate csrf token: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

func validCSRFToken(expected, actual string) bool {
	if expected == "" || actual == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(actual)) == 1
}
