// Package flash stores one-time notices in a short-lived cookie. A notice
// set while answering one request is shown on the next rendered page.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/templui/diary/internal/model"
)

const cookieName = "flash"

func Set(w http.ResponseWriter, f *model.Flash) {
	if f == nil || f.Message == "" {
		return
	}
	b, err := json.Marshal(f)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(b),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop reads the pending notice and expires the cookie.
func Pop(w http.ResponseWriter, r *http.Request) *model.Flash {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	b, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var f model.Flash
	err = json.Unmarshal(b, &f)
	if err != nil || f.Message == "" {
		return nil
	}
	return &f
}

// Redirect sets f and answers with 303 See Other.
func Redirect(w http.ResponseWriter, r *http.Request, f *model.Flash, url string) {
	Set(w, f)
	http.Redirect(w, r, url, http.StatusSeeOther)
}
