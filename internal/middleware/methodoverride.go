package middleware

import (
	"net/http"
	"strings"
)

const (
	methodOverrideField  = "_method"
	methodOverrideHeader = "X-HTTP-Method-Override"
)

var overridableMethods = map[string]bool{
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// MethodOverride lets HTML forms reach PUT/PATCH/DELETE routes. Only POST
// requests are rewritten. It must run before the router so the mux sees
// the overridden method.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			m := r.Header.Get(methodOverrideHeader)
			if m == "" {
				m = r.PostFormValue(methodOverrideField)
			}
			m = strings.ToUpper(strings.TrimSpace(m))
			if overridableMethods[m] {
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}
