package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMethodOverride(t *testing.T) {
	tests := []struct {
		name   string
		method string
		form   url.Values
		header string
		want   string
	}{
		{"form put", http.MethodPost, url.Values{"_method": {"PUT"}}, "", http.MethodPut},
		{"form delete lower case", http.MethodPost, url.Values{"_method": {"delete"}}, "", http.MethodDelete},
		{"header patch", http.MethodPost, nil, "PATCH", http.MethodPatch},
		{"unknown method ignored", http.MethodPost, url.Values{"_method": {"TRACE"}}, "", http.MethodPost},
		{"get never rewritten", http.MethodGet, nil, "DELETE", http.MethodGet},
		{"plain post", http.MethodPost, url.Values{"content": {"hi"}}, "", http.MethodPost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := MethodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = r.Method
			}))

			req := httptest.NewRequest(tt.method, "/diary/1", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tt.header != "" {
				req.Header.Set(methodOverrideHeader, tt.header)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.want, seen)
		})
	}
}

func TestMethodOverrideKeepsFormReadable(t *testing.T) {
	var content string
	h := MethodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content = r.FormValue("content")
	}))

	form := url.Values{"_method": {"PUT"}, "content": {"edited"}}
	req := httptest.NewRequest(http.MethodPost, "/diary/1", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "edited", content)
}
