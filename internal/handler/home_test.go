package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomePage(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHomeHandler().HomePage(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/register"`)
}

func TestNotFoundPage(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHomeHandler().NotFoundPage(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		ping   Pinger
		status int
		ok     bool
	}{
		{"no pinger", nil, http.StatusOK, true},
		{"store up", func(context.Context) error { return nil }, http.StatusOK, true},
		{"store down", func(context.Context) error { return errors.New("down") }, http.StatusServiceUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHealthHandler(tt.ping, "memory").Health(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.status, rec.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.ok, body["ok"])
			assert.Equal(t, "memory", body["driver"])
		})
	}
}
