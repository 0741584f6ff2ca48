package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Pinger reports whether the backing store is reachable.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	ping   Pinger
	driver string
}

func NewHealthHandler(ping Pinger, driver string) *HealthHandler {
	return &HealthHandler{ping: ping, driver: driver}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]any{"ok": true, "driver": h.driver}

	if h.ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		err := h.ping(ctx)
		if err != nil {
			slog.Warn("health check failed", "error", err, "driver", h.driver)
			status = http.StatusServiceUnavailable
			body["ok"] = false
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
