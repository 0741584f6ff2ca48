package ui

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/templui/diary/internal/ctxkeys"
	"github.com/templui/diary/internal/flash"
)

func Render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	RenderStatus(w, r, http.StatusOK, c)
}

// RenderStatus consumes the pending flash, renders c into a buffer and only
// then writes headers, so a failed render still yields a clean 500.
func RenderStatus(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	ctx := r.Context()
	if f := flash.Pop(w, r); f != nil {
		ctx = ctxkeys.WithFlash(ctx, f)
	}

	var buf bytes.Buffer
	err := c.Render(ctx, &buf)
	if err != nil {
		slog.Error("render failed", "error", err, "path", r.URL.Path)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	if err != nil {
		slog.Debug("render write failed", "error", err)
	}
}
