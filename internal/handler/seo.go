package handler

import (
	"log/slog"
	"net/http"

	"github.com/templui/diary/internal/service"
)

type SEOHandler struct {
	sitemapService *service.SitemapService
}

func NewSEOHandler(baseURL string) *SEOHandler {
	return &SEOHandler{
		sitemapService: service.NewSitemapService(baseURL),
	}
}

func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(h.sitemapService.RobotsTxt()))
}

// Sitemap generates sitemap.xml for the public pages.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	sitemap, err := h.sitemapService.GenerateSitemap()
	if err != nil {
		slog.Error("failed to generate sitemap", "error", err)
		http.Error(w, "Failed to generate sitemap", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(sitemap)
}
