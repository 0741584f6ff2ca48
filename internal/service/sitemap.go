package service

import (
	"encoding/xml"
	"strings"

	"github.com/templui/diary/internal/model"
)

// publicRoutes are the pages crawlers may index. Diary pages sit behind a
// login and are never listed.
var publicRoutes = []struct {
	Path       string
	Priority   string
	ChangeFreq string
}{
	{"/", "1.0", "monthly"},
	{"/login", "0.3", "yearly"},
	{"/register", "0.5", "yearly"},
}

type SitemapService struct {
	baseURL string
}

func NewSitemapService(baseURL string) *SitemapService {
	return &SitemapService{baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (s *SitemapService) GenerateSitemap() ([]byte, error) {
	sitemap := model.Sitemap{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]model.SitemapURL, 0, len(publicRoutes)),
	}
	for _, route := range publicRoutes {
		sitemap.URLs = append(sitemap.URLs, model.SitemapURL{
			Loc:        s.baseURL + route.Path,
			ChangeFreq: route.ChangeFreq,
			Priority:   route.Priority,
		})
	}

	output, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}
	return []byte(xml.Header + string(output)), nil
}

// RobotsTxt keeps crawlers out of the signed-in area.
func (s *SitemapService) RobotsTxt() string {
	return "User-agent: *\n" +
		"Allow: /\n" +
		"Disallow: /diary\n" +
		"Disallow: /verify\n" +
		"Disallow: /logout\n" +
		"Sitemap: " + s.baseURL + "/sitemap.xml\n"
}
