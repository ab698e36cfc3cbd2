package api

import (
	"html"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

// ===== SITEMAP =====

// SitemapListHandler отдаёт HTML-страницу со всеми GET-маршрутами без параметров.
func SitemapListHandler(r *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(renderSitemap(sitemapLinks(r.Routes()))))
	}
}

func sitemapLinks(routes gin.RoutesInfo) []string {
	links := make([]string, 0, len(routes))
	for _, ri := range routes {
		if ri.Method != http.MethodGet || ri.Path == "/" {
			continue
		}
		// маршруты с параметрами в браузере не открыть
		if strings.ContainsAny(ri.Path, ":*") {
			continue
		}
		links = append(links, ri.Path)
	}
	sort.Strings(links)
	return links
}

func renderSitemap(links []string) string {
	var sb strings.Builder
	sb.WriteString(`<div style="text-align: center;"><h1>Holocron API</h1>`)
	sb.WriteString(`<p>Available endpoints:</p><ul style="text-align: left;">`)
	for _, l := range links {
		esc := html.EscapeString(l)
		sb.WriteString("<li><a href='" + esc + "'>" + esc + "</a></li>")
	}
	sb.WriteString("</ul></div>")
	return sb.String()
}
