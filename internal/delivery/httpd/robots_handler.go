package httpd

import (
	"fmt"
	"net/http"
	"strings"
)

// Robots serves crawler directives. The API and account surfaces are kept
// out of search indexes; everything else is crawlable.
func (h *Handler) Robots(w http.ResponseWriter, r *http.Request) {
	var sb strings.Builder
	sb.WriteString("User-agent: *\n")
	sb.WriteString("Allow: /\n")
	sb.WriteString("Disallow: /api/\n")
	sb.WriteString("Disallow: /dashboard/\n")
	sb.WriteString("Disallow: /settings/\n")
	fmt.Fprintf(&sb, "\nSitemap: %s/sitemap.xml\n", strings.TrimRight(h.publicURL, "/"))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(sb.String()))
}
