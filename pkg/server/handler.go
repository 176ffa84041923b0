package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/liftkit-dev/liftkit/pkg/dom"
	"github.com/liftkit-dev/liftkit/pkg/page"
)

// handlePage reads the template for the request path, merges it against a
// fresh render context, and writes the resulting document.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	rel, ok := templatePath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	src, err := os.ReadFile(filepath.Join(s.cfg.TemplatesDir, filepath.FromSlash(rel)))
	if err != nil {
		if os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("failed to read template", "path", rel, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	nodes, err := dom.ParseTemplate(string(src))
	if err != nil {
		s.logger.Error("failed to parse template", "path", rel, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pctx := page.NewContext(s.renderOptions(r))

	_, span := s.tracer.Start(r.Context(), "liftkit.merge")
	span.SetAttributes(
		attribute.String("liftkit.template", rel),
		attribute.String("liftkit.render_version", pctx.RenderVersion()),
	)
	start := time.Now()
	result := pctx.Merge(nodes)
	elapsed := time.Since(start)

	mode := "fragment"
	if result.IsElement("html") {
		mode = "full"
	}
	span.SetAttributes(attribute.String("liftkit.mode", mode))
	span.End()

	s.metrics.mergeDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
	s.metrics.pagesRendered.WithLabelValues(mode).Inc()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if mode == "full" {
		err = dom.RenderDocument(w, result)
	} else {
		err = dom.Render(w, result)
	}
	if err != nil {
		s.logger.Error("failed to write response", "path", rel, "error", err)
	}
}

// templatePath maps a request path to a template file path relative to the
// templates directory. Traversal outside the directory is rejected.
func templatePath(requestPath string) (string, bool) {
	p := path.Clean("/" + requestPath)
	if p == "/" {
		return "index.html", true
	}
	rel := strings.TrimPrefix(p, "/")
	if !filepath.IsLocal(rel) {
		return "", false
	}
	if path.Ext(rel) == "" {
		rel += ".html"
	}
	return rel, true
}
