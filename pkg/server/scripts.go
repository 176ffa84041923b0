package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/liftkit-dev/liftkit/pkg/page"
)

// handlePageScript serves a published page script by render version.
// Versions are content-addressed per render, so responses are immutable.
func (s *Server) handlePageScript(w http.ResponseWriter, r *http.Request) {
	version := chi.URLParam(r, "version")
	script, err := s.store.Get(r.Context(), version)
	if err != nil {
		var notFound page.ScriptNotFoundError
		if errors.As(err, &notFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("failed to load page script", "version", version, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "private, max-age=31536000, immutable")
	if _, err := w.Write(script); err != nil {
		s.logger.Error("failed to write page script", "version", version, "error", err)
		return
	}
	s.metrics.scriptsServed.Inc()
}
