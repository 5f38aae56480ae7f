package handler

import (
	"net/http"

	"github.com/setuprelay/setuprelay/internal/web"
)

// Index serves the embedded wizard front-end page.
// GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(web.IndexHTML)
}
