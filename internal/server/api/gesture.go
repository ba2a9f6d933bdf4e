package api

import (
	"net/http"

	"github.com/ayusman/airmouse/internal/app"
)

// SnapshotSource provides the latest session snapshot.
type SnapshotSource interface {
	Latest() (app.Snapshot, bool)
}

// GestureHandler serves the latest gesture snapshot.
type GestureHandler struct {
	source SnapshotSource
}

// NewGestureHandler creates a new GestureHandler reading from source.
func NewGestureHandler(source SnapshotSource) *GestureHandler {
	return &GestureHandler{source: source}
}

// ServeHTTP handles GET /api/gesture.
func (h *GestureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap, ok := h.source.Latest()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "No frame processed yet")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
