// Package server provides the local HTTP server for airmouse overlays.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/airmouse/internal/app"
	"github.com/ayusman/airmouse/internal/config"
	"github.com/ayusman/airmouse/internal/server/api"
	"github.com/ayusman/airmouse/internal/store"
)

// Overlay is the snapshot feed written by the frame loop.
type Overlay interface {
	Latest() (app.Snapshot, bool)
	Take() (app.Snapshot, bool)
}

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Overlay   Overlay

	// Filter reports the configuration used by new sessions.
	Filter func() config.Config

	// OverlayInterval is the websocket broadcast period (default ~30 Hz).
	OverlayInterval time.Duration
}

// Server represents the HTTP server for the airmouse application.
type Server struct {
	config  Config
	mux     *http.ServeMux
	start   time.Time
	overlay *OverlayHandler
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Filter != nil {
		s.mux.Handle("/api/config", api.NewConfigHandler(s.config.Filter))
	}

	if s.config.Store != nil {
		s.mux.Handle("/api/settings", api.NewSettingsHandler(s.config.Store))
	}

	if s.config.Overlay != nil {
		s.mux.Handle("/api/gesture", api.NewGestureHandler(s.config.Overlay))

		s.overlay = NewOverlayHandler(s.config.Overlay, s.config.OverlayInterval)
		s.mux.Handle("/api/overlay", s.overlay)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}
	if s.overlay != nil {
		response["overlay_clients"] = s.overlay.Clients()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}

// Close stops the overlay broadcaster.
func (s *Server) Close() {
	if s.overlay != nil {
		s.overlay.Close()
	}
}
