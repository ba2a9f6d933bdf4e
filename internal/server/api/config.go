package api

import (
	"net/http"

	"github.com/ayusman/airmouse/internal/config"
)

// ConfigHandler serves the effective filter configuration.
type ConfigHandler struct {
	current func() config.Config
}

// NewConfigHandler creates a handler reporting the config returned by current.
func NewConfigHandler(current func() config.Config) *ConfigHandler {
	return &ConfigHandler{current: current}
}

type configResponse struct {
	config.Config
	UnknownKeys []string `json:"unknown_keys,omitempty"`
}

// ServeHTTP handles GET /api/config.
func (h *ConfigHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cfg := h.current()
	writeJSON(w, http.StatusOK, configResponse{Config: cfg, UnknownKeys: cfg.Unknown})
}
