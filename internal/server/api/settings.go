package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/airmouse/internal/config"
	"github.com/ayusman/airmouse/internal/store"
)

// SettingsHandler reads and writes stored configuration values. Changes
// apply to the next session.
type SettingsHandler struct {
	store *store.Store
}

// NewSettingsHandler creates a new SettingsHandler with the given store.
func NewSettingsHandler(s *store.Store) *SettingsHandler {
	return &SettingsHandler{store: s}
}

type settingsResponse struct {
	Settings map[string]json.RawMessage `json:"settings"`
}

// ServeHTTP handles GET and PUT /api/settings.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// list handles GET /api/settings.
func (h *SettingsHandler) list(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.Settings().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list settings")
		return
	}

	out := make(map[string]json.RawMessage, len(settings))
	for k, v := range settings {
		if json.Valid([]byte(v)) {
			out[k] = json.RawMessage(v)
		}
	}
	writeJSON(w, http.StatusOK, settingsResponse{Settings: out})
}

// update handles PUT /api/settings with a JSON object of config keys.
func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	values := make(map[string]string, len(req))
	for k, v := range req {
		values[k] = string(v)
	}

	cfg, err := config.FromSettings(values)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(cfg.Unknown) > 0 {
		writeError(w, http.StatusBadRequest, "Unknown setting: "+cfg.Unknown[0])
		return
	}

	if err := h.store.Settings().SetAll(values); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	h.list(w, r)
}
