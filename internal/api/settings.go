package api

import (
	"net/http"

	"github.com/biomintech/labstock/internal/inventory"
	"github.com/biomintech/labstock/internal/persist"
)

// SettingsHandler handles status-rule settings and the session status.
type SettingsHandler struct {
	Store *inventory.Store
}

type settingsResponse struct {
	Threshold  int  `json:"threshold"`
	AutoStatus bool `json:"auto_status"`
	Changed    int  `json:"changed,omitempty"`
}

type settingsRequest struct {
	Threshold  *int  `json:"threshold"`
	AutoStatus *bool `json:"auto_status"`
}

// Status handles GET /api/status.
func (h *SettingsHandler) Status(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]any{
		"mode":        h.Store.Mode(),
		"online":      h.Store.Mode() == persist.ModeRemote,
		"threshold":   h.Store.Threshold(),
		"auto_status": h.Store.AutoStatus(),
		"items":       len(h.Store.Items()),
	})
}

// Get handles GET /api/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, settingsResponse{
		Threshold:  h.Store.Threshold(),
		AutoStatus: h.Store.AutoStatus(),
	})
}

// Update handles PUT /api/settings. Changing either setting recomputes
// statuses when automatic status is on.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	changed := 0
	if req.AutoStatus != nil {
		changed += h.Store.SetAutoStatus(r.Context(), *req.AutoStatus)
	}
	if req.Threshold != nil {
		changed += h.Store.SetThreshold(r.Context(), *req.Threshold)
	}

	jsonResponse(w, http.StatusOK, settingsResponse{
		Threshold:  h.Store.Threshold(),
		AutoStatus: h.Store.AutoStatus(),
		Changed:    changed,
	})
}
