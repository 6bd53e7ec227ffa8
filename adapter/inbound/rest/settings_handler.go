package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ajkula/moni/config"
)

type SettingsResponse struct {
	Config  config.PublicConfig `json:"config"`
	Message string              `json:"message,omitempty"`
}

type LogLevelRequest struct {
	Level string `json:"level"`
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Getting current settings")

	h.configMutex.RLock()
	response := SettingsResponse{
		Config:  h.config.Public(),
		Message: "Settings retrieved successfully",
	}
	h.configMutex.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode settings response", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}

// updateLogLevel changes the logger level at runtime. Nothing is written
// back to the config file.
func (h *Handler) updateLogLevel(w http.ResponseWriter, r *http.Request) {
	var req LogLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Failed to decode log level request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	level := strings.ToLower(strings.TrimSpace(req.Level))
	switch level {
	case "debug", "info", "warn", "error":
	default:
		http.Error(w, fmt.Sprintf("Invalid log level: %q", req.Level), http.StatusBadRequest)
		return
	}

	h.configMutex.Lock()
	h.logger.UpdateLevel(level)
	response := SettingsResponse{
		Config:  h.config.Public(),
		Message: "Log level updated",
	}
	h.configMutex.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode settings response", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}
