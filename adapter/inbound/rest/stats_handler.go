package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// handleGetStatus returns the watch loop counters
func (h *Handler) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.watchService.Status())
}

// handleGetFiles returns the change store as {path: value}
func (h *Handler) handleGetFiles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.watchService.TrackedFiles())
}

func (h *Handler) getCurrentResourceStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.resourceMonitor.GetCurrentStats(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// getResourceStatsHistory accepts an optional ?limit=N
func (h *Handler) getResourceStatsHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	history, err := h.resourceMonitor.GetStatsHistory(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(history)
}
