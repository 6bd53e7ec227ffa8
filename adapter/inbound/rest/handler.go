package rest

import (
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/ajkula/moni/config"
	"github.com/ajkula/moni/domain/model"
	"github.com/ajkula/moni/domain/port/inbound"
)

// Handler serves the read-only monitor API
type Handler struct {
	watchService    inbound.WatchService
	resourceMonitor inbound.ResourceMonitorService
	config          *config.Config
	logger          model.Logger
	events          http.Handler
	// guards config.Logging against UpdateLevel
	configMutex sync.RWMutex
}

// NewHandler builds the monitor API. resourceMonitor and events may be nil.
func NewHandler(
	watchService inbound.WatchService,
	resourceMonitor inbound.ResourceMonitorService,
	cfg *config.Config,
	logger model.Logger,
	events http.Handler,
) *Handler {
	return &Handler{
		watchService:    watchService,
		resourceMonitor: resourceMonitor,
		config:          cfg,
		logger:          logger,
		events:          events,
	}
}

// SetupRoutes registers the monitor routes on router
func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/api/status", h.handleGetStatus).Methods("GET")
	router.HandleFunc("/api/files", h.handleGetFiles).Methods("GET")

	if h.resourceMonitor != nil {
		router.HandleFunc("/api/resources/current", h.getCurrentResourceStats).Methods("GET")
		router.HandleFunc("/api/resources/history", h.getResourceStatsHistory).Methods("GET")
	}

	router.HandleFunc("/api/settings", h.getSettings).Methods("GET")
	router.HandleFunc("/api/settings/log-level", h.updateLogLevel).Methods("PUT")

	if h.events != nil {
		router.Handle("/api/ws/events", h.events).Methods("GET")
	}
}

// Router returns a new router with every monitor route
func (h *Handler) Router() *mux.Router {
	router := mux.NewRouter()
	h.SetupRoutes(router)
	return router
}
