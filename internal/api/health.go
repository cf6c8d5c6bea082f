package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/MohammedPathariya/NoteNest/internal/api/respond"
)

// HealthHandler handles health check endpoints
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

var (
	healthMu         sync.RWMutex
	serviceIsHealthy = func() bool { return false }
	componentHealth  = func() map[string]bool { return nil }
)

// BindServiceHealth lets the process inject the aggregated health and the
// per-component view reported by GET /api/health.
func BindServiceHealth(healthy func() bool, components func() map[string]bool) {
	healthMu.Lock()
	defer healthMu.Unlock()
	serviceIsHealthy = healthy
	if components == nil {
		components = func() map[string]bool { return nil }
	}
	componentHealth = components
}

// CheckHealth handles GET /api/health
// Always returns 200; body reports UP/DOWN. 500 indicates handler failure only.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	healthMu.RLock()
	healthy, components := serviceIsHealthy(), componentHealth()
	healthMu.RUnlock()

	status := "DOWN"
	if healthy {
		status = "UP"
	}
	comps := make(map[string]string, len(components))
	for name, ok := range components {
		if ok {
			comps[name] = "UP"
		} else {
			comps[name] = "DOWN"
		}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":     status,
		"components": comps,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}
