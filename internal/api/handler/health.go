package handler

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/iconidentify/blogsmith/internal/service"
)

var startTime = time.Now()

// StatusProvider reports the content service configuration.
type StatusProvider interface {
	Status() service.Status
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	status   StatusProvider
	eventSvc *service.EventService
}

// NewHealthHandler creates a new health handler. eventSvc may be nil.
func NewHealthHandler(status StatusProvider, eventSvc *service.EventService) *HealthHandler {
	return &HealthHandler{
		status:   status,
		eventSvc: eventSvc,
	}
}

// HealthResponse is the JSON response for health checks.
type HealthResponse struct {
	Status               string `json:"status"`
	Timestamp            string `json:"timestamp"`
	Provider             string `json:"provider,omitempty"`
	CredentialConfigured *bool  `json:"credential_configured,omitempty"`
}

// Live handles GET /health - liveness probe.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready handles GET /ready - readiness probe. The server stays ready
// without a credential so the UI can explain what is missing; the status
// is reported as "degraded".
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	st := h.status.Status()
	status := "ok"
	if !st.CredentialConfigured {
		status = "degraded"
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:               status,
		Timestamp:            time.Now().UTC().Format(time.RFC3339),
		Provider:             st.Provider,
		CredentialConfigured: &st.CredentialConfigured,
	})
}

// SystemStats contains process and activity log statistics.
type SystemStats struct {
	Uptime        int64               `json:"uptime_seconds"`
	UptimeHuman   string              `json:"uptime_human"`
	MemAllocMB    int64               `json:"mem_alloc_mb"`
	MemSysMB      int64               `json:"mem_sys_mb"`
	MemHeapMB     int64               `json:"mem_heap_mb"`
	NumGoroutines int                 `json:"num_goroutines"`
	NumCPU        int                 `json:"num_cpu"`
	Events        *service.EventStats `json:"events,omitempty"`
}

// Stats handles GET /api/v1/stats - system statistics.
func (h *HealthHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(startTime)

	stats := SystemStats{
		Uptime:        int64(uptime.Seconds()),
		UptimeHuman:   formatUptime(uptime),
		MemAllocMB:    int64(m.Alloc / 1024 / 1024),
		MemSysMB:      int64(m.Sys / 1024 / 1024),
		MemHeapMB:     int64(m.HeapAlloc / 1024 / 1024),
		NumGoroutines: runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
	}
	if h.eventSvc != nil {
		es := h.eventSvc.Stats()
		stats.Events = &es
	}

	writeJSON(w, http.StatusOK, stats)
}

func formatUptime(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}
