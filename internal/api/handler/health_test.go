package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iconidentify/blogsmith/internal/service"
)

func TestHealthHandler_Live(t *testing.T) {
	handler := NewHealthHandler(newMockGenerator(), nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.Live(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/json")
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want %q", resp.Status, "ok")
	}
	if resp.Timestamp == "" {
		t.Error("timestamp should not be empty")
	}
}

func TestHealthHandler_Ready(t *testing.T) {
	tests := []struct {
		name       string
		credential bool
		wantStatus string
	}{
		{"credential configured", true, "ok"},
		{"credential missing", false, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := newMockGenerator()
			gen.status.CredentialConfigured = tt.credential
			handler := NewHealthHandler(gen, nil)

			req := httptest.NewRequest(http.MethodGet, "/ready", nil)
			w := httptest.NewRecorder()

			handler.Ready(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("status code = %d, want %d", w.Code, http.StatusOK)
			}
			var resp HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", resp.Status, tt.wantStatus)
			}
			if resp.CredentialConfigured == nil || *resp.CredentialConfigured != tt.credential {
				t.Errorf("credential_configured = %v", resp.CredentialConfigured)
			}
			if resp.Provider != "Gemini" {
				t.Errorf("provider = %q", resp.Provider)
			}
		})
	}
}

func TestHealthHandler_Stats(t *testing.T) {
	eventSvc, err := service.NewEventService(service.EventServiceConfig{RingBufferSize: 10}, testLogger())
	if err != nil {
		t.Fatalf("NewEventService() error = %v", err)
	}
	defer eventSvc.Close()

	handler := NewHealthHandler(newMockGenerator(), eventSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	w := httptest.NewRecorder()

	handler.Stats(w, req)

	var stats SystemStats
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if stats.NumCPU <= 0 || stats.NumGoroutines <= 0 {
		t.Errorf("runtime stats not populated: %+v", stats)
	}
	if stats.Events == nil || stats.Events.BufferSize != 10 {
		t.Errorf("events = %+v", stats.Events)
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{5 * time.Minute, "5m"},
		{2*time.Hour + 3*time.Minute, "2h 3m"},
		{50*time.Hour + 10*time.Minute, "2d 2h 10m"},
	}
	for _, tt := range tests {
		if got := formatUptime(tt.d); got != tt.want {
			t.Errorf("formatUptime(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
