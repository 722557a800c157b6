package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/iconidentify/blogsmith/internal/api/handler"
	mw "github.com/iconidentify/blogsmith/internal/api/middleware"
)

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Content *handler.ContentHandler
	Events  *handler.EventHandler
	Health  *handler.HealthHandler
	UI      *handler.UIHandler
	// MCP is the MCP transport; nil leaves /mcp unmounted.
	MCP http.Handler
}

// NewRouter creates the HTTP router with all routes configured. An empty
// accessKey leaves the API open.
func NewRouter(h Handlers, accessKey string, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CleanPath)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logger(logger))
	r.Use(mw.Recovery(logger))
	r.Use(mw.CORS)

	// Health endpoints (no auth)
	r.Get("/health", h.Health.Live)
	r.Get("/ready", h.Health.Ready)

	// Web UI (no auth - the page sends the access key itself)
	r.Get("/", h.UI.Index)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(accessKey))
		// Model calls can be slow; the server write timeout is the outer bound.
		r.Use(middleware.Timeout(3 * time.Minute))

		r.Get("/status", h.Content.Status)
		r.Post("/content", h.Content.Generate)
		r.Get("/trending", h.Content.Trending)

		r.Get("/events", h.Events.List)
		r.Get("/events/categories", h.Events.Categories)
		r.Get("/stats", h.Health.Stats)
	})

	if h.MCP != nil {
		r.Group(func(r chi.Router) {
			r.Use(mw.APIKeyAuth(accessKey))
			r.Handle("/mcp", h.MCP)
		})
	}

	return r
}
