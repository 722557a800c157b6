package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/iconidentify/blogsmith/internal/domain"
	"github.com/iconidentify/blogsmith/internal/service"
	"github.com/iconidentify/blogsmith/pkg/markdown"
)

const maxRequestBody = 64 << 10

// ContentGenerator is the content service as seen by the HTTP layer.
type ContentGenerator interface {
	GenerateBlogPostContent(ctx context.Context, topic string) (*domain.GeneratedContent, error)
	GenerateTrendingTopics(ctx context.Context) (*domain.TrendingTopicsResult, error)
	Status() service.Status
}

// ContentHandler serves the content and trending topic endpoints.
type ContentHandler struct {
	gen    ContentGenerator
	logger *slog.Logger
}

// NewContentHandler creates a new content handler.
func NewContentHandler(gen ContentGenerator, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		gen:    gen,
		logger: logger,
	}
}

// GenerateRequest is the body of POST /api/v1/content.
type GenerateRequest struct {
	Topic string `json:"topic"`
}

// GenerateResponse carries the generated materials plus a rendered draft.
type GenerateResponse struct {
	domain.GeneratedContent
	DraftHTML string `json:"draft_html,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// TrendingResponse is the body of GET /api/v1/trending.
type TrendingResponse struct {
	domain.TrendingTopicsResult
	RequestID string `json:"request_id,omitempty"`
}

// StatusResponse is the body of GET /api/v1/status.
type StatusResponse struct {
	service.Status
	Placeholders []string `json:"placeholders"`
}

// Status handles GET /api/v1/status.
func (h *ContentHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Status:       h.gen.Status(),
		Placeholders: domain.Placeholders(),
	})
}

// Generate handles POST /api/v1/content.
func (h *ContentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Kind: domain.ErrorKindInput})
		return
	}

	content, err := h.gen.GenerateBlogPostContent(r.Context(), req.Topic)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := GenerateResponse{
		GeneratedContent: *content,
		RequestID:        middleware.GetReqID(r.Context()),
	}
	html, err := markdown.ToHTML(content.DraftContent)
	if err != nil {
		h.logger.Warn("failed to render draft", "error", err, "request_id", resp.RequestID)
	} else {
		resp.DraftHTML = html
	}

	writeJSON(w, http.StatusOK, resp)
}

// Trending handles GET /api/v1/trending.
func (h *ContentHandler) Trending(w http.ResponseWriter, r *http.Request) {
	result, err := h.gen.GenerateTrendingTopics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TrendingResponse{
		TrendingTopicsResult: *result,
		RequestID:            middleware.GetReqID(r.Context()),
	})
}
