package handler

import (
	"context"
	"io"
	"log/slog"

	"github.com/iconidentify/blogsmith/internal/domain"
	"github.com/iconidentify/blogsmith/internal/service"
)

// testLogger returns a silent logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockGenerator is a test implementation of ContentGenerator.
type mockGenerator struct {
	status service.Status

	content    *domain.GeneratedContent
	contentErr error
	gotTopic   string

	trending    *domain.TrendingTopicsResult
	trendingErr error
}

func newMockGenerator() *mockGenerator {
	return &mockGenerator{
		status: service.Status{
			CredentialConfigured: true,
			Provider:             "Gemini",
			ContentModel:         "gemini-2.5-flash",
			TrendingModel:        "gemini-2.5-flash",
		},
		content: &domain.GeneratedContent{
			Titles:          []string{"Title one", "Title two", "Title three"},
			MetaDescription: "A short description.",
			Keywords:        []string{"go", "concurrency"},
			DraftContent:    "First paragraph with **bold**.\n\nSecond paragraph.",
			ImagePrompt:     "A gopher juggling channels",
		},
		trending: &domain.TrendingTopicsResult{
			Topics: []string{"AI in healthcare", "Remote work trends"},
			Sources: []domain.GroundingChunk{
				{Web: domain.GroundingChunkWeb{URI: "https://example.com/a", Title: "Example A"}},
			},
		},
	}
}

func (m *mockGenerator) GenerateBlogPostContent(ctx context.Context, topic string) (*domain.GeneratedContent, error) {
	m.gotTopic = topic
	if m.contentErr != nil {
		return nil, m.contentErr
	}
	if topic == "" {
		return nil, domain.ErrEmptyTopic
	}
	return m.content, nil
}

func (m *mockGenerator) GenerateTrendingTopics(ctx context.Context) (*domain.TrendingTopicsResult, error) {
	if m.trendingErr != nil {
		return nil, m.trendingErr
	}
	return m.trending, nil
}

func (m *mockGenerator) Status() service.Status {
	return m.status
}
