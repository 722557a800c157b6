package ui

import (
	"context"
	"strings"
	"testing"

	"github.com/iconidentify/blogsmith/internal/domain"
	"github.com/iconidentify/blogsmith/internal/presenter"
)

type nopGateway struct{}

func (nopGateway) CredentialConfigured() bool { return false }

func (nopGateway) GenerateBlogPostContent(ctx context.Context, topic string) (*domain.GeneratedContent, error) {
	return nil, domain.ErrMissingCredential
}

func (nopGateway) GenerateTrendingTopics(ctx context.Context) (*domain.TrendingTopicsResult, error) {
	return nil, domain.ErrMissingCredential
}

func TestRender_Content(t *testing.T) {
	a := NewApp(presenter.New(nopGateway{}), "Gemini")

	a.render(presenter.State{
		Topic: "Go [generics]",
		Content: &domain.GeneratedContent{
			Titles:          []string{"First", "Second", "Third"},
			MetaDescription: "Meta",
			Keywords:        []string{"go", "generics"},
			DraftContent:    "Draft body",
			ImagePrompt:     "A gopher",
		},
		Topics: []string{"AI in healthcare", domain.PlaceholderTopicsFailed},
		Sources: []domain.GroundingChunk{
			{Web: domain.GroundingChunkWeb{URI: "https://example.com", Title: "Example"}},
			{Web: domain.GroundingChunkWeb{Title: "no link"}},
		},
	})

	text := a.resultView.GetText(true)
	for _, want := range []string{"1. First", "Meta", "go, generics", "Draft body", "A gopher"} {
		if !strings.Contains(text, want) {
			t.Errorf("result view missing %q:\n%s", want, text)
		}
	}
	if got := a.topicInput.GetText(); got != "Go [generics]" {
		t.Errorf("input = %q", got)
	}
	if got := a.topicList.GetItemCount(); got != 2 {
		t.Errorf("topic rows = %d, want 2", got)
	}
	if len(a.topicItems) != 2 || a.topicItems[1] != domain.PlaceholderTopicsFailed {
		t.Errorf("topicItems = %v", a.topicItems)
	}
	sources := a.sourceView.GetText(true)
	if !strings.Contains(sources, "https://example.com") || strings.Contains(sources, "no link") {
		t.Errorf("sources = %q", sources)
	}
}

func TestRender_ErrorAndLoading(t *testing.T) {
	a := NewApp(presenter.New(nopGateway{}), "Gemini")

	a.render(presenter.State{ContentError: presenter.MsgEmptyTopic})
	if text := a.resultView.GetText(true); !strings.Contains(text, presenter.MsgEmptyTopic) {
		t.Errorf("result view = %q", text)
	}

	a.render(presenter.State{ContentLoading: true, TopicsLoading: true})
	if text := a.resultView.GetText(true); !strings.Contains(text, "Generating") {
		t.Errorf("result view = %q", text)
	}
	if got := a.topicList.GetItemCount(); got != 1 {
		t.Errorf("topic rows while loading = %d, want 1", got)
	}
}

func TestStatusLine(t *testing.T) {
	tests := []struct {
		name  string
		state presenter.State
		want  string
	}{
		{"idle", presenter.State{}, "Ready"},
		{"loading topics", presenter.State{TopicsLoading: true}, "Fetching topics"},
		{"generating", presenter.State{ContentLoading: true}, "Generating content"},
		{"topics error", presenter.State{TopicsError: "Gemini API error (trending topics): boom"}, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusLine(tt.state); !strings.Contains(got, tt.want) {
				t.Errorf("statusLine() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}
