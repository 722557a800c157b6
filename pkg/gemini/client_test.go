package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/genai"

	"github.com/iconidentify/blogsmith/internal/config"
	"github.com/iconidentify/blogsmith/pkg/llm"
)

func TestCitations(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want int
	}{
		{"nil response", nil, 0},
		{"no candidates", &genai.GenerateContentResponse{}, 0},
		{"no grounding", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, 0},
		{
			name: "web chunks",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				GroundingMetadata: &genai.GroundingMetadata{
					GroundingChunks: []*genai.GroundingChunk{
						{Web: &genai.GroundingChunkWeb{URI: "https://a.example", Title: "A"}},
						{},
						{Web: &genai.GroundingChunkWeb{Title: "title only"}},
					},
				},
			}}},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := citations(tt.resp); len(got) != tt.want {
				t.Errorf("citations() returned %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestClient_Generate(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "gemini-test:generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"candidates": [{
				"content": {"role": "model", "parts": [{"text": "{\"trending_topics\": [\"AI agents\"]}"}]},
				"groundingMetadata": {
					"groundingChunks": [{"web": {"uri": "https://news.example/ai", "title": "AI news"}}]
				}
			}]
		}`))
	}))
	defer server.Close()

	client, err := NewClient(context.Background(), config.LLMConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	resp, err := client.Generate(context.Background(), llm.Request{
		Model:       "gemini-test",
		System:      "system text",
		Prompt:      "list topics",
		Temperature: 0.3,
		WebSearch:   true,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if resp.Text != `{"trending_topics": ["AI agents"]}` {
		t.Errorf("Text = %q", resp.Text)
	}
	if len(resp.Citations) != 1 || resp.Citations[0].URI != "https://news.example/ai" {
		t.Errorf("Citations = %+v", resp.Citations)
	}
	if _, ok := gotBody["tools"]; !ok {
		t.Error("request should include the search tool")
	}
	if _, ok := gotBody["systemInstruction"]; !ok {
		t.Error("request should include the system instruction")
	}
}

func TestClient_Name(t *testing.T) {
	c := &Client{}
	if got := c.Name(); got != "Gemini" {
		t.Errorf("Name() = %q, want %q", got, "Gemini")
	}
}
