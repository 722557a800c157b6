package claude

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iconidentify/blogsmith/internal/config"
	"github.com/iconidentify/blogsmith/pkg/llm"
)

func TestClient_Generate(t *testing.T) {
	var req map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "test-key" {
			t.Errorf("X-Api-Key = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"stop_reason": "end_turn",
			"content": [
				{"type": "text", "text": "{\"trending_topics\": "},
				{"type": "text", "text": "[\"Space tourism\"]}"}
			],
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	defer server.Close()

	client := NewClient(config.LLMConfig{APIKey: "test-key", BaseURL: server.URL, MaxTokens: 512})
	resp, err := client.Generate(context.Background(), llm.Request{
		Model:       "claude-test",
		System:      "only JSON",
		Prompt:      "list topics",
		Temperature: 0.3,
		WebSearch:   true,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if resp.Text != `{"trending_topics": ["Space tourism"]}` {
		t.Errorf("Text = %q", resp.Text)
	}
	if len(resp.Citations) != 0 {
		t.Errorf("Citations = %+v, want none", resp.Citations)
	}
	if req["max_tokens"] != float64(512) {
		t.Errorf("max_tokens = %v, want 512", req["max_tokens"])
	}
	if _, ok := req["system"]; !ok {
		t.Error("request should include the system prompt")
	}
}

func TestClient_Generate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"type": "error", "error": {"type": "authentication_error", "message": "invalid x-api-key"}}`))
	}))
	defer server.Close()

	client := NewClient(config.LLMConfig{APIKey: "bad", BaseURL: server.URL})
	if _, err := client.Generate(context.Background(), llm.Request{Model: "claude-test", Prompt: "x"}); err == nil {
		t.Fatal("Generate() should fail on a 401 response")
	}
}

func TestNewClient_DefaultMaxTokens(t *testing.T) {
	c := NewClient(config.LLMConfig{APIKey: "k"})
	if c.maxTokens != 4096 {
		t.Errorf("maxTokens = %d, want 4096", c.maxTokens)
	}
	if c.Name() != "Anthropic" {
		t.Errorf("Name() = %q", c.Name())
	}
}
