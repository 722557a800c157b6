// Package claude implements llm.Client on top of the Anthropic Messages API.
package claude

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/iconidentify/blogsmith/internal/config"
	"github.com/iconidentify/blogsmith/pkg/llm"
)

// Client implements llm.Client using the Anthropic SDK.
// The Messages API has no JSON mode; the system instruction alone asks for
// JSON and the normalizer tolerates any surrounding fence.
type Client struct {
	client    anthropic.Client
	maxTokens int64
}

// NewClient creates a new Anthropic client.
func NewClient(cfg config.LLMConfig) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &Client{client: anthropic.NewClient(opts...), maxTokens: maxTokens}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "Anthropic"
}

// Generate sends req as a single user message and joins the text blocks of
// the reply.
func (c *Client) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   c.maxTokens,
		Temperature: anthropic.Float(float64(req.Temperature)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 && len(message.Content) == 0 {
		return nil, errors.New("unexpected response format from Anthropic")
	}
	return &llm.Response{Text: sb.String()}, nil
}
