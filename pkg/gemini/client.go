// Package gemini implements llm.Client on top of the Gemini API.
package gemini

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/iconidentify/blogsmith/internal/config"
	"github.com/iconidentify/blogsmith/pkg/llm"
)

// Client implements llm.Client using the Google Gen AI SDK.
type Client struct {
	genai *genai.Client
}

// NewClient creates a new Gemini client.
func NewClient(ctx context.Context, cfg config.LLMConfig) (*Client, error) {
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	c, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{genai: c}, nil
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "Gemini"
}

// Generate sends req to the model. WebSearch enables the Google Search tool
// and the reply's grounding chunks are returned as citations.
func (c *Client) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	gc := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.System != "" {
		gc.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.JSONMode {
		gc.ResponseMIMEType = "application/json"
	}
	if req.WebSearch {
		gc.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	resp, err := c.genai.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), gc)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	return &llm.Response{
		Text:      resp.Text(),
		Citations: citations(resp),
	}, nil
}

func citations(resp *genai.GenerateContentResponse) []llm.Citation {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil {
		return nil
	}

	var out []llm.Citation
	for _, chunk := range meta.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		out = append(out, llm.Citation{URI: chunk.Web.URI, Title: chunk.Web.Title})
	}
	return out
}
