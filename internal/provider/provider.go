// Package provider builds the configured model client.
package provider

import (
	"context"
	"fmt"

	"github.com/iconidentify/blogsmith/internal/config"
	"github.com/iconidentify/blogsmith/internal/domain"
	"github.com/iconidentify/blogsmith/pkg/claude"
	"github.com/iconidentify/blogsmith/pkg/gemini"
	"github.com/iconidentify/blogsmith/pkg/llm"
	"github.com/iconidentify/blogsmith/pkg/openaichat"
)

// New returns the client for cfg.Provider. It returns a nil client and no
// error when no credential is configured; callers treat that as the
// missing-credential state.
func New(ctx context.Context, cfg config.LLMConfig) (llm.Client, error) {
	if !cfg.HasCredential() {
		return nil, nil
	}

	switch cfg.Provider {
	case config.ProviderGemini:
		c, err := gemini.NewClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.ProviderOpenAI:
		return openaichat.NewClient(cfg), nil
	case config.ProviderAnthropic:
		return claude.NewClient(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownProvider, cfg.Provider)
	}
}

// DisplayName returns the name shown for a provider identifier.
func DisplayName(provider string) string {
	switch provider {
	case config.ProviderGemini:
		return "Gemini"
	case config.ProviderOpenAI:
		return "OpenAI"
	case config.ProviderAnthropic:
		return "Anthropic"
	default:
		return provider
	}
}

// SupportsWebSearch reports whether trending lookups can return citations.
func SupportsWebSearch(provider string) bool {
	return provider == config.ProviderGemini
}
