package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/iconidentify/blogsmith/internal/domain"
	"github.com/iconidentify/blogsmith/internal/normalize"
	"github.com/iconidentify/blogsmith/pkg/llm"
)

const (
	contentTemperature  = 0.7
	trendingTemperature = 0.3

	trendingOp = "trending topics"
)

const contentSystemInstruction = `You are an expert blog content strategist and SEO specialist. Your goal is to help users generate comprehensive and engaging blog post materials based on a given topic.
The user will provide a topic. You must generate content related to this topic.
Output STRICTLY in JSON format. Do not include any explanatory text before or after the JSON object.
The JSON object must have the following keys and value types:
- "titles": An array of 3 distinct, catchy, and SEO-friendly blog post titles (each title as a string).
- "meta_description": A concise and compelling SEO-friendly meta description, approximately 150-160 characters long (string).
- "keywords": An array of 5-7 relevant keywords or tags (each keyword as a string).
- "draft_content": A blog post draft of approximately 300-400 words. The draft should be well-structured with an introduction, 2-3 body paragraphs, and a conclusion. Ensure the content is engaging, informative, and maintains good readability. Use markdown for basic formatting like paragraphs (use '\n\n' for paragraph breaks). (string).
- "image_prompt": A descriptive and creative prompt suitable for an AI image generator to create a relevant featured image for this blog post. The prompt should be detailed enough to guide the image generation process effectively (string).`

const trendingPrompt = `List 5 current trending topics suitable for general audience blog posts.
Focus on areas like technology, lifestyle, general news, or education.
For each topic, provide a concise title or phrase.
Output the list of topics as a JSON object with a single key "trending_topics" which is an array of strings.
Example: { "trending_topics": ["Topic 1", "Topic 2", "Topic 3", "Topic 4", "Topic 5"] }`

const trendingSystemInstruction = "You are an assistant that identifies trending topics based on Google Search results and presents them in a structured JSON format as requested by the user. Only return the JSON object."

// ContentServiceConfig configures the content service.
type ContentServiceConfig struct {
	// Provider is the display name used when no client is configured.
	Provider      string
	ContentModel  string
	TrendingModel string
	// Timeout bounds each model call. Zero means no limit.
	Timeout time.Duration
}

// ContentService generates blog materials and trending topic suggestions.
type ContentService struct {
	client     llm.Client
	normalizer *normalize.Normalizer
	cfg        ContentServiceConfig
	events     domain.EventEmitter
	logger     *slog.Logger
}

// NewContentService creates a new content service. client may be nil when
// no credential is configured; both operations then fail with
// domain.ErrMissingCredential. events may be nil.
func NewContentService(
	client llm.Client,
	normalizer *normalize.Normalizer,
	cfg ContentServiceConfig,
	events domain.EventEmitter,
	logger *slog.Logger,
) *ContentService {
	return &ContentService{
		client:     client,
		normalizer: normalizer,
		cfg:        cfg,
		events:     events,
		logger:     logger,
	}
}

// Status describes the service configuration for front-ends.
type Status struct {
	CredentialConfigured bool   `json:"credential_configured"`
	Provider             string `json:"provider"`
	ContentModel         string `json:"content_model"`
	TrendingModel        string `json:"trending_model"`
}

// CredentialConfigured reports whether a model client is available.
func (s *ContentService) CredentialConfigured() bool {
	return s.client != nil
}

// ProviderName returns the provider name used in messages.
func (s *ContentService) ProviderName() string {
	if s.client != nil {
		return s.client.Name()
	}
	return s.cfg.Provider
}

// Status returns the current configuration summary.
func (s *ContentService) Status() Status {
	return Status{
		CredentialConfigured: s.CredentialConfigured(),
		Provider:             s.ProviderName(),
		ContentModel:         s.cfg.ContentModel,
		TrendingModel:        s.cfg.TrendingModel,
	}
}

// GenerateBlogPostContent asks the model for titles, a meta description,
// keywords, a draft and an image prompt for topic.
func (s *ContentService) GenerateBlogPostContent(ctx context.Context, topic string) (*domain.GeneratedContent, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, domain.ErrEmptyTopic
	}
	if s.client == nil {
		s.emitFailure(domain.EventCategoryContent, "content generation", domain.ErrMissingCredential, domain.EventMetadata{"topic": topic})
		return nil, domain.ErrMissingCredential
	}

	start := time.Now()
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	content, err := s.content(ctx, topic)
	meta := domain.EventMetadata{
		"topic":       topic,
		"provider":    s.client.Name(),
		"model":       s.cfg.ContentModel,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		wrapped := &domain.ProviderError{Provider: s.client.Name(), Err: err}
		s.logger.Error("blog content generation failed",
			"topic", topic,
			"provider", s.client.Name(),
			"kind", domain.KindOf(wrapped),
			"error", err,
		)
		s.emitFailure(domain.EventCategoryContent, "content generation", wrapped, meta)
		return nil, wrapped
	}

	s.logger.Info("blog content generated",
		"topic", topic,
		"provider", s.client.Name(),
		"titles", len(content.Titles),
		"keywords", len(content.Keywords),
		"duration", time.Since(start),
	)
	s.emitSuccess(domain.EventCategoryContent, "Blog content generated", meta)
	return content, nil
}

func (s *ContentService) content(ctx context.Context, topic string) (*domain.GeneratedContent, error) {
	resp, err := s.client.Generate(ctx, llm.Request{
		Model:       s.cfg.ContentModel,
		System:      contentSystemInstruction,
		Prompt:      fmt.Sprintf(`Generate blog post materials for the topic: "%s"`, topic),
		Temperature: contentTemperature,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	content, err := s.normalizer.Content(resp.Text)
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// GenerateTrendingTopics asks the model for current topics using search
// grounding. When no topic titles can be extracted but citations were
// returned, the result holds a single placeholder topic and Partial is set.
func (s *ContentService) GenerateTrendingTopics(ctx context.Context) (*domain.TrendingTopicsResult, error) {
	if s.client == nil {
		s.emitFailure(domain.EventCategoryTrending, trendingOp, domain.ErrMissingCredential, nil)
		return nil, domain.ErrMissingCredential
	}

	start := time.Now()
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	result, err := s.trending(ctx)
	meta := domain.EventMetadata{
		"provider":    s.client.Name(),
		"model":       s.cfg.TrendingModel,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		wrapped := &domain.ProviderError{Provider: s.client.Name(), Op: trendingOp, Err: err}
		s.logger.Error("trending topics failed",
			"provider", s.client.Name(),
			"kind", domain.KindOf(wrapped),
			"error", err,
		)
		s.emitFailure(domain.EventCategoryTrending, trendingOp, wrapped, meta)
		return nil, wrapped
	}

	meta["topic_count"] = len(result.Topics)
	meta["source_count"] = len(result.Sources)
	meta["partial"] = result.Partial
	s.logger.Info("trending topics fetched",
		"provider", s.client.Name(),
		"topics", len(result.Topics),
		"sources", len(result.Sources),
		"partial", result.Partial,
		"duration", time.Since(start),
	)
	s.emitSuccess(domain.EventCategoryTrending, "Trending topics fetched", meta)
	return result, nil
}

func (s *ContentService) trending(ctx context.Context) (*domain.TrendingTopicsResult, error) {
	resp, err := s.client.Generate(ctx, llm.Request{
		Model:       s.cfg.TrendingModel,
		System:      trendingSystemInstruction,
		Prompt:      trendingPrompt,
		Temperature: trendingTemperature,
		WebSearch:   true,
	})
	if err != nil {
		return nil, err
	}

	sources := groundingChunks(resp.Citations)
	topics, parseErr := s.normalizer.Trending(resp.Text)
	if parseErr == nil && len(topics) > 0 {
		return &domain.TrendingTopicsResult{Topics: topics, Sources: sources}, nil
	}

	if len(sources) > 0 {
		if parseErr != nil {
			s.logger.Warn("trending topic titles not extracted, returning sources only", "error", parseErr)
		}
		return &domain.TrendingTopicsResult{
			Topics:  []string{domain.PlaceholderSourcesOnly},
			Sources: sources,
			Partial: true,
		}, nil
	}

	if strings.TrimSpace(resp.Text) == "" {
		return nil, domain.ErrEmptyResponse
	}
	if parseErr != nil {
		return nil, parseErr
	}
	return nil, s.normalizer.ExtractionError(resp.Text)
}

// groundingChunks keeps only citations with an http or https URI.
func groundingChunks(citations []llm.Citation) []domain.GroundingChunk {
	chunks := make([]domain.GroundingChunk, 0, len(citations))
	for _, c := range citations {
		if !isWebURI(c.URI) {
			continue
		}
		chunks = append(chunks, domain.GroundingChunk{Web: domain.GroundingChunkWeb{URI: c.URI, Title: c.Title}})
	}
	return chunks
}

func isWebURI(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func (s *ContentService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, s.cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

func (s *ContentService) emitSuccess(category domain.EventCategory, message string, meta domain.EventMetadata) {
	if s.events == nil {
		return
	}
	s.events.EmitSuccess(category, "ContentService", message, meta)
}

func (s *ContentService) emitFailure(category domain.EventCategory, op string, err error, meta domain.EventMetadata) {
	if s.events == nil {
		return
	}
	if meta == nil {
		meta = domain.EventMetadata{}
	}
	meta["error_kind"] = string(domain.KindOf(err))

	if errors.Is(err, domain.ErrMissingCredential) {
		s.events.EmitWarning(domain.EventCategoryConfig, "ContentService",
			fmt.Sprintf("%s skipped: model credential not configured", op), meta)
		return
	}
	// The error text can quote the model reply, so only its kind is recorded.
	s.events.EmitError(category, "ContentService", fmt.Sprintf("%s failed (%s error)", op, domain.KindOf(err)), meta)
}
