package normalize

import "github.com/iconidentify/blogsmith/internal/domain"

// Normalizer binds the strategy chains to a set of limits.
type Normalizer struct {
	limits   Limits
	content  []Strategy[domain.GeneratedContent]
	trending []Strategy[[]string]
}

// New creates a Normalizer using limits.
func New(limits Limits) *Normalizer {
	return &Normalizer{
		limits:   limits,
		content:  ContentStrategies(limits),
		trending: TrendingStrategies(limits),
	}
}

// Content parses a blog content reply.
func (n *Normalizer) Content(raw string) (domain.GeneratedContent, error) {
	return Run(raw, n.limits, n.content)
}

// Trending parses a trending topics reply.
func (n *Normalizer) Trending(raw string) ([]string, error) {
	return Run(raw, n.limits, n.trending)
}

// Limits returns the limits the Normalizer was built with.
func (n *Normalizer) Limits() Limits {
	return n.limits
}

// ExtractionError builds the error reported when raw yields nothing usable.
func (n *Normalizer) ExtractionError(raw string) *domain.ExtractionError {
	return extractionError(raw, StripFence(raw), n.limits)
}
