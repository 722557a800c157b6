// Package llm defines the provider-neutral interface to hosted text models.
package llm

import "context"

// Client sends a single prompt to a hosted model.
// Implementations must be safe for concurrent use.
type Client interface {
	// Generate sends req and returns the model's reply.
	Generate(ctx context.Context, req Request) (*Response, error)
	// Name is the human-readable provider name used in error messages.
	Name() string
}

// Request describes one model call.
type Request struct {
	Model       string
	System      string
	Prompt      string
	Temperature float32
	// JSONMode asks the model to constrain its output to JSON.
	JSONMode bool
	// WebSearch enables search grounding where the provider supports it.
	WebSearch bool
}

// Citation is a web source attached to a grounded reply.
type Citation struct {
	URI   string
	Title string
}

// Response is the model's reply.
type Response struct {
	Text      string
	Citations []Citation
}
