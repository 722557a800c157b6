package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	// ErrMissingCredential is returned when no model API key is configured.
	// Operations fail with it before any network call is made.
	ErrMissingCredential = errors.New("API key not configured. Please set the API_KEY environment variable")

	// ErrEmptyTopic is returned when a blank topic is submitted.
	ErrEmptyTopic = errors.New("please enter a topic")

	// ErrEmptyResponse is returned when the model replied with no text and no citations.
	ErrEmptyResponse = errors.New("AI returned an empty response for trending topics")

	// ErrUnknownProvider is returned for an unsupported provider name.
	ErrUnknownProvider = errors.New("unknown model provider")
)

// ErrorKind classifies an error for display and transport mapping.
type ErrorKind string

const (
	ErrorKindConfiguration ErrorKind = "configuration"
	ErrorKindInput         ErrorKind = "input"
	ErrorKindProvider      ErrorKind = "provider"
	ErrorKindStructure     ErrorKind = "structure"
	ErrorKindExtraction    ErrorKind = "extraction"
	ErrorKindInternal      ErrorKind = "internal"
)

// ProviderError wraps a failure reported by the hosted model or its transport.
type ProviderError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s API error (%s): %v", e.Provider, e.Op, e.Err)
	}
	return fmt.Sprintf("%s API error: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// StructureError is returned when a reply parsed as JSON but did not have
// the expected fields or field types.
type StructureError struct {
	Reason  string
	Payload string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("AI response did not match the expected structure (%s): %s", e.Reason, e.Payload)
}

// ExtractionError is returned when a reply could not be coerced into any
// expected shape.
type ExtractionError struct {
	// Prefix is a truncated copy of the raw reply, for diagnostics.
	Prefix string
	// Apology is set when the reply reads like an error or apology from
	// the model rather than malformed data.
	Apology string
}

func (e *ExtractionError) Error() string {
	if e.Apology != "" {
		return fmt.Sprintf("AI model returned an error message instead of JSON: %q", e.Apology+"...")
	}
	return fmt.Sprintf("could not reliably extract data from response: %q", e.Prefix+"...")
}

// KindOf classifies err into one of the error kinds.
func KindOf(err error) ErrorKind {
	var (
		provErr   *ProviderError
		structErr *StructureError
		extErr    *ExtractionError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingCredential), errors.Is(err, ErrUnknownProvider):
		return ErrorKindConfiguration
	case errors.Is(err, ErrEmptyTopic):
		return ErrorKindInput
	case errors.As(err, &structErr):
		return ErrorKindStructure
	case errors.As(err, &extErr), errors.Is(err, ErrEmptyResponse):
		return ErrorKindExtraction
	case errors.As(err, &provErr):
		return ErrorKindProvider
	default:
		return ErrorKindInternal
	}
}
