// Package normalize turns free-form model replies into structured values.
//
// Replies are run through an ordered list of extraction strategies. The first
// strategy to succeed wins. A strategy that does not recognize the reply
// returns an error wrapping ErrNoMatch and the next one is tried; any other
// error stops the chain.
package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/iconidentify/blogsmith/internal/domain"
)

// ErrNoMatch is wrapped by strategies that did not recognize their input.
var ErrNoMatch = errors.New("strategy did not match")

// Limits holds the tuning constants used by the fallback strategies.
type Limits struct {
	// Line extraction keeps lines with StrictMinLen < len < StrictMaxLen and
	// only succeeds when MinLines <= count <= MaxLines.
	StrictMinLen int
	StrictMaxLen int
	MinLines     int
	MaxLines     int

	// Loose list extraction keeps lines with LooseMinLen < len < LooseMaxLen.
	LooseMinLen int
	LooseMaxLen int

	// MaxTopics caps the number of topics a line strategy returns.
	MaxTopics int

	PrefixLen  int
	ApologyLen int
	PayloadLen int
}

// DefaultLimits returns the stock thresholds.
func DefaultLimits() Limits {
	return Limits{
		StrictMinLen: 5,
		StrictMaxLen: 150,
		MinLines:     1,
		MaxLines:     7,
		LooseMinLen:  3,
		LooseMaxLen:  150,
		MaxTopics:    5,
		PrefixLen:    100,
		ApologyLen:   150,
		PayloadLen:   200,
	}
}

// Validate checks that the limits describe non-empty ranges.
func (l Limits) Validate() error {
	if l.StrictMinLen < 0 || l.StrictMinLen >= l.StrictMaxLen {
		return fmt.Errorf("strict length bounds must satisfy 0 <= min < max, got %d..%d", l.StrictMinLen, l.StrictMaxLen)
	}
	if l.LooseMinLen < 0 || l.LooseMinLen >= l.LooseMaxLen {
		return fmt.Errorf("loose length bounds must satisfy 0 <= min < max, got %d..%d", l.LooseMinLen, l.LooseMaxLen)
	}
	if l.MinLines < 1 || l.MinLines > l.MaxLines {
		return fmt.Errorf("line count bounds must satisfy 1 <= min <= max, got %d..%d", l.MinLines, l.MaxLines)
	}
	if l.MaxTopics < 1 {
		return fmt.Errorf("max topics must be positive, got %d", l.MaxTopics)
	}
	if l.PrefixLen < 1 || l.ApologyLen < 1 || l.PayloadLen < 1 {
		return errors.New("diagnostic lengths must be positive")
	}
	return nil
}

// Strategy is one way of turning a reply into a value.
// Extract receives the reply with any enclosing code fence removed.
type Strategy[T any] struct {
	Name    string
	Extract func(candidate string) (T, error)
}

// Run strips an enclosing fence from raw and tries each strategy in order.
// When none match it returns a *domain.ExtractionError.
func Run[T any](raw string, limits Limits, strategies []Strategy[T]) (T, error) {
	candidate := StripFence(raw)
	for _, s := range strategies {
		v, err := s.Extract(candidate)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, ErrNoMatch) {
			var zero T
			return zero, err
		}
	}

	var zero T
	return zero, extractionError(raw, candidate, limits)
}

func extractionError(raw, candidate string, limits Limits) *domain.ExtractionError {
	e := &domain.ExtractionError{Prefix: truncate(raw, limits.PrefixLen)}
	lower := strings.ToLower(candidate)
	if strings.Contains(lower, "error") || strings.Contains(lower, "sorry") {
		e.Apology = truncate(candidate, limits.ApologyLen)
	}
	return e
}

var fenceRe = regexp.MustCompile("(?s)^```(\\w*)?\\s*\\n?(.*?)\\n?\\s*```$")

// StripFence returns the trimmed body of a single fenced code block when
// the whole trimmed text is one, and the trimmed text otherwise.
func StripFence(text string) string {
	text = strings.TrimSpace(text)
	m := fenceRe.FindStringSubmatch(text)
	if m == nil || m[2] == "" {
		return text
	}
	return strings.TrimSpace(m[2])
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
