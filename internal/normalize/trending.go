package normalize

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// TrendingStrategies returns the chain used for trending topic replies:
// JSON first, then line extraction, then a loose list heuristic.
func TrendingStrategies(limits Limits) []Strategy[[]string] {
	return []Strategy[[]string]{
		{Name: "json", Extract: trendingJSON(limits)},
		{Name: "lines", Extract: trendingLines(limits)},
		{Name: "loose_list", Extract: trendingLooseList(limits)},
	}
}

// trendingJSON accepts {"trending_topics": [...]} or a bare array of strings.
// An object without the key yields no topics.
func trendingJSON(limits Limits) func(string) ([]string, error) {
	return func(candidate string) ([]string, error) {
		var v any
		if err := json.Unmarshal([]byte(candidate), &v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoMatch, err)
		}

		var list any
		switch t := v.(type) {
		case map[string]any:
			raw, ok := t["trending_topics"]
			if !ok || raw == nil {
				return []string{}, nil
			}
			list = raw
		case []any:
			list = t
		default:
			return nil, structureError("expected an object or array", candidate, limits)
		}

		items, ok := list.([]any)
		if !ok {
			return nil, structureError("trending_topics must be an array of strings", candidate, limits)
		}
		topics := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, structureError("trending_topics must be an array of strings", candidate, limits)
			}
			topics = append(topics, s)
		}
		return topics, nil
	}
}

// listMarkerRe matches "1." "1)" "(1)" "1:" "#1" and bullet markers. A
// bare number is kept since topics often start with one ("5G rollout").
var listMarkerRe = regexp.MustCompile(`^(?:\(?\d+[.):]|#\d*[.):]?|[-*•+])\s*`)

func trendingLines(limits Limits) func(string) ([]string, error) {
	return func(candidate string) ([]string, error) {
		var topics []string
		for _, line := range strings.Split(candidate, "\n") {
			line = strings.TrimSpace(line)
			line = strings.TrimSpace(listMarkerRe.ReplaceAllString(line, ""))
			if n := runeLen(line); n > limits.StrictMinLen && n < limits.StrictMaxLen {
				topics = append(topics, line)
			}
		}
		if len(topics) < limits.MinLines || len(topics) > limits.MaxLines {
			return nil, fmt.Errorf("%w: %d usable lines", ErrNoMatch, len(topics))
		}
		return capTopics(topics, limits.MaxTopics), nil
	}
}

var looseMarkerRe = regexp.MustCompile(`^[-*\d.\s]+`)

func trendingLooseList(limits Limits) func(string) ([]string, error) {
	return func(candidate string) ([]string, error) {
		if !strings.Contains(candidate, "\n") || strings.Contains(candidate, "{") {
			return nil, fmt.Errorf("%w: not list-like", ErrNoMatch)
		}
		var topics []string
		for _, line := range strings.Split(candidate, "\n") {
			line = strings.TrimSpace(looseMarkerRe.ReplaceAllString(line, ""))
			if n := runeLen(line); n > limits.LooseMinLen && n < limits.LooseMaxLen {
				topics = append(topics, line)
			}
		}
		if len(topics) == 0 {
			return nil, fmt.Errorf("%w: no usable lines", ErrNoMatch)
		}
		return capTopics(topics, limits.MaxTopics), nil
	}
}

func capTopics(topics []string, n int) []string {
	if len(topics) > n {
		return topics[:n]
	}
	return topics
}
