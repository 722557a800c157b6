package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/iconidentify/blogsmith/internal/domain"
)

// ContentStrategies returns the chain used for blog content replies.
// Content has no textual fallback: the reply must be JSON.
func ContentStrategies(limits Limits) []Strategy[domain.GeneratedContent] {
	return []Strategy[domain.GeneratedContent]{
		{Name: "json", Extract: contentJSON(limits)},
	}
}

func contentJSON(limits Limits) func(string) (domain.GeneratedContent, error) {
	return func(candidate string) (domain.GeneratedContent, error) {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal([]byte(candidate), &fields); err != nil {
			if json.Valid([]byte(candidate)) {
				return domain.GeneratedContent{}, structureError("expected a JSON object", candidate, limits)
			}
			return domain.GeneratedContent{}, fmt.Errorf("%w: %v", ErrNoMatch, err)
		}

		var (
			out domain.GeneratedContent
			err error
		)
		if out.Titles, err = stringArray(fields, "titles"); err != nil {
			return domain.GeneratedContent{}, structureError(err.Error(), candidate, limits)
		}
		if out.MetaDescription, err = nonEmptyString(fields, "meta_description"); err != nil {
			return domain.GeneratedContent{}, structureError(err.Error(), candidate, limits)
		}
		if out.Keywords, err = stringArray(fields, "keywords"); err != nil {
			return domain.GeneratedContent{}, structureError(err.Error(), candidate, limits)
		}
		if out.DraftContent, err = nonEmptyString(fields, "draft_content"); err != nil {
			return domain.GeneratedContent{}, structureError(err.Error(), candidate, limits)
		}
		if out.ImagePrompt, err = nonEmptyString(fields, "image_prompt"); err != nil {
			return domain.GeneratedContent{}, structureError(err.Error(), candidate, limits)
		}
		return out, nil
	}
}

func stringArray(fields map[string]json.RawMessage, key string) ([]string, error) {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return nil, fmt.Errorf("%s is missing", key)
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%s must be an array of strings", key)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s is empty", key)
	}
	return out, nil
}

func nonEmptyString(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return "", fmt.Errorf("%s is missing", key)
	}
	var out string
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%s must be a string", key)
	}
	if out == "" {
		return "", fmt.Errorf("%s is empty", key)
	}
	return out, nil
}

func structureError(reason, payload string, limits Limits) *domain.StructureError {
	return &domain.StructureError{Reason: reason, Payload: truncate(payload, limits.PayloadLen)}
}
