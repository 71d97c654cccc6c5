// Package ranker picks the most engaging thumbnail for a video using an AI
// provider. The model is an opaque oracle: it receives the candidate URLs
// plus title/description context and must answer with one URL and a reason.
package ranker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Request carries the ranking input.
type Request struct {
	ThumbnailURLs    []string `json:"thumbnail_urls"`
	VideoTitle       string   `json:"video_title"`
	VideoDescription string   `json:"video_description"`
}

// Recommendation is the ranking output.
type Recommendation struct {
	ThumbnailURL string `json:"recommended_thumbnail_url"`
	Reason       string `json:"reason"`
}

// Ranker recommends one thumbnail out of a candidate list.
type Ranker interface {
	// Rank returns the recommended thumbnail. The answer is normally one
	// of the candidates but closely related URLs (e.g. a different
	// resolution of the same image) are accepted.
	Rank(ctx context.Context, req Request) (*Recommendation, error)

	// Name returns the provider name.
	Name() string
}

// New creates a Ranker for the given provider.
// The apiKey parameter is the resolved credential.
func New(provider, model, apiKey string) (Ranker, error) {
	switch provider {
	case "anthropic":
		return NewAnthropic(model, apiKey)
	case "openai":
		return NewOpenAI(model, apiKey)
	default:
		return nil, fmt.Errorf("unsupported ranking provider: %s", provider)
	}
}

func validateRequest(req Request) error {
	if len(req.ThumbnailURLs) == 0 {
		return fmt.Errorf("at least one thumbnail URL is required")
	}
	return nil
}

// parseRecommendation extracts the JSON answer from a model response, which
// may be wrapped in code fences or surrounded by prose.
func parseRecommendation(content string) (*Recommendation, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model response")
	}

	// The prompt asks for camelCase keys but models occasionally answer in
	// snake_case; accept both.
	var raw struct {
		RecommendedThumbnailURL string `json:"recommendedThumbnailUrl"`
		RecommendedSnake        string `json:"recommended_thumbnail_url"`
		Reason                  string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("malformed model response: %w", err)
	}

	rec := &Recommendation{ThumbnailURL: raw.RecommendedThumbnailURL, Reason: raw.Reason}
	if rec.ThumbnailURL == "" {
		rec.ThumbnailURL = raw.RecommendedSnake
	}
	if rec.ThumbnailURL == "" {
		return nil, fmt.Errorf("model response has no recommended thumbnail")
	}
	return rec, nil
}
