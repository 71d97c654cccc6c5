package ranker

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Anthropic implements Ranker using Anthropic Claude.
type Anthropic struct {
	client *anthropic.Client
	model  string
}

// NewAnthropic creates a new Anthropic ranker.
func NewAnthropic(model, apiKey string) (*Anthropic, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic API key not provided")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	if model == "" {
		model = "claude-3-5-haiku-20241022"
	}

	return &Anthropic{
		client: &client,
		model:  model,
	}, nil
}

// Name returns the provider name.
func (a *Anthropic) Name() string {
	return "anthropic"
}

// Rank asks Claude to pick the most engaging thumbnail.
func (a *Anthropic) Rank(ctx context.Context, req Request) (*Recommendation, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(req))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("ranking API error: %w", err)
	}

	var content string
	for _, block := range message.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}
	if content == "" {
		return nil, fmt.Errorf("no response from API")
	}

	return parseRecommendation(content)
}
