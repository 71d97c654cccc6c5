package ranker

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI implements Ranker using OpenAI chat models.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates a new OpenAI ranker.
func NewOpenAI(model, apiKey string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not provided")
	}

	if model == "" {
		model = openai.GPT4oMini
	}

	return &OpenAI{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// Name returns the provider name.
func (o *OpenAI) Name() string {
	return "openai"
}

// Rank asks an OpenAI chat model to pick the most engaging thumbnail.
func (o *OpenAI) Rank(ctx context.Context, req Request) (*Recommendation, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(req)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("ranking API error: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("no response from API")
	}

	return parseRecommendation(resp.Choices[0].Message.Content)
}
