package ranker

import (
	"strings"
	"testing"
)

func TestParseRecommendation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantURL string
		wantErr bool
	}{
		{
			name:    "plain JSON",
			content: `{"recommendedThumbnailUrl": "http://t/1.jpg", "reason": "bright colors"}`,
			wantURL: "http://t/1.jpg",
		},
		{
			name:    "code fenced",
			content: "```json\n{\"recommendedThumbnailUrl\": \"http://t/2.jpg\", \"reason\": \"r\"}\n```",
			wantURL: "http://t/2.jpg",
		},
		{
			name:    "surrounded by prose",
			content: "Sure! Here is my pick:\n{\"recommendedThumbnailUrl\": \"http://t/3.jpg\", \"reason\": \"r\"}\nHope that helps.",
			wantURL: "http://t/3.jpg",
		},
		{
			name:    "snake_case keys",
			content: `{"recommended_thumbnail_url": "http://t/4.jpg", "reason": "r"}`,
			wantURL: "http://t/4.jpg",
		},
		{
			name:    "no JSON at all",
			content: "I would pick the first one.",
			wantErr: true,
		},
		{
			name:    "JSON without a URL",
			content: `{"reason": "none of them work"}`,
			wantErr: true,
		},
		{
			name:    "broken JSON",
			content: `{"recommendedThumbnailUrl": "http://t/5.jpg",`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := parseRecommendation(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseRecommendation(%q) succeeded; want error", tt.content)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseRecommendation: %v", err)
			}
			if rec.ThumbnailURL != tt.wantURL {
				t.Errorf("ThumbnailURL = %q; want %q", rec.ThumbnailURL, tt.wantURL)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	req := Request{
		ThumbnailURLs:    []string{"http://t/1.jpg", "http://t/2.jpg"},
		VideoTitle:       "My Title",
		VideoDescription: "My Description",
	}

	prompt := buildPrompt(req)
	for _, want := range []string{"My Title", "My Description", "- http://t/1.jpg", "- http://t/2.jpg", "recommendedThumbnailUrl"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestNewUnknownProvider(t *testing.T) {
	if _, err := New("genkit", "", "key"); err == nil {
		t.Error("New accepted an unknown provider")
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New("anthropic", "", ""); err == nil {
		t.Error("New accepted an empty anthropic key")
	}
	if _, err := New("openai", "", ""); err == nil {
		t.Error("New accepted an empty openai key")
	}
}

func TestValidateRequest(t *testing.T) {
	if err := validateRequest(Request{}); err == nil {
		t.Error("validateRequest accepted an empty candidate list")
	}
	if err := validateRequest(Request{ThumbnailURLs: []string{"http://t/1.jpg"}}); err != nil {
		t.Errorf("validateRequest: %v", err)
	}
}
