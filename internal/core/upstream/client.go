// Package upstream talks to the third-party media-extraction APIs. It only
// transports and parses JSON; making sense of the payload is the
// mediainfo package's job.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tubesiphon/tubesiphon/internal/core/config"
)

// ErrNotConfigured means no API credential is available. Callers fail fast
// with it instead of attempting an unauthenticated call.
var ErrNotConfigured = errors.New("upstream API key not configured")

// StatusError is a non-2xx reply from the upstream service. Status and body
// are preserved so handlers can pass them through.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// Client issues requests against the RapidAPI extraction services.
type Client struct {
	// APIKey is the x-rapidapi-key credential, shared by both endpoints.
	APIKey string

	// MetadataURL / AudioURL are the full endpoint URLs. MetadataHost and
	// AudioHost are the x-rapidapi-host header values, which RapidAPI
	// requires even when routing through a different gateway URL.
	MetadataURL  string
	MetadataHost string
	AudioURL     string
	AudioHost    string

	// HTTPClient may be replaced to impose a different timeout or proxy.
	HTTPClient *http.Client
}

// NewClient builds a client from configuration with a 30s request timeout.
func NewClient(apiKey string, cfg *config.Config) *Client {
	return &Client{
		APIKey:       apiKey,
		MetadataURL:  "https://" + cfg.MetadataHost() + config.DefaultMetadataPath,
		MetadataHost: cfg.MetadataHost(),
		AudioURL:     "https://" + cfg.AudioHost() + config.DefaultAudioPath,
		AudioHost:    cfg.AudioHost(),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
			},
		},
	}
}

// FetchRaw posts a video URL to the metadata endpoint and returns the parsed
// JSON body as-is. The value is whatever schema the upstream currently
// speaks; normalization happens elsewhere.
func (c *Client) FetchRaw(ctx context.Context, videoURL string) (any, error) {
	if c.APIKey == "" {
		return nil, ErrNotConfigured
	}

	form := url.Values{}
	form.Set("query", videoURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.MetadataURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.setAuthHeaders(req, c.MetadataHost)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("malformed upstream response: %w", err)
	}
	return raw, nil
}

// AudioContinuation relays the paginated audio-stream listing. The response
// is returned verbatim; this endpoint's schema is not normalized.
func (c *Client) AudioContinuation(ctx context.Context, audioID, continuationToken string) (json.RawMessage, error) {
	if c.APIKey == "" {
		return nil, ErrNotConfigured
	}

	q := url.Values{}
	q.Set("audio_id", audioID)
	if continuationToken != "" {
		q.Set("continuation_token", continuationToken)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.AudioURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setAuthHeaders(req, c.AudioHost)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("malformed upstream response: not valid JSON")
	}
	return json.RawMessage(body), nil
}

func (c *Client) setAuthHeaders(req *http.Request, host string) {
	req.Header.Set("x-rapidapi-key", c.APIKey)
	if host != "" {
		req.Header.Set("x-rapidapi-host", host)
	}
}

// do runs the request and returns the response body, converting non-2xx
// replies into *StatusError with the body preserved.
func (c *Client) do(req *http.Request) ([]byte, error) {
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
