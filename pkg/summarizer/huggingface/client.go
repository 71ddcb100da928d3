package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ai-notes-be/pkg/summarizer"
)

const maxResponseBytes = 1 << 20

// Config for the hosted inference endpoint of a summarization model.
type Config struct {
	APIKey    string
	URL       string
	MinLength int
	MaxLength int
	Timeout   time.Duration
}

type Client struct {
	apiKey     string
	url        string
	minLength  int
	maxLength  int
	httpClient *http.Client
}

type summarizeRequest struct {
	Inputs     string           `json:"inputs"`
	Parameters summaryParameters `json:"parameters"`
}

type summaryParameters struct {
	MinLength int `json:"min_length"`
	MaxLength int `json:"max_length"`
}

type summaryItem struct {
	SummaryText string `json:"summary_text"`
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		apiKey:     cfg.APIKey,
		url:        cfg.URL,
		minLength:  cfg.MinLength,
		maxLength:  cfg.MaxLength,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Summarize returns the first summary_text of the model output. Every failure wraps
// summarizer.ErrUnavailable.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(summarizeRequest{
		Inputs: text,
		Parameters: summaryParameters{
			MinLength: c.minLength,
			MaxLength: c.maxLength,
		},
	})
	if err != nil {
		return "", unavailable("failed to marshal request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", unavailable("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", unavailable("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", unavailable("failed to read response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", unavailable("upstream status %d: %s", resp.StatusCode, snippet(body))
	}

	return parseSummary(body)
}

// parseSummary accepts only a non-empty array whose first element has a non-blank summary_text.
func parseSummary(body []byte) (string, error) {
	var items []summaryItem
	if err := json.Unmarshal(body, &items); err != nil {
		return "", unavailable("unexpected response shape: %s", snippet(body))
	}
	if len(items) == 0 {
		return "", unavailable("empty response")
	}

	summary := strings.TrimSpace(items[0].SummaryText)
	if summary == "" {
		return "", unavailable("response has no summary_text")
	}
	return summary, nil
}

func unavailable(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", summarizer.ErrUnavailable, fmt.Sprintf(format, args...))
}

func snippet(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
