package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"MaizeReporter/internal/config"
	"MaizeReporter/internal/ports"
)

const promptTemplate = `Today is %s.

Search latest maize (corn) market news for India, Bihar, Purnea mandis.

Provide detailed information on:
1. Current prices in major mandis (Bihar, Purnea, All India average)
2. Latest news affecting maize prices
3. Government policies (MSP, imports, exports)
4. Weather updates affecting crops
5. Demand from ethanol/poultry industry
6. International factors (US, Brazil)

Format in simple Hinglish with detailed explanations.`

// Client implements ports.NarrativeSource backed by the Perplexity
// OpenAI-compatible chat completions API.
type Client struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
}

var _ ports.NarrativeSource = (*Client)(nil)

// NewClient builds a client from configuration.
func NewClient(cfg config.SearchConfig) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// FetchNarrative asks the live-search model for current market commentary,
// parameterized by the given day.
func (c *Client) FetchNarrative(ctx context.Context, day time.Time) (string, error) {
	if c == nil {
		return "", fmt.Errorf("search client is nil")
	}
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return "", fmt.Errorf("search client misconfigured")
	}

	prompt := fmt.Sprintf(promptTemplate, day.Format("January 02, 2006"))

	body, err := json.Marshal(map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal search payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch narrative: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("search error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty search response")
	}

	return parsed.Choices[0].Message.Content, nil
}
