// Package openrouter is a minimal client for OpenAI-compatible chat-completions endpoints.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/noah-isme/kairos-api/pkg/config"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("openrouter: api key not configured")

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is the chat-completions request body.
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Client talks to the chat-completions API.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
	maxTokens  int
	siteURL    string
	siteTitle  string
}

// NewClient builds a client from matcher configuration.
func NewClient(cfg config.MatcherConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		maxTokens:  cfg.MaxTokens,
		siteURL:    cfg.SiteURL,
		siteTitle:  cfg.SiteTitle,
	}
}

// IsAvailable reports whether the client has credentials.
func (c *Client) IsAvailable() bool {
	return c != nil && c.apiKey != ""
}

// Complete sends a single user prompt with temperature 0 and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if !c.IsAvailable() {
		return "", ErrNotConfigured
	}

	payload, err := json.Marshal(Request{
		Model:       c.model,
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: 0,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.siteURL != "" {
		req.Header.Set("HTTP-Referer", c.siteURL)
	}
	if c.siteTitle != "" {
		req.Header.Set("X-Title", c.siteTitle)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat api returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parse chat response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("chat api error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("chat api returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
