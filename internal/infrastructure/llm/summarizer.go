// Package llm talks to an OpenAI-compatible chat completion endpoint to
// summarize clinical notes.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/psychodash/practice-dashboard/internal/core/domain"
)

const (
	// DefaultBaseURL is Gemini's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultModel   = "gemini-2.5-flash"
)

const promptTemplate = `You are a clinical assistant. Summarize the following clinical notes into a concise 2-sentence progress update for a dashboard view. Maintain professional medical tone. Notes: "%s"`

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Client implements ports.Summarizer. A Client built without an API key
// answers every call with domain.ErrSummarizerNotConfigured.
type Client struct {
	api   *openai.Client
	model string
}

func NewClient(cfg Config) *Client {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return &Client{}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	return &Client{api: openai.NewClientWithConfig(oc), model: cfg.Model}
}

// Configured reports whether an API key was supplied.
func (c *Client) Configured() bool { return c.api != nil }

// Summarize sends a single completion request. It does not retry.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	if c.api == nil {
		return "", domain.ErrSummarizerNotConfigured
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(promptTemplate, text)},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("llm: completion failed with status %d: %w", apiErr.HTTPStatusCode, err)
		}
		return "", fmt.Errorf("llm: completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
