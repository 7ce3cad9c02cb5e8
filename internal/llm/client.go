package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// ErrEmptyResponse is returned when the model answers with no text.
var ErrEmptyResponse = errors.New("the model returned an empty response")

// Generator turns a request string into response text.
type Generator interface {
	Generate(ctx context.Context, request string) (string, error)
}

// Client issues exactly one provider call per Generate. It does not retry
// and imposes no timeout of its own.
type Client struct {
	provider Provider
	model    string
	log      *slog.Logger
}

func NewClient(provider Provider, model string) *Client {
	return &Client{
		provider: provider,
		model:    model,
		log:      slog.Default().With("component", "llm", "provider", provider.Name()),
	}
}

func (c *Client) Provider() Provider {
	return c.provider
}

func (c *Client) Generate(ctx context.Context, request string) (string, error) {
	start := time.Now()
	resp, err := c.provider.Complete(ctx, NewRequest(c.model, "", request))
	if err != nil {
		c.log.Error("generation failed", "error", err, "elapsed", time.Since(start))
		return "", err
	}
	if strings.TrimSpace(resp.Content) == "" {
		c.log.Warn("empty generation", "finish_reason", resp.FinishReason)
		return "", ErrEmptyResponse
	}

	c.log.Debug("generation complete",
		"model", resp.Model,
		"finish_reason", resp.FinishReason,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"elapsed", time.Since(start),
	)
	return resp.Content, nil
}

// DisplayError renders a generation failure for the user. Network, auth
// and quota failures all look the same.
func DisplayError(err error) string {
	return fmt.Sprintf("An error occurred: %s. Please try again.", err.Error())
}
