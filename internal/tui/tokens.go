package tui

import (
	"fmt"
	"strings"

	"github.com/tiktoken-go/tokenizer"
)

// tokenCounter counts request tokens with the GPT-4 encoding, which is
// close enough for the status bar across providers.
type tokenCounter struct {
	codec tokenizer.Codec
}

func newTokenCounter() *tokenCounter {
	codec, err := tokenizer.ForModel(tokenizer.GPT4)
	if err != nil {
		return &tokenCounter{}
	}
	return &tokenCounter{codec: codec}
}

func (tc *tokenCounter) count(text string) int {
	if tc == nil || tc.codec == nil {
		return estimateTokens(text)
	}
	n, err := tc.codec.Count(text)
	if err != nil {
		return estimateTokens(text)
	}
	return n
}

// estimateTokens returns approximate token count (~4 chars per token)
func estimateTokens(text string) int {
	return (len(text) + 3) / 4
}

// formatTokens renders a count against the model's context window.
func formatTokens(n int, model string) string {
	limit := getContextLimit(model)
	pct := float64(n) / float64(limit) * 100
	return fmt.Sprintf("%s tokens (%.1f%% of %s)", humanCount(n), pct, humanCount(limit))
}

func humanCount(n int) string {
	switch {
	case n >= 1000000:
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	case n >= 10000:
		return fmt.Sprintf("%dk", n/1000)
	case n >= 1000:
		return fmt.Sprintf("%.1fk", float64(n)/1000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// getContextLimit returns the context window size for a model
func getContextLimit(model string) int {
	model = strings.ToLower(model)

	switch {
	case strings.Contains(model, "gemini"):
		return 1000000
	case strings.Contains(model, "claude"):
		return 200000
	case strings.Contains(model, "gpt-4o"), strings.Contains(model, "gpt-4-turbo"):
		return 128000
	case strings.Contains(model, "gpt-4"):
		return 8000
	case strings.Contains(model, "llama-3"), strings.Contains(model, "llama3"):
		return 128000
	case strings.Contains(model, "mixtral"):
		return 32000
	case strings.Contains(model, "qwen2.5"):
		return 32000
	default:
		return 8000
	}
}
