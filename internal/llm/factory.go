package llm

import (
	"context"
	"fmt"

	"github.com/sant0-9/promptmaster/internal/config"
)

// NewProvider creates a provider from config
func NewProvider(ctx context.Context, cfg *config.Config) (Provider, error) {
	apiKey := cfg.ResolveAPIKey()
	baseURL := cfg.ResolveBaseURL()

	switch cfg.Provider {
	case "gemini":
		if apiKey == "" {
			return nil, fmt.Errorf("gemini requires an API key")
		}
		return NewGeminiProvider(ctx, apiKey, cfg.Model)

	case "ollama":
		return NewOllamaProvider(baseURL, cfg.Model)

	case "openai", "groq", "openrouter":
		if apiKey == "" {
			return nil, fmt.Errorf("%s requires an API key", cfg.Provider)
		}
		return NewOpenAIProvider(cfg.Provider, apiKey, baseURL, cfg.Model), nil

	case "anthropic":
		if apiKey == "" {
			return nil, fmt.Errorf("anthropic requires an API key")
		}
		return NewAnthropicProvider(apiKey, cfg.Model), nil

	case "custom":
		if baseURL == "" {
			return nil, fmt.Errorf("custom provider requires base_url")
		}
		return NewOpenAIProvider("custom", apiKey, baseURL, cfg.Model), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
