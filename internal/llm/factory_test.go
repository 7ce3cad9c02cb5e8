package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/promptmaster/internal/config"
)

func clearKeys(t *testing.T) {
	t.Helper()
	for _, p := range config.Providers {
		for _, k := range p.EnvKeys {
			t.Setenv(k, "")
		}
	}
}

func TestNewProvider(t *testing.T) {
	clearKeys(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		provider string
		apiKey   string
		baseURL  string
		want     string
		wantErr  string
	}{
		{name: "ollama needs no key", provider: "ollama", want: "ollama"},
		{name: "openai", provider: "openai", apiKey: "sk-x", want: "openai"},
		{name: "groq is openai compatible", provider: "groq", apiKey: "gsk-x", want: "groq"},
		{name: "openrouter", provider: "openrouter", apiKey: "or-x", want: "openrouter"},
		{name: "anthropic", provider: "anthropic", apiKey: "ak-x", want: "anthropic"},
		{name: "custom", provider: "custom", baseURL: "http://localhost:8080/v1", want: "custom"},
		{name: "openai without key", provider: "openai", wantErr: "openai requires an API key"},
		{name: "gemini without key", provider: "gemini", wantErr: "gemini requires an API key"},
		{name: "custom without url", provider: "custom", wantErr: "custom provider requires base_url"},
		{name: "unknown", provider: "nope", wantErr: "unknown provider: nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Provider = tt.provider
			cfg.APIKey = tt.apiKey
			cfg.BaseURL = tt.baseURL

			p, err := NewProvider(ctx, cfg)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Name())
		})
	}
}

func TestNewOllamaProviderBadHost(t *testing.T) {
	_, err := NewOllamaProvider("://bad", "llama3.1:8b")
	assert.Error(t, err)
}
