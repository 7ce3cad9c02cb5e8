package config

import "os"

type ProviderInfo struct {
	ID           string
	Name         string
	Description  string
	NeedsAPIKey  bool
	EnvKeys      []string
	SignupURL    string
	BaseURL      string
	Models       []string
	DefaultModel string
}

var Providers = []ProviderInfo{
	{
		ID:           "gemini",
		Name:         "Gemini",
		Description:  "Google, default",
		NeedsAPIKey:  true,
		EnvKeys:      []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY"},
		SignupURL:    "https://aistudio.google.com/apikey",
		Models:       []string{"gemini-2.5-pro", "gemini-2.5-flash"},
		DefaultModel: "gemini-2.5-pro",
	},
	{
		ID:           "openai",
		Name:         "OpenAI",
		Description:  "GPT-4o, most capable",
		NeedsAPIKey:  true,
		EnvKeys:      []string{"OPENAI_API_KEY"},
		SignupURL:    "https://platform.openai.com/api-keys",
		Models:       []string{"gpt-4o", "gpt-4o-mini", "gpt-4-turbo"},
		DefaultModel: "gpt-4o-mini",
	},
	{
		ID:           "anthropic",
		Name:         "Anthropic",
		Description:  "Claude, great writing",
		NeedsAPIKey:  true,
		EnvKeys:      []string{"ANTHROPIC_API_KEY"},
		SignupURL:    "https://console.anthropic.com/",
		Models:       []string{"claude-3-5-sonnet-20241022", "claude-3-5-haiku-20241022"},
		DefaultModel: "claude-3-5-sonnet-20241022",
	},
	{
		ID:           "groq",
		Name:         "Groq",
		Description:  "Very fast, cheap",
		NeedsAPIKey:  true,
		EnvKeys:      []string{"GROQ_API_KEY"},
		SignupURL:    "https://console.groq.com/keys",
		BaseURL:      "https://api.groq.com/openai/v1",
		Models:       []string{"llama-3.1-70b-versatile", "llama-3.1-8b-instant", "mixtral-8x7b-32768"},
		DefaultModel: "llama-3.1-70b-versatile",
	},
	{
		ID:           "openrouter",
		Name:         "OpenRouter",
		Description:  "Access all models",
		NeedsAPIKey:  true,
		EnvKeys:      []string{"OPENROUTER_API_KEY"},
		SignupURL:    "https://openrouter.ai/keys",
		BaseURL:      "https://openrouter.ai/api/v1",
		Models:       []string{"anthropic/claude-3.5-sonnet", "openai/gpt-4o", "meta-llama/llama-3.1-70b-instruct"},
		DefaultModel: "meta-llama/llama-3.1-70b-instruct",
	},
	{
		ID:           "ollama",
		Name:         "Ollama",
		Description:  "Local, free, private",
		NeedsAPIKey:  false,
		BaseURL:      "http://localhost:11434",
		Models:       []string{"llama3.1:8b", "llama3.1:70b", "qwen2.5:7b", "mistral:7b"},
		DefaultModel: "llama3.1:8b",
	},
}

func GetProvider(id string) *ProviderInfo {
	for _, p := range Providers {
		if p.ID == id {
			return &p
		}
	}
	return nil
}

// ResolveAPIKey returns the configured API key, falling back to the
// provider's environment variables.
func (c *Config) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	p := GetProvider(c.Provider)
	if p == nil {
		return ""
	}
	for _, name := range p.EnvKeys {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// ResolveBaseURL returns the configured base URL or the provider default.
func (c *Config) ResolveBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	if p := GetProvider(c.Provider); p != nil {
		return p.BaseURL
	}
	return ""
}

// NeedsSetup reports whether the provider cannot be used as configured.
func (c *Config) NeedsSetup() bool {
	if c.Provider == "custom" {
		return c.BaseURL == ""
	}
	p := GetProvider(c.Provider)
	if p == nil {
		return true
	}
	return p.NeedsAPIKey && c.ResolveAPIKey() == ""
}

// MaskedAPIKey shows the first and last four characters of the key.
func (c *Config) MaskedAPIKey() string {
	key := c.ResolveAPIKey()
	switch {
	case key == "":
		return "Not set"
	case len(key) > 8:
		return key[:4] + "****" + key[len(key)-4:]
	default:
		return "****"
	}
}
