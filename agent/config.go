package agent

import (
	"context"
	"os"
)

const (
	defaultModel       = "gemini-2.5-pro"
	defaultTemperature = 0.7
)

// Config holds language-model provider settings.
type Config struct {
	Model       string  `json:"model,omitempty"`
	APIKey      string  `json:"api_key,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// DefaultConfig returns the default provider configuration. The API key is
// read from GOOGLE_API_KEY when not set explicitly.
func DefaultConfig() Config {
	return Config{
		Model:       defaultModel,
		APIKey:      os.Getenv("GOOGLE_API_KEY"),
		Temperature: defaultTemperature,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Model != "" {
		c.Model = source.Model
	}
	if source.APIKey != "" {
		c.APIKey = source.APIKey
	}
	if source.Temperature > 0 {
		c.Temperature = source.Temperature
	}
}

// New creates a Generator from configuration. Currently always a Gemini
// generator.
func New(ctx context.Context, cfg *Config) (Generator, error) {
	return NewGemini(ctx, cfg)
}
