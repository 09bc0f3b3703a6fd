package engine

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/socraticlabs/copilot/agent"
	"github.com/socraticlabs/copilot/store"
)

const defaultObserver = "slog"

// Config holds initialization parameters for all engine subsystems. Each
// subsystem section delegates to that subsystem's config-driven constructor.
type Config struct {
	Agent    agent.Config `json:"agent"`
	Store    store.Config `json:"store"`
	Observer string       `json:"observer,omitempty"`

	// TurnTimeoutSeconds bounds a whole turn, including the model call.
	// Zero disables the bound; a hanging provider then blocks the turn
	// until the caller's context is cancelled.
	TurnTimeoutSeconds int `json:"turn_timeout_seconds,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		Agent:    agent.DefaultConfig(),
		Store:    store.DefaultConfig(),
		Observer: defaultObserver,
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	c.Agent.Merge(&source.Agent)
	c.Store.Merge(&source.Store)

	if source.Observer != "" {
		c.Observer = source.Observer
	}
	if source.TurnTimeoutSeconds > 0 {
		c.TurnTimeoutSeconds = source.TurnTimeoutSeconds
	}
}

// LoadConfig reads a JSON config file, merges it with defaults, and returns
// the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
