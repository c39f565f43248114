// Package config loads the Omarim configuration from a YAML file with
// environment-variable overrides for credentials.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// GenerationConfig configures the structure-generation backend.
type GenerationConfig struct {
	// Backend selects the client implementation: "gemini" (direct HTTP) or
	// "genai" (official SDK).
	Backend string `yaml:"backend" env:"OMARIM_GENERATION_BACKEND"`

	APIKey      string  `yaml:"api_key" env:"OMARIM_GENAI_API_KEY"`
	Model       string  `yaml:"model" env:"OMARIM_GENERATION_MODEL"`
	Temperature float64 `yaml:"temperature"`
	TimeoutSecs int     `yaml:"timeout_seconds"`
	MaxRetries  int     `yaml:"max_retries"`
}

// Timeout returns the request timeout as a duration.
func (g GenerationConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSecs) * time.Second
}

// DeliveryConfig configures outbound email and social publishing.
type DeliveryConfig struct {
	EmailAPIKey  string            `yaml:"email_api_key" env:"OMARIM_EMAIL_API_KEY"`
	EmailBaseURL string            `yaml:"email_base_url"`
	EmailFrom    string            `yaml:"email_from"`
	SocialTokens map[string]string `yaml:"social_tokens"`
}

// LeadsConfig configures the lead dataset source.
type LeadsConfig struct {
	// DatasetPath points at a YAML business dataset. Empty means the
	// built-in sample dataset.
	DatasetPath string `yaml:"dataset_path" env:"OMARIM_LEADS_DATASET"`

	// EnrichmentAPIKey unlocks live enrichment lookups. Optional.
	EnrichmentAPIKey string `yaml:"enrichment_api_key" env:"OMARIM_ENRICHMENT_API_KEY"`

	EnrichmentBaseURL string `yaml:"enrichment_base_url"`

	TitleKeywords []string `yaml:"title_keywords"`
}

// StoreConfig configures campaign record persistence.
type StoreConfig struct {
	// Driver is "sqlite" or "memory".
	Driver string `yaml:"driver" env:"OMARIM_STORE_DRIVER"`
	Path   string `yaml:"path" env:"OMARIM_STORE_PATH"`
}

// LoggingConfig mirrors logging.Options in YAML form.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode" env:"OMARIM_DEBUG"`
	Level      string          `yaml:"level"`
	Categories map[string]bool `yaml:"categories"`
}

// Config is the full application configuration.
type Config struct {
	Workspace  string           `yaml:"workspace" env:"OMARIM_WORKSPACE"`
	Generation GenerationConfig `yaml:"generation"`
	Delivery   DeliveryConfig   `yaml:"delivery"`
	Leads      LeadsConfig      `yaml:"leads"`
	Store      StoreConfig      `yaml:"store"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Workspace: ".",
		Generation: GenerationConfig{
			Backend:     "gemini",
			Model:       "gemini-2.5-flash",
			Temperature: 0.2,
			TimeoutSecs: 120,
			MaxRetries:  3,
		},
		Delivery: DeliveryConfig{
			EmailBaseURL: "https://api.resend.com",
			EmailFrom:    "omarim@notifications.local",
		},
		Store: StoreConfig{
			Driver: "sqlite",
			Path:   ".omarim/records.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration in three layers: defaults, then the YAML file at
// path (skipped when the file does not exist), then environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults plus env are fine without a file.
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the wiring layer cannot act on.
func (c *Config) Validate() error {
	switch c.Generation.Backend {
	case "gemini", "genai":
	default:
		return fmt.Errorf("unknown generation backend %q", c.Generation.Backend)
	}
	switch c.Store.Driver {
	case "sqlite", "memory":
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Generation.TimeoutSecs <= 0 {
		return fmt.Errorf("generation timeout must be positive, got %d", c.Generation.TimeoutSecs)
	}
	return nil
}
