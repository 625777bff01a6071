// Package yaml loads application configuration from a YAML file.
package yaml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds user-editable application settings. Zero values are
// replaced with defaults by Load.
type Config struct {
	// DBPath is the SQLite database file location.
	DBPath string `yaml:"db_path"`

	// MaxResults caps how many search results a run processes.
	MaxResults int `yaml:"max_results"`

	// Concurrency is the number of pages processed in parallel.
	Concurrency int `yaml:"concurrency"`

	// RequestsPerSecond is the per-domain fetch rate limit.
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// UserAgent overrides the fetcher User-Agent when non-empty.
	UserAgent string `yaml:"user_agent"`

	// Extractor selects the extraction engine: "heuristic" or
	// "trafilatura".
	Extractor string `yaml:"extractor"`

	// Render enables the headless-browser fallback for thin pages.
	Render bool `yaml:"render"`

	Summarizer SummarizerConfig `yaml:"summarizer"`
}

// SummarizerConfig configures the optional summarization service.
type SummarizerConfig struct {
	// BaseURL points at an OpenAI-compatible endpoint.
	BaseURL string `yaml:"base_url"`

	// Model is the chat model name.
	Model string `yaml:"model"`

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `yaml:"api_key_env"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		DBPath:            "clipper.db",
		MaxResults:        5,
		Concurrency:       4,
		RequestsPerSecond: 2,
		Extractor:         "heuristic",
		Summarizer: SummarizerConfig{
			APIKeyEnv: "OPENAI_API_KEY",
		},
	}
}

// Load reads the configuration file at path. A missing file yields the
// defaults; a present file is merged over them.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DBPath == "" {
		return errors.New("db_path must not be empty")
	}
	if c.MaxResults < 0 {
		return errors.New("max_results must not be negative")
	}
	if c.Concurrency < 0 {
		return errors.New("concurrency must not be negative")
	}
	if c.RequestsPerSecond < 0 {
		return errors.New("requests_per_second must not be negative")
	}
	switch c.Extractor {
	case "", "heuristic", "trafilatura":
	default:
		return fmt.Errorf("unknown extractor %q", c.Extractor)
	}
	return nil
}

// APIKey resolves the summarizer API key from the configured
// environment variable.
func (c *SummarizerConfig) APIKey() string {
	if c.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.APIKeyEnv)
}
