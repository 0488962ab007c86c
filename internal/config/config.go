// Package config holds all wvassist configuration: LLM provider settings,
// generation loop tuning, output location and logging switches. Values come
// from an optional YAML file with environment overrides on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all wvassist configuration.
type Config struct {
	LLM        LLMConfig        `yaml:"llm"`
	Generation GenerationConfig `yaml:"generation"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LLMConfig configures the completion-service client.
type LLMConfig struct {
	Provider string `yaml:"provider"` // gemini, anthropic
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"` // duration string, e.g. "2m"
}

// GenerationConfig tunes the attempt loop. The attempt and escalation
// counts are deliberately configurable rather than constants.
type GenerationConfig struct {
	MaxAttempts       int    `yaml:"max_attempts"`
	EscalateOnInvalid bool   `yaml:"escalate_on_invalid"`
	ParseRetryDelay   string `yaml:"parse_retry_delay"`
	IncludeExamples   bool   `yaml:"include_examples"`
}

// OutputConfig configures where accepted schemas are saved.
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// LoggingConfig configures the category file logger.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"`
	Categories map[string]bool `yaml:"categories"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "gemini",
			Model:    "gemini-2.5-flash",
			Timeout:  "2m",
		},
		Generation: GenerationConfig{
			MaxAttempts:       3,
			EscalateOnInvalid: true,
			ParseRetryDelay:   "1s",
			IncludeExamples:   true,
		},
		Output: OutputConfig{
			Directory: ".",
		},
		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
		},
	}
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() string {
	return filepath.Join(".wvassist", "config.yaml")
}

// Load reads configuration from path, falling back to defaults when the
// file does not exist, then applies environment overrides. A present but
// unparseable file is an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultConfigPath()
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults apply.
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides layers environment variables over file values.
// API keys from the environment win only when the file leaves them blank,
// matching how a checked-in config should never hold credentials anyway.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("WVASSIST_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("WVASSIST_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("WVASSIST_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Generation.MaxAttempts = n
		}
	}
	if c.LLM.APIKey == "" {
		switch c.LLM.Provider {
		case "anthropic":
			c.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		default:
			c.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
}

// ParseTimeout returns the LLM timeout as a duration, defaulting to two
// minutes when unset or invalid.
func (c *Config) ParseTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil || d <= 0 {
		return 2 * time.Minute
	}
	return d
}

// ParseRetryDelay returns the delay applied after a parse failure.
func (c *Config) ParseRetryDelay() time.Duration {
	d, err := time.ParseDuration(c.Generation.ParseRetryDelay)
	if err != nil || d < 0 {
		return time.Second
	}
	return d
}
