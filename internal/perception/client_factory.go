package perception

import (
	"context"
	"fmt"
	"os"

	"wvassist/internal/config"
)

// ProviderConfig holds the resolved provider and API key.
type ProviderConfig struct {
	Provider Provider
	APIKey   string
	Model    string // Optional model override
}

// ResolveProvider selects a provider from configuration, falling back to
// environment variables. A missing credential is fatal at startup: the
// interactive loop must not start without one.
// Priority: config file values > GEMINI_API_KEY > ANTHROPIC_API_KEY.
func ResolveProvider(cfg *config.Config) (*ProviderConfig, error) {
	if cfg != nil && cfg.LLM.APIKey != "" {
		provider := Provider(cfg.LLM.Provider)
		if provider == "" {
			provider = ProviderGemini
		}
		return &ProviderConfig{
			Provider: provider,
			APIKey:   cfg.LLM.APIKey,
			Model:    cfg.LLM.Model,
		}, nil
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return &ProviderConfig{Provider: ProviderGemini, APIKey: key}, nil
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return &ProviderConfig{Provider: ProviderAnthropic, APIKey: key}, nil
	}

	return nil, fmt.Errorf("no API key found; set llm.api_key in %s or one of: GEMINI_API_KEY, ANTHROPIC_API_KEY",
		config.DefaultConfigPath())
}

// NewClientFromConfig creates an LLM client from a provider config.
func NewClientFromConfig(ctx context.Context, pc *ProviderConfig) (LLMClient, error) {
	switch pc.Provider {
	case ProviderGemini:
		client, err := NewGeminiClient(ctx, pc.APIKey)
		if err != nil {
			return nil, err
		}
		if pc.Model != "" {
			client.SetModel(pc.Model)
		}
		return client, nil

	case ProviderAnthropic:
		client := NewAnthropicClient(pc.APIKey)
		if pc.Model != "" {
			client.SetModel(pc.Model)
		}
		return client, nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", pc.Provider)
	}
}
