package perception

import (
	"testing"

	"wvassist/internal/config"
)

func TestResolveProviderFromConfig(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	cfg := config.DefaultConfig()
	cfg.LLM.Provider = "anthropic"
	cfg.LLM.APIKey = "file-key"
	cfg.LLM.Model = "claude-sonnet-4-5"

	pc, err := ResolveProvider(cfg)
	if err != nil {
		t.Fatalf("ResolveProvider: %v", err)
	}
	if pc.Provider != ProviderAnthropic {
		t.Errorf("Expected anthropic, got %s", pc.Provider)
	}
	if pc.APIKey != "file-key" || pc.Model != "claude-sonnet-4-5" {
		t.Errorf("Config values not carried through: %+v", pc)
	}
}

func TestResolveProviderDefaultsToGemini(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	cfg := config.DefaultConfig()
	cfg.LLM.Provider = ""
	cfg.LLM.APIKey = "some-key"

	pc, err := ResolveProvider(cfg)
	if err != nil {
		t.Fatalf("ResolveProvider: %v", err)
	}
	if pc.Provider != ProviderGemini {
		t.Errorf("Expected gemini default, got %s", pc.Provider)
	}
}

func TestResolveProviderEnvFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "env-key")

	pc, err := ResolveProvider(config.DefaultConfig())
	if err != nil {
		t.Fatalf("ResolveProvider: %v", err)
	}
	if pc.Provider != ProviderAnthropic {
		t.Errorf("Expected anthropic from env, got %s", pc.Provider)
	}
	if pc.APIKey != "env-key" {
		t.Errorf("Expected env key, got %q", pc.APIKey)
	}
}

func TestResolveProviderGeminiEnvWins(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("ANTHROPIC_API_KEY", "ant-key")

	pc, err := ResolveProvider(config.DefaultConfig())
	if err != nil {
		t.Fatalf("ResolveProvider: %v", err)
	}
	if pc.Provider != ProviderGemini {
		t.Errorf("GEMINI_API_KEY should take priority, got %s", pc.Provider)
	}
}

func TestResolveProviderNoCredentials(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	if _, err := ResolveProvider(config.DefaultConfig()); err == nil {
		t.Error("Expected error with no credentials anywhere")
	}
}

func TestNewAnthropicClientFromConfig(t *testing.T) {
	pc := &ProviderConfig{Provider: ProviderAnthropic, APIKey: "sk-ant-test", Model: "claude-sonnet-4-5"}
	client, err := NewClientFromConfig(t.Context(), pc)
	if err != nil {
		t.Fatalf("Failed to create Anthropic client: %v", err)
	}
	if _, ok := client.(*AnthropicClient); !ok {
		t.Errorf("Expected *AnthropicClient, got %T", client)
	}
}
