package llm

import (
	"testing"
	"time"
)

// clearLLMEnv blanks every variable ConfigFromEnv and DiscoverConfig read.
func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"MATHWHIZ_LLM_PROVIDER",
		"MATHWHIZ_ANTHROPIC_API_KEY", "MATHWHIZ_ANTHROPIC_MODEL",
		"MATHWHIZ_OPENAI_API_KEY", "MATHWHIZ_OPENAI_MODEL", "MATHWHIZ_OPENAI_BASE_URL",
		"MATHWHIZ_GEMINI_API_KEY", "MATHWHIZ_GEMINI_MODEL",
		"MATHWHIZ_OPENROUTER_API_KEY", "MATHWHIZ_OPENROUTER_MODEL",
		"MATHWHIZ_LLM_TIMEOUT", "MATHWHIZ_LLM_MAX_ATTEMPTS",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfig_Validate(t *testing.T) {
	withProvider := func(mut func(*Config)) Config {
		cfg := DefaultConfig()
		mut(&cfg)
		return cfg
	}

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "anthropic without key",
			cfg:     withProvider(func(c *Config) { c.Provider = ProviderAnthropic }),
			wantErr: true,
		},
		{
			name: "anthropic with key",
			cfg: withProvider(func(c *Config) {
				c.Provider = ProviderAnthropic
				c.Anthropic.APIKey = "sk-test"
			}),
		},
		{
			name:    "openai without key",
			cfg:     withProvider(func(c *Config) { c.Provider = ProviderOpenAI }),
			wantErr: true,
		},
		{
			name: "openai with key",
			cfg: withProvider(func(c *Config) {
				c.Provider = ProviderOpenAI
				c.OpenAI.APIKey = "sk-test"
			}),
		},
		{
			name:    "openrouter without key",
			cfg:     withProvider(func(c *Config) { c.Provider = ProviderOpenRouter }),
			wantErr: true,
		},
		{
			name:    "gemini without key",
			cfg:     withProvider(func(c *Config) { c.Provider = ProviderGemini }),
			wantErr: true,
		},
		{
			name: "mock needs no key",
			cfg:  withProvider(func(c *Config) { c.Provider = ProviderMock }),
		},
		{
			name:    "unknown provider",
			cfg:     withProvider(func(c *Config) { c.Provider = "unknown" }),
			wantErr: true,
		},
		{
			name: "zero attempts",
			cfg: withProvider(func(c *Config) {
				c.Provider = ProviderMock
				c.Retry.MaxAttempts = 0
			}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig_NoRetries(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Retry.MaxAttempts != 1 {
		t.Fatalf("expected a single attempt by default, got %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %v", cfg.Timeout)
	}
}

func TestConfigFromEnv_ExplicitProvider(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("MATHWHIZ_LLM_PROVIDER", "openai")
	t.Setenv("MATHWHIZ_OPENAI_API_KEY", "sk-env")
	t.Setenv("MATHWHIZ_OPENAI_MODEL", "gpt-4o")
	t.Setenv("MATHWHIZ_LLM_TIMEOUT", "5s")
	t.Setenv("MATHWHIZ_LLM_MAX_ATTEMPTS", "2")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Fatalf("expected openai, got %q", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-env" || cfg.OpenAI.Model != "gpt-4o" {
		t.Fatalf("unexpected openai config: %+v", cfg.OpenAI)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %v", cfg.Timeout)
	}
	if cfg.Retry.MaxAttempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", cfg.Retry.MaxAttempts)
	}
}

func TestConfigFromEnv_Discovery(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENROUTER_API_KEY", "sk-or")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != ProviderAnthropic {
		t.Fatalf("expected anthropic to win discovery, got %q", cfg.Provider)
	}
	if cfg.Anthropic.APIKey != "sk-ant" {
		t.Fatalf("expected discovered key, got %q", cfg.Anthropic.APIKey)
	}
}

func TestConfigFromEnv_BadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"timeout", "MATHWHIZ_LLM_TIMEOUT", "soon"},
		{"attempts not a number", "MATHWHIZ_LLM_MAX_ATTEMPTS", "many"},
		{"attempts zero", "MATHWHIZ_LLM_MAX_ATTEMPTS", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearLLMEnv(t)
			t.Setenv("MATHWHIZ_LLM_PROVIDER", "mock")
			t.Setenv(tt.key, tt.val)
			if _, err := ConfigFromEnv(); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.val)
			}
		})
	}
}

func TestDiscoverConfig_NothingSet(t *testing.T) {
	clearLLMEnv(t)
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no provider to be discovered")
	}
}

func TestNewProvider_Mock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock

	p, err := NewProvider(t.Context(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}

func TestNewProvider_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenAI

	if _, err := NewProvider(t.Context(), cfg, nil); err == nil {
		t.Fatal("expected error for missing API key")
	}
}
