package llm

import (
	"context"
	"fmt"
)

// NewProvider creates a Provider from configuration.
//
// The returned provider is wrapped as caller → timeout → retry → logging →
// backend, so the timeout bounds all attempts and every attempt is audited.
// sink may be nil, in which case calls are not recorded.
func NewProvider(ctx context.Context, cfg Config, sink EventSink) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderMock:
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return wrap(base, cfg, sink), nil
}

// NewProviderFromEnv is NewProvider with ConfigFromEnv.
func NewProviderFromEnv(ctx context.Context, sink EventSink) (Provider, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg, sink)
}

func wrap(base Provider, cfg Config, sink EventSink) Provider {
	p := base
	if sink != nil {
		p = WithLogging(p, cfg.Provider, sink)
	}
	p = WithRetry(p, cfg.Retry)
	return WithTimeout(p, cfg.Timeout)
}
