package inference

import (
	"context"

	"feedbackd/internal/platform/config"
	perr "feedbackd/internal/platform/errors"
)

// Provider names accepted by INFERENCE_PROVIDER
const (
	ProviderWorkersAI = "workersai"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
)

// Providers lists the supported provider names
func Providers() []string { return []string{ProviderWorkersAI, ProviderOpenAI, ProviderGemini} }

// Config selects and configures one provider
type Config struct {
	Provider string
	Options
}

// ConfigFromEnv reads INFERENCE_* from cfg
func ConfigFromEnv(cfg config.Conf) Config {
	c := cfg.Prefix("INFERENCE_")
	return Config{
		Provider: c.MayEnum("PROVIDER", ProviderWorkersAI, Providers()...),
		Options: Options{
			BaseURL:    c.MayString("BASE_URL", ""),
			AccountID:  c.MayString("ACCOUNT_ID", ""),
			APIToken:   c.MayString("API_TOKEN", ""),
			Model:      c.MayString("MODEL", ""),
			MaxTokens:  c.MayPositiveInt("MAX_TOKENS", defaultMaxTokens),
			Timeout:    c.MayDuration("TIMEOUT", defaultTimeout),
			MaxRetries: c.MayInt("MAX_RETRIES", 0),
			RetryBase:  c.MayDuration("RETRY_BASE", defaultRetryBase),
		},
	}
}

// New builds the configured engine
func New(ctx context.Context, c Config) (Engine, error) {
	switch c.Provider {
	case "", ProviderWorkersAI:
		w, err := NewWorkersAI(c.Options)
		if err != nil {
			return nil, err
		}
		return w, nil
	case ProviderOpenAI:
		return NewOpenAI(c.Options), nil
	case ProviderGemini:
		g, err := NewGemini(ctx, c.Options)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, perr.InvalidArgf("unknown inference provider %q", c.Provider)
	}
}
