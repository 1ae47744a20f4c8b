package inference

import (
	"context"
	"testing"
	"time"

	"feedbackd/internal/platform/config"
	perr "feedbackd/internal/platform/errors"
	kit "feedbackd/internal/platform/testkit"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("INFERENCE_PROVIDER", "OpenAI")
	t.Setenv("INFERENCE_BASE_URL", "http://localhost:11434/v1")
	t.Setenv("INFERENCE_MODEL", "llama3")
	t.Setenv("INFERENCE_MAX_TOKENS", "-5")
	t.Setenv("INFERENCE_TIMEOUT", "5s")
	t.Setenv("INFERENCE_MAX_RETRIES", "2")

	c := ConfigFromEnv(config.New())
	if c.Provider != ProviderOpenAI || c.BaseURL != "http://localhost:11434/v1" || c.Model != "llama3" {
		t.Fatalf("config = %+v", c)
	}
	if c.MaxTokens != 200 || c.Timeout != 5*time.Second || c.MaxRetries != 2 || c.RetryBase != 500*time.Millisecond {
		t.Fatalf("numbers = %+v", c.Options)
	}

	t.Setenv("INFERENCE_PROVIDER", "bard")
	kit.MustPanic(t, func() { _ = ConfigFromEnv(config.New()) })
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	e, err := New(ctx, Config{Options: Options{AccountID: "a", APIToken: "t"}})
	if err != nil || e.Provider() != ProviderWorkersAI {
		t.Fatalf("default provider = %v, %v", e, err)
	}
	if e, err = New(ctx, Config{Provider: ProviderOpenAI}); err != nil || e.Provider() != ProviderOpenAI {
		t.Fatalf("openai = %v, %v", e, err)
	}
	if e, err = New(ctx, Config{Provider: ProviderGemini, Options: Options{APIToken: "k"}}); err != nil || e.Provider() != ProviderGemini {
		t.Fatalf("gemini = %v, %v", e, err)
	}
	if _, err = New(ctx, Config{Provider: "bard"}); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("unknown provider err = %v", err)
	}
	if _, err = New(ctx, Config{Provider: ProviderWorkersAI}); err == nil {
		t.Fatalf("workersai without credentials should fail")
	}
}
