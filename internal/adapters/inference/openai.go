package inference

import (
	"context"

	perr "feedbackd/internal/platform/errors"
)

const (
	openAIBaseURL = "https://api.openai.com/v1"
	openAIModel   = "gpt-4o-mini"
)

// OpenAI speaks the chat completions dialect (OpenAI, Ollama, vLLM, ...)
type OpenAI struct {
	opts Options
	call *jsonCaller
}

type chatRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewOpenAI builds a client; the token is optional for local servers
func NewOpenAI(o Options) *OpenAI {
	o = o.withDefaults(openAIBaseURL, openAIModel)
	return &OpenAI{opts: o, call: newJSONCaller(ProviderOpenAI, o)}
}

// Provider name
func (c *OpenAI) Provider() string { return ProviderOpenAI }

// Model id
func (c *OpenAI) Model() string { return c.opts.Model }

// Classify returns the first choice's message content
func (c *OpenAI) Classify(ctx context.Context, req Request) (string, error) {
	var out chatResponse
	in := chatRequest{Model: c.opts.Model, Messages: req.Messages, MaxTokens: c.opts.tokens(req)}
	if err := c.call.post(ctx, joinURL(c.opts.BaseURL, "chat", "completions"), c.opts.APIToken, in, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", perr.Upstreamf("openai returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}
