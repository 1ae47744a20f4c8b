// Package inference talks to hosted language models through one narrow contract
//
// Providers: Cloudflare Workers AI (default), any OpenAI compatible chat endpoint, Google Gemini
package inference

import (
	"context"
	"time"
)

// Role of a chat message
type Role string

// Roles understood by every provider
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one chat turn
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Request is a single classification call
// MaxTokens <= 0 falls back to the engine default
type Request struct {
	Messages  []Message
	MaxTokens int
}

// Prompt builds a single user message request
func Prompt(text string, maxTokens int) Request {
	return Request{Messages: []Message{{Role: RoleUser, Content: text}}, MaxTokens: maxTokens}
}

// Engine returns the raw generated text for a request
type Engine interface {
	Classify(ctx context.Context, req Request) (string, error)
	Provider() string
	Model() string
}

const (
	defaultMaxTokens = 200
	defaultTimeout   = 20 * time.Second
	defaultRetryBase = 500 * time.Millisecond
	maxBackoff       = 30 * time.Second
)

// Options are shared by every provider; unused fields are ignored
type Options struct {
	BaseURL   string
	AccountID string
	APIToken  string
	Model     string
	MaxTokens int
	Timeout   time.Duration

	// Retries apply to transport errors, 429 and 5xx only
	MaxRetries int
	RetryBase  time.Duration
}

func (o Options) withDefaults(baseURL, model string) Options {
	if o.BaseURL == "" {
		o.BaseURL = baseURL
	}
	if o.Model == "" {
		o.Model = model
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = defaultMaxTokens
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return o
}

func (o Options) tokens(req Request) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return o.MaxTokens
}
