package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	perr "feedbackd/internal/platform/errors"
)

const (
	workersAIBaseURL = "https://api.cloudflare.com/client/v4"
	workersAIModel   = "@cf/meta/llama-3-8b-instruct"
)

// WorkersAI runs models on Cloudflare Workers AI over its REST API
type WorkersAI struct {
	opts Options
	call *jsonCaller
}

type workersAIRequest struct {
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
}

type workersAIEnvelope struct {
	Result  json.RawMessage `json:"result"`
	Success *bool           `json:"success"`
	Errors  []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// NewWorkersAI requires an account id and an API token
func NewWorkersAI(o Options) (*WorkersAI, error) {
	o = o.withDefaults(workersAIBaseURL, workersAIModel)
	if o.AccountID == "" || o.APIToken == "" {
		return nil, perr.InvalidArgf("workersai needs INFERENCE_ACCOUNT_ID and INFERENCE_API_TOKEN")
	}
	return &WorkersAI{opts: o, call: newJSONCaller(ProviderWorkersAI, o)}, nil
}

// Provider name
func (w *WorkersAI) Provider() string { return ProviderWorkersAI }

// Model id
func (w *WorkersAI) Model() string { return w.opts.Model }

// Classify runs the model and returns result.response, or the whole result JSON when there is none
func (w *WorkersAI) Classify(ctx context.Context, req Request) (string, error) {
	url := joinURL(w.opts.BaseURL, "accounts", w.opts.AccountID, "ai", "run", w.opts.Model)
	var env workersAIEnvelope
	err := w.call.post(ctx, url, w.opts.APIToken, workersAIRequest{Messages: req.Messages, MaxTokens: w.opts.tokens(req)}, &env)
	if err != nil {
		return "", err
	}
	if env.Success != nil && !*env.Success {
		msgs := make([]string, 0, len(env.Errors))
		for _, e := range env.Errors {
			msgs = append(msgs, e.Message)
		}
		return "", perr.Newf(perr.ErrorCodeUpstream, "workersai run failed: %s", strings.Join(msgs, "; "))
	}
	return resultText(env.Result)
}

// resultText picks the generated text out of a Workers AI result object
// a string response is the text; an object response (JSON mode models) is used as raw JSON;
// anything else falls back to the whole result
func resultText(result json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(result)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", perr.Upstreamf("workersai returned no result")
	}
	var fields map[string]json.RawMessage
	if json.Unmarshal(trimmed, &fields) == nil {
		resp := bytes.TrimSpace(fields["response"])
		switch {
		case len(resp) == 0:
		case resp[0] == '"':
			var s string
			if json.Unmarshal(resp, &s) == nil && s != "" {
				return s, nil
			}
		case resp[0] == '{':
			return string(resp), nil
		}
	}
	return string(trimmed), nil
}
