package inference

import (
	"context"
	stderrs "errors"
	"strings"

	perr "feedbackd/internal/platform/errors"

	"google.golang.org/genai"
)

const geminiModel = "gemini-2.0-flash"

// Gemini calls Google Gemini through the genai SDK
type Gemini struct {
	opts   Options
	client *genai.Client
	retry  retrier
}

// NewGemini requires an API key
func NewGemini(ctx context.Context, o Options) (*Gemini, error) {
	o = o.withDefaults("", geminiModel)
	if o.APIToken == "" {
		return nil, perr.InvalidArgf("gemini needs INFERENCE_API_TOKEN")
	}
	cfg := &genai.ClientConfig{APIKey: o.APIToken, Backend: genai.BackendGeminiAPI}
	if o.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: o.BaseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUpstream, "gemini client init failed")
	}
	return &Gemini{opts: o, client: client, retry: newRetrier(ProviderGemini, o)}, nil
}

// Provider name
func (g *Gemini) Provider() string { return ProviderGemini }

// Model id
func (g *Gemini) Model() string { return g.opts.Model }

// Classify sends the conversation and concatenates the text parts of the first candidate
func (g *Gemini) Classify(ctx context.Context, req Request) (string, error) {
	contents, system := geminiContents(req.Messages)
	cfg := &genai.GenerateContentConfig{MaxOutputTokens: int32(g.opts.tokens(req))}
	if system != nil {
		cfg.SystemInstruction = system
	}

	var text string
	err := g.retry.do(ctx, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
		resp, err := g.client.Models.GenerateContent(ctx, g.opts.Model, contents, cfg)
		if err != nil {
			return geminiErr(err)
		}
		text, err = candidateText(resp)
		return err
	})
	return text, err
}

func geminiContents(msgs []Message) ([]*genai.Content, *genai.Content) {
	var system []string
	out := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			system = append(system, m.Content)
		case RoleAssistant:
			out = append(out, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			out = append(out, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	if len(system) == 0 {
		return out, nil
	}
	return out, genai.NewContentFromText(strings.Join(system, "\n"), genai.RoleUser)
}

func candidateText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", perr.Upstreamf("gemini returned no candidates")
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil && !p.Thought {
			b.WriteString(p.Text)
		}
	}
	return b.String(), nil
}

// geminiErr maps SDK API errors onto the same status classes as the REST providers
func geminiErr(err error) error {
	var apiErr genai.APIError
	if stderrs.As(err, &apiErr) {
		return statusErr(&StatusError{Provider: ProviderGemini, Status: apiErr.Code, Body: apiErr.Message})
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return perr.Wrap(err, perr.ErrorCodeUpstream, "gemini call aborted")
	}
	return transportErr(ProviderGemini, err)
}
