package service

import (
	"context"
	"time"

	"feedbackd/internal/adapters/inference"
	"feedbackd/internal/core/sentiment"
	perr "feedbackd/internal/platform/errors"
	"feedbackd/internal/platform/logger"
	"feedbackd/internal/platform/metrics"
	str "feedbackd/internal/platform/strings"
	"feedbackd/internal/services/api/feedback/domain"
)

// rawLogRunes bounds how much model output lands in debug logs
const rawLogRunes = 512

// Analyzer prompts the engine and pulls the first JSON object out of its answer
type Analyzer struct {
	engine  inference.Engine
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewAnalyzer wraps an inference engine; m may be nil
func NewAnalyzer(engine inference.Engine, m *metrics.Metrics) *Analyzer {
	if engine == nil {
		panic("feedback.Analyzer requires a non nil inference engine")
	}
	return &Analyzer{engine: engine, metrics: m, now: time.Now}
}

// Analyze implements domain.Analyzer; every failure is an AnalysisFailure
func (a *Analyzer) Analyze(ctx context.Context, text string) (sentiment.Raw, error) {
	start := a.now()
	out, err := a.engine.Classify(ctx, inference.Prompt(sentiment.BuildPrompt(text), 0))
	a.metrics.Analysis(a.engine.Provider(), a.now().Sub(start))
	if err != nil {
		return sentiment.Raw{}, perr.Wrap(err, perr.ErrorCodeUpstream, domain.MsgAnalyzeFailed)
	}

	raw, err := sentiment.Parse(out)
	if err != nil {
		logger.C(ctx).Debug().
			Str("provider", a.engine.Provider()).
			Str("model", a.engine.Model()).
			Str("raw", str.Clip(out, rawLogRunes)).
			Msg("model output had no usable JSON")
		return sentiment.Raw{}, perr.Wrap(err, perr.ErrorCodeUpstream, domain.MsgAnalyzeFailed)
	}
	return raw, nil
}
