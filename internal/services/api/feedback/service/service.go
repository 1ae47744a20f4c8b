// Package service runs the feedback pipeline: validate, analyze, normalize, store
package service

import (
	"context"
	"time"
	"unicode/utf8"

	"feedbackd/internal/core/normalize"
	"feedbackd/internal/core/sentiment"
	perr "feedbackd/internal/platform/errors"
	"feedbackd/internal/platform/logger"
	"feedbackd/internal/platform/metrics"
	ptime "feedbackd/internal/platform/time"
	"feedbackd/internal/services/api/feedback/domain"
	"feedbackd/internal/services/api/feedback/repo"
)

const sinkTimeout = 2 * time.Second

// Service defines the service contract for feedback
type Service interface{ domain.ServicePort }

// Options tune a Svc; zero values pick defaults
type Options struct {
	MaxChars int
	Clock    ptime.Clock
	Metrics  *metrics.Metrics

	// Events receives a row after each durable insert; nil disables it
	Events repo.Events

	// Provider and Model label analytics rows
	Provider string
	Model    string
}

// Svc implements the Service interface
type Svc struct {
	Repo     repo.Repo
	analyzer domain.Analyzer
	opts     Options
}

// New creates a new feedback service
func New(r repo.Repo, a domain.Analyzer, o Options) *Svc {
	if r == nil {
		panic("feedback.Service requires a non nil Repo")
	}
	if a == nil {
		panic("feedback.Service requires a non nil Analyzer")
	}
	if o.MaxChars <= 0 {
		o.MaxChars = domain.DefaultMaxChars
	}
	if o.Events == nil {
		o.Events = repo.NewEvents(nil, "")
	}
	return &Svc{Repo: r, analyzer: a, opts: o}
}

// Validate applies the checks a struct tag cannot express
func (s *Svc) Validate(text string) error {
	if normalize.Blank(text) {
		return domain.InvalidFeedback(perr.Newf(perr.ErrorCodeValidation, "feedback is blank"))
	}
	if n := utf8.RuneCountInString(text); n > s.opts.MaxChars {
		return domain.InvalidFeedback(perr.Newf(perr.ErrorCodeValidation, "feedback has %d characters, limit is %d", n, s.opts.MaxChars))
	}
	return nil
}

// Submit analyzes and stores one piece of feedback
// nothing is written unless analysis succeeded; the insert is attempted once
func (s *Svc) Submit(ctx context.Context, in domain.SubmitInput) (domain.SubmitOutput, error) {
	m := s.opts.Metrics
	if err := s.Validate(in.Feedback); err != nil {
		m.Submission(metrics.OutcomeInvalid)
		return domain.SubmitOutput{}, err
	}

	raw, err := s.analyzer.Analyze(logger.WithStage(ctx, "analyze"), in.Feedback)
	if err != nil {
		m.Submission(metrics.OutcomeAnalysisFailed)
		return domain.SubmitOutput{}, perr.WithOp(err, "analyze")
	}
	res := sentiment.Normalize(raw)

	now := s.opts.Clock.Now()
	rec := domain.Record{
		Content:   in.Feedback,
		Sentiment: res.Sentiment,
		Summary:   res.Summary,
		CreatedAt: ptime.Stamp(now),
	}

	sctx := logger.WithStage(ctx, "store")
	id, err := s.Repo.Insert(sctx, rec)
	if err != nil {
		m.Submission(metrics.OutcomeStorageFailed)
		logger.C(sctx).Error().Err(err).
			Str("sqlstate", perr.SQLState(err)).
			Str("sqlstate_class", perr.SQLStateClass(err)).
			Bool("schema_missing", perr.IsUndefinedTable(err)).
			Msg("feedback insert failed")
		return domain.SubmitOutput{}, perr.WithOp(perr.Wrap(err, perr.ErrorCodeDB, domain.MsgSaveFailed), "store")
	}
	rec.ID = id

	m.Submission(metrics.OutcomeSaved)
	m.Sentiment(string(rec.Sentiment))
	s.emit(sctx, rec, now)

	return domain.SubmitOutput{
		Success: true,
		Message: domain.MsgSaved,
		ID:      rec.ID,
		Data: domain.Data{
			Feedback:  rec.Content,
			Sentiment: rec.Sentiment,
			Summary:   rec.Summary,
		},
	}, nil
}

// emit writes the analytics row; failures are logged and counted, never returned
func (s *Svc) emit(ctx context.Context, rec domain.Record, at time.Time) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sinkTimeout)
	defer cancel()
	err := s.opts.Events.Record(ctx, repo.Event{
		FeedbackID: rec.ID,
		Sentiment:  string(rec.Sentiment),
		Summary:    rec.Summary,
		Content:    rec.Content,
		Model:      s.opts.Model,
		Provider:   s.opts.Provider,
		CreatedAt:  at,
	})
	if err != nil {
		s.opts.Metrics.SinkFailure()
		logger.C(ctx).Warn().Err(err).Int64("feedback_id", rec.ID).Msg("analytics sink write failed")
	}
}
