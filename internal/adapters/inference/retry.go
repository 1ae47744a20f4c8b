package inference

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"
	"time"

	perr "feedbackd/internal/platform/errors"
	"feedbackd/internal/platform/logger"
)

// StatusError is a non 2xx answer from a provider
type StatusError struct {
	Provider   string
	Status     int
	Body       string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned status %d", e.Provider, e.Status)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.Status, e.Body)
}

// HTTPStatus exposes the upstream status code
func (e *StatusError) HTTPStatus() int { return e.Status }

// statusErr classifies an upstream status: 429 and 5xx are retryable, everything else is final
func statusErr(se *StatusError) error {
	switch {
	case se.Status == http.StatusTooManyRequests:
		return perr.Wrap(se, perr.ErrorCodeTooManyRequests, "inference rate limited")
	case se.Status >= http.StatusInternalServerError:
		return perr.Wrap(se, perr.ErrorCodeUnavailable, "inference server error")
	default:
		return perr.Wrap(se, perr.ErrorCodeUpstream, "inference request rejected")
	}
}

func transportErr(provider string, err error) error {
	return perr.Wrapf(err, perr.ErrorCodeUnavailable, "%s transport failed", provider)
}

// Retryable reports whether another attempt may succeed
func Retryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	return perr.IsCode(err, perr.ErrorCodeUnavailable) || perr.IsCode(err, perr.ErrorCodeTooManyRequests)
}

type retrier struct {
	provider string
	max      int
	base     time.Duration
	log      logger.Logger
	sleep    func(context.Context, time.Duration) error
}

func newRetrier(provider string, o Options) retrier {
	return retrier{
		provider: provider,
		max:      o.MaxRetries,
		base:     o.RetryBase,
		log:      *logger.Named("inference"),
		sleep:    sleepCtx,
	}
}

// do runs fn until it succeeds, fails for good, or the retry budget is spent
func (r retrier) do(ctx context.Context, fn func(context.Context) error) error {
	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= r.max || ctx.Err() != nil || !Retryable(err) {
			return err
		}
		wait := r.backoff(attempt)
		var se *StatusError
		if stderrs.As(err, &se) && se.RetryAfter > wait {
			wait = min(se.RetryAfter, maxBackoff)
		}
		r.log.Warn().Err(err).Str("provider", r.provider).Int("attempt", attempt).Dur("retry_in", wait).Msg("inference call failed; retrying")
		if serr := r.sleep(ctx, wait); serr != nil {
			return err
		}
	}
}

func (r retrier) backoff(attempt int) time.Duration {
	if attempt > 16 {
		return maxBackoff
	}
	return min(r.base<<uint(attempt), maxBackoff)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
