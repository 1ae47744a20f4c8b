package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	perr "feedbackd/internal/platform/errors"
	"feedbackd/internal/platform/logger"

	"github.com/google/uuid"
)

// HeaderRequestID correlates one provider call with our logs
const HeaderRequestID = "X-Client-Request-ID"

const errBodyLimit = 2048

// jsonCaller posts JSON to REST providers and decodes JSON answers
type jsonCaller struct {
	provider string
	http     *http.Client
	timeout  time.Duration
	retry    retrier
	now      func() time.Time
}

func newJSONCaller(provider string, o Options) *jsonCaller {
	return &jsonCaller{
		provider: provider,
		http:     &http.Client{},
		timeout:  o.Timeout,
		retry:    newRetrier(provider, o),
		now:      time.Now,
	}
}

// post sends in to url and decodes the 2xx body into out
func (c *jsonCaller) post(ctx context.Context, url, bearer string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "%s encode request", c.provider)
	}
	return c.retry.do(ctx, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()
		return c.once(ctx, url, bearer, body, out)
	})
}

func (c *jsonCaller) once(ctx context.Context, url, bearer string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "%s new request", c.provider)
	}
	id := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, id)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		return transportErr(c.provider, err)
	}
	defer resp.Body.Close()

	logger.C(ctx).Debug().
		Str("provider", c.provider).
		Str("call_id", id).
		Int("status", resp.StatusCode).
		Dur("latency", c.now().Sub(start)).
		Msg("inference response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyLimit))
		return statusErr(&StatusError{
			Provider:   c.provider,
			Status:     resp.StatusCode,
			Body:       strings.TrimSpace(string(tail)),
			RetryAfter: retryAfter(resp.Header),
		})
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUpstream, "%s returned an unreadable body", c.provider)
	}
	return nil
}

// retryAfter reads a delta-seconds Retry-After header
func retryAfter(h http.Header) time.Duration {
	s := strings.TrimSpace(h.Get("Retry-After"))
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

func joinURL(base string, parts ...string) string {
	return strings.TrimRight(base, "/") + "/" + strings.Join(parts, "/")
}
