// Package httpclient provides an outbound HTTP client with an explicit,
// bounded retry policy.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/amirasaad/finance-tracker/pkg/metrics"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	DefaultMaxRetries = 3
	DefaultTimeout    = 5 * time.Second

	maxBodyBytes = 1 << 20
)

// RetryPolicy decides whether and when a failed attempt is repeated.
// Delay receives the 1-based number of the retry about to happen.
type RetryPolicy struct {
	MaxRetries  int
	Delay       func(retry int) time.Duration
	ShouldRetry func(resp *http.Response, err error) bool
}

// DefaultRetryPolicy retries up to 3 times, waiting 1s, 2s then 3s, on
// HTTP 500 responses and timeouts only.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:  DefaultMaxRetries,
		Delay:       LinearDelay(time.Second),
		ShouldRetry: RetryOnServerErrorOrTimeout,
	}
}

// LinearDelay waits retry × unit before each retry.
func LinearDelay(unit time.Duration) func(int) time.Duration {
	return func(retry int) time.Duration {
		return time.Duration(retry) * unit
	}
}

// RetryOnServerErrorOrTimeout holds for a 500 status or a timed out attempt.
// Every other status or error is final.
func RetryOnServerErrorOrTimeout(resp *http.Response, err error) bool {
	if err != nil {
		var netErr net.Error
		return errors.As(err, &netErr) && netErr.Timeout()
	}
	return resp != nil && resp.StatusCode == http.StatusInternalServerError
}

// Client is safe for concurrent use.
type Client struct {
	rc     *retryablehttp.Client
	logger *slog.Logger
}

// New builds a Client. timeout bounds each attempt, not the whole call.
// m may be nil.
func New(
	policy RetryPolicy,
	timeout time.Duration,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Client {
	if policy.Delay == nil {
		policy.Delay = LinearDelay(time.Second)
	}
	if policy.ShouldRetry == nil {
		policy.ShouldRetry = RetryOnServerErrorOrTimeout
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger = logger.With("component", "httpclient")

	rc := retryablehttp.NewClient()
	rc.HTTPClient = &http.Client{Timeout: timeout}
	rc.Logger = logger
	rc.RetryMax = max(policy.MaxRetries, 0)
	rc.Backoff = func(_, _ time.Duration, attemptNum int, _ *http.Response) time.Duration {
		return policy.Delay(attemptNum + 1)
	}
	rc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return policy.ShouldRetry(resp, err), nil
	}
	rc.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt == 0 {
			return
		}
		m.Retry()
		logger.Warn("Retrying request...", "attempt", attempt, "host", req.URL.Host)
	}
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{rc: rc, logger: logger}
}

// Get performs a GET under the retry policy. When retries run out the last
// response or error is returned as is.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.rc.Do(req)
}

// GetBody is Get that reads and closes the body.
func (c *Client) GetBody(ctx context.Context, url string) (status int, body []byte, err error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		if resp != nil {
			resp.Body.Close() //nolint:errcheck
		}
		return 0, nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, body, nil
}
