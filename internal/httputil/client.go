// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the rate-limited HTTP client shared by every
// stage that talks to the CourtListener API. One Client value is constructed
// at startup and shared by reference, so the minimum-interval throttle holds
// process-wide rather than per search.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/pdiddy/caselaw-engine/pkg/types"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// rate-limited responses. The delay for attempt n is 2^n * RetryBaseDelay.
// Tests override this to avoid real sleeps.
var RetryBaseDelay = 1 * time.Second

const (
	defaultMaxRetries  = 3
	defaultMinInterval = 1 * time.Second
	defaultTimeout     = 30 * time.Second
)

// StatusError reports a non-2xx upstream response after any retries were
// exhausted.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// Client issues HTTP requests with a minimum inter-request interval,
// bounded retry on throttling responses, and a per-host circuit breaker.
// Safe for concurrent use; requests are serialized by the throttle.
type Client struct {
	httpClient  *http.Client
	userAgent   string
	apiKey      string
	minInterval time.Duration
	maxRetries  int

	mu       sync.Mutex
	lastDone time.Time

	bmu      sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[*http.Response]
}

// NewClient builds a Client from the search configuration, applying defaults
// for unset fields.
func NewClient(cfg types.SearchConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	minInterval := cfg.MinRequestInterval
	if minInterval <= 0 {
		minInterval = defaultMinInterval
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		userAgent:   cfg.UserAgent,
		apiKey:      cfg.APIKey,
		minInterval: minInterval,
		maxRetries:  maxRetries,
		breakers:    make(map[string]*gobreaker.CircuitBreaker[*http.Response]),
	}
}

// Do executes the request through the throttle, retry, and circuit-breaker
// layers. It returns an error after exhausting retries on HTTP 429/403, and
// immediately for any other non-2xx status. The caller owns the response
// body on success.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Token "+c.apiKey)
	}

	breaker := c.circuitBreaker(req.URL.Host)
	resp, err := breaker.Execute(func() (*http.Response, error) {
		return c.doWithRetry(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("upstream %s unavailable: %w", req.URL.Host, err)
		}
		return nil, err
	}
	return resp, nil
}

func (c *Client) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		resp, err := c.doThrottled(ctx, req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		statusErr := &StatusError{StatusCode: resp.StatusCode, URL: req.URL.String()}

		// Drain and close before retrying or failing.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusForbidden {
			return nil, statusErr
		}
		if attempt >= c.maxRetries {
			return nil, statusErr
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// doThrottled holds the throttle lock across the wait and the request so
// concurrent callers cannot violate the inter-request interval. The interval
// is measured from the end of the previous request to the start of the next.
func (c *Client) doThrottled(ctx context.Context, req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.lastDone.IsZero() {
		if wait := c.minInterval - time.Since(c.lastDone); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}

	resp, err := c.httpClient.Do(req.Clone(ctx))
	c.lastDone = time.Now()
	return resp, err
}

// circuitBreaker returns the breaker for one upstream host, creating it on
// first use. Client-side statuses below 500 (other than throttling, which is
// handled by retry) do not count as breaker failures.
func (c *Client) circuitBreaker(host string) *gobreaker.CircuitBreaker[*http.Response] {
	c.bmu.Lock()
	defer c.bmu.Unlock()

	if breaker, ok := c.breakers[host]; ok {
		return breaker
	}

	settings := gobreaker.Settings{
		Name:    host,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				return statusErr.StatusCode < 500 &&
					statusErr.StatusCode != http.StatusTooManyRequests &&
					statusErr.StatusCode != http.StatusForbidden
			}
			return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
	}

	breaker := gobreaker.NewCircuitBreaker[*http.Response](settings)
	c.breakers[host] = breaker
	return breaker
}
