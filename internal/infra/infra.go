// Package infra provides shared infrastructure components used across the
// application: the upstream HTTP helper and the bounded call gate that keeps
// slow provider calls off the request path.
package infra

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/semaphore"
)

// DefaultUserAgent is the browser user agent sent on upstream requests; the
// scrape target rejects non-browser agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// UserAgent is the agent string DoGet sends; configurable at startup.
var UserAgent = DefaultUserAgent

// HTTPClient is a pre-configured HTTP client with a reasonable timeout.
var HTTPClient = &http.Client{
	Timeout: 30 * time.Second,
}

// ErrHTTP wraps an HTTP error with status code.
type ErrHTTP struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *ErrHTTP) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// DoGet performs a GET request with the given URL and headers, returning the
// response body. The caller is responsible for closing the returned
// ReadCloser.
func DoGet(ctx context.Context, url string, headers map[string]string) (io.ReadCloser, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	// Set default headers.
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json, text/html, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	// Override/add custom headers.
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := HTTPClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("HTTP GET %s: %w", url, err)
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, resp.StatusCode, &ErrHTTP{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	return resp.Body, resp.StatusCode, nil
}

// --- Call gate ---

// Gate bounds the number of structured-provider calls in flight at once.
// Each call runs on its own worker goroutine while the caller suspends on
// the result, so a slow upstream never stalls other in-flight requests.
type Gate struct {
	sem *semaphore.Weighted
}

// NewGate creates a gate allowing at most n concurrent calls.
func NewGate(n int64) *Gate {
	if n <= 0 {
		n = 1
	}
	return &Gate{sem: semaphore.NewWeighted(n)}
}

// Do dispatches fn to a worker and waits for it to finish or for ctx to be
// cancelled. When ctx wins, the worker is left to run to completion on its
// own; its result is discarded.
func (g *Gate) Do(ctx context.Context, fn func() error) error {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() {
		defer g.sem.Release(1)
		errc <- fn()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
