package story

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// errorCapture records the first non-2xx response passing through it so the
// raw body can be handed back to the caller after the SDK has consumed it.
type errorCapture struct {
	base http.RoundTripper

	mu  sync.Mutex
	err *UpstreamError
}

// RoundTrip implements http.RoundTripper. The body of an error response is
// buffered and replaced so the next reader sees the same bytes.
func (c *errorCapture) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	// http.Client follows this hop; only the final response counts.
	if isFollowedRedirect(resp) {
		return resp, nil
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("error reading upstream error body: %w", err)
	}

	c.mu.Lock()
	if c.err == nil {
		c.err = &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	c.mu.Unlock()

	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}

func isFollowedRedirect(resp *http.Response) bool {
	switch resp.StatusCode {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return resp.Header.Get("Location") != ""
	default:
		return false
	}
}

func (c *errorCapture) upstreamError() *UpstreamError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// neverRetry hands every response, successful or not, straight back to the caller.
func neverRetry(ctx context.Context, _ *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	return false, err
}

// newUpstreamClient builds the single-attempt HTTP client used for one story request.
func newUpstreamClient(capture *errorCapture) *http.Client {
	client := &retryablehttp.Client{
		HTTPClient:   &http.Client{Transport: capture},
		Logger:       log,
		RetryWaitMin: time.Second,
		RetryWaitMax: time.Second,
		RetryMax:     0,
		CheckRetry:   neverRetry,
		Backoff:      retryablehttp.DefaultBackoff,
	}
	return client.StandardClient()
}
