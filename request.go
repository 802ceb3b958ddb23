package twitter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 4 << 20

// doGET executes a signed GET request.
func (c *Client) doGET(ctx context.Context, endpoint, url string) ([]byte, error) {
	return c.do(ctx, endpoint, http.MethodGet, url, nil)
}

// doPOST executes a signed POST request with a JSON payload.
func (c *Client) doPOST(ctx context.Context, endpoint, url string, payload []byte) ([]byte, error) {
	return c.do(ctx, endpoint, http.MethodPost, url, payload)
}

// do sends one request. There is no retry: a 429 records the reset time so
// later calls to the same endpoint fail fast until the window closes.
func (c *Client) do(ctx context.Context, endpoint, method, url string, payload []byte) ([]byte, error) {
	if c.limiter.IsRateLimited(endpoint) {
		c.recordAPICall(endpoint, false, true)
		resetAt := c.limiter.AvailableAt(endpoint)
		return nil, &APIError{
			Endpoint:   endpoint,
			StatusCode: http.StatusTooManyRequests,
			Detail:     "rate limit window open until " + resetAt.UTC().Format(time.RFC3339),
			ResetAt:    resetAt,
			class:      errRateLimited,
		}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	setAPIHeaders(req.Header, payload != nil)

	resp, err := c.http.Do(req)
	if err != nil {
		c.recordAPICall(endpoint, false, false)
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.recordAPICall(endpoint, false, false)
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.recordAPICall(endpoint, true, false)
		return respBody, nil
	}

	apiErr := newAPIError(endpoint, resp.StatusCode, respBody)
	if apiErr.class == errRateLimited {
		apiErr.ResetAt = parseRateLimitReset(resp.Header.Get("x-rate-limit-reset"))
		c.limiter.MarkRateLimited(endpoint, apiErr.ResetAt)
		c.recordAPICall(endpoint, false, true)
		slog.Warn("rate limited",
			slog.String("endpoint", endpoint),
			slog.Time("reset_at", apiErr.ResetAt))
		return nil, apiErr
	}

	c.recordAPICall(endpoint, false, false)
	slog.Warn("api request failed",
		slog.String("endpoint", endpoint),
		slog.Int("status", resp.StatusCode),
		slog.String("body", truncateBytes(respBody, 500)))
	return nil, apiErr
}

// truncateBytes cuts b to at most n bytes without splitting a UTF-8 sequence.
func truncateBytes(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	for n > 0 && !utf8.RuneStart(b[n]) {
		n--
	}
	return string(b[:n]) + "..."
}
