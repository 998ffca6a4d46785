// Package client provides a thin bearer-authenticated JSON API client with a
// validated configuration and a bounded retry policy.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// maxErrorBody caps how much of a failed response body is kept for
// diagnostics.
const maxErrorBody = 512

// Client issues JSON requests against a single API origin. The underlying
// HTTP session is created once at construction and reused for all requests;
// it is safe for sequential reuse, and concurrent use is as safe as the
// *http.Client it wraps.
type Client struct {
	cfg        Config
	httpClient *http.Client
	headers    http.Header
	log        hclog.Logger

	// set when WithHTTPClient was used, so a nil collaborator can be
	// distinguished from "use the default".
	httpClientSet bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient supplies the HTTP session collaborator. Passing nil makes
// New fail with ErrSessionUnavailable.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
		c.httpClientSet = true
	}
}

// WithLogger sets the diagnostic logger. A nil logger disables diagnostics.
func WithLogger(log hclog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a Client from cfg. The configuration is re-validated so a
// zero-value or hand-built Config cannot slip through. The session headers
// (bearer authorization, JSON content type, user agent) are canned here and
// attached to every request.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	c := &Client{
		cfg: cfg,
		log: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = hclog.NewNullLogger()
	}

	if c.httpClientSet && c.httpClient == nil {
		return nil, fmt.Errorf("%w: nil *http.Client supplied", ErrSessionUnavailable)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	c.headers = http.Header{}
	c.headers.Set("Authorization", "Bearer "+cfg.APIKey)
	c.headers.Set("Content-Type", "application/json")
	c.headers.Set("User-Agent", cfg.UserAgent)

	return c, nil
}

// Do issues method against the endpoint joined onto the configured base URL,
// with an optional JSON body, and returns the response body as raw JSON.
//
// Transport errors and retryable statuses (429, 5xx) are retried with
// exponential backoff up to MaxRetries additional attempts. Other non-2xx
// statuses fail immediately. All failures are logged and returned as a
// *RequestError wrapping ErrRequestFailed, except a 2xx response whose body
// is not valid JSON, which returns an ErrDecodeFailed-wrapped error.
func (c *Client) Do(ctx context.Context, method, endpoint string, body any) (json.RawMessage, error) {
	target := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: encoding request body: %v", ErrInvalidArgument, err)
		}
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.cfg.MaxRetries)),
		ctx,
	)

	var raw json.RawMessage
	attempt := func() error {
		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("%w: building request: %v", ErrInvalidArgument, err))
		}
		for k, vv := range c.headers {
			for _, v := range vv {
				req.Header.Set(k, v)
			}
		}
		req.Header.Set("X-Request-ID", uuid.NewString())

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.log.Warn("api request attempt failed", "method", method, "url", target, "error", err)
			return &RequestError{URL: target, Err: err}
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			c.log.Warn("reading response body failed", "url", target, "error", err)
			return &RequestError{StatusCode: resp.StatusCode, URL: target, Err: err}
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			reqErr := &RequestError{
				StatusCode: resp.StatusCode,
				URL:        target,
				Body:       snippet(data),
			}
			if retryable(resp.StatusCode) {
				c.log.Warn("api request attempt failed", "method", method, "url", target, "status", resp.StatusCode)
				return reqErr
			}
			return backoff.Permanent(reqErr)
		}

		if !json.Valid(data) {
			return backoff.Permanent(fmt.Errorf("%w: response from %s is not valid JSON", ErrDecodeFailed, target))
		}

		raw = json.RawMessage(data)
		return nil
	}

	if err := backoff.Retry(attempt, policy); err != nil {
		c.log.Error("api request failed", "method", method, "url", target, "error", err)
		return nil, err
	}

	return raw, nil
}

// GetUserInfo fetches the user resource for userID. An empty or blank
// userID fails with ErrInvalidArgument before any request is made.
func (c *Client) GetUserInfo(ctx context.Context, userID string) (json.RawMessage, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user ID is required", ErrInvalidArgument)
	}
	return c.Do(ctx, http.MethodGet, "users/"+url.PathEscape(userID), nil)
}

// retryable reports whether a status code is worth another attempt.
// Mirrors the usual retry policy: 429 and server errors.
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return s
}
