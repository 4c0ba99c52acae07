package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// HTTPDoer abstracts the HTTP client used for round-trips.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to a remote quiz catalog. It never retries, never caches,
// and leaves deadlines to the caller's context.
type Client struct {
	baseURL string
	doer    HTTPDoer
	logger  zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPDoer replaces the default HTTP client.
func WithHTTPDoer(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.doer = doer
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New constructs a client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    &http.Client{},
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the fixed base URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ack is the acknowledgment returned by operations without a typed result.
type Ack struct {
	Status int
	Body   []byte
}

// response is a received HTTP response with its body fully read.
type response struct {
	status int
	body   []byte
}

// roundTrip executes one request. A nil payload sends no body.
func (c *Client) roundTrip(ctx context.Context, op, method, path string, payload any) (response, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return response{}, fmt.Errorf("%s: marshal request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return response{}, fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.doer.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("op", op).Str("method", method).Str("path", path).Msg("catalog request failed")
		return response{}, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, &TransportError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	c.logger.Debug().
		Str("op", op).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("catalog request")
	return response{status: resp.StatusCode, body: body}, nil
}

// call performs a round-trip and treats any 2xx status as success.
func (c *Client) call(ctx context.Context, op, method, path string, payload any) (response, error) {
	resp, err := c.roundTrip(ctx, op, method, path, payload)
	if err != nil {
		return response{}, err
	}
	if resp.status < 200 || resp.status >= 300 {
		return response{}, newRemoteError(op, resp.status, resp.body)
	}
	return resp, nil
}

// decode unmarshals a successful body into out.
func decode(op string, resp response, out any) error {
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
