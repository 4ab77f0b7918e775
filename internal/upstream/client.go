// Package upstream talks to the PokeAPI.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the public PokeAPI v2 root.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// FailureMessage is reported to callers whenever the upstream lookup fails.
const FailureMessage = "could not retrieve Pokémon information"

const defaultMaxBodyBytes = 8 << 20

// ErrUnavailable reports that the upstream could not be reached or read.
var ErrUnavailable = errors.New("upstream unavailable")

// StatusError is returned when the upstream answers with a non-200 status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, FailureMessage)
}

// Message is the human-readable text surfaced to API clients.
func (e *StatusError) Message() string { return FailureMessage }

// Client fetches raw pokemon payloads. It holds no per-request state.
type Client struct {
	baseURL      string
	hc           *http.Client
	timeout      time.Duration
	maxBodyBytes int64
	log          *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another PokeAPI-compatible root.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the outbound http.Client. A nil client is ignored.
// The client passed in is never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.hc = hc
		}
	}
}

// WithTimeout bounds each outbound call. Zero keeps the client's own timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithMaxBodyBytes caps how much of an upstream body is read.
func WithMaxBodyBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// WithLogger sets the logger used for upstream events.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New builds a Client. Options apply in order.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:      DefaultBaseURL,
		hc:           &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()},
		maxBodyBytes: defaultMaxBodyBytes,
		log:          zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.timeout > 0 {
		hc := *c.hc
		hc.Timeout = c.timeout
		c.hc = &hc
	}
	return c
}

// Fetch issues one GET for the pokemon named or numbered by identifier and
// returns the body unmodified on 200.
func (c *Client) Fetch(ctx context.Context, identifier string) ([]byte, error) {
	// Escaped by hand: url.JoinPath would clean "." and ".." segments.
	endpoint := strings.TrimRight(c.baseURL, "/") + "/pokemon/" + url.PathEscape(identifier)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn("upstream_failure", zap.String("identifier", identifier), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.log.Debug("upstream_request",
		zap.String("identifier", identifier),
		zap.Int("status", resp.StatusCode),
		zap.Float64("latency_ms", float64(time.Since(start).Microseconds())/1000.0),
	)

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, c.maxBodyBytes))
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrUnavailable, c.maxBodyBytes)
	}
	return body, nil
}

// Close releases idle outbound connections.
func (c *Client) Close() {
	c.hc.CloseIdleConnections()
}
