package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"strings"
	"time"
)

// Transport defaults. Timeouts follow the catalog operator's published
// guidance for bulk clients; the courtesy delay applies after every request,
// success or failure.
const (
	// DefaultUserAgent identifies this client to the API operator.
	DefaultUserAgent = "govcat (+https://github.com/opendata-tools/govcat)"

	// DefaultTimeout is the overall response timeout.
	DefaultTimeout = 120 * time.Second

	// DefaultConnectTimeout bounds connection establishment separately.
	DefaultConnectTimeout = 60 * time.Second

	// DefaultCourtesyDelay is the pause inserted after each request.
	DefaultCourtesyDelay = time.Second

	// DefaultAttempts is the retry budget per fetch.
	DefaultAttempts = 5
)

// ContentTypeJSON is the declared content type required from catalog
// endpoints.
const ContentTypeJSON = "application/json"

// Options configure a [Client]. The zero value of each field selects its
// default; Attempts below zero is a programming error and panics.
type Options struct {
	// UserAgent replaces DefaultUserAgent in outgoing requests.
	UserAgent string

	// Timeout is the overall response timeout per request.
	Timeout time.Duration

	// ConnectTimeout bounds dialing.
	ConnectTimeout time.Duration

	// CourtesyDelay is the pause after every request. It doubles as the
	// inter-attempt spacing during retries.
	CourtesyDelay time.Duration

	// Attempts is the retry budget per fetch.
	Attempts int

	// HTTPClient overrides the constructed client entirely. Timeout fields
	// are ignored when set. Intended for tests.
	HTTPClient *http.Client
}

// Client issues throttled, retried GET requests on behalf of the catalog
// client. A Client is immutable after construction and safe to share between
// sequential callers; it performs no concurrent requests of its own.
type Client struct {
	http      *http.Client
	userAgent string
	delay     time.Duration
	attempts  int
}

// NewClient builds a Client from opts.
func NewClient(opts Options) *Client {
	if opts.Attempts < 0 {
		panic("httputil: attempt budget must be positive")
	}
	c := &Client{
		http:      opts.HTTPClient,
		userAgent: opts.UserAgent,
		delay:     opts.CourtesyDelay,
		attempts:  opts.Attempts,
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.delay == 0 {
		c.delay = DefaultCourtesyDelay
	}
	if c.attempts == 0 {
		c.attempts = DefaultAttempts
	}
	if c.http == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		connect := opts.ConnectTimeout
		if connect == 0 {
			connect = DefaultConnectTimeout
		}
		c.http = NewHTTPClient(timeout, connect)
	}
	return c
}

// NewHTTPClient creates an http.Client with the given response and connect
// timeouts, keeping the default transport's proxy and pooling behavior.
func NewHTTPClient(timeout, connectTimeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// Attempts returns the configured retry budget.
func (c *Client) Attempts() int { return c.attempts }

// Get fetches url and returns the raw response body. Any declared content
// type is accepted; distribution downloads land here.
//
// Non-200 responses and network failures are retried up to the attempt
// budget, then surface as a [TransportError]. The courtesy delay applies
// after every attempt, including the successful one.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	return c.fetch(ctx, url, "")
}

// GetJSON fetches url, requires the response to declare a JSON content type,
// and decodes the body into v.
//
// A 200 response with a non-JSON content type fails immediately with a
// [FormatMismatchError] and is never retried.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	body, err := c.fetch(ctx, url, ContentTypeJSON)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// fetch drives the bounded retry loop around single GET attempts.
func (c *Client) fetch(ctx context.Context, url, wantType string) ([]byte, error) {
	var body []byte
	err := Retry(ctx, c.attempts, 0, func() error {
		data, err := c.do(ctx, url, wantType)
		if err != nil {
			return err
		}
		body = data
		return nil
	})
	if err != nil {
		var retryable *RetryableError
		if errors.As(err, &retryable) {
			return nil, retryable.Err
		}
		return nil, err
	}
	return body, nil
}

// do performs one GET attempt. The courtesy delay runs after the round trip
// regardless of outcome.
func (c *Client) do(ctx context.Context, url, wantType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if wantType != "" {
		req.Header.Set("Accept", wantType)
	}

	resp, err := c.http.Do(req)
	c.pause(ctx)
	if err != nil {
		return nil, &RetryableError{Err: &TransportError{
			URL: url,
			Err: fmt.Errorf("%w: %v", ErrNetwork, err),
		}}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &RetryableError{Err: &TransportError{
			URL:    url,
			Status: resp.StatusCode,
		}}
	}

	if wantType != "" {
		declared := resp.Header.Get("Content-Type")
		if !contentTypeMatches(declared, wantType) {
			return nil, &FormatMismatchError{
				URL:      url,
				Declared: declared,
				Expected: wantType,
			}
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RetryableError{Err: &TransportError{
			URL: url,
			Err: fmt.Errorf("%w: %v", ErrNetwork, err),
		}}
	}
	return body, nil
}

// pause sleeps the courtesy delay, returning early only on cancellation.
func (c *Client) pause(ctx context.Context) {
	if c.delay <= 0 {
		return
	}
	select {
	case <-time.After(c.delay):
	case <-ctx.Done():
	}
}

// contentTypeMatches compares a declared Content-Type header against the
// expected media type, ignoring parameters. Structured syntax suffixes
// ("application/ld+json" against "application/json") also match.
func contentTypeMatches(declared, want string) bool {
	media, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return false
	}
	if media == want {
		return true
	}
	if i := strings.IndexByte(want, '/'); i >= 0 {
		return strings.HasSuffix(media, "+"+want[i+1:])
	}
	return false
}
