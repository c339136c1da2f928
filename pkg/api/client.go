// Package api is the client for the Journal Quest REST API. Every call
// sends the session cookie, decodes JSON on 2xx and otherwise returns one of
// NetworkError, RequestError or DecodeError. Nothing is retried.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second

	// RequestIDHeader correlates client log lines with server logs.
	RequestIDHeader = "X-Request-ID"

	userAgent = "jquest/1.0"
)

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration

	// Jar holds the session cookie. When nil an in-memory jar is used.
	Jar http.CookieJar

	// Transport overrides the HTTP transport, mostly for tests.
	Transport http.RoundTripper

	Logger *zap.Logger
}

// Client talks to the API. It is safe for concurrent use.
type Client struct {
	http *http.Client
	base *url.URL
	jar  http.CookieJar
	log  *zap.Logger
}

// New validates opts and builds a Client.
func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, errors.New("api: base URL is required")
	}
	base, err := url.Parse(strings.TrimSpace(opts.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("api: invalid base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api: base URL %q must include scheme and host", opts.BaseURL)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	jar := opts.Jar
	if jar == nil {
		jar, err = NewMemoryJar()
		if err != nil {
			return nil, err
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http: &http.Client{
			Transport: opts.Transport,
			Timeout:   opts.Timeout,
			Jar:       jar,
		},
		base: base,
		jar:  jar,
		log:  logger.Named("api"),
	}, nil
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() *url.URL {
	u := *c.base
	return &u
}

// Jar exposes the cookie jar so callers can clear the session on logout.
func (c *Client) Jar() http.CookieJar {
	return c.jar
}

func (c *Client) endpoint(path string) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	u.RawQuery = ""
	return u.String()
}

// Do performs one request. body, when non-nil, is sent as JSON. On 2xx the
// response is decoded into out unless out is nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: %s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reader)
	if err != nil {
		return fmt.Errorf("api: %s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}

	c.log.Debug("request complete",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		re := &RequestError{Op: op, Status: resp.StatusCode}
		var eb errorBody
		if len(bytes.TrimSpace(data)) > 0 && json.Unmarshal(data, &eb) == nil {
			re.Messages = eb.messages()
		}
		return re
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return &DecodeError{Op: op, Status: resp.StatusCode, Err: io.ErrUnexpectedEOF}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Op: op, Status: resp.StatusCode, Err: err}
	}
	return nil
}
