package fetch

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "spigell/hire-assessor (+https://github.com/spigell/hire-assessor)"
	DefaultMaxBytes  = 20 << 20

	acceptEncoding   = "gzip"
	defaultAcceptAll = "*/*"
)

// Options configures a Client.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
}

// Client performs single blocking GET requests. It never retries and never
// turns a failure into content; callers decide what a failure means.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	MaxBytes   int64
	logger     *zap.Logger
}

func New(logger *zap.Logger, opts Options) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}

	return &Client{
		HTTPClient: &http.Client{
			Timeout: opts.Timeout,
		},
		UserAgent: opts.UserAgent,
		MaxBytes:  opts.MaxBytes,
		logger:    logger,
	}
}

// Get downloads rawURL and returns the response body.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	return c.get(ctx, rawURL, defaultAcceptAll)
}

// GetHTML is Get with an HTML Accept header.
func (c *Client) GetHTML(ctx context.Context, rawURL string) ([]byte, error) {
	return c.get(ctx, rawURL, "text/html,application/xhtml+xml")
}

func (c *Client) get(ctx context.Context, rawURL, accept string) ([]byte, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "creating request", Cause: err}
	}

	req = c.setHeaders(req)
	req.Header.Set("Accept", accept)

	resp, err := c.request(req)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &Error{URL: rawURL, StatusCode: resp.StatusCode, Message: fmt.Sprintf("bad status: %s", resp.Status)}
	}

	var body io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, &Error{URL: rawURL, StatusCode: resp.StatusCode, Message: "opening gzip body", Cause: err}
		}
		defer gzipReader.Close()
		body = gzipReader
	}

	data, err := io.ReadAll(io.LimitReader(body, c.MaxBytes+1))
	if err != nil {
		return nil, &Error{URL: rawURL, StatusCode: resp.StatusCode, Message: "reading body", Cause: err}
	}

	if int64(len(data)) > c.MaxBytes {
		return nil, &Error{URL: rawURL, StatusCode: resp.StatusCode, Message: fmt.Sprintf("body exceeds %d bytes", c.MaxBytes)}
	}

	c.logger.Debug("got response",
		zap.String("url", rawURL),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)),
	)

	return data, nil
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	return c.HTTPClient.Do(req)
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Encoding", acceptEncoding)

	return req
}
