// Package apiclient is the JSON-over-HTTP transport shared by the catalog
// clients and the loader metadata lookups.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/arthur-debert/mcsi/pkg/logging"
)

// maxResponseBytes is the upper bound on an API response body (10 MB)
const maxResponseBytes = 10 << 20

// Client issues GET requests and decodes their responses
type Client struct {
	httpClient *http.Client
	userAgent  string
	headers    map[string]string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(a *Client) {
		if c != nil {
			a.httpClient = c
		}
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(a *Client) { a.userAgent = ua }
}

// WithHeader adds a header sent with every request
func WithHeader(key, value string) Option {
	return func(a *Client) { a.headers[key] = value }
}

// New creates a Client
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		userAgent:  "mcsi/dev",
		headers:    map[string]string{"Accept": "application/json"},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetJSON fetches url and decodes the body into v. A 404 is reported as
// ErrReleaseNotFound; any other failure as ErrCatalog.
func (c *Client) GetJSON(ctx context.Context, url string, v interface{}) error {
	body, err := c.GetBytes(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errors.Wrapf(err, errors.ErrCatalog, "decoding response of %s", redact(url))
	}
	return nil
}

// GetBytes fetches url and returns the raw body
func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, error) {
	logger := logging.GetLogger("apiclient")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrCatalog, "creating request for %s", redact(url))
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("User-Agent", c.userAgent)

	logger.Trace().Str("url", redact(url)).Msg("GET")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrCatalog, "requesting %s", redact(url))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrCatalog, "reading response of %s", redact(url))
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.Newf(errors.ErrReleaseNotFound, "%s not found", redact(url)).
			WithDetail("status", resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, errors.Newf(errors.ErrCatalog, "%s returned %s", redact(url), statusText(resp)).
			WithDetail("status", resp.StatusCode).
			WithDetail("body", snippet(body))
	}

	return body, nil
}

func statusText(resp *http.Response) string {
	if resp.Status != "" {
		return resp.Status
	}
	return fmt.Sprintf("%d", resp.StatusCode)
}

func snippet(body []byte) string {
	const max = 512
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// redact drops the query string, which may carry search terms or keys
func redact(url string) string {
	if i := strings.IndexByte(url, '?'); i >= 0 {
		return url[:i]
	}
	return url
}
