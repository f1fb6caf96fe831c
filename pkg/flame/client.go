// Package flame reads modpack releases from the CurseForge API.
package flame

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/arthur-debert/mcsi/pkg/apiclient"
	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/arthur-debert/mcsi/pkg/types"
)

const (
	// DefaultBaseURL is the public CurseForge API
	DefaultBaseURL = "https://api.curseforge.com/v1"

	// DefaultPageSize is the number of files requested per listing page
	DefaultPageSize = 50
)

// Client implements types.Catalog against the CurseForge API
type Client struct {
	baseURL    string
	pageSize   int
	apiKey     string
	userAgent  string
	httpClient *http.Client
	api        *apiclient.Client
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used for API calls
func WithHTTPClient(c *http.Client) ClientOption {
	return func(fc *Client) { fc.httpClient = c }
}

// WithBaseURL points the client at another API root
func WithBaseURL(u string) ClientOption {
	return func(fc *Client) { fc.baseURL = strings.TrimRight(u, "/") }
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) ClientOption {
	return func(fc *Client) { fc.userAgent = ua }
}

// WithPageSize sets the file listing page size
func WithPageSize(n int) ClientOption {
	return func(fc *Client) {
		if n > 0 {
			fc.pageSize = n
		}
	}
}

// NewClient creates a Client authenticated with apiKey
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		pageSize:  DefaultPageSize,
		apiKey:    apiKey,
		userAgent: "mcsi/dev",
	}
	for _, opt := range opts {
		opt(c)
	}
	c.api = apiclient.New(
		apiclient.WithHTTPClient(c.httpClient),
		apiclient.WithUserAgent(c.userAgent),
		apiclient.WithHeader("x-api-key", c.apiKey),
	)
	return c
}

var _ types.Catalog = (*Client)(nil)

type envelope[T any] struct {
	Data T `json:"data"`
}

// PackInfo fetches /mods/{id}
func (c *Client) PackInfo(ctx context.Context, projectID uint64) (*types.PackInfo, error) {
	var resp envelope[types.PackInfo]
	if err := c.api.GetJSON(ctx, fmt.Sprintf("%s/mods/%d", c.baseURL, projectID), &resp); err != nil {
		return nil, withProject(err, projectID)
	}
	return &resp.Data, nil
}

// FileInfo fetches /mods/{id}/files/{fileID}
func (c *Client) FileInfo(ctx context.Context, projectID, fileID uint64) (*types.ReleaseFile, error) {
	var resp envelope[types.ReleaseFile]
	if err := c.api.GetJSON(ctx, fmt.Sprintf("%s/mods/%d/files/%d", c.baseURL, projectID, fileID), &resp); err != nil {
		return nil, withProject(err, projectID)
	}
	return &resp.Data, nil
}

// Files fetches one page of /mods/{id}/files
func (c *Client) Files(ctx context.Context, projectID uint64, page int) (*types.FilesPage, error) {
	q := url.Values{}
	q.Set("index", fmt.Sprint(page*c.pageSize))
	q.Set("pageSize", fmt.Sprint(c.pageSize))

	var resp types.FilesPage
	if err := c.api.GetJSON(ctx, fmt.Sprintf("%s/mods/%d/files?%s", c.baseURL, projectID, q.Encode()), &resp); err != nil {
		return nil, withProject(err, projectID)
	}
	return &resp, nil
}

func withProject(err error, projectID uint64) error {
	if e, ok := err.(*errors.Error); ok {
		return e.WithDetail("project", projectID)
	}
	return err
}
