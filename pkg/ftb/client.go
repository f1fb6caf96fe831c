// Package ftb installs Feed The Beast modpacks through their own server
// installer binary, located via the modpacks.ch API.
package ftb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/arthur-debert/mcsi/pkg/apiclient"
	"github.com/arthur-debert/mcsi/pkg/loader"
)

const (
	// DefaultBaseURL is the public modpacks.ch API
	DefaultBaseURL = "https://api.modpacks.ch/public"

	// DefaultSearchLimit caps the number of search hits requested
	DefaultSearchLimit = 8
)

// SearchResults is the response of /modpack/search
type SearchResults struct {
	Packs []uint64 `json:"packs"`
}

// PackDetails is the response of /modpack/{id}
type PackDetails struct {
	ID       uint64        `json:"id"`
	Name     string        `json:"name"`
	Versions []PackVersion `json:"versions"`
}

// PackVersion is one published version of a pack
type PackVersion struct {
	ID      uint64   `json:"id"`
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Updated int64    `json:"updated"`
	Private bool     `json:"private"`
	Targets []Target `json:"targets"`
}

// Target is a component a version runs on: the game, a loader, java
type Target struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Version string `json:"version"`
}

// MinecraftVersion returns the game target's version, or ""
func (v PackVersion) MinecraftVersion() string {
	for _, t := range v.Targets {
		if t.Type == "game" && t.Name == "minecraft" {
			return t.Version
		}
	}
	return ""
}

// Loader returns the modloader target as "<kind>-<version>", or "".
// Loader names outside the known kinds are kept as the catalog spells them.
func (v PackVersion) Loader() string {
	for _, t := range v.Targets {
		if t.Type != "modloader" {
			continue
		}
		kind, err := loader.ParseKind(t.Name)
		if err != nil {
			return t.Name + "-" + t.Version
		}
		return loader.Descriptor{Kind: kind, Version: t.Version}.String()
	}
	return ""
}

// Client talks to the modpacks.ch API
type Client struct {
	baseURL     string
	searchLimit int
	userAgent   string
	httpClient  *http.Client
	api         *apiclient.Client
}

// ClientOption configures a Client
type ClientOption func(*Client)

func WithHTTPClient(c *http.Client) ClientOption {
	return func(fc *Client) { fc.httpClient = c }
}

func WithBaseURL(u string) ClientOption {
	return func(fc *Client) { fc.baseURL = strings.TrimRight(u, "/") }
}

func WithUserAgent(ua string) ClientOption {
	return func(fc *Client) { fc.userAgent = ua }
}

func WithSearchLimit(n int) ClientOption {
	return func(fc *Client) {
		if n > 0 {
			fc.searchLimit = n
		}
	}
}

// NewClient creates a Client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		searchLimit: DefaultSearchLimit,
		userAgent:   "mcsi/dev",
	}
	for _, opt := range opts {
		opt(c)
	}
	c.api = apiclient.New(
		apiclient.WithHTTPClient(c.httpClient),
		apiclient.WithUserAgent(c.userAgent),
	)
	return c
}

// Search returns the ids of packs matching terms, best match first
func (c *Client) Search(ctx context.Context, terms []string) ([]uint64, error) {
	escaped := make([]string, 0, len(terms))
	for _, t := range terms {
		escaped = append(escaped, url.QueryEscape(t))
	}

	var res SearchResults
	u := fmt.Sprintf("%s/modpack/search/%d?term=%s", c.baseURL, c.searchLimit, strings.Join(escaped, "+"))
	if err := c.api.GetJSON(ctx, u, &res); err != nil {
		return nil, err
	}
	return res.Packs, nil
}

// PackDetails fetches a pack and its versions
func (c *Client) PackDetails(ctx context.Context, packID uint64) (*PackDetails, error) {
	var details PackDetails
	if err := c.api.GetJSON(ctx, fmt.Sprintf("%s/modpack/%d", c.baseURL, packID), &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// InstallerURL is where the server installer for goos is served
func (c *Client) InstallerURL(packID, versionID uint64, goos string) string {
	return fmt.Sprintf("%s/modpack/%d/%d/server/%s", c.baseURL, packID, versionID, platform(goos))
}

// InstallerFileName is the local name of the installer binary
func InstallerFileName(packID, versionID uint64, goos string) string {
	name := fmt.Sprintf("serverinstall_%d_%d", packID, versionID)
	if goos == "windows" {
		name += ".exe"
	}
	return name
}

func platform(goos string) string {
	switch goos {
	case "windows":
		return "windows"
	case "darwin":
		return "mac"
	default:
		return "linux"
	}
}
