// Package stager moves bytes for the install pipeline: it downloads files,
// unpacks zip archives, copies trees and runs installer processes.
package stager

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/arthur-debert/mcsi/pkg/filesystem"
	"github.com/arthur-debert/mcsi/pkg/logging"
	"github.com/cavaliergopher/grab/v3"
	"github.com/codeclysm/extract/v4"
	"github.com/spf13/afero"
)

// DefaultRetries is used when a Stager is created with fewer than one attempt
const DefaultRetries = 3

// Stager implements types.Stager on the local disk. Archive extraction
// and downloads always write through the OS, so FS must be OS backed.
type Stager struct {
	FS      afero.Fs
	Retries int
	client  *grab.Client
}

// Option configures a Stager
type Option func(*Stager)

// WithHTTPClient sets the HTTP client used for downloads
func WithHTTPClient(c *http.Client) Option {
	return func(s *Stager) { s.client.HTTPClient = c }
}

// WithUserAgent sets the User-Agent header of downloads
func WithUserAgent(ua string) Option {
	return func(s *Stager) { s.client.UserAgent = ua }
}

// WithRetries sets how many times a download is attempted
func WithRetries(n int) Option {
	return func(s *Stager) { s.Retries = n }
}

// New creates a Stager writing to the OS filesystem
func New(opts ...Option) *Stager {
	s := &Stager{
		FS:      afero.NewOsFs(),
		Retries: DefaultRetries,
		client:  grab.NewClient(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Retries < 1 {
		s.Retries = DefaultRetries
	}
	return s
}

// Download fetches url into dest, replacing any existing file. Failed
// attempts are retried immediately up to Retries times in total.
func (s *Stager) Download(ctx context.Context, url, dest string) (string, error) {
	logger := logging.GetLogger("stager")

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "creating %s", filepath.Dir(dest))
	}

	var lastErr error
	for attempt := 1; attempt <= s.Retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", errors.Wrapf(err, errors.ErrDownload, "downloading %s", url)
		}
		if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
			return "", errors.Wrapf(err, errors.ErrIO, "removing previous %s", dest)
		}

		logger.Debug().
			Str("url", url).
			Str("dest", dest).
			Int("attempt", attempt).
			Msg("Downloading file")

		req, err := grab.NewRequest(dest, url)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrDownload, "invalid download url %s", url)
		}
		req = req.WithContext(ctx)
		req.NoResume = true

		resp := s.client.Do(req)
		if lastErr = resp.Err(); lastErr == nil {
			logger.Debug().Str("file", resp.Filename).Int64("bytes", resp.BytesComplete()).Msg("Downloaded file")
			return resp.Filename, nil
		}

		_ = os.Remove(dest)
		logger.Warn().Err(lastErr).Str("url", url).Int("attempt", attempt).Msg("Download failed")
	}

	return "", errors.Wrapf(lastErr, errors.ErrDownload, "downloading %s", url).
		WithDetail("url", url).
		WithDetail("attempts", s.Retries)
}

// ExtractZip unpacks archive into destDir, creating it
func (s *Stager) ExtractZip(ctx context.Context, archive, destDir string) error {
	logger := logging.GetLogger("stager")

	f, err := os.Open(archive)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "opening archive %s", archive)
	}
	defer func() { _ = f.Close() }()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "creating %s", destDir)
	}

	logger.Debug().Str("archive", archive).Str("dest", destDir).Msg("Extracting archive")
	if err := extract.Zip(ctx, f, destDir, nil); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "extracting %s", archive)
	}
	return nil
}

// CopyTree copies srcDir into destDir, overwriting by relative path
func (s *Stager) CopyTree(srcDir, destDir string) error {
	return filesystem.CopyTree(s.FS, srcDir, destDir)
}
