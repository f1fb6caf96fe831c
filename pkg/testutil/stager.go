package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/arthur-debert/mcsi/pkg/stager"
)

// FakeStager serves downloads from Content, keyed by URL, and extracts and
// copies with the real stager. Unknown URLs fail with a DOWNLOAD error.
type FakeStager struct {
	mu         sync.Mutex
	Content    map[string][]byte
	Downloaded []string
}

// NewFakeStager creates a FakeStager serving content
func NewFakeStager(content map[string][]byte) *FakeStager {
	if content == nil {
		content = map[string][]byte{}
	}
	return &FakeStager{Content: content}
}

func (f *FakeStager) Download(ctx context.Context, url, dest string) (string, error) {
	f.mu.Lock()
	f.Downloaded = append(f.Downloaded, url)
	data, ok := f.Content[url]
	f.mu.Unlock()

	if !ok {
		return "", errors.Newf(errors.ErrDownload, "no content for %s", url).WithDetail("url", url)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return "", err
	}
	return dest, nil
}

func (f *FakeStager) ExtractZip(ctx context.Context, archive, destDir string) error {
	return stager.New().ExtractZip(ctx, archive, destDir)
}

func (f *FakeStager) CopyTree(srcDir, destDir string) error {
	return stager.New().CopyTree(srcDir, destDir)
}

// URLs returns the downloaded URLs in order
func (f *FakeStager) URLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Downloaded...)
}
