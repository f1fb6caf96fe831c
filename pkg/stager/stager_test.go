// pkg/stager/stager_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: httptest server, real filesystem (t.TempDir)
// PURPOSE: Test download retries, zip extraction and tree copies

package stager_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/arthur-debert/mcsi/pkg/stager"
	"github.com/arthur-debert/mcsi/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyServer fails the first `failures` GET requests of /file
func flakyServer(t *testing.T, failures int32, body string) (*httptest.Server, *int32) {
	t.Helper()
	var gets int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusOK)
			return
		}
		n := atomic.AddInt32(&gets, 1)
		if n <= failures {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		assert.Equal(t, "mcsi-test", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &gets
}

func TestDownload(t *testing.T) {
	tests := []struct {
		name      string
		failures  int32
		retries   int
		wantErr   bool
		wantCalls int32
	}{
		{name: "first attempt succeeds", failures: 0, retries: 3, wantCalls: 1},
		{name: "succeeds on last attempt", failures: 2, retries: 3, wantCalls: 3},
		{name: "exhausts retries", failures: 5, retries: 3, wantErr: true, wantCalls: 3},
		{name: "single attempt", failures: 1, retries: 1, wantErr: true, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, gets := flakyServer(t, tt.failures, "server jar bytes")
			s := stager.New(stager.WithRetries(tt.retries), stager.WithUserAgent("mcsi-test"), stager.WithHTTPClient(srv.Client()))

			dest := filepath.Join(t.TempDir(), "nested", "server.jar")
			got, err := s.Download(context.Background(), srv.URL+"/file", dest)

			assert.Equal(t, tt.wantCalls, atomic.LoadInt32(gets))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrDownload))
				assert.Equal(t, tt.retries, errors.GetErrorDetails(err)["attempts"])
				_, statErr := os.Stat(dest)
				assert.True(t, os.IsNotExist(statErr), "failed download leaves no file")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, dest, got)
			assert.Equal(t, "server jar bytes", testutil.ReadFile(t, dest))
		})
	}
}

func TestDownloadReplacesExistingFile(t *testing.T) {
	srv, _ := flakyServer(t, 0, "new")
	s := stager.New(stager.WithUserAgent("mcsi-test"), stager.WithHTTPClient(srv.Client()))

	dest := filepath.Join(t.TempDir(), "pack.zip")
	require.NoError(t, os.WriteFile(dest, []byte("an older and much longer file"), 0644))

	_, err := s.Download(context.Background(), srv.URL+"/file", dest)
	require.NoError(t, err)
	assert.Equal(t, "new", testutil.ReadFile(t, dest))
}

func TestDownloadCancelled(t *testing.T) {
	srv, gets := flakyServer(t, 0, "x")
	s := stager.New(stager.WithHTTPClient(srv.Client()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Download(ctx, srv.URL+"/file", filepath.Join(t.TempDir(), "x"))
	require.Error(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(gets))
}

func TestExtractZip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "pack.zip")
	testutil.WriteZip(t, archive, map[string]string{
		"manifest.json":          `{"minecraft":{"version":"1.20.1"}}`,
		"overrides/config/a.cfg": "a",
		"overrides/mods/x.jar":   "x",
	})

	dest := filepath.Join(dir, "client")
	require.NoError(t, stager.New().ExtractZip(context.Background(), archive, dest))

	assert.Equal(t, []string{"manifest.json", "overrides/config/a.cfg", "overrides/mods/x.jar"}, testutil.ListTree(t, dest, ""))
	assert.Equal(t, "a", testutil.ReadFile(t, filepath.Join(dest, "overrides", "config", "a.cfg")))
}

func TestExtractZipMissingArchive(t *testing.T) {
	err := stager.New().ExtractZip(context.Background(), filepath.Join(t.TempDir(), "nope.zip"), t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrIO))
}

func TestCopyTree(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	testutil.WriteFiles(t, src, map[string]string{"mods/a.jar": "a", "server.jar": "s"})
	testutil.WriteFiles(t, dst, map[string]string{"server.jar": "old", "world/level.dat": "w"})

	require.NoError(t, stager.New().CopyTree(src, dst))
	assert.Equal(t, []string{"mods/a.jar", "server.jar", "world/level.dat"}, testutil.ListTree(t, dst, ""))
	assert.Equal(t, "s", testutil.ReadFile(t, filepath.Join(dst, "server.jar")))
}

func TestExecRunner(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("requires /bin/sh")
	}
	dir := t.TempDir()
	r := stager.ExecRunner{}

	require.NoError(t, r.Run(context.Background(), dir, "/bin/sh", "-c", "echo ok > out.txt"))
	assert.Equal(t, "ok", testutil.ReadFile(t, filepath.Join(dir, "out.txt")))

	err := r.Run(context.Background(), dir, "/bin/sh", "-c", "echo broken installer; exit 3")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInstallerProcess))
	assert.Contains(t, errors.GetErrorDetails(err)["output"], "broken installer")
}
