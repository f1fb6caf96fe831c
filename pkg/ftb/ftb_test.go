// pkg/ftb/ftb_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: httptest server, FakeRunner, FakeStager
// PURPOSE: Test pack search, version selection and the installer run

package ftb_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/arthur-debert/mcsi/pkg/ftb"
	"github.com/arthur-debert/mcsi/pkg/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/modpack/search/8", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "all the mods", r.URL.Query().Get("term"))
		_, _ = w.Write([]byte(`{"packs":[7,9]}`))
	})
	mux.HandleFunc("/modpack/7", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":7,"name":"Old","versions":[{"id":70,"updated":1,
			"targets":[{"name":"minecraft","type":"game","version":"1.12.2"}]}]}`))
	})
	mux.HandleFunc("/modpack/9", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":9,"name":"Pack","versions":[
			{"id":1,"name":"1.0","type":"release","updated":100,"targets":[{"name":"minecraft","type":"game","version":"1.19.2"}]},
			{"id":3,"name":"1.2","type":"release","updated":300,"targets":[{"name":"minecraft","type":"game","version":"1.19.2"}]},
			{"id":2,"name":"1.1","type":"beta","updated":200,"targets":[{"name":"forge","type":"modloader","version":"43.2.0"}]}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(srv *httptest.Server) *ftb.Client {
	return ftb.NewClient(ftb.WithBaseURL(srv.URL), ftb.WithHTTPClient(srv.Client()))
}

func TestFindPack(t *testing.T) {
	t.Parallel()
	c := newClient(newServer(t))
	ctx := context.Background()

	tests := []struct {
		name    string
		query   ftb.PackQuery
		want    uint64
		wantErr errors.ErrorCode
	}{
		{name: "by id", query: ftb.PackQuery{ID: 9}, want: 9},
		{name: "first search hit", query: ftb.PackQuery{SearchTerms: []string{"all the", "mods"}}, want: 7},
		{name: "hit filtered by minecraft version", query: ftb.PackQuery{SearchTerms: []string{"all the", "mods"}, MinecraftVersion: "1.19.2"}, want: 9},
		{name: "no hit for minecraft version", query: ftb.PackQuery{SearchTerms: []string{"all the", "mods"}, MinecraftVersion: "1.7.10"}, wantErr: errors.ErrReleaseNotFound},
		{name: "unknown id", query: ftb.PackQuery{ID: 404}, wantErr: errors.ErrReleaseNotFound},
		{name: "empty query", query: ftb.PackQuery{}, wantErr: errors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details, err := c.FindPack(ctx, tt.query)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, details.ID)
		})
	}
}

func TestSelectVersion(t *testing.T) {
	details := &ftb.PackDetails{ID: 9, Versions: []ftb.PackVersion{
		{ID: 1, Updated: 100},
		{ID: 3, Updated: 300},
		{ID: 2, Updated: 200},
	}}

	tests := []struct {
		selector string
		want     uint64
		wantErr  errors.ErrorCode
	}{
		{selector: "latest", want: 3},
		{selector: "LATEST", want: 3},
		{selector: "2", want: 2},
		{selector: "42", wantErr: errors.ErrReleaseNotFound},
		{selector: "1.2", wantErr: errors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			v, err := details.SelectVersion(tt.selector)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.ID)
		})
	}

	_, err := (&ftb.PackDetails{ID: 1}).SelectVersion("latest")
	assert.True(t, errors.IsErrorCode(err, errors.ErrReleaseNotFound))
}

func TestMinecraftVersion(t *testing.T) {
	v := ftb.PackVersion{Targets: []ftb.Target{
		{Name: "forge", Type: "modloader", Version: "47.1.0"},
		{Name: "minecraft", Type: "game", Version: "1.20.1"},
	}}
	assert.Equal(t, "1.20.1", v.MinecraftVersion())
	assert.Equal(t, "forge-47.1.0", v.Loader())
	assert.Equal(t, "", ftb.PackVersion{}.MinecraftVersion())
	assert.Equal(t, "", ftb.PackVersion{}.Loader())
}

func TestLoaderNames(t *testing.T) {
	tests := []struct {
		name   string
		target ftb.Target
		want   string
	}{
		{"lowercase", ftb.Target{Name: "forge", Type: "modloader", Version: "47.1.0"}, "forge-47.1.0"},
		{"mixed case", ftb.Target{Name: "NeoForge", Type: "modloader", Version: "21.1.77"}, "neoforge-21.1.77"},
		{"unknown loader", ftb.Target{Name: "LiteLoader", Type: "modloader", Version: "1.0"}, "LiteLoader-1.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ftb.PackVersion{Targets: []ftb.Target{tt.target}}
			assert.Equal(t, tt.want, v.Loader())
		})
	}
}

func TestInstallerNaming(t *testing.T) {
	c := ftb.NewClient(ftb.WithBaseURL("https://example.test/public/"))

	assert.Equal(t, "https://example.test/public/modpack/9/3/server/linux", c.InstallerURL(9, 3, "linux"))
	assert.Equal(t, "https://example.test/public/modpack/9/3/server/windows", c.InstallerURL(9, 3, "windows"))
	assert.Equal(t, "https://example.test/public/modpack/9/3/server/mac", c.InstallerURL(9, 3, "darwin"))
	assert.Equal(t, "serverinstall_9_3", ftb.InstallerFileName(9, 3, "linux"))
	assert.Equal(t, "serverinstall_9_3.exe", ftb.InstallerFileName(9, 3, "windows"))
}

func TestServerInstaller(t *testing.T) {
	c := ftb.NewClient(ftb.WithBaseURL("https://example.test/public"))
	st := testutil.NewFakeStager(map[string][]byte{
		"https://example.test/public/modpack/9/3/server/linux": []byte("#!/bin/sh\n"),
	})
	runner := &testutil.FakeRunner{}

	dir := t.TempDir()
	scratch := filepath.Join(dir, ".mcsi", "ftb")
	staging := filepath.Join(dir, ".mcsi", "work_dir")

	inst := &ftb.ServerInstaller{Client: c, Stager: st, Runner: runner, FS: afero.NewOsFs(), GOOS: "linux"}
	require.NoError(t, inst.Install(context.Background(), 9, 3, scratch, staging))

	binary := filepath.Join(scratch, "serverinstall_9_3")
	info, err := os.Stat(binary)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0100, "installer is executable")

	require.Len(t, runner.Calls, 1)
	assert.Equal(t, scratch, runner.Calls[0].Dir)
	assert.Equal(t, binary, runner.Calls[0].Name)
	assert.Equal(t, []string{"--auto", "--path", staging, "--nojava"}, runner.Calls[0].Args)
}

func TestServerInstallerDownloadFailure(t *testing.T) {
	inst := &ftb.ServerInstaller{
		Client: ftb.NewClient(),
		Stager: testutil.NewFakeStager(nil),
		Runner: &testutil.FakeRunner{},
		FS:     afero.NewOsFs(),
	}
	err := inst.Install(context.Background(), 1, 2, t.TempDir(), t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDownload))
}
