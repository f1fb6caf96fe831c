// pkg/flame/client_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: httptest server
// PURPOSE: Test CurseForge endpoints, headers, envelopes and error mapping

package flame_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/arthur-debert/mcsi/pkg/flame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/mods/100", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"id":100,"name":"All the Mods","classId":4471,"mainFileId":5002}}`))
	})
	mux.HandleFunc("/mods/100/files/5002", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"id":5002,"displayName":"ATM 1.2","fileName":"atm-1.2.zip",
			"downloadUrl":"https://edge/atm-1.2.zip","isServerPack":false,"serverPackFileId":5003}}`))
	})
	mux.HandleFunc("/mods/100/files", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "20", r.URL.Query().Get("index"))
		assert.Equal(t, "10", r.URL.Query().Get("pageSize"))
		_, _ = w.Write([]byte(`{"data":[{"id":1,"displayName":"a"},{"id":2,"displayName":"b"}],
			"pagination":{"index":20,"pageSize":10,"resultCount":2,"totalCount":22}}`))
	})
	mux.HandleFunc("/mods/500", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key-123", r.Header.Get("x-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(srv *httptest.Server) *flame.Client {
	return flame.NewClient("key-123",
		flame.WithBaseURL(srv.URL+"/"),
		flame.WithHTTPClient(srv.Client()),
		flame.WithPageSize(10),
	)
}

func TestPackInfo(t *testing.T) {
	t.Parallel()
	c := newClient(newServer(t))

	info, err := c.PackInfo(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, "All the Mods", info.Name)
	assert.Equal(t, uint64(5002), info.MainFileID)
	assert.Equal(t, uint64(4471), info.ClassID)
}

func TestFileInfo(t *testing.T) {
	t.Parallel()
	c := newClient(newServer(t))

	f, err := c.FileInfo(context.Background(), 100, 5002)
	require.NoError(t, err)
	assert.Equal(t, "atm-1.2.zip", f.FileName)
	assert.False(t, f.IsServerPack)
	require.NotNil(t, f.ServerPackFileID)
	assert.Equal(t, uint64(5003), *f.ServerPackFileID)
	assert.Nil(t, f.ParentProjectFileID)
}

func TestFiles(t *testing.T) {
	t.Parallel()
	c := newClient(newServer(t))

	page, err := c.Files(context.Background(), 100, 2)
	require.NoError(t, err)
	assert.Len(t, page.Files, 2)
	assert.Equal(t, 22, page.Pagination.TotalCount)
	assert.Equal(t, 2, page.Pagination.ResultCount)
}

func TestErrorMapping(t *testing.T) {
	t.Parallel()
	c := newClient(newServer(t))

	tests := []struct {
		name string
		call func() error
		code errors.ErrorCode
	}{
		{"unknown file is not found", func() error {
			_, err := c.FileInfo(context.Background(), 100, 6822909)
			return err
		}, errors.ErrReleaseNotFound},
		{"forbidden is a catalog failure", func() error {
			_, err := c.PackInfo(context.Background(), 500)
			return err
		}, errors.ErrCatalog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code))
			assert.NotNil(t, errors.GetErrorDetails(err)["project"])
		})
	}
}

func TestFilesDefaultPageSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "50", r.URL.Query().Get("index"))
		assert.Equal(t, "50", r.URL.Query().Get("pageSize"))
		_, _ = w.Write([]byte(`{"data":[],"pagination":{"index":50,"pageSize":50,"resultCount":0,"totalCount":50}}`))
	}))
	t.Cleanup(srv.Close)

	c := flame.NewClient("k", flame.WithBaseURL(srv.URL), flame.WithHTTPClient(srv.Client()), flame.WithPageSize(0))
	page, err := c.Files(context.Background(), 100, 1)
	require.NoError(t, err)
	assert.Empty(t, page.Files)
}
