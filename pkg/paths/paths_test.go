package paths_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/arthur-debert/mcsi/pkg/paths"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exists(t *testing.T, fs afero.Fs, path string) bool {
	t.Helper()
	ok, err := afero.Exists(fs, path)
	require.NoError(t, err)
	return ok
}

func TestNew(t *testing.T) {
	t.Run("empty target", func(t *testing.T) {
		_, err := paths.New("  ", afero.NewMemMapFs())
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("layout", func(t *testing.T) {
		root := t.TempDir()
		p, err := paths.New(root, afero.NewMemMapFs())
		require.NoError(t, err)

		mcsi := filepath.Join(root, ".mcsi")
		assert.Equal(t, root, p.TargetDir())
		assert.Equal(t, mcsi, p.McsiDir())
		assert.Equal(t, filepath.Join(mcsi, "manifest.json"), p.ManifestPath())
		assert.Equal(t, filepath.Join(mcsi, "config.toml"), p.ConfigPath())
		assert.Equal(t, filepath.Join(mcsi, "work_dir"), p.StagingDir())
		assert.Equal(t, filepath.Join(mcsi, "client"), p.ClientDir())
		assert.Equal(t, filepath.Join(mcsi, "server"), p.ServerDir())
		assert.Equal(t, filepath.Join(mcsi, "logs"), p.LogsDir())
		assert.Equal(t, filepath.Join(mcsi, "backups"), p.BackupsDir())

		ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		assert.Equal(t, filepath.Join(mcsi, "backups", "backup-2024-01-02-030405"), p.BackupDir(ts))
	})

	t.Run("relative target is made absolute", func(t *testing.T) {
		p, err := paths.New("server", afero.NewMemMapFs())
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(p.TargetDir()))
	})
}

func TestPrepareRemovesLeftovers(t *testing.T) {
	fs := afero.NewMemMapFs()
	root := "/srv/minecraft"
	p, err := paths.New(root, fs)
	require.NoError(t, err)

	// Simulate a crashed run
	stale := []string{
		filepath.Join(p.StagingDir(), "mods", "old.jar"),
		filepath.Join(p.ClientDir(), "manifest.json"),
		filepath.Join(p.ServerDir(), "pack", "server.jar"),
		filepath.Join(p.DownloadsDir(), "pack.zip"),
	}
	for _, f := range stale {
		require.NoError(t, afero.WriteFile(fs, f, []byte("stale"), 0644))
	}
	keep := filepath.Join(p.BackupsDir(), "backup-2024-01-01-000000", "server.jar")
	require.NoError(t, afero.WriteFile(fs, keep, []byte("backup"), 0644))

	require.NoError(t, p.Prepare())

	for _, f := range stale {
		assert.False(t, exists(t, fs, f), "%s should have been removed", f)
	}
	assert.True(t, exists(t, fs, keep), "backups must survive Prepare")

	isDir, err := afero.IsDir(fs, p.StagingDir())
	require.NoError(t, err)
	assert.True(t, isDir)
	empty, err := afero.IsEmpty(fs, p.StagingDir())
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestResetAndCleanScratch(t *testing.T) {
	fs := afero.NewMemMapFs()
	p, err := paths.New("/srv/minecraft", fs)
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(fs, filepath.Join(p.ClientDir(), "a.txt"), []byte("x"), 0644))
	require.NoError(t, p.ResetScratch(p.ClientDir()))

	empty, err := afero.IsEmpty(fs, p.ClientDir())
	require.NoError(t, err)
	assert.True(t, empty)

	require.NoError(t, p.ResetScratch(p.ServerDir()))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(p.StagingDir(), "server.jar"), []byte("x"), 0644))
	require.NoError(t, p.CleanScratch())

	assert.False(t, exists(t, fs, p.ClientDir()))
	assert.False(t, exists(t, fs, p.ServerDir()))
	assert.True(t, exists(t, fs, filepath.Join(p.StagingDir(), "server.jar")))
}

func TestIsInternal(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{".mcsi/manifest.json", true},
		{"config/.mcsi/x", true},
		{"mods/a.jar", false},
		{".mcsi-notes.txt", false},
		{"server.jar", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, paths.IsInternal(tt.path))
		})
	}
}
