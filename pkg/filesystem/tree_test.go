// pkg/filesystem/tree_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: afero MemMapFs
// PURPOSE: Test tree copy, listing, moves and content root detection

package filesystem_test

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/arthur-debert/mcsi/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, fs afero.Fs, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func TestCopyTree(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/src", map[string]string{
		"server.jar":         "new server",
		"config/forge.toml":  "new config",
		"mods/jei.jar":       "jei",
		"kubejs/data/a.json": "{}",
	})
	writeFiles(t, fs, "/dst", map[string]string{
		"server.jar":       "old server",
		"world/level.dat":  "world",
		"config/user.toml": "user edit",
	})
	require.NoError(t, fs.MkdirAll("/src/empty", 0755))

	require.NoError(t, filesystem.CopyTree(fs, "/src", "/dst"))

	assert.Equal(t, "new server", readFile(t, fs, "/dst/server.jar"))
	assert.Equal(t, "new config", readFile(t, fs, "/dst/config/forge.toml"))
	assert.Equal(t, "jei", readFile(t, fs, "/dst/mods/jei.jar"))
	assert.Equal(t, "{}", readFile(t, fs, "/dst/kubejs/data/a.json"))
	assert.Equal(t, "world", readFile(t, fs, "/dst/world/level.dat"), "unrelated files are untouched")
	assert.Equal(t, "user edit", readFile(t, fs, "/dst/config/user.toml"))

	isDir, err := afero.IsDir(fs, "/dst/empty")
	require.NoError(t, err)
	assert.True(t, isDir)
}

func TestCopyTreeMissingSource(t *testing.T) {
	err := filesystem.CopyTree(afero.NewMemMapFs(), "/nope", "/dst")
	require.Error(t, err)
}

func TestListFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/target", map[string]string{
		"server.jar":                       "x",
		"mods/a.jar":                       "x",
		"config/sub/b.toml":                "x",
		".mcsi/manifest.json":              "x",
		".mcsi/backups/backup-1/server.jar": "x",
	})

	files, err := filesystem.ListFiles(fs, "/target", ".mcsi")
	require.NoError(t, err)

	sort.Strings(files)
	assert.Equal(t, []string{"config/sub/b.toml", "mods/a.jar", "server.jar"}, files)
}

func TestListFilesEmptyDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/target", 0755))

	files, err := filesystem.ListFiles(fs, "/target", ".mcsi")
	require.NoError(t, err)
	assert.Empty(t, files)
	assert.NotNil(t, files)
}

func TestMoveFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/target", map[string]string{"mods/a.jar": "a"})

	require.NoError(t, filesystem.MoveFile(fs, "/target/mods/a.jar", "/backup/mods/a.jar"))

	exists, err := afero.Exists(fs, "/target/mods/a.jar")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, "a", readFile(t, fs, "/backup/mods/a.jar"))
}

func TestRemoveIfEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/a/empty", 0755))
	writeFiles(t, fs, "/a", map[string]string{"full/x": "x"})

	removed, err := filesystem.RemoveIfEmpty(fs, "/a/empty")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = filesystem.RemoveIfEmpty(fs, "/a/full")
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = filesystem.RemoveIfEmpty(fs, "/a/missing")
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = filesystem.RemoveIfEmpty(fs, "/a/full/x")
	require.NoError(t, err)
	assert.False(t, removed)
	ok, err := afero.Exists(fs, "/a/full/x")
	require.NoError(t, err)
	assert.True(t, ok, "a file passed as dir is left alone")
}

func TestContentRoot(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		dirs  []string
		want  string
	}{
		{
			name:  "flat archive is its own root",
			files: map[string]string{"server.jar": "x", "mods/a.jar": "x", "config/b.toml": "x"},
			want:  "/scratch",
		},
		{
			name:  "single wrapper directory",
			files: map[string]string{"Pack-1.0/server.jar": "x", "Pack-1.0/mods/a.jar": "x", "Pack-1.0/config/b.toml": "x"},
			want:  "/scratch/Pack-1.0",
		},
		{
			name: "two wrapper levels",
			files: map[string]string{
				"Pack-1.0/server/server.jar":    "x",
				"Pack-1.0/server/mods/a.jar":    "x",
				"Pack-1.0/server/config/b.toml": "x",
			},
			want: "/scratch/Pack-1.0/server",
		},
		{
			name: "deepest singleton bucket wins across the tree",
			files: map[string]string{
				"Pack/mods/a.jar":             "x",
				"Pack/config/b.toml":          "x",
				"Pack/config/deep/only/c.txt": "x",
			},
			want: "/scratch/Pack/config/deep/only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeFiles(t, fs, "/scratch", tt.files)

			got, err := filesystem.ContentRoot(fs, "/scratch")
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 0, filesystem.Depth("/a", "/a"))
	assert.Equal(t, 1, filesystem.Depth("/a", "/a/b"))
	assert.Equal(t, 3, filesystem.Depth("/a", "/a/b/c/d"))
}
