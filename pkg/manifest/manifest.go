// Package manifest persists the list of files the current install owns.
//
// The manifest lives at <target>/.mcsi/manifest.json and is the only input
// the reconciler trusts when deciding what to move aside on the next run.
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/arthur-debert/mcsi/pkg/filesystem"
	"github.com/arthur-debert/mcsi/pkg/logging"
	"github.com/arthur-debert/mcsi/pkg/paths"
	"github.com/spf13/afero"
)

// Manifest is the ordered list of owned files, relative to the target
// directory and slash-separated
type Manifest struct {
	Files []string `json:"files"`
}

// Equal compares two manifests as sets of paths
func (m *Manifest) Equal(other *Manifest) bool {
	if m == nil || other == nil {
		return m == other
	}
	if len(m.Files) != len(other.Files) {
		return false
	}
	seen := make(map[string]int, len(m.Files))
	for _, f := range m.Files {
		seen[f]++
	}
	for _, f := range other.Files {
		if seen[f] == 0 {
			return false
		}
		seen[f]--
	}
	return true
}

// Store reads and writes the manifest at one path
type Store struct {
	FS   afero.Fs
	Path string
}

// NewStore creates a Store for the manifest at path, normally
// paths.Paths.ManifestPath()
func NewStore(fs afero.Fs, path string) *Store {
	return &Store{FS: fs, Path: path}
}

// Load reads the manifest
func (s *Store) Load() (*Manifest, error) {
	data, err := afero.ReadFile(s.FS, s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrManifestNotFound, "no manifest at %s", s.Path)
		}
		return nil, errors.Wrapf(err, errors.ErrIO, "reading manifest %s", s.Path)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "parsing manifest %s", s.Path)
	}
	if m.Files == nil {
		m.Files = []string{}
	}
	return &m, nil
}

// Save writes m, replacing any previous manifest
func (s *Store) Save(m *Manifest) error {
	files := m.Files
	if files == nil {
		files = []string{}
	}
	data, err := json.MarshalIndent(Manifest{Files: files}, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrIO, "encoding manifest")
	}
	data = append(data, '\n')

	if err := s.FS.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "creating %s", filepath.Dir(s.Path))
	}
	if err := afero.WriteFile(s.FS, s.Path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "writing manifest %s", s.Path)
	}

	logger := logging.GetLogger("manifest")
	logger.Debug().
		Str("path", s.Path).
		Int("files", len(files)).
		Msg("Manifest saved")
	return nil
}

// Build lists every file of targetDir outside .mcsi
func Build(fs afero.Fs, targetDir string) (*Manifest, error) {
	files, err := filesystem.ListFiles(fs, targetDir, paths.McsiDirName)
	if err != nil {
		return nil, err
	}
	return &Manifest{Files: files}, nil
}
