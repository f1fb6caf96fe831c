// Package reconcile moves the previous install out of the way and promotes
// a freshly staged tree into the target directory.
//
// Reconcile only ever touches paths recorded in the previous manifest, and
// every one of them ends up either in the run's backup directory or was
// already gone. Promote records every file present outside .mcsi, so the
// manifest always matches the tree the next run will reconcile.
package reconcile

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/arthur-debert/mcsi/pkg/filesystem"
	"github.com/arthur-debert/mcsi/pkg/logging"
	"github.com/arthur-debert/mcsi/pkg/manifest"
	"github.com/arthur-debert/mcsi/pkg/paths"
	"github.com/spf13/afero"
)

// Result describes what Reconcile did
type Result struct {
	// FirstInstall is set when the target had no manifest
	FirstInstall bool
	// BackupDir is where files were moved; empty when nothing was moved
	BackupDir string
	BackedUp  []string
	Missing   []string
}

// Reconciler performs reconcile and promote for one target directory
type Reconciler struct {
	FS    afero.Fs
	Paths paths.Paths
	Store *manifest.Store
	Now   func() time.Time
}

// New creates a Reconciler for the target of p using the wall clock
func New(fs afero.Fs, p paths.Paths) *Reconciler {
	return &Reconciler{
		FS:    fs,
		Paths: p,
		Store: manifest.NewStore(fs, p.ManifestPath()),
		Now:   time.Now,
	}
}

// backupDir returns a backup directory for a reconcile started now that no
// earlier run used. Runs within the same second get a "-N" suffix.
func (r *Reconciler) backupDir() (string, error) {
	base := r.Paths.BackupDir(r.Now())
	dir := base
	for n := 1; ; n++ {
		exists, err := afero.Exists(r.FS, dir)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrIO, "checking %s", dir)
		}
		if !exists {
			return dir, nil
		}
		dir = fmt.Sprintf("%s-%d", base, n)
	}
}

// Reconcile backs up and removes every file the previous install owned
func (r *Reconciler) Reconcile() (*Result, error) {
	logger := logging.GetLogger("reconcile")
	done := logging.LogOperationStart(logger, "reconcile")
	defer done()

	targetDir := r.Paths.TargetDir()
	previous, err := r.Store.Load()
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrManifestNotFound) {
			logger.Info().Str("target", targetDir).Msg("No previous install found, nothing to back up")
			return &Result{FirstInstall: true}, nil
		}
		return nil, err
	}

	backupDir, err := r.backupDir()
	if err != nil {
		return nil, err
	}
	result := &Result{BackupDir: backupDir}
	logger.Info().
		Int("files", len(previous.Files)).
		Str("backupDir", result.BackupDir).
		Msg("Backing up files of the previous install")

	for _, rel := range previous.Files {
		if paths.IsInternal(rel) {
			logger.Warn().Str("path", rel).Msg("Ignoring manifest entry inside .mcsi")
			continue
		}

		src := filepath.Join(targetDir, filepath.FromSlash(rel))
		exists, err := afero.Exists(r.FS, src)
		if err != nil {
			return result, errors.Wrapf(err, errors.ErrIO, "checking %s", src)
		}
		if !exists {
			logger.Debug().Str("path", rel).Msg("Already absent, skipping")
			result.Missing = append(result.Missing, rel)
			continue
		}

		dst := filepath.Join(result.BackupDir, filepath.FromSlash(rel))
		if err := filesystem.MoveFile(r.FS, src, dst); err != nil {
			return result, errors.Wrapf(err, errors.ErrIO, "backing up %s", rel)
		}
		result.BackedUp = append(result.BackedUp, rel)
		logger.Trace().Str("path", rel).Str("backup", dst).Msg("Backed up")

		parent := filepath.Dir(src)
		if parent == filepath.Clean(targetDir) {
			continue
		}
		if _, err := filesystem.RemoveIfEmpty(r.FS, parent); err != nil {
			logger.Warn().Err(err).Str("dir", parent).Msg("Could not remove empty directory")
		}
	}

	if len(result.BackedUp) == 0 {
		result.BackupDir = ""
	}

	logger.Info().
		Int("backedUp", len(result.BackedUp)).
		Int("missing", len(result.Missing)).
		Msg("Previous install reconciled")
	return result, nil
}

// Promote copies the staging tree over the target, removes staging and
// records the resulting file set as the new manifest
func (r *Reconciler) Promote() (*manifest.Manifest, error) {
	logger := logging.GetLogger("reconcile")
	done := logging.LogOperationStart(logger, "promote")
	defer done()

	stagingDir := r.Paths.StagingDir()
	targetDir := r.Paths.TargetDir()

	if err := filesystem.CopyTree(r.FS, stagingDir, targetDir); err != nil {
		return nil, errors.Wrap(err, errors.ErrIO, "copying staged files into target")
	}
	if err := r.FS.RemoveAll(stagingDir); err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "removing staging directory %s", stagingDir)
	}

	if err := r.FS.MkdirAll(r.Paths.McsiDir(), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "creating %s", r.Paths.McsiDir())
	}

	m, err := manifest.Build(r.FS, targetDir)
	if err != nil {
		return nil, err
	}
	if err := r.Store.Save(m); err != nil {
		return nil, err
	}

	logger.Info().Int("files", len(m.Files)).Msg("Staged tree promoted")
	return m, nil
}
