package paths

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/arthur-debert/mcsi/pkg/logging"
	"github.com/spf13/afero"
)

// Directory and file names under the target directory.
// These define the persisted layout and are not user-configurable.
const (
	// McsiDirName is the tool's private directory inside the target
	McsiDirName = ".mcsi"

	// ManifestFileName is the file-list manifest of the current install
	ManifestFileName = "manifest.json"

	// ConfigFileName is the optional per-target configuration file
	ConfigFileName = "config.toml"

	// StagingDirName is the staging tree assembled before promotion
	StagingDirName = "work_dir"

	ClientDirName    = "client"
	ServerDirName    = "server"
	DownloadsDirName = "downloads"
	FTBDirName       = "ftb"
	BackupsDirName   = "backups"
	LogsDirName      = "logs"

	// BackupPrefix and BackupTimeLayout name one reconcile's backup directory
	BackupPrefix     = "backup-"
	BackupTimeLayout = "2006-01-02-150405"
)

// Paths is the execution context of a run
type Paths interface {
	TargetDir() string
	McsiDir() string
	ManifestPath() string
	ConfigPath() string
	StagingDir() string
	ClientDir() string
	ServerDir() string
	DownloadsDir() string
	FTBDir() string
	BackupsDir() string
	BackupDir(t time.Time) string
	LogsDir() string

	// Prepare creates the .mcsi directory and removes leftovers of a previous run
	Prepare() error
	// ResetScratch removes dir if present and recreates it empty
	ResetScratch(dir string) error
	// CleanScratch removes every ephemeral directory except staging
	CleanScratch() error
}

type paths struct {
	fs        afero.Fs
	targetDir string
}

// New creates the execution context for targetDir. The directory does not
// need to exist yet; it is created by Prepare.
func New(targetDir string, fs afero.Fs) (Paths, error) {
	if strings.TrimSpace(targetDir) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "target directory must not be empty")
	}

	abs, err := filepath.Abs(targetDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "resolving target directory %s", targetDir)
	}

	return &paths{fs: fs, targetDir: filepath.Clean(abs)}, nil
}

func (p *paths) TargetDir() string    { return p.targetDir }
func (p *paths) McsiDir() string      { return filepath.Join(p.targetDir, McsiDirName) }
func (p *paths) ManifestPath() string { return filepath.Join(p.McsiDir(), ManifestFileName) }
func (p *paths) ConfigPath() string   { return filepath.Join(p.McsiDir(), ConfigFileName) }
func (p *paths) StagingDir() string   { return filepath.Join(p.McsiDir(), StagingDirName) }
func (p *paths) ClientDir() string    { return filepath.Join(p.McsiDir(), ClientDirName) }
func (p *paths) ServerDir() string    { return filepath.Join(p.McsiDir(), ServerDirName) }
func (p *paths) DownloadsDir() string { return filepath.Join(p.McsiDir(), DownloadsDirName) }
func (p *paths) FTBDir() string       { return filepath.Join(p.McsiDir(), FTBDirName) }
func (p *paths) BackupsDir() string   { return filepath.Join(p.McsiDir(), BackupsDirName) }
func (p *paths) LogsDir() string      { return filepath.Join(p.McsiDir(), LogsDirName) }

func (p *paths) BackupDir(t time.Time) string {
	return filepath.Join(p.BackupsDir(), BackupPrefix+t.Format(BackupTimeLayout))
}

func (p *paths) ephemeralDirs() []string {
	return []string{p.ClientDir(), p.ServerDir(), p.DownloadsDir(), p.FTBDir()}
}

func (p *paths) Prepare() error {
	logger := logging.GetLogger("paths")

	if err := p.fs.MkdirAll(p.McsiDir(), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "creating %s", p.McsiDir())
	}

	for _, dir := range append(p.ephemeralDirs(), p.StagingDir()) {
		exists, err := afero.DirExists(p.fs, dir)
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "checking %s", dir)
		}
		if !exists {
			continue
		}
		logger.Warn().Str("dir", dir).Msg("Removing leftover directory from a previous run")
		if err := p.fs.RemoveAll(dir); err != nil {
			return errors.Wrapf(err, errors.ErrIO, "removing stale directory %s", dir)
		}
	}

	if err := p.fs.MkdirAll(p.StagingDir(), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "creating staging directory %s", p.StagingDir())
	}
	return nil
}

func (p *paths) ResetScratch(dir string) error {
	if err := p.fs.RemoveAll(dir); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "clearing %s", dir)
	}
	if err := p.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "creating %s", dir)
	}
	return nil
}

func (p *paths) CleanScratch() error {
	for _, dir := range p.ephemeralDirs() {
		if err := p.fs.RemoveAll(dir); err != nil {
			return errors.Wrapf(err, errors.ErrIO, "removing %s", dir)
		}
	}
	return nil
}

// IsInternal reports whether a slash-separated relative path lies inside
// the .mcsi directory at any depth.
func IsInternal(rel string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(rel), "/") {
		if segment == McsiDirName {
			return true
		}
	}
	return false
}
