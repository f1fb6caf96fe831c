package ftb

import (
	"context"
	"path/filepath"
	"runtime"

	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/arthur-debert/mcsi/pkg/logging"
	"github.com/arthur-debert/mcsi/pkg/stager"
	"github.com/arthur-debert/mcsi/pkg/types"
	"github.com/spf13/afero"
)

// ServerInstaller downloads and runs the pack's own installer
type ServerInstaller struct {
	Client *Client
	Stager types.Stager
	Runner stager.Runner
	FS     afero.Fs
	// GOOS selects the installer flavour, runtime.GOOS when empty
	GOOS string
}

// Install runs the installer for version v of pack into stagingDir,
// working from scratchDir
func (s *ServerInstaller) Install(ctx context.Context, packID, versionID uint64, scratchDir, stagingDir string) error {
	logger := logging.GetLogger("ftb")
	goos := s.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	dest := filepath.Join(scratchDir, InstallerFileName(packID, versionID, goos))
	logger.Info().Uint64("pack", packID).Uint64("version", versionID).Msg("Downloading server installer")
	path, err := s.Stager.Download(ctx, s.Client.InstallerURL(packID, versionID, goos), dest)
	if err != nil {
		return err
	}
	if err := s.FS.Chmod(path, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "making %s executable", path)
	}

	logger.Info().Msg("Installing server, this may take a few minutes")
	if err := s.Runner.Run(ctx, scratchDir, path, "--auto", "--path", stagingDir, "--nojava"); err != nil {
		return err
	}
	logger.Info().Msg("FTB installer finished")
	return nil
}
