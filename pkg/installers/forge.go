package installers

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/mcsi/pkg/logging"
	"github.com/spf13/afero"
)

// installJar is the Forge and NeoForge flow: fetch "<base>-installer.jar"
// and "<base>-universal.jar", run the installer in server mode, then drop
// the installer and its log whatever the outcome
func (l *Loaders) installJar(ctx context.Context, base, dir string) error {
	logger := logging.GetLogger("installers")

	installer := filepath.Join(dir, installerJar)
	defer l.removeLeftovers(installer, installer+".log")

	if _, err := l.Stager.Download(ctx, base+"-installer.jar", installer); err != nil {
		return err
	}
	if _, err := l.Stager.Download(ctx, base+"-universal.jar", filepath.Join(dir, serverJar)); err != nil {
		return err
	}

	if err := l.Runner.Run(ctx, dir, l.Java, "-jar", installerJar, "--installServer"); err != nil {
		return err
	}
	logger.Info().Str("dir", dir).Msg("Loader installed")
	return nil
}

func (l *Loaders) removeLeftovers(paths ...string) {
	logger := logging.GetLogger("installers")
	for _, p := range paths {
		if ok, _ := afero.Exists(l.FS, p); !ok {
			continue
		}
		if err := l.FS.Remove(p); err != nil {
			logger.Warn().Err(err).Str("path", p).Msg("Could not remove installer leftover")
		}
	}
}
