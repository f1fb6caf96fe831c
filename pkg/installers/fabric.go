package installers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/arthur-debert/mcsi/pkg/mcversion"
)

// fabricInstaller is an entry of {meta}/versions/installer
type fabricInstaller struct {
	Version string `json:"version"`
	Stable  bool   `json:"stable"`
}

// fabricLoader is an entry of {meta}/versions/loader/{mc}
type fabricLoader struct {
	Loader struct {
		Version string `json:"version"`
		Stable  bool   `json:"stable"`
	} `json:"loader"`
}

func (l *Loaders) installFabric(ctx context.Context, mc mcversion.Version, loaderVersion, dir string) error {
	installer, err := l.fabricInstallerVersion(ctx)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/versions/loader/%s/%s/%s/server/jar", l.fabricMeta(), mc, loaderVersion, installer)
	_, err = l.Stager.Download(ctx, url, filepath.Join(dir, serverJar))
	return err
}

// fabricInstallerVersion prefers the first stable installer, else the first
func (l *Loaders) fabricInstallerVersion(ctx context.Context) (string, error) {
	var entries []fabricInstaller
	if err := l.API.GetJSON(ctx, l.fabricMeta()+"/versions/installer", &entries); err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", errors.New(errors.ErrCatalog, "fabric meta lists no installer versions")
	}
	for _, e := range entries {
		if e.Stable {
			return e.Version, nil
		}
	}
	return entries[0].Version, nil
}

func (l *Loaders) latestFabricLoader(ctx context.Context, mc mcversion.Version) (string, error) {
	var entries []fabricLoader
	if err := l.API.GetJSON(ctx, fmt.Sprintf("%s/versions/loader/%s", l.fabricMeta(), mc), &entries); err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", errors.Newf(errors.ErrReleaseNotFound, "no fabric loader for minecraft %s", mc)
	}
	return entries[0].Loader.Version, nil
}

func (l *Loaders) fabricMeta() string {
	return strings.TrimRight(l.FabricMeta, "/")
}
