// Package installers puts a runnable server for a mod loader into a
// directory: Forge and NeoForge through their installer jar, Fabric through
// the server launcher jar served by its meta API.
package installers

import (
	"context"
	"strings"

	"github.com/arthur-debert/mcsi/pkg/apiclient"
	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/arthur-debert/mcsi/pkg/loader"
	"github.com/arthur-debert/mcsi/pkg/logging"
	"github.com/arthur-debert/mcsi/pkg/mcversion"
	"github.com/arthur-debert/mcsi/pkg/stager"
	"github.com/arthur-debert/mcsi/pkg/types"
	"github.com/spf13/afero"
)

const (
	DefaultForgeMaven    = "https://maven.minecraftforge.net/net/minecraftforge/forge"
	DefaultNeoForgeMaven = "https://maven.neoforged.net/releases/net/neoforged/neoforge"
	DefaultFabricMeta    = "https://meta.fabricmc.net/v2"

	// LatestVersion asks for the newest loader build for a Minecraft release
	LatestVersion = "latest"

	installerJar = "installer.jar"
	serverJar    = "server.jar"
)

// Installer installs a loader's server into dir
type Installer interface {
	Install(ctx context.Context, mc mcversion.Version, d loader.Descriptor, dir string) error
}

// Loaders dispatches on the descriptor's kind
type Loaders struct {
	Stager types.Stager
	Runner stager.Runner
	FS     afero.Fs
	API    *apiclient.Client

	Java          string
	ForgeMaven    string
	NeoForgeMaven string
	FabricMeta    string
}

var _ Installer = (*Loaders)(nil)

// New creates Loaders with the public endpoints and "java" from PATH
func New(st types.Stager, runner stager.Runner, api *apiclient.Client) *Loaders {
	if api == nil {
		api = apiclient.New()
	}
	return &Loaders{
		Stager:        st,
		Runner:        runner,
		FS:            afero.NewOsFs(),
		API:           api,
		Java:          "java",
		ForgeMaven:    DefaultForgeMaven,
		NeoForgeMaven: DefaultNeoForgeMaven,
		FabricMeta:    DefaultFabricMeta,
	}
}

// Install puts the server for d into dir
func (l *Loaders) Install(ctx context.Context, mc mcversion.Version, d loader.Descriptor, dir string) error {
	logger := logging.GetLogger("installers").With().
		Str("loader", d.String()).
		Str("mcVersion", mc.String()).
		Logger()

	switch d.Kind {
	case loader.Forge:
		long := mc.String() + "-" + d.Version
		base := strings.TrimRight(l.ForgeMaven, "/") + "/" + long + "/forge-" + long
		logger.Info().Msg("Installing forge")
		return l.installJar(ctx, base, dir)

	case loader.NeoForge:
		base := strings.TrimRight(l.NeoForgeMaven, "/") + "/" + d.Version + "/neoforge-" + d.Version
		logger.Info().Msg("Installing neoforge")
		return l.installJar(ctx, base, dir)

	case loader.Fabric:
		logger.Info().Msg("Installing fabric")
		return l.installFabric(ctx, mc, d.Version, dir)

	case loader.Quilt:
		logger.Warn().Msg("Quilt servers are not installed automatically, skipping loader install")
		return nil
	}

	return errors.Newf(errors.ErrLoaderParse, "unsupported loader %q", d.Kind)
}
