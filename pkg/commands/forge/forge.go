package forge

import (
	"context"

	"github.com/arthur-debert/mcsi/pkg/commands/internal"
	"github.com/arthur-debert/mcsi/pkg/loader"
	"github.com/arthur-debert/mcsi/pkg/logging"
	"github.com/arthur-debert/mcsi/pkg/types"
)

// InstallOptions defines the options for the forge command
type InstallOptions struct {
	internal.EnvOptions

	MinecraftVersion string
	// Version is the Forge (or NeoForge) version, or "latest"
	Version string
	// NeoForge installs NeoForge instead of Forge
	NeoForge bool
}

// Install installs a bare Forge or NeoForge server into the target
func Install(ctx context.Context, opts InstallOptions) (*types.InstallResult, error) {
	log := logging.GetLogger("core.commands")

	kind := loader.Forge
	if opts.NeoForge {
		kind = loader.NeoForge
	}
	log.Debug().Str("command", string(kind)).Str("mcVersion", opts.MinecraftVersion).Str("version", opts.Version).Msg("Executing command")

	env, err := internal.NewEnv(opts.EnvOptions)
	if err != nil {
		return nil, err
	}

	result, err := internal.RunInstall(ctx, env, string(kind), internal.LoaderStage(kind, opts.MinecraftVersion, opts.Version))
	if err != nil {
		return nil, err
	}

	log.Info().Str("command", string(kind)).Msg("Command finished")
	return result, nil
}
