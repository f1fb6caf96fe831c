package fabric

import (
	"context"

	"github.com/arthur-debert/mcsi/pkg/commands/internal"
	"github.com/arthur-debert/mcsi/pkg/loader"
	"github.com/arthur-debert/mcsi/pkg/logging"
	"github.com/arthur-debert/mcsi/pkg/types"
)

// InstallOptions defines the options for the fabric command
type InstallOptions struct {
	internal.EnvOptions

	MinecraftVersion string
	// Version is the Fabric loader version, or "latest"
	Version string
}

// Install installs a bare Fabric server into the target
func Install(ctx context.Context, opts InstallOptions) (*types.InstallResult, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "fabric").Str("mcVersion", opts.MinecraftVersion).Str("version", opts.Version).Msg("Executing command")

	env, err := internal.NewEnv(opts.EnvOptions)
	if err != nil {
		return nil, err
	}

	result, err := internal.RunInstall(ctx, env, "fabric", internal.LoaderStage(loader.Fabric, opts.MinecraftVersion, opts.Version))
	if err != nil {
		return nil, err
	}

	log.Info().Str("command", "fabric").Msg("Command finished")
	return result, nil
}
