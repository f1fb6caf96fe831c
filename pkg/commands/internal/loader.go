package internal

import (
	"context"

	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/arthur-debert/mcsi/pkg/loader"
	"github.com/arthur-debert/mcsi/pkg/mcversion"
	"github.com/arthur-debert/mcsi/pkg/types"
)

// LoaderStage installs a bare loader server of kind into staging. version
// may be "latest".
func LoaderStage(kind loader.Kind, mcVersion, version string) StageFunc {
	return func(ctx context.Context, env *Env) (*types.StageSummary, error) {
		mc, err := mcversion.Parse(mcVersion)
		if err != nil {
			return nil, errors.WithStage(err, StageResolve)
		}
		if version == "" {
			return nil, errors.WithStage(errors.Newf(errors.ErrInvalidInput, "a %s version is required", kind), StageResolve)
		}

		loaders := env.Loaders()
		resolved, err := loaders.ResolveVersion(ctx, kind, mc, version)
		if err != nil {
			return nil, errors.WithStage(err, StageResolve)
		}
		d := loader.Descriptor{Kind: kind, Version: resolved}

		spinner := env.Reporter.Spin("Installing " + d.String())
		if err := loaders.Install(ctx, mc, d, env.Paths.StagingDir()); err != nil {
			spinner.Fail("Installing " + d.String() + " failed")
			return nil, errors.WithStage(err, StageAssemble)
		}
		spinner.Success("Installed " + d.String())

		return &types.StageSummary{
			Release:          d.String(),
			MinecraftVersion: mc.String(),
			Loader:           d.String(),
		}, nil
	}
}
