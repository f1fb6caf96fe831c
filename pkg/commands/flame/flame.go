package flame

import (
	"context"

	"github.com/arthur-debert/mcsi/pkg/assembler"
	"github.com/arthur-debert/mcsi/pkg/commands/internal"
	"github.com/arthur-debert/mcsi/pkg/errors"
	flameclient "github.com/arthur-debert/mcsi/pkg/flame"
	"github.com/arthur-debert/mcsi/pkg/logging"
	"github.com/arthur-debert/mcsi/pkg/resolver"
	"github.com/arthur-debert/mcsi/pkg/types"
)

// InstallOptions defines the options for the flame command
type InstallOptions struct {
	internal.EnvOptions

	// APIKey authenticates against the CurseForge API
	APIKey string
	// ProjectID is the modpack's CurseForge project id
	ProjectID uint64
	// Version is "latest", a file id or a display name fragment
	Version string
	// Catalog replaces the CurseForge client, for tests
	Catalog types.Catalog
}

// Install resolves, stages and installs a CurseForge modpack release
func Install(ctx context.Context, opts InstallOptions) (*types.InstallResult, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "flame").Uint64("project", opts.ProjectID).Str("version", opts.Version).Msg("Executing command")

	if opts.APIKey == "" && opts.Catalog == nil {
		return nil, errors.New(errors.ErrInvalidInput, "a CurseForge API key is required")
	}
	if opts.ProjectID == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "a project id is required")
	}
	sel, err := resolver.ParseSelector(opts.Version)
	if err != nil {
		return nil, err
	}

	env, err := internal.NewEnv(opts.EnvOptions)
	if err != nil {
		return nil, err
	}

	catalog := opts.Catalog
	if catalog == nil {
		catalog = flameclient.NewClient(opts.APIKey,
			flameclient.WithBaseURL(env.Config.Flame.BaseURL),
			flameclient.WithPageSize(env.Config.Flame.PageSize),
			flameclient.WithUserAgent(env.Config.Download.UserAgent),
			flameclient.WithHTTPClient(env.HTTPClient),
		)
	}

	stage := func(ctx context.Context, env *internal.Env) (*types.StageSummary, error) {
		env.Reporter.Step("Resolving release " + sel.Raw)
		release, err := resolver.Resolve(ctx, catalog, opts.ProjectID, sel)
		if err != nil {
			return nil, errors.WithStage(err, internal.StageResolve)
		}

		asm := &assembler.Assembler{
			Catalog:    catalog,
			Stager:     env.Stager,
			Installer:  env.Loaders(),
			Paths:      env.Paths,
			Reporter:   env.Reporter,
			FS:         env.FS,
			ProjectID:  opts.ProjectID,
			ModClassID: env.Config.Flame.ModClassID,
		}
		res, err := asm.Assemble(ctx, *release)
		if err != nil {
			return nil, errors.WithStage(err, internal.StageAssemble)
		}

		return &types.StageSummary{
			Release:          release.String(),
			MinecraftVersion: res.MinecraftVersion.String(),
			Loader:           res.Loader.String(),
			ModsInstalled:    res.ModsInstalled,
		}, nil
	}

	result, err := internal.RunInstall(ctx, env, "flame", stage)
	if err != nil {
		return nil, err
	}

	log.Info().Str("command", "flame").Msg("Command finished")
	return result, nil
}
