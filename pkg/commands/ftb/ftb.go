package ftb

import (
	"context"
	"fmt"

	"github.com/arthur-debert/mcsi/pkg/commands/internal"
	"github.com/arthur-debert/mcsi/pkg/errors"
	ftbclient "github.com/arthur-debert/mcsi/pkg/ftb"
	"github.com/arthur-debert/mcsi/pkg/logging"
	"github.com/arthur-debert/mcsi/pkg/types"
)

// InstallOptions defines the options for the ftb command
type InstallOptions struct {
	internal.EnvOptions

	// PackID selects the pack directly
	PackID uint64
	// SearchTerms select the first matching pack when PackID is zero
	SearchTerms []string
	// MinecraftVersion narrows search hits to packs targeting it
	MinecraftVersion string
	// Version is "latest" or a pack version id
	Version string
	// GOOS picks the installer flavour, the running OS when empty
	GOOS string
}

// Install downloads an FTB pack's server installer, runs it into staging
// and promotes the result
func Install(ctx context.Context, opts InstallOptions) (*types.InstallResult, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "ftb").Uint64("pack", opts.PackID).Strs("terms", opts.SearchTerms).Msg("Executing command")

	if opts.PackID == 0 && len(opts.SearchTerms) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "either --id or --search-terms is required")
	}
	if opts.PackID != 0 && len(opts.SearchTerms) > 0 {
		return nil, errors.New(errors.ErrInvalidInput, "--id and --search-terms are mutually exclusive")
	}
	if opts.Version == "" {
		opts.Version = ftbclient.LatestVersion
	}

	env, err := internal.NewEnv(opts.EnvOptions)
	if err != nil {
		return nil, err
	}

	client := ftbclient.NewClient(
		ftbclient.WithBaseURL(env.Config.FTB.BaseURL),
		ftbclient.WithSearchLimit(env.Config.FTB.SearchLimit),
		ftbclient.WithUserAgent(env.Config.Download.UserAgent),
		ftbclient.WithHTTPClient(env.HTTPClient),
	)

	stage := func(ctx context.Context, env *internal.Env) (*types.StageSummary, error) {
		env.Reporter.Step("Looking up the pack")
		details, err := client.FindPack(ctx, ftbclient.PackQuery{
			ID:               opts.PackID,
			SearchTerms:      opts.SearchTerms,
			MinecraftVersion: opts.MinecraftVersion,
		})
		if err != nil {
			return nil, errors.WithStage(err, internal.StageResolve)
		}
		version, err := details.SelectVersion(opts.Version)
		if err != nil {
			return nil, errors.WithStage(err, internal.StageResolve)
		}

		installer := &ftbclient.ServerInstaller{
			Client: client,
			Stager: env.Stager,
			Runner: env.Runner,
			FS:     env.FS,
			GOOS:   opts.GOOS,
		}
		if err := env.Paths.ResetScratch(env.Paths.FTBDir()); err != nil {
			return nil, errors.WithStage(err, internal.StageAssemble)
		}
		defer func() {
			if err := env.Paths.CleanScratch(); err != nil {
				log.Warn().Err(err).Msg("Could not remove scratch directories")
			}
		}()

		spinner := env.Reporter.Spin("Running the FTB server installer")
		if err := installer.Install(ctx, details.ID, version.ID, env.Paths.FTBDir(), env.Paths.StagingDir()); err != nil {
			spinner.Fail("FTB server installer failed")
			return nil, errors.WithStage(err, internal.StageAssemble)
		}
		spinner.Success("FTB server installed")

		return &types.StageSummary{
			Release:          fmt.Sprintf("%s %s (%d/%d)", details.Name, version.Name, details.ID, version.ID),
			MinecraftVersion: version.MinecraftVersion(),
			Loader:           version.Loader(),
		}, nil
	}

	result, err := internal.RunInstall(ctx, env, "ftb", stage)
	if err != nil {
		return nil, err
	}

	log.Info().Str("command", "ftb").Msg("Command finished")
	return result, nil
}
