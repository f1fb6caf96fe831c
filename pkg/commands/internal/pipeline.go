// Package internal holds the install pipeline shared by every source
// command: prepare the target, fill staging, reconcile, promote.
package internal

import (
	"context"
	"net/http"
	"os"

	"github.com/arthur-debert/mcsi/pkg/apiclient"
	"github.com/arthur-debert/mcsi/pkg/config"
	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/arthur-debert/mcsi/pkg/installers"
	"github.com/arthur-debert/mcsi/pkg/logging"
	"github.com/arthur-debert/mcsi/pkg/paths"
	"github.com/arthur-debert/mcsi/pkg/reconcile"
	"github.com/arthur-debert/mcsi/pkg/stager"
	"github.com/arthur-debert/mcsi/pkg/types"
	"github.com/arthur-debert/mcsi/pkg/ui/progress"
	"github.com/spf13/afero"
)

// Pipeline stages, attached to errors as the "stage" detail
const (
	StagePrepare   = "prepare"
	StageResolve   = "resolve"
	StageAssemble  = "assemble"
	StageReconcile = "reconcile"
	StagePromote   = "promote"
)

// EnvOptions are the collaborators a command may override. Zero values
// select the production implementations.
type EnvOptions struct {
	TargetDir  string
	Config     *config.Config
	Reporter   progress.Reporter
	Runner     stager.Runner
	Stager     types.Stager
	HTTPClient *http.Client
	FS         afero.Fs
}

// Env is the execution context of one install
type Env struct {
	Paths      paths.Paths
	Config     *config.Config
	Reporter   progress.Reporter
	Runner     stager.Runner
	Stager     types.Stager
	HTTPClient *http.Client
	FS         afero.Fs
	API        *apiclient.Client
}

// NewEnv resolves the target directory and fills in defaults
func NewEnv(opts EnvOptions) (*Env, error) {
	if opts.TargetDir == "" {
		return nil, errors.New(errors.ErrInvalidInput, "a target directory is required")
	}

	env := &Env{
		Config:     opts.Config,
		Reporter:   opts.Reporter,
		Runner:     opts.Runner,
		Stager:     opts.Stager,
		HTTPClient: opts.HTTPClient,
		FS:         opts.FS,
	}
	if env.FS == nil {
		env.FS = afero.NewOsFs()
	}
	if env.Config == nil {
		env.Config = config.Default()
	}
	if env.Reporter == nil {
		env.Reporter = progress.Nop{}
	}
	if env.Runner == nil {
		env.Runner = stager.ExecRunner{}
	}
	if env.HTTPClient == nil {
		env.HTTPClient = &http.Client{Timeout: env.Config.HTTP.Timeout}
	}
	if env.Stager == nil {
		// http.timeout bounds catalog calls only; archives can take minutes
		stagerOpts := []stager.Option{
			stager.WithUserAgent(env.Config.Download.UserAgent),
			stager.WithRetries(env.Config.Download.Retries),
		}
		if opts.HTTPClient != nil {
			stagerOpts = append(stagerOpts, stager.WithHTTPClient(opts.HTTPClient))
		}
		env.Stager = stager.New(stagerOpts...)
	}
	env.API = apiclient.New(
		apiclient.WithHTTPClient(env.HTTPClient),
		apiclient.WithUserAgent(env.Config.Download.UserAgent),
	)

	p, err := paths.New(opts.TargetDir, env.FS)
	if err != nil {
		return nil, err
	}
	env.Paths = p
	return env, nil
}

// Loaders returns the loader installers configured for this run
func (e *Env) Loaders() *installers.Loaders {
	l := installers.New(e.Stager, e.Runner, e.API)
	l.FS = e.FS
	l.Java = e.Config.Java.Path
	l.ForgeMaven = e.Config.Forge.MavenURL
	l.NeoForgeMaven = e.Config.NeoForge.MavenURL
	l.FabricMeta = e.Config.Fabric.MetaURL
	return l
}

// StageFunc fills env's staging directory. It tags its own errors with
// StageResolve or StageAssemble.
type StageFunc func(ctx context.Context, env *Env) (*types.StageSummary, error)

// RunInstall runs the pipeline for source
func RunInstall(ctx context.Context, env *Env, source string, stage StageFunc) (*types.InstallResult, error) {
	logger := logging.GetLogger("commands.internal.pipeline").With().
		Str("source", source).
		Str("target", env.Paths.TargetDir()).
		Logger()
	done := logging.LogOperationStart(logger, "install")
	defer done()

	if err := ensureDir(env.FS, env.Paths.TargetDir()); err != nil {
		return nil, errors.WithStage(err, StagePrepare)
	}
	if err := env.Paths.Prepare(); err != nil {
		return nil, errors.WithStage(err, StagePrepare)
	}

	summary, err := stage(ctx, env)
	if err != nil {
		logger.Debug().Str("staging", env.Paths.StagingDir()).Msg("Staging left in place, it is cleared on the next run")
		return nil, err
	}

	env.Reporter.Step("Backing up files from the previous install")
	rec := reconcile.New(env.FS, env.Paths)
	recResult, err := rec.Reconcile()
	if err != nil {
		return nil, errors.WithStage(err, StageReconcile)
	}

	env.Reporter.Step("Moving the new server into place")
	m, err := rec.Promote()
	if err != nil {
		return nil, errors.WithStage(err, StagePromote)
	}

	result := &types.InstallResult{
		Source:           source,
		Release:          summary.Release,
		MinecraftVersion: summary.MinecraftVersion,
		Loader:           summary.Loader,
		ModsInstalled:    summary.ModsInstalled,
		TargetDir:        env.Paths.TargetDir(),
		Files:            len(m.Files),
		FirstInstall:     recResult.FirstInstall,
		BackupDir:        recResult.BackupDir,
		BackedUp:         len(recResult.BackedUp),
		Missing:          len(recResult.Missing),
	}
	logger.Info().
		Int("files", result.Files).
		Int("backedUp", result.BackedUp).
		Bool("firstInstall", result.FirstInstall).
		Msg("Server is installed")
	return result, nil
}

func ensureDir(fs afero.Fs, dir string) error {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		if os.IsExist(err) {
			return errors.Wrapf(err, errors.ErrInvalidInput, "target %s is not a directory", dir)
		}
		return errors.Wrapf(err, errors.ErrIO, "creating target directory %s", dir)
	}
	return nil
}
