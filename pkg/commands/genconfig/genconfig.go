package genconfig

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/mcsi/pkg/config"
	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/arthur-debert/mcsi/pkg/logging"
	"github.com/arthur-debert/mcsi/pkg/paths"
	"github.com/arthur-debert/mcsi/pkg/types"
	"github.com/spf13/afero"
)

// GenConfigOptions holds options for the genconfig command
type GenConfigOptions struct {
	// TargetDir is the server directory; its .mcsi/config.toml is a config layer
	TargetDir string
	// Write stores the commented defaults at <target>/.mcsi/config.toml
	Write bool
	// Effective renders the merged configuration instead of the defaults
	Effective bool
	// Config is the already loaded configuration used by Effective
	Config *config.Config

	FileSystem afero.Fs
}

// GenConfig outputs the configuration or writes the defaults file
func GenConfig(opts GenConfigOptions) (*types.GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	fs := opts.FileSystem
	if fs == nil {
		fs = afero.NewOsFs()
	}

	content := config.DefaultTOML()
	if opts.Effective {
		cfg := opts.Config
		if cfg == nil {
			cfg = config.Default()
		}
		data, err := cfg.TOML()
		if err != nil {
			return nil, err
		}
		content = string(data)
	}

	result := &types.GenConfigResult{
		ConfigContent: content,
		FilesWritten:  []string{},
	}

	if !opts.Write {
		logger.Debug().Bool("effective", opts.Effective).Msg("Outputting config to stdout")
		return result, nil
	}

	if opts.TargetDir == "" {
		return nil, errors.New(errors.ErrInvalidInput, "--write needs a target directory")
	}
	p, err := paths.New(opts.TargetDir, fs)
	if err != nil {
		return nil, err
	}
	target := p.ConfigPath()

	if err := fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return result, errors.Wrapf(err, errors.ErrIO, "creating %s", filepath.Dir(target))
	}
	if _, err := fs.Stat(target); err == nil {
		logger.Warn().Str("path", target).Msg("Config file already exists, skipping")
		return result, nil
	} else if !os.IsNotExist(err) {
		return result, errors.Wrapf(err, errors.ErrIO, "checking %s", target)
	}

	if err := afero.WriteFile(fs, target, []byte(config.DefaultTOML()), 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrIO, "writing %s", target)
	}
	logger.Info().Str("path", target).Msg("Written config file")
	result.FilesWritten = append(result.FilesWritten, target)
	return result, nil
}
