package mcsi

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/mcsi/internal/version"
	"github.com/arthur-debert/mcsi/pkg/config"
	"github.com/arthur-debert/mcsi/pkg/logging"
	"github.com/arthur-debert/mcsi/pkg/paths"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var logLevel string

	rootCmd := &cobra.Command{
		Use:     "mcsi",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindEnv(cmd); err != nil {
				return err
			}

			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf(MsgErrLogLevel, err)
			}
			logsDir := ""
			if p, _ := targetPaths(cmd); p != nil {
				logsDir = p.LogsDir()
			}
			logFile := logging.SetupLogger(level, logsDir)
			log.Debug().Str("command", cmd.Name()).Str("logFile", logFile).Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", MsgFlagLogLevel)

	rootCmd.AddGroup(&cobra.Group{ID: "install", Title: "INSTALL:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newFlameCmd())
	rootCmd.AddCommand(newFTBCmd())
	rootCmd.AddCommand(newForgeCmd())
	rootCmd.AddCommand(newFabricCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// EnvName is the environment variable a flag reads from: --api-key -> API_KEY
func EnvName(flag string) string {
	return strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// bindEnv fills every flag of cmd not given on the command line from its
// environment variable. Cobra's own help flag and the root's version flag
// are never bound.
func bindEnv(cmd *cobra.Command) error {
	flags := cmd.Flags()
	var firstErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed || firstErr != nil || isBuiltinFlag(cmd, f.Name) {
			return
		}
		value, ok := os.LookupEnv(EnvName(f.Name))
		if !ok {
			return
		}
		if err := flags.Set(f.Name, value); err != nil {
			firstErr = fmt.Errorf("invalid value %q for %s: %w", value, EnvName(f.Name), err)
		}
	})
	return firstErr
}

func isBuiltinFlag(cmd *cobra.Command, name string) bool {
	switch name {
	case "help":
		return true
	case "version":
		return !cmd.HasParent()
	}
	return false
}

// targetPaths returns the layout under --target-dir, nil when the command
// has no such flag or it was left empty
func targetPaths(cmd *cobra.Command) (paths.Paths, error) {
	f := cmd.Flags().Lookup("target-dir")
	if f == nil || f.Value.String() == "" {
		return nil, nil
	}
	p, err := paths.New(f.Value.String(), afero.NewOsFs())
	if err != nil {
		return nil, fmt.Errorf(MsgErrTargetDir, err)
	}
	return p, nil
}

// loadConfig merges the configuration layers, including the target's
// config file when p is not nil
func loadConfig(p paths.Paths) (*config.Config, error) {
	opts := config.Options{}
	if p != nil {
		opts.TargetConfigPath = p.ConfigPath()
	}
	cfg, err := config.Load(opts)
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return cfg, nil
}
