package mcsi

import (
	"fmt"

	"github.com/arthur-debert/mcsi/internal/version"
	"github.com/arthur-debert/mcsi/pkg/commands/fabric"
	"github.com/arthur-debert/mcsi/pkg/commands/flame"
	"github.com/arthur-debert/mcsi/pkg/commands/forge"
	"github.com/arthur-debert/mcsi/pkg/commands/ftb"
	"github.com/arthur-debert/mcsi/pkg/commands/genconfig"
	"github.com/arthur-debert/mcsi/pkg/config"
	"github.com/arthur-debert/mcsi/pkg/logging"
	"github.com/arthur-debert/mcsi/pkg/types"
	"github.com/arthur-debert/mcsi/pkg/ui/progress"
	"github.com/spf13/cobra"
)

// installContext is what every install subcommand needs before it runs
type installContext struct {
	target   string
	cfg      *config.Config
	reporter progress.Reporter
}

func prepareInstall(cmd *cobra.Command) (*installContext, error) {
	p, err := targetPaths(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(p)
	if err != nil {
		return nil, err
	}
	target := ""
	if p != nil {
		target = p.TargetDir()
	}
	return &installContext{
		target:   target,
		cfg:      cfg,
		reporter: progress.NewTerminal(cmd.ErrOrStderr()),
	}, nil
}

func finishInstall(cmd *cobra.Command, res *types.InstallResult, err error) error {
	if err != nil {
		return err
	}
	logger := logging.GetLogger("cmd." + cmd.Name())
	logger.Info().
		Str("release", res.Release).
		Int("files", res.Files).
		Msg("Install complete")
	printInstallResult(cmd.OutOrStdout(), res)
	return nil
}

func newFlameCmd() *cobra.Command {
	var (
		apiKey    string
		projectID uint64
		release   string
	)

	cmd := &cobra.Command{
		Use:     "flame",
		Short:   MsgFlameShort,
		Long:    MsgFlameLong,
		Example: MsgFlameExample,
		GroupID: "install",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ic, err := prepareInstall(cmd)
			if err != nil {
				return err
			}
			opts := flame.InstallOptions{
				APIKey:    apiKey,
				ProjectID: projectID,
				Version:   release,
			}
			opts.TargetDir = ic.target
			opts.Config = ic.cfg
			opts.Reporter = ic.reporter

			res, err := flame.Install(cmd.Context(), opts)
			return finishInstall(cmd, res, err)
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", MsgFlagAPIKey)
	cmd.Flags().Uint64Var(&projectID, "project-id", 0, MsgFlagProjectID)
	cmd.Flags().StringVar(&release, "version", "latest", MsgFlagVersion)
	addTargetDirFlag(cmd)
	_ = cmd.MarkFlagRequired("api-key")
	_ = cmd.MarkFlagRequired("project-id")

	return cmd
}

func newFTBCmd() *cobra.Command {
	var (
		searchTerms []string
		packID      uint64
		mcVersion   string
		release     string
	)

	cmd := &cobra.Command{
		Use:     "ftb",
		Short:   MsgFTBShort,
		Long:    MsgFTBLong,
		Example: MsgFTBExample,
		GroupID: "install",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ic, err := prepareInstall(cmd)
			if err != nil {
				return err
			}
			opts := ftb.InstallOptions{
				PackID:           packID,
				SearchTerms:      searchTerms,
				MinecraftVersion: mcVersion,
				Version:          release,
			}
			opts.TargetDir = ic.target
			opts.Config = ic.cfg
			opts.Reporter = ic.reporter

			res, err := ftb.Install(cmd.Context(), opts)
			return finishInstall(cmd, res, err)
		},
	}

	cmd.Flags().StringSliceVar(&searchTerms, "search-terms", nil, MsgFlagSearchTerms)
	cmd.Flags().Uint64Var(&packID, "id", 0, MsgFlagFTBID)
	cmd.Flags().StringVar(&mcVersion, "mc-version", "", MsgFlagMcVersion)
	cmd.Flags().StringVar(&release, "version", "latest", MsgFlagFTBVersion)
	addTargetDirFlag(cmd)
	cmd.MarkFlagsMutuallyExclusive("search-terms", "id")
	cmd.MarkFlagsOneRequired("search-terms", "id")

	return cmd
}

func newForgeCmd() *cobra.Command {
	var (
		mcVersion string
		release   string
		neoForge  bool
	)

	cmd := &cobra.Command{
		Use:     "forge",
		Short:   MsgForgeShort,
		Example: MsgForgeExample,
		GroupID: "install",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ic, err := prepareInstall(cmd)
			if err != nil {
				return err
			}
			opts := forge.InstallOptions{
				MinecraftVersion: mcVersion,
				Version:          release,
				NeoForge:         neoForge,
			}
			opts.TargetDir = ic.target
			opts.Config = ic.cfg
			opts.Reporter = ic.reporter

			res, err := forge.Install(cmd.Context(), opts)
			return finishInstall(cmd, res, err)
		},
	}

	cmd.Flags().StringVar(&mcVersion, "mc-version", "", MsgFlagMcVersion)
	cmd.Flags().StringVar(&release, "version", "latest", MsgFlagLoaderVer)
	cmd.Flags().BoolVar(&neoForge, "neoforge", false, MsgFlagNeoForge)
	addTargetDirFlag(cmd)
	_ = cmd.MarkFlagRequired("mc-version")

	return cmd
}

func newFabricCmd() *cobra.Command {
	var (
		mcVersion string
		release   string
	)

	cmd := &cobra.Command{
		Use:     "fabric",
		Short:   MsgFabricShort,
		Example: MsgFabricExample,
		GroupID: "install",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ic, err := prepareInstall(cmd)
			if err != nil {
				return err
			}
			opts := fabric.InstallOptions{
				MinecraftVersion: mcVersion,
				Version:          release,
			}
			opts.TargetDir = ic.target
			opts.Config = ic.cfg
			opts.Reporter = ic.reporter

			res, err := fabric.Install(cmd.Context(), opts)
			return finishInstall(cmd, res, err)
		},
	}

	cmd.Flags().StringVar(&mcVersion, "mc-version", "", MsgFlagMcVersion)
	cmd.Flags().StringVar(&release, "version", "latest", MsgFlagLoaderVer)
	addTargetDirFlag(cmd)
	_ = cmd.MarkFlagRequired("mc-version")

	return cmd
}

func newGenConfigCmd() *cobra.Command {
	var (
		write     bool
		effective bool
	)

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := targetPaths(cmd)
			if err != nil {
				return err
			}
			opts := genconfig.GenConfigOptions{
				Write:     write,
				Effective: effective,
			}
			if p != nil {
				opts.TargetDir = p.TargetDir()
			}
			if effective {
				if opts.Config, err = loadConfig(p); err != nil {
					return err
				}
			}

			result, err := genconfig.GenConfig(opts)
			if err != nil {
				return err
			}
			if !write {
				fmt.Fprint(cmd.OutOrStdout(), result.ConfigContent)
				return nil
			}
			for _, f := range result.FilesWritten {
				fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, f)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&effective, "effective", false, MsgFlagEffective)
	cmd.Flags().String("target-dir", "", MsgFlagTargetDir)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func addTargetDirFlag(cmd *cobra.Command) {
	cmd.Flags().String("target-dir", "", MsgFlagTargetDir)
	_ = cmd.MarkFlagRequired("target-dir")
	_ = cmd.MarkFlagDirname("target-dir")
}
