// Package assembler builds a runnable server tree in the staging directory
// from a resolved CurseForge release: it pairs client and server packs,
// extracts them, fetches mods when only a client pack exists and installs
// the mod loader.
package assembler

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/arthur-debert/mcsi/pkg/filesystem"
	"github.com/arthur-debert/mcsi/pkg/installers"
	"github.com/arthur-debert/mcsi/pkg/loader"
	"github.com/arthur-debert/mcsi/pkg/logging"
	"github.com/arthur-debert/mcsi/pkg/mcversion"
	"github.com/arthur-debert/mcsi/pkg/paths"
	"github.com/arthur-debert/mcsi/pkg/types"
	"github.com/arthur-debert/mcsi/pkg/ui/progress"
	"github.com/spf13/afero"
)

// DefaultModClassID is the CurseForge class of regular mods
const DefaultModClassID uint64 = 6

// Assembler stages one release
type Assembler struct {
	Catalog   types.Catalog
	Stager    types.Stager
	Installer installers.Installer
	Paths     paths.Paths
	Reporter  progress.Reporter
	FS        afero.Fs

	// ProjectID is the modpack's project, companions are looked up in it
	ProjectID uint64
	// ModClassID filters client manifest entries to real mods
	ModClassID uint64
}

// Result describes what was staged
type Result struct {
	Staging          string
	MinecraftVersion mcversion.Version
	Loader           loader.Descriptor
	ModsInstalled    int
	Pair             types.ResolvedPair
}

// Assemble stages release into the staging directory. Scratch directories
// are removed before returning, on failure too.
func (a *Assembler) Assemble(ctx context.Context, release types.ReleaseFile) (result *Result, err error) {
	logger := logging.GetLogger("assembler").With().Uint64("project", a.ProjectID).Logger()
	reporter := a.reporter()

	defer func() {
		if cleanErr := a.Paths.CleanScratch(); cleanErr != nil {
			logger.Warn().Err(cleanErr).Msg("Could not remove scratch directories")
			if err == nil {
				err = cleanErr
			}
		}
	}()

	reporter.Step("Pairing client and server packs")
	pair, err := a.Pair(ctx, release)
	if err != nil {
		return nil, err
	}

	client := pair.ClientPack()
	if client == nil {
		return nil, errors.Newf(errors.ErrNoClientManifest, "release %s has no client pack to read the manifest from", release).
			WithDetail("file", release.ID)
	}

	reporter.Step("Downloading " + client.FileName)
	if err := a.fetchArchive(ctx, *client, a.Paths.ClientDir()); err != nil {
		return nil, err
	}
	server := pair.ServerPack()
	if server != nil {
		reporter.Step("Downloading " + server.FileName)
		if err := a.fetchArchive(ctx, *server, a.Paths.ServerDir()); err != nil {
			return nil, err
		}
	}

	manifest, err := a.readClientManifest()
	if err != nil {
		return nil, err
	}
	mc, err := mcversion.Parse(manifest.Minecraft.Version)
	if err != nil {
		return nil, err
	}
	primary, ok := manifest.PrimaryLoader()
	if !ok {
		return nil, errors.New(errors.ErrLoaderParse, "client manifest names no primary mod loader")
	}
	desc, err := loader.Parse(primary.ID)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("mcVersion", mc.String()).Str("loader", desc.String()).Msg("Pack identified")

	result = &Result{
		Staging:          a.Paths.StagingDir(),
		MinecraftVersion: mc,
		Loader:           desc,
		Pair:             pair,
	}

	if server != nil {
		if err := a.stageServerPack(); err != nil {
			return nil, err
		}
	} else {
		n, err := a.stageClientPack(ctx, manifest)
		if err != nil {
			return nil, err
		}
		result.ModsInstalled = n
	}

	spinner := reporter.Spin("Installing " + desc.String())
	if err := a.Installer.Install(ctx, mc, desc, a.Paths.StagingDir()); err != nil {
		spinner.Fail("Installing " + desc.String() + " failed")
		return nil, err
	}
	spinner.Success("Installed " + desc.String())

	return result, nil
}

// Pair completes release with its companion. A server pack is paired with
// the client file it was built from; a client file with its server pack.
func (a *Assembler) Pair(ctx context.Context, release types.ReleaseFile) (types.ResolvedPair, error) {
	pair := types.ResolvedPair{Primary: release}

	var companionID *uint64
	switch {
	case release.IsServerPack && release.ParentProjectFileID != nil:
		companionID = release.ParentProjectFileID
	case !release.IsServerPack && release.ServerPackFileID != nil:
		companionID = release.ServerPackFileID
	default:
		return pair, nil
	}

	companion, err := a.Catalog.FileInfo(ctx, a.ProjectID, *companionID)
	if err != nil {
		return pair, err
	}

	// The server pack always drives staging when there is one
	if !release.IsServerPack {
		return types.ResolvedPair{Primary: *companion, Companion: &release}, nil
	}
	pair.Companion = companion
	return pair, nil
}

// fetchArchive downloads file, extracts it into a fresh scratch dir and
// deletes the archive
func (a *Assembler) fetchArchive(ctx context.Context, file types.ReleaseFile, scratch string) error {
	archive := filepath.Join(a.Paths.DownloadsDir(), file.FileName)
	if _, err := a.Stager.Download(ctx, file.DownloadURL, archive); err != nil {
		return err
	}
	if err := a.Paths.ResetScratch(scratch); err != nil {
		return err
	}
	if err := a.Stager.ExtractZip(ctx, archive, scratch); err != nil {
		return err
	}
	if err := a.fs().Remove(archive); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "removing %s", archive)
	}
	return nil
}

func (a *Assembler) readClientManifest() (*types.ClientManifest, error) {
	path := filepath.Join(a.Paths.ClientDir(), types.ClientManifestFile)
	data, err := afero.ReadFile(a.fs(), path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNoClientManifest, "client pack has no %s", types.ClientManifestFile)
	}

	var manifest types.ClientManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "parsing %s", path)
	}
	return &manifest, nil
}

func (a *Assembler) stageServerPack() error {
	root, err := filesystem.ContentRoot(a.fs(), a.Paths.ServerDir())
	if err != nil {
		return err
	}
	logger := logging.GetLogger("assembler")
	logger.Debug().Str("root", root).Msg("Staging server pack content")
	return a.Stager.CopyTree(root, a.Paths.StagingDir())
}

// stageClientPack copies the overrides and downloads every required mod,
// one at a time
func (a *Assembler) stageClientPack(ctx context.Context, manifest *types.ClientManifest) (int, error) {
	logger := logging.GetLogger("assembler")
	staging := a.Paths.StagingDir()

	overrides := filepath.Join(a.Paths.ClientDir(), manifest.OverridesDir())
	if ok, _ := afero.DirExists(a.fs(), overrides); ok {
		if err := a.Stager.CopyTree(overrides, staging); err != nil {
			return 0, err
		}
	}

	modsDir := filepath.Join(staging, "mods")
	if err := a.fs().MkdirAll(modsDir, 0755); err != nil {
		return 0, errors.Wrapf(err, errors.ErrIO, "creating %s", modsDir)
	}

	required := manifest.RequiredMods()
	reporter := a.reporter()
	reporter.StartBar("Downloading mods", len(required))
	defer reporter.StopBar()

	installed := 0
	for _, ref := range required {
		info, err := a.Catalog.PackInfo(ctx, ref.ProjectID)
		if err != nil {
			return installed, err
		}
		if info.ClassID != a.modClassID() {
			logger.Debug().Uint64("project", ref.ProjectID).Uint64("class", info.ClassID).Msg("Skipping non-mod project")
			reporter.Increment(info.Name)
			continue
		}

		file, err := a.Catalog.FileInfo(ctx, ref.ProjectID, ref.FileID)
		if err != nil {
			return installed, err
		}
		name, err := modFileName(file)
		if err != nil {
			return installed, err
		}
		if _, err := a.Stager.Download(ctx, file.DownloadURL, filepath.Join(modsDir, name)); err != nil {
			return installed, err
		}
		installed++
		reporter.Increment(name)
	}

	logger.Info().Int("mods", installed).Int("required", len(required)).Msg("Mods downloaded")
	return installed, nil
}

// modFileName keeps only the base name of a catalog file name so a download
// always lands directly in mods/
func modFileName(file *types.ReleaseFile) (string, error) {
	name := filepath.Base(filepath.FromSlash(strings.TrimSpace(file.FileName)))
	switch name {
	case ".", "..", string(filepath.Separator):
		return "", errors.Newf(errors.ErrCatalog, "file %d has no usable file name", file.ID).
			WithDetail("fileName", file.FileName)
	}
	return name, nil
}

func (a *Assembler) reporter() progress.Reporter {
	if a.Reporter == nil {
		return progress.Nop{}
	}
	return a.Reporter
}

func (a *Assembler) fs() afero.Fs {
	if a.FS == nil {
		return afero.NewOsFs()
	}
	return a.FS
}

func (a *Assembler) modClassID() uint64 {
	if a.ModClassID == 0 {
		return DefaultModClassID
	}
	return a.ModClassID
}
