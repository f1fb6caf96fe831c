package mcsi

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort      = "Install and upgrade Minecraft dedicated-server modpacks"
	MsgFlameShort     = "Install a CurseForge modpack release"
	MsgFTBShort       = "Install a Feed The Beast modpack"
	MsgForgeShort     = "Install a bare Forge or NeoForge server"
	MsgFabricShort    = "Install a bare Fabric server"
	MsgGenConfigShort = "Print or write the mcsi configuration"
	MsgVersionShort   = "Print build information"

	MsgRootLong = `mcsi installs a Minecraft dedicated server into a target directory and keeps it
upgradable. Every install is assembled in a staging area first; files that belonged
to the previous install are backed up under .mcsi/backups before the new content
is promoted into place.

Every flag can also be given as an environment variable named after it in upper
snake case (--api-key reads API_KEY). A flag given on the command line wins.`

	MsgFlameLong = `Resolve a release of a CurseForge project and install its server.

--version accepts "latest", a numeric file id or a fragment of the release file
name. When the release is a client pack, its mods and overrides are staged and
the mod loader it declares is installed next to them.`

	MsgFTBLong = `Install a pack from the Feed The Beast catalog by running its server installer.

Select the pack with --id or with --search-terms; the first search hit is used,
restricted to --mc-version when given. --version is "latest" or a version id.`

	MsgGenConfigLong = `Print the default configuration as TOML.

With --effective the merged configuration for the target directory is printed
instead. With --write the defaults are saved to <target>/.mcsi/config.toml unless
the file already exists.`

	MsgFlameExample = `  mcsi flame --api-key $API_KEY --project-id 925200 --version latest --target-dir ./server
  mcsi flame --project-id 925200 --version 6822909 --target-dir ./server`
	MsgFTBExample = `  mcsi ftb --search-terms "all the mods" --mc-version 1.21.1 --target-dir ./server
  mcsi ftb --id 126 --version 100171 --target-dir ./server`
	MsgForgeExample = `  mcsi forge --mc-version 1.20.1 --version 47.2.0 --target-dir ./server
  mcsi forge --neoforge --mc-version 1.21.1 --version latest --target-dir ./server`
	MsgFabricExample = `  mcsi fabric --mc-version 1.21.1 --target-dir ./server`

	// Summary messages
	MsgInstalledFormat = "Installed %s"
	MsgFirstInstall    = "First install, nothing to back up"
	MsgBackedUpFormat  = "%d file(s) backed up to %s"
	MsgMissingFormat   = "%d file(s) from the previous manifest were already gone"
	MsgConfigWritten   = "Wrote %s\n"
	MsgVersionFormat   = "mcsi %s (commit %s, built %s)\n"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrLogLevel   = "invalid --log-level: %w"
	MsgErrTargetDir  = "invalid --target-dir: %w"

	// Flag descriptions
	MsgFlagLogLevel    = "Log level: off, error, warn, info, debug or trace"
	MsgFlagTargetDir   = "Server directory to install into"
	MsgFlagAPIKey      = "CurseForge API key"
	MsgFlagProjectID   = "CurseForge project id"
	MsgFlagVersion     = "Release to install: latest, an id or a name fragment"
	MsgFlagFTBVersion  = "Pack version: latest or a version id"
	MsgFlagSearchTerms = "Search the FTB catalog and use the first hit"
	MsgFlagFTBID       = "FTB pack id"
	MsgFlagMcVersion   = "Minecraft version, e.g. 1.20.1"
	MsgFlagLoaderVer   = "Loader version, or latest"
	MsgFlagNeoForge    = "Install NeoForge instead of Forge"
	MsgFlagWrite       = "Write the default configuration into the target directory"
	MsgFlagEffective   = "Print the merged configuration instead of the defaults"
)
