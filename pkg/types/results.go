package types

// InstallResult summarises a completed install
type InstallResult struct {
	// Source is the subcommand that produced the install: flame, ftb, forge, fabric
	Source string
	// Release names what was installed, e.g. "All the Mods 9 0.2.44 (5002)"
	Release          string
	MinecraftVersion string
	Loader           string
	TargetDir        string
	ModsInstalled    int

	// Files is the number of files recorded in the new manifest
	Files        int
	FirstInstall bool
	BackupDir    string
	BackedUp     int
	Missing      int
}

// StageSummary is what a source reports after filling the staging tree
type StageSummary struct {
	Release          string
	MinecraftVersion string
	Loader           string
	ModsInstalled    int
}

// GenConfigResult is the output of the genconfig command
type GenConfigResult struct {
	ConfigContent string
	FilesWritten  []string
}
