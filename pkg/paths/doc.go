// Package paths provides the execution context for an install run.
//
// Every directory the pipeline touches is derived from the target directory
// given on the command line. Nothing is resolved relative to the working
// directory of the process, so two runs against different targets never
// share state and tests can root a run in t.TempDir().
//
// # Layout
//
//	<target>/
//	  .mcsi/
//	    manifest.json              files owned by the current install
//	    config.toml                optional per-target configuration
//	    backups/backup-<stamp>/    files moved aside by the reconciler
//	    logs/<rfc3339>.log         one log file per run
//	    work_dir/                  staging tree (ephemeral)
//	    client/ server/            extracted archives (ephemeral)
//	    downloads/ ftb/            downloaded archives and installers (ephemeral)
//
// The ephemeral directories are owned by Paths: Prepare removes any leftover
// from a crashed run, ResetScratch hands out an empty directory and
// CleanScratch removes them once their content has been copied out.
package paths
