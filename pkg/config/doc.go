// Package config loads mcsi's configuration.
//
// Layers are merged in order, later layers winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file, $XDG_CONFIG_HOME/mcsi/config.toml
//  3. the target file, <target>/.mcsi/config.toml
//  4. environment variables MCSI_<SECTION>_<KEY>, e.g. MCSI_DOWNLOAD_RETRIES
//  5. explicit overrides passed by the caller
//
// Command line flags are not configuration: they bind to their own
// environment variables in the cmd package.
package config
