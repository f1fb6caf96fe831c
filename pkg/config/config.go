package config

import (
	_ "embed"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/mcsi/internal/version"
	mcsierrors "github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/arthur-debert/mcsi/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every configuration environment variable
const EnvPrefix = "MCSI_"

// UserConfigFile is searched for in the XDG config directories
const UserConfigFile = "mcsi/config.toml"

//go:embed embedded/defaults.toml
var defaultConfig []byte

// Config is the merged configuration
type Config struct {
	Flame    FlameConfig    `koanf:"flame"`
	FTB      FTBConfig      `koanf:"ftb"`
	Forge    MavenConfig    `koanf:"forge"`
	NeoForge MavenConfig    `koanf:"neoforge"`
	Fabric   FabricConfig   `koanf:"fabric"`
	Java     JavaConfig     `koanf:"java"`
	Download DownloadConfig `koanf:"download"`
	HTTP     HTTPConfig     `koanf:"http"`

	raw map[string]interface{}
}

type FlameConfig struct {
	BaseURL    string `koanf:"base_url"`
	PageSize   int    `koanf:"page_size"`
	ModClassID uint64 `koanf:"mod_class_id"`
}

type FTBConfig struct {
	BaseURL     string `koanf:"base_url"`
	SearchLimit int    `koanf:"search_limit"`
}

type MavenConfig struct {
	MavenURL string `koanf:"maven_url"`
}

type FabricConfig struct {
	MetaURL string `koanf:"meta_url"`
}

type JavaConfig struct {
	Path string `koanf:"path"`
}

type DownloadConfig struct {
	Retries   int    `koanf:"retries"`
	UserAgent string `koanf:"user_agent"`
}

type HTTPConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

// Options selects the optional layers
type Options struct {
	// TargetConfigPath is <target>/.mcsi/config.toml; skipped when empty or absent
	TargetConfigPath string
	// UserConfigPath overrides the XDG lookup; "-" disables the user layer
	UserConfigPath string
	// Overrides are applied last, keyed like "download.retries"
	Overrides map[string]interface{}
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Load merges every layer and returns the result
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, mcsierrors.Wrap(err, mcsierrors.ErrConfigLoad, "loading defaults")
	}

	// 2. User config
	userPath := opts.UserConfigPath
	if userPath == "" {
		if found, err := xdg.SearchConfigFile(UserConfigFile); err == nil {
			userPath = found
		}
	}
	if err := loadFile(k, userPath); err != nil {
		return nil, err
	}

	// 3. Target config
	if err := loadFile(k, opts.TargetConfigPath); err != nil {
		return nil, err
	}

	// 4. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, mcsierrors.Wrap(err, mcsierrors.ErrConfigLoad, "loading environment")
	}

	// 5. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, mcsierrors.Wrap(err, mcsierrors.ErrConfigLoad, "loading overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, mcsierrors.Wrap(err, mcsierrors.ErrConfigLoad, "decoding configuration")
	}
	cfg.raw = k.Raw()

	if err := cfg.postProcess(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("userConfig", userPath).
		Str("targetConfig", opts.TargetConfigPath).
		Msg("Configuration loaded")
	return &cfg, nil
}

// Default returns the embedded defaults with no other layer applied
func Default() *Config {
	cfg, err := Load(Options{UserConfigPath: "-"})
	if err != nil {
		panic(err)
	}
	return cfg
}

func loadFile(k *koanf.Koanf, path string) error {
	if path == "" || path == "-" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return mcsierrors.Wrapf(err, mcsierrors.ErrConfigLoad, "reading %s", path)
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return mcsierrors.Wrapf(err, mcsierrors.ErrConfigLoad, "loading config from %s", path)
	}
	return nil
}

// envKey maps MCSI_DOWNLOAD_USER_AGENT to download.user_agent: the first
// underscore separates the section, the rest belong to the key
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func (c *Config) postProcess() error {
	if c.Download.UserAgent == "" {
		c.Download.UserAgent = version.UserAgent()
	}
	if c.Download.Retries < 1 {
		return mcsierrors.Newf(mcsierrors.ErrConfigLoad, "download.retries must be at least 1, got %d", c.Download.Retries)
	}
	if c.Flame.PageSize < 1 {
		return mcsierrors.Newf(mcsierrors.ErrConfigLoad, "flame.page_size must be at least 1, got %d", c.Flame.PageSize)
	}
	if c.FTB.SearchLimit < 1 {
		return mcsierrors.Newf(mcsierrors.ErrConfigLoad, "ftb.search_limit must be at least 1, got %d", c.FTB.SearchLimit)
	}
	if c.HTTP.Timeout <= 0 {
		c.HTTP.Timeout = 30 * time.Second
	}
	for name, url := range map[string]string{
		"flame.base_url":     c.Flame.BaseURL,
		"ftb.base_url":       c.FTB.BaseURL,
		"forge.maven_url":    c.Forge.MavenURL,
		"neoforge.maven_url": c.NeoForge.MavenURL,
		"fabric.meta_url":    c.Fabric.MetaURL,
	} {
		if url == "" {
			return mcsierrors.Newf(mcsierrors.ErrConfigLoad, "%s must not be empty", name)
		}
	}
	return nil
}

// TOML renders the merged configuration as it was loaded
func (c *Config) TOML() ([]byte, error) {
	data, err := gotoml.Marshal(c.raw)
	if err != nil {
		return nil, mcsierrors.Wrap(err, mcsierrors.ErrConfigLoad, "encoding configuration")
	}
	return data, nil
}

// DefaultTOML returns the embedded defaults file, comments included
func DefaultTOML() string {
	return string(defaultConfig)
}
