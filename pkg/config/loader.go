package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/lovely/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix marks the environment variables read into the config.
	EnvPrefix = "LOVELY_"
	// EnvConfigFile points at an alternative config file.
	EnvConfigFile = "LOVELY_CONFIG"
)

// Config is the resolved runtime configuration.
type Config struct {
	ModDir         string `koanf:"mod_dir" yaml:"mod_dir"`
	DumpAll        bool   `koanf:"dump_all" yaml:"dump_all"`
	Vanilla        bool   `koanf:"vanilla" yaml:"vanilla"`
	DisableConsole bool   `koanf:"disable_console" yaml:"disable_console"`
	Integrity      bool   `koanf:"integrity" yaml:"integrity"`
	LogLevel       int    `koanf:"log_level" yaml:"log_level"`
}

// LogDir is where per run log files go.
func (c *Config) LogDir() string {
	return filepath.Join(c.ModDir, "lovely", "log")
}

// DumpDir is where patched buffers are dumped.
func (c *Config) DumpDir() string {
	return filepath.Join(c.ModDir, "lovely", "dump")
}

// Load layers the configuration sources. overrides may be nil.
func Load(overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Config file, if any
	path := FilePath()
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
				WithDetail("path", path)
		}
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Explicit overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	if cfg.ModDir == "" {
		cfg.ModDir = DefaultModDir()
	}
	return &cfg, nil
}

// FilePath returns the config file location: $LOVELY_CONFIG, or
// <config home>/lovely/config.toml.
func FilePath() string {
	if p := os.Getenv(EnvConfigFile); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, "lovely", "config.toml")
}

// DefaultModDir is <config home>/<game name>/Mods, where the game name is
// derived from the running executable.
func DefaultModDir() string {
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}
	return filepath.Join(xdg.ConfigHome, GameName(exe, runtime.GOOS), "Mods")
}

// GameName derives the game's name from its executable path: the file stem,
// or on macOS the enclosing .app bundle's name, with dots replaced by
// underscores.
func GameName(exe, goos string) string {
	name := strings.TrimSuffix(filepath.Base(exe), filepath.Ext(exe))
	if goos == "darwin" {
		// <Name>.app/Contents/MacOS/<binary>
		bundle := filepath.Base(filepath.Dir(filepath.Dir(filepath.Dir(exe))))
		if strings.HasSuffix(bundle, ".app") {
			name = strings.TrimSuffix(bundle, ".app")
		}
	}
	return strings.ReplaceAll(name, ".", "_")
}
