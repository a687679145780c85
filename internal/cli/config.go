package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/potplant/pkg/errors"
	"github.com/matzehuels/potplant/pkg/pipeline"
)

// configFile is the config file name inside the config directory.
const configFile = "config.toml"

// Config holds user defaults. Flags override it.
//
//	seed = 42
//	format = "yaml"
//
//	[serve]
//	addr = ":8080"
//	cache = "redis"
//	redis_addr = "redis://localhost:6379/0"
//	cache_ttl = "24h"
type Config struct {
	Seed   uint64      `toml:"seed"`
	Format string      `toml:"format"`
	Serve  ServeConfig `toml:"serve"`
}

// ServeConfig configures the serve command.
type ServeConfig struct {
	Addr         string   `toml:"addr"`
	Cache        string   `toml:"cache"`
	RedisAddr    string   `toml:"redis_addr"`
	CacheTTL     duration `toml:"cache_ttl"`
	CacheEntries int      `toml:"cache_entries"`
}

// duration reads a Go duration string such as "90m".
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Format: pipeline.FormatCode,
		Serve: ServeConfig{
			Addr:         ":8080",
			Cache:        cacheMemory,
			RedisAddr:    "localhost:6379",
			CacheTTL:     duration{pipeline.TTLGeometry},
			CacheEntries: 4096,
		},
	}
}

// readConfig decodes path over the defaults. A missing file yields the
// defaults unless required is set.
func readConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		if required {
			return cfg, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
		}
		return DefaultConfig(), nil
	}
	if err != nil {
		return cfg, errs.Wrap(errs.ErrCodeInvalidSyntax, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errs.New(errs.ErrCodeInvalidInput, "config %s: unknown key %s", path, undecoded[0])
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (cfg Config) validate() error {
	if err := errs.ValidateFormat(cfg.Format, pipeline.Formats...); err != nil {
		return err
	}
	if err := errs.ValidateFormat(cfg.Serve.Cache, cacheKinds...); err != nil {
		return err
	}
	if cfg.Serve.CacheTTL.Duration < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "cache_ttl must not be negative")
	}
	return nil
}

// loadConfig reads the --config file, or the default config file if it
// exists.
func (c *CLI) loadConfig() error {
	path, required := c.configPath, true
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return nil
		}
		path, required = filepath.Join(dir, configFile), false
	}
	cfg, err := readConfig(path, required)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", path)
	return nil
}
