// Package cli implements the potplant command-line interface.
//
// Commands grow random plants, decode and validate genotypes, export
// geometry and structure diagrams, browse plants interactively and serve
// the same operations over HTTP. Genotypes, trees and documents go to
// stdout; status lines and logs go to stderr.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/potplant/pkg/buildinfo"
	"github.com/matzehuels/potplant/pkg/cache"
	errs "github.com/matzehuels/potplant/pkg/errors"
	"github.com/matzehuels/potplant/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "potplant"

	// redisPrefix scopes serve cache keys inside a shared Redis database.
	redisPrefix = appName + ":"
)

// Cache backends selectable from flags and config.
const (
	cacheNull   = "null"
	cacheMemory = "memory"
	cacheFile   = "file"
	cacheRedis  = "redis"
)

var cacheKinds = []string{cacheNull, cacheMemory, cacheFile, cacheRedis}

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configPath string
	verbose    bool
	stdin      io.Reader
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
		stdin:  os.Stdin,
	}
}

// SetLogLevel updates the logger's level. Debug level also installs
// logging observability hooks.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		installLogHooks(c.Logger)
	}
}

// ExitCode maps the error returned by the root command to a process exit
// status: 0 on success, 130 after an interrupt, 2 for bad input such as a
// rejected genotype and 1 for anything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	}
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidSyntax,
		errs.ErrCodeSchemaViolation, errs.ErrCodeFileNotFound:
		return 2
	}
	return 1
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Potplant grows procedural potted plants",
		Long:          `Potplant grows random potted plants, encodes every plant as a compact genotype and turns genotypes back into geometry, diagrams and parameter trees.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/potplant/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log debug events")

	root.AddCommand(c.randomCommand())
	root.AddCommand(c.decodeCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.encodeCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.geometryCommand())
	root.AddCommand(c.diagramCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	if err := registerFlagChoices(root); err != nil {
		panic(err)
	}
	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the named cache.
func (c *CLI) newRunner(ctx context.Context, kind string) (*pipeline.Runner, error) {
	backend, keyer, err := c.newCache(ctx, kind)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(backend, keyer, c.Logger), nil
}

// newCache opens a cache backend. An unusable file cache directory falls
// back to no caching; an unreachable Redis is an error.
func (c *CLI) newCache(ctx context.Context, kind string) (cache.Cache, cache.Keyer, error) {
	switch kind {
	case "", cacheNull:
		return cache.NewNullCache(), nil, nil
	case cacheMemory:
		return cache.NewMemoryCache(c.Config.Serve.CacheEntries), nil, nil
	case cacheFile:
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil, nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			c.Logger.Warn("cache directory unusable, caching disabled", "dir", dir, "err", err)
			return cache.NewNullCache(), nil, nil
		}
		return fc, nil, nil
	case cacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:        c.Config.Serve.RedisAddr,
			DialTimeout: 5 * time.Second,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return rc, cache.NewScopedKeyer(nil, redisPrefix), nil
	}
	return nil, nil, errs.ValidateFormat(kind, cacheKinds...)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/potplant/).
func cacheDir() (string, error) {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// configDir returns the config directory using XDG standard (~/.config/potplant/).
func configDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appName), nil
}

// =============================================================================
// Input Helpers
// =============================================================================

// readCode returns the genotype named by args: the argument itself, or
// stdin when the argument is "-" or absent.
func (c *CLI) readCode(args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		return args[0], nil
	}
	data, err := io.ReadAll(io.LimitReader(c.stdin, errs.MaxGenotypeLength+1))
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// writeOutput writes data to path, or to w when path is empty or "-".
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}
