// Package cli implements the searchspace command-line interface.
//
// This package provides commands for solving generated assignment and graph
// bipartition instances with local and systematic search, comparing several
// algorithms on one instance, serving the same functionality over HTTP, and
// managing the result cache. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - assign: Solve a generated assignment instance with one algorithm
//   - partition: Solve a generated graph bipartition instance
//   - compare: Run every algorithm in a TOML sweep config and tabulate results
//   - serve: Expose sweeps over an HTTP API
//   - cache: Manage the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/searchspace/pkg/buildinfo"
	"github.com/matzehuels/searchspace/pkg/cache"
	"github.com/matzehuels/searchspace/pkg/experiment"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "searchspace"
)

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
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "searchspace",
		Short:        "Searchspace compares search algorithms on generated problems",
		Long:         `Searchspace generates assignment and graph bipartition instances, solves them with informed, local, and bound-based search, and compares the results against exact baselines.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Commands and HTTP handlers retrieve the logger from context.
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.assignCommand())
	root.AddCommand(c.partitionCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags selects a cache backend for a command. The zero value is the
// default file backend under the user cache directory.
type cacheFlags struct {
	noCache   bool
	redisAddr string
	mongoURI  string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable result caching")
	cmd.Flags().StringVar(&f.redisAddr, "redis", "", "use a Redis cache backend at this address")
	cmd.Flags().StringVar(&f.mongoURI, "mongo", "", "use a MongoDB cache backend at this URI")
}

// newRunner creates an experiment runner for CLI use.
func (c *CLI) newRunner(cmd *cobra.Command, flags cacheFlags) (*experiment.Runner, error) {
	backend, err := newCache(cmd, flags)
	if err != nil {
		return nil, err
	}
	return experiment.NewRunner(backend, nil, c.Logger), nil
}

func newCache(cmd *cobra.Command, flags cacheFlags) (cache.Cache, error) {
	switch {
	case flags.noCache:
		return cache.NewNullCache(), nil
	case flags.redisAddr != "":
		return cache.NewRedisCache(cmd.Context(), flags.redisAddr, "", 0)
	case flags.mongoURI != "":
		return cache.NewMongoCache(cmd.Context(), flags.mongoURI, appName, "results")
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/searchspace/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
