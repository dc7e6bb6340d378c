// Package cli implements the bionet command-line interface.
//
// This package provides commands for parsing protein interaction networks,
// computing force-directed layouts, rendering them to SVG/DOT/PNG, exploring
// them interactively in the terminal, and serving them over HTTP. The CLI is
// built using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - parse: Extract an interaction network from a GraphML-style file
//   - layout: Run the force simulation until it settles and save the frame
//   - render: Generate SVG, DOT, PNG, or JSON output
//   - view: Explore the network interactively in the terminal
//   - serve: Serve the viewer API over HTTP
//   - stats: Print degree and category statistics
//   - graphs: Manage named networks in the graph store
//   - cache: Manage the stage cache
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lbartels/bionet/internal/config"
	"github.com/lbartels/bionet/pkg/buildinfo"
	"github.com/lbartels/bionet/pkg/cache"
	"github.com/lbartels/bionet/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "bionet"

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
	Config *config.Config
}

// New creates a new CLI instance with a default logger and loaded config.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		Config: config.Load(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "bionet",
		Short:        "Bionet visualizes biological interaction networks",
		Long:         `Bionet is a CLI tool for exploring protein and gene interaction networks with a force-directed layout, category coloring, and threshold filtering.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.graphsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cch, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cch, nil, c.Logger), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	if c.Config.Cache.Backend == "memory" {
		return cache.NewMemoryCache(cache.DefaultMemoryCacheSize, pipeline.DefaultCacheTTL), nil
	}
	dir := c.Config.Cache.Dir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/bionet/).
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

// =============================================================================
// Options Helpers
// =============================================================================

// newOptions builds pipeline options seeded from the loaded config. The
// weight pointer is always populated here, so a later --weight 0 survives
// SetDefaults.
func (c *CLI) newOptions() pipeline.Options {
	weight := c.Config.Thresholds.Weight
	opts := pipeline.Options{
		WeightThreshold: &weight,
		DegreeThreshold: c.Config.Thresholds.Degree,
		Width:           c.Config.Canvas.Width,
		Height:          c.Config.Canvas.Height,
	}
	opts.SetDefaults()
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
