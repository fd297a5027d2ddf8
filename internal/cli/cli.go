// Package cli implements the shelfplan command-line interface.
//
// This package provides commands for importing tabular product data,
// computing shelf layouts, rendering plans as SVG/PNG/PDF, inspecting
// capacity metrics, and an interactive terminal editor. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - import: Build or update a plan from a product sheet (CSV)
//   - layout: Recompute placements and auto-fit sizes for a plan
//   - render: Generate SVG, PDF, PNG, DOT, or JSON artifacts
//   - inspect: Show per-module capacity metrics
//   - edit: Interactive terminal editor
//   - cache: Manage the rendered artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/planora/shelfplan/pkg/buildinfo"
	"github.com/planora/shelfplan/pkg/cache"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "shelfplan"

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
	Logger   *log.Logger
	Settings Settings
}

// New creates a new CLI instance with a default logger and the settings
// file loaded from its standard location (missing file means defaults).
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger:   newLogger(w, level),
		Settings: DefaultSettings(),
	}
	if path, err := settingsPath(); err == nil {
		if s, err := LoadSettings(path); err == nil {
			c.Settings = s
		} else {
			c.Logger.Warnf("Ignoring settings file %s: %v", path, err)
		}
	}
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "shelfplan",
		Short:        "Shelfplan lays out retail shelf plans from product sheets",
		Long:         `Shelfplan is a CLI tool for building planograms: it imports tabular product data, computes gap-free column/stack layouts per shelf module, and renders the result for print or review.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.importCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Cache Factory
// =============================================================================

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
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

// cacheDir returns the cache directory using XDG standard (~/.cache/shelfplan/).
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

// settingsPath returns the settings file path using XDG standard
// (~/.config/shelfplan/config.toml).
func settingsPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
