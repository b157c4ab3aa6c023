// Package cli implements the guidedrag command-line interface.
//
// The commands drive the drag engine from files and terminals:
//   - replay: feed a drag script to a scene and print every snap
//   - render: snapshot a scene (optionally mid-script) as SVG, PNG or DOT
//   - tui: drag nodes interactively on a terminal grid
//   - serve: run the HTTP drag API
//   - config: show, create or locate the configuration file
//   - completion: generate shell completions
//
// # Configuration
//
// Every command loads the TOML configuration from --config, or from
// $XDG_CONFIG_HOME/guidedrag/config.toml when it exists. The --tolerance,
// --search-distance, --no-snap, --no-realtime and --disable flags override
// the file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. In verbose
// mode the CLI also registers logging observability hooks, so every drag
// session and HTTP request is traced.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/guidedrag/pkg/buildinfo"
	"github.com/matzehuels/guidedrag/pkg/config"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "guidedrag"

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

	flags configFlags
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
		Use:          appName,
		Short:        "Guidedrag snaps dragged nodes to alignment guides",
		Long:         `Guidedrag is an alignment engine for diagram editors. It shows guide lines while nodes are dragged and snaps them to the edges and centers of nearby nodes.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	c.flags.register(root)

	root.AddCommand(c.replayCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig loads the configuration file and applies flag overrides.
func (c *CLI) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(c.flags.path)
	if err != nil {
		return config.Config{}, err
	}
	if err := c.flags.apply(cmd, &cfg); err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("config loaded",
		"enabled", cfg.Enabled,
		"tolerance", cfg.Tolerance,
		"search_distance", cfg.SearchDistance,
		"snap", cfg.Snap,
		"realtime", cfg.Realtime,
	)
	return cfg, nil
}
