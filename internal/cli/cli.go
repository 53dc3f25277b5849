// Package cli implements the cubetris command-line interface.
//
// This package provides commands for playing the falling-polycube game in
// the terminal, running headless autoplay simulations and inspecting shape
// catalogs and configuration. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - play: Interactive game in the terminal
//   - simulate: Run autoplay games and report statistics
//   - catalog: List the shapes of a catalog
//   - config: Print the effective configuration
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context. Board and autoplay events reach the logger
// through observability hooks registered by the root command.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cubetris/pkg/buildinfo"
	"github.com/matzehuels/cubetris/pkg/config"
	"github.com/matzehuels/cubetris/pkg/game"
	"github.com/matzehuels/cubetris/pkg/geom"
	"github.com/matzehuels/cubetris/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "cubetris"

	// configEnv names the environment variable consulted when --config is
	// not given.
	configEnv = "CUBETRIS_CONFIG"
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

	configPath string
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
		Short:        "Cubetris is a falling-polycube puzzle for the terminal",
		Long:         `Cubetris is a 3D line-clearing block game: polycubes fall into a box, full layers disappear and the game ends when a new piece no longer fits.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			hooks := newLogHooks(c.Logger)
			observability.SetGameHooks(hooks)
			observability.SetRunHooks(hooks)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "TOML config file (default $"+configEnv+")")

	// Register all subcommands
	root.AddCommand(c.playCommand())
	root.AddCommand(c.simulateCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Board Factory
// =============================================================================

// boardOpts holds the board flags shared by play and simulate. Zero values
// keep the config file's setting.
type boardOpts struct {
	width, depth, height int
	seed                 uint64
	spawn                string
	randomOrientation    bool
}

func (o *boardOpts) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&o.width, "width", 0, "board width (x)")
	cmd.Flags().IntVar(&o.depth, "depth", 0, "board depth (y)")
	cmd.Flags().IntVar(&o.height, "height", 0, "board height (z)")
	cmd.Flags().Uint64Var(&o.seed, "seed", 0, "random seed (0 = config or time-derived)")
	cmd.Flags().StringVar(&o.spawn, "spawn", "", "spawn mode: center, random")
	cmd.Flags().BoolVar(&o.randomOrientation, "random-orientation", false, "spawn pieces in a random orientation")
}

// apply overrides cfg with the flags that were set.
func (o *boardOpts) apply(cfg *config.Config) error {
	if o.width != 0 {
		cfg.Game.Dims.X = o.width
	}
	if o.depth != 0 {
		cfg.Game.Dims.Y = o.depth
	}
	if o.height != 0 {
		cfg.Game.Dims.Z = o.height
	}
	if o.seed != 0 {
		cfg.Game.Seed = o.seed
	}
	if o.spawn != "" {
		cfg.Game.SpawnMode = game.SpawnMode(o.spawn)
	}
	if o.randomOrientation {
		cfg.Game.RandomOrientation = true
	}
	return cfg.Validate()
}

// loadConfig reads --config, falling back to $CUBETRIS_CONFIG and then the
// built-in defaults.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.configPath
	if path == "" {
		path = os.Getenv(configEnv)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	return cfg, nil
}

// newBoard builds a board from cfg, loading its catalog.
func (c *CLI) newBoard(cfg config.Config) (*game.Board, error) {
	cat, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	return game.New(cfg.Game.Dims, game.WithConfig(cfg.Game), game.WithCatalog(cat))
}

// dimsString formats board dimensions as WxDxH.
func dimsString(d geom.Coord) string {
	return fmt.Sprintf("%d×%d×%d", d.X, d.Y, d.Z)
}
