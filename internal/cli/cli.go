// Package cli implements the tatamicut command-line interface.
//
// The commands compute cut lists for a raised tatami floor: joists cut from stock
// lumber, plywood sheets, insulation boards and the joist/plywood combinations that
// reach the tatami height. Inputs come from flags, a TOML job file, or both, with
// flags taking precedence. Application defaults and the lumber inventory are read
// from ~/.tatamicut.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is passed
// through context.Context and handed to the allocator for its traces.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/TatamiCut/internal/model"
	"github.com/piwi3910/TatamiCut/internal/project"
)

const appName = "tatamicut"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion sets the version information displayed by --version.
// main injects these values via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath    string
	inventoryPath string
	verbose       bool
	cfg           model.AppConfig
}

// New creates a CLI that logs to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    model.DefaultAppConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "TatamiCut computes cut lists for raised tatami floors",
		Long: `TatamiCut computes material cut lists for a raised tatami floor frame:
joists cut from stock lumber with offcut reuse, plywood sheets, insulation boards
and the joist and plywood combinations that reach the tatami height.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cfg, err := project.LoadAppConfig(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			setColorMode(cfg.Color)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			c.Logger.Debug("loaded config", "path", c.configPath)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\n", appName, version, commit, date))
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", project.DefaultConfigPath(), "config file")
	root.PersistentFlags().StringVar(&c.inventoryPath, "inventory", project.DefaultInventoryPath(), "inventory file")

	root.AddCommand(c.joistsCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.plywoodCommand())
	root.AddCommand(c.insulationCommand())
	root.AddCommand(c.heightsCommand())
	root.AddCommand(c.jobCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.inventoryCommand())
	root.AddCommand(c.backupCommand())

	return root
}

// loadInventory reads the inventory, creating the default one on first use.
func (c *CLI) loadInventory() (model.Inventory, error) {
	inv, err := project.LoadInventory(c.inventoryPath)
	if err != nil {
		return model.Inventory{}, err
	}
	c.Logger.Debug("loaded inventory", "path", c.inventoryPath, "summary", inv.Describe())
	return inv, nil
}
