package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TatamiCut/internal/importer"
	"github.com/piwi3910/TatamiCut/internal/model"
	"github.com/piwi3910/TatamiCut/internal/project"
)

func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the application defaults",
	}
	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), c.cfg)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config and inventory file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			printKeyValue(out, "Config", c.configPath)
			printKeyValue(out, "Inventory", c.inventoryPath)
			return nil
		},
	})
	return cmd
}

func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(c.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", c.configPath)
			}
			cfg := model.DefaultAppConfig()
			if err := project.SaveAppConfig(c.configPath, cfg); err != nil {
				return err
			}
			c.cfg = cfg

			out := cmd.OutOrStdout()
			printSuccess(out, "Wrote default configuration")
			printFile(out, c.configPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func (c *CLI) inventoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Manage joist sizes, plywood thicknesses and stock lengths",
	}
	cmd.AddCommand(c.inventoryListCommand())
	cmd.AddCommand(c.inventoryImportCommand())
	return cmd
}

func (c *CLI) inventoryListCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := c.loadInventory()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, inv)
			}
			renderInventory(out, inv)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (c *CLI) inventoryImportCommand() *cobra.Command {
	var thicknesses string

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Add joist sizes or plywood thicknesses to the inventory",
		Long: `Add joist sizes or plywood thicknesses to the inventory.

A .json file is merged as an exported inventory. CSV and Excel files are read
as joist tables with width, height and name columns. Any other file is read as
text with one "width,height,name" joist per line.`,
		Example: `  tatamicut inventory import lumber.csv
  tatamicut inventory import --thicknesses "9,12,15"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && thicknesses == "" {
				return fmt.Errorf("nothing to import, give a file or --thicknesses")
			}
			inv, err := c.loadInventory()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			logger := loggerFromContext(cmd.Context())

			if len(args) == 1 {
				path := args[0]
				if strings.EqualFold(filepath.Ext(path), ".json") {
					before := len(inv.Joists)
					inv, err = project.ImportInventory(path, inv)
					if err != nil {
						return err
					}
					printSuccess(out, "Merged inventory from %s (%d new joist sizes)", path, len(inv.Joists)-before)
				} else {
					result := importer.ImportFile(path)
					for _, w := range result.Warnings {
						printWarning(out, "%s", w)
					}
					for _, e := range result.Errors {
						printError(out, "%s", e)
					}
					if len(result.Joists) == 0 {
						return fmt.Errorf("no joist sizes imported from %s", path)
					}
					added := inv.AddJoists(result.Joists)
					logger.Debug("imported joists", "path", path, "read", len(result.Joists), "added", added)
					printSuccess(out, "Added %d of %d joist sizes from %s", added, len(result.Joists), path)
				}
			}

			if thicknesses != "" {
				added := 0
				for _, t := range importer.ParseThicknesses(thicknesses) {
					if containsLength(inv.PlywoodThicknesses, t) {
						continue
					}
					inv.PlywoodThicknesses = append(inv.PlywoodThicknesses, t)
					added++
				}
				printSuccess(out, "Added %d plywood thicknesses", added)
			}

			if err := project.SaveInventory(c.inventoryPath, inv); err != nil {
				return err
			}
			printFile(out, c.inventoryPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&thicknesses, "thicknesses", "", "plywood thicknesses to add, e.g. \"9,12,15\"")
	return cmd
}

func containsLength(list []float64, v float64) bool {
	for _, x := range list {
		if model.SameLength(x, v) {
			return true
		}
	}
	return false
}

func (c *CLI) backupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore the config and inventory",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "export <path>",
		Short: "Write the config and inventory to one JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := c.loadInventory()
			if err != nil {
				return err
			}
			if err := project.ExportAllData(args[0], c.cfg, inv); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSuccess(out, "Backed up config and inventory (%s)", inv.Describe())
			printFile(out, args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <path>",
		Short: "Replace the config and inventory with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if err := project.SaveAppConfig(c.configPath, data.Config); err != nil {
				return err
			}
			if err := project.SaveInventory(c.inventoryPath, data.Inventory); err != nil {
				return err
			}
			c.cfg = data.Config

			loggerFromContext(cmd.Context()).Debug("restored backup", "version", data.Version, "created", data.CreatedAt)
			printSuccess(cmd.OutOrStdout(), "Restored backup from %s (%s)", args[0], data.Inventory.Describe())
			return nil
		},
	})
	return cmd
}
