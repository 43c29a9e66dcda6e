package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TatamiCut/internal/model"
)

func (c *CLI) plywoodCommand() *cobra.Command {
	var (
		jf     jobFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "plywood",
		Short: "Count the plywood sheets that cover the room",
		Long: `Count the plywood sheets that cover the room. Both sheet orientations are tried
and the one with the higher utilization is kept.`,
		Example: `  tatamicut plywood -W 2730 -D 3640 --plywood-width 910 --plywood-length 1820`,
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := c.resolveJob(cmd, &jf, true)
			if err != nil {
				return err
			}
			plan := model.CalculateSheetPlan(job.Room.Width, job.Room.Depth, job.Plywood.Width, job.Plywood.Length)
			if plan.TotalSheets == 0 {
				return fmt.Errorf("plywood sheet size %gx%g is not usable", job.Plywood.Width, job.Plywood.Length)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, struct {
					model.SheetPlan
					Groups []model.SheetCutGroup `json:"groups"`
				}{plan, plan.Groups()})
			}
			renderSheetPlan(out, plan)
			return nil
		},
	}
	jf.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of the report")
	return cmd
}

func (c *CLI) insulationCommand() *cobra.Command {
	var (
		jf     jobFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:     "insulation",
		Short:   "List the insulation pieces that fill the bays between joists",
		Example: `  tatamicut insulation -W 2730 -D 3640 --board-width 910 --board-length 1820`,
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := c.resolveJob(cmd, &jf, true)
			if err != nil {
				return err
			}
			framing := job.Framing()
			summary := model.CalculateInsulation(framing, job.Board())

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, struct {
					Framing    model.FramingLayout     `json:"framing"`
					Insulation model.InsulationSummary `json:"insulation"`
				}{framing, summary})
			}
			renderFraming(out, framing)
			renderInsulation(out, summary)
			return nil
		},
	}
	jf.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of the report")
	return cmd
}

func (c *CLI) heightsCommand() *cobra.Command {
	var (
		jf     jobFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "heights",
		Short: "Find joist and plywood combinations that reach the tatami height",
		Long: `Find joist and plywood combinations that reach the tatami height.

Every joist size in the inventory is tried upright and on its side with every
plywood thickness. Stacks finishing up to 2 mm below the tatami height are listed.`,
		Example: `  tatamicut heights --tatami 55 --flooring 12 --plywood 9,12,15`,
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := c.resolveJob(cmd, &jf, false)
			if err != nil {
				return err
			}
			inv, err := c.loadInventory()
			if err != nil {
				return err
			}
			thicknesses := job.Height.PlywoodThicknesses
			if len(thicknesses) == 0 {
				thicknesses = inv.PlywoodThicknesses
			}
			if len(inv.Joists) == 0 {
				return fmt.Errorf("inventory has no joist sizes, add some with 'inventory import'")
			}

			stacks := model.FindHeightStacks(inv.Joists, thicknesses, job.Height.Flooring, job.Height.Tatami)
			loggerFromContext(cmd.Context()).Debug("height search",
				"joists", len(inv.Joists), "thicknesses", len(thicknesses), "matches", len(stacks))

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, stacks)
			}
			renderHeights(out, job.Height.Tatami, job.Height.Flooring, stacks)
			return nil
		},
	}
	jf.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of the report")
	return cmd
}
