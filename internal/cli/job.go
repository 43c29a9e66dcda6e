package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TatamiCut/internal/importer"
	"github.com/piwi3910/TatamiCut/internal/model"
	"github.com/piwi3910/TatamiCut/internal/project"
)

// maxRecentJobs is how many job files the config remembers.
const maxRecentJobs = 10

// jobFlags are the job inputs every calculation command accepts. A flag overrides
// the job file only when it was set on the command line.
type jobFlags struct {
	path string
	dxf  string
	name string

	width, depth            float64
	joistWidth, joistHeight float64
	onSide                  bool
	stock, spacing          float64
	eco                     bool
	plyWidth, plyLength     float64
	boardWidth, boardLength float64
	tatami, flooring        float64
	thicknesses             []float64
}

func (f *jobFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.path, "job", "j", "", "TOML job file")
	fs.StringVar(&f.dxf, "dxf", "", "take the room size from a DXF floor plan")
	fs.StringVar(&f.name, "name", "", "job name")
	fs.Float64VarP(&f.width, "width", "W", 0, "room width across the joists (mm)")
	fs.Float64VarP(&f.depth, "depth", "D", 0, "room depth along the joists (mm)")
	fs.Float64Var(&f.joistWidth, "joist-width", 0, "joist width (mm)")
	fs.Float64Var(&f.joistHeight, "joist-height", 0, "joist height (mm)")
	fs.BoolVar(&f.onSide, "on-side", false, "lay the joists on their side")
	fs.Float64VarP(&f.stock, "stock", "s", 0, "stock length (mm)")
	fs.Float64Var(&f.spacing, "spacing", 0, "bay width between joists (mm)")
	fs.BoolVar(&f.eco, "eco", false, "eco mode (recorded on the plan)")
	fs.Float64Var(&f.plyWidth, "plywood-width", 0, "plywood sheet width (mm)")
	fs.Float64Var(&f.plyLength, "plywood-length", 0, "plywood sheet length (mm)")
	fs.Float64Var(&f.boardWidth, "board-width", 0, "insulation board width (mm)")
	fs.Float64Var(&f.boardLength, "board-length", 0, "insulation board length (mm)")
	fs.Float64Var(&f.tatami, "tatami", 0, "tatami height to reach (mm)")
	fs.Float64Var(&f.flooring, "flooring", 0, "flooring thickness (mm)")
	fs.Float64SliceVar(&f.thicknesses, "plywood", nil, "plywood thicknesses to try (mm)")
}

// resolveJob builds the job from config defaults, the job file, the DXF room and
// the flags, in that order.
func (c *CLI) resolveJob(cmd *cobra.Command, f *jobFlags, validate bool) (model.Job, error) {
	logger := loggerFromContext(cmd.Context())

	job := model.NewJob("Untitled", c.cfg)
	if f.path != "" {
		loaded, warnings, err := project.LoadJob(f.path, c.cfg)
		if err != nil {
			return model.Job{}, err
		}
		for _, w := range warnings {
			logger.Warn(w, "job", f.path)
		}
		if loaded.ID == "" {
			loaded.ID = job.ID
		}
		if loaded.CreatedAt.IsZero() {
			loaded.CreatedAt = job.CreatedAt
		}
		job = loaded
		logger.Debug("loaded job", "path", f.path, "name", job.Name)
	}

	if f.dxf != "" {
		room := importer.ImportRoomDXF(f.dxf)
		for _, w := range room.Warnings {
			logger.Warn(w, "dxf", f.dxf)
		}
		if len(room.Errors) > 0 {
			return model.Job{}, fmt.Errorf("failed to read room from %s: %s", f.dxf, strings.Join(room.Errors, "; "))
		}
		job.Room = model.RoomSpec{Width: room.Width, Depth: room.Depth}
		logger.Debug("room from drawing", "width", room.Width, "depth", room.Depth)
	}

	changed := cmd.Flags().Changed
	setString := func(name string, dst *string, v string) {
		if changed(name) {
			*dst = v
		}
	}
	setFloat := func(name string, dst *float64, v float64) {
		if changed(name) {
			*dst = v
		}
	}
	setBool := func(name string, dst *bool, v bool) {
		if changed(name) {
			*dst = v
		}
	}

	setString("name", &job.Name, f.name)
	setFloat("width", &job.Room.Width, f.width)
	setFloat("depth", &job.Room.Depth, f.depth)
	setFloat("joist-width", &job.Joist.Width, f.joistWidth)
	setFloat("joist-height", &job.Joist.Height, f.joistHeight)
	setBool("on-side", &job.Joist.OnSide, f.onSide)
	setFloat("stock", &job.Joist.StockLength, f.stock)
	setFloat("spacing", &job.Joist.Spacing, f.spacing)
	setBool("eco", &job.Joist.EcoMode, f.eco)
	setFloat("plywood-width", &job.Plywood.Width, f.plyWidth)
	setFloat("plywood-length", &job.Plywood.Length, f.plyLength)
	setFloat("board-width", &job.Insulation.Width, f.boardWidth)
	setFloat("board-length", &job.Insulation.Length, f.boardLength)
	setFloat("tatami", &job.Height.Tatami, f.tatami)
	setFloat("flooring", &job.Height.Flooring, f.flooring)
	if changed("plywood") {
		job.Height.PlywoodThicknesses = f.thicknesses
	}

	if validate {
		if err := job.Validate(); err != nil {
			return model.Job{}, fmt.Errorf("invalid job: %w", err)
		}
	}
	return job, nil
}

// exportFlags select the outputs of a calculation.
type exportFlags struct {
	json   bool
	pdf    string
	labels string
	xlsx   string
}

func (f *exportFlags) register(cmd *cobra.Command, files bool) {
	cmd.Flags().BoolVar(&f.json, "json", false, "print JSON instead of the report")
	if !files {
		return
	}
	cmd.Flags().StringVar(&f.pdf, "pdf", "", "write the cut sheet PDF to this path")
	cmd.Flags().StringVar(&f.labels, "labels", "", "write QR stock labels (PDF) to this path")
	cmd.Flags().StringVar(&f.xlsx, "xlsx", "", "write the cut list workbook to this path")
}

// exportPath places bare file names in the configured export directory.
func (c *CLI) exportPath(path string) string {
	if path == "" || filepath.IsAbs(path) || strings.ContainsRune(path, filepath.Separator) {
		return path
	}
	return filepath.Join(c.cfg.ExportDir, path)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *CLI) jobCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Create and inspect job files",
	}
	cmd.AddCommand(c.jobNewCommand())
	cmd.AddCommand(c.jobShowCommand())
	return cmd
}

func (c *CLI) jobNewCommand() *cobra.Command {
	var jf jobFlags

	cmd := &cobra.Command{
		Use:   "new [path]",
		Short: "Write a job file from the config defaults and flags",
		Long: `Write a TOML job file. Values not given as flags come from the config defaults.
The room size can be taken from a DXF floor plan with --dxf.
Without a path the file is named after the job.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := c.resolveJob(cmd, &jf, false)
			if err != nil {
				return err
			}
			path := project.JobFileName(job)
			if len(args) == 1 {
				path = args[0]
			}
			written, err := project.SaveJob(path, job)
			if err != nil {
				return err
			}

			c.cfg.AddRecentJob(written, maxRecentJobs)
			if err := project.SaveAppConfig(c.configPath, c.cfg); err != nil {
				loggerFromContext(cmd.Context()).Warn("could not remember job", "err", err)
			}

			out := cmd.OutOrStdout()
			printSuccess(out, "Created job %s", styleValue.Render(job.Name))
			printFile(out, written)
			if err := job.Validate(); err != nil {
				printWarning(out, "Job is not complete yet: %v", err)
			}
			return nil
		},
	}
	jf.register(cmd)
	return cmd
}

func (c *CLI) jobShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Show a job file, or list the recent jobs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				if len(c.cfg.RecentJobs) == 0 {
					printInfo(out, "No recent jobs")
					return nil
				}
				printTitle(out, "Recent jobs")
				for _, p := range c.cfg.RecentJobs {
					printFile(out, p)
				}
				return nil
			}

			job, warnings, err := project.LoadJob(args[0], c.cfg)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(out, job)
			}
			for _, w := range warnings {
				printWarning(out, "%s", w)
			}
			renderJob(out, job)
			if err := job.Validate(); err != nil {
				printWarning(out, "%v", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
