package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TatamiCut/internal/engine"
	"github.com/piwi3910/TatamiCut/internal/export"
	"github.com/piwi3910/TatamiCut/internal/model"
)

// pieceFlags override the piece length and count derived from the room.
type pieceFlags struct {
	length float64
	count  int
}

func (f *pieceFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&f.length, "length", "l", 0, "piece length (default: room depth)")
	cmd.Flags().IntVarP(&f.count, "count", "n", 0, "number of pieces (default: joist columns)")
}

// direct reports whether both piece flags were given, so no room is needed.
func (f *pieceFlags) direct(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("length") && cmd.Flags().Changed("count")
}

// pieces returns the target length and count for the allocator.
func (f *pieceFlags) pieces(cmd *cobra.Command, job model.Job, framing model.FramingLayout) (float64, int) {
	target, count := job.Room.Depth, framing.Columns
	if cmd.Flags().Changed("length") {
		target = f.length
	}
	if cmd.Flags().Changed("count") {
		count = f.count
	}
	return target, count
}

func (c *CLI) joistsCommand() *cobra.Command {
	var (
		jf jobFlags
		pf pieceFlags
		ef exportFlags
	)

	cmd := &cobra.Command{
		Use:   "joists",
		Short: "Plan how to cut the joists from stock lengths",
		Long: `Plan how to cut the joists from stock lengths.

By default one joist runs along the room depth for every column of the framing
layout. Use --length and --count to plan arbitrary pieces instead. Offcuts are
reused for later pieces and joined in pairs where two of them make a piece.`,
		Example: `  tatamicut joists -W 2730 -D 3640 -s 4000
  tatamicut joists --job six-mat.toml --pdf cutlist.pdf --labels labels.pdf
  tatamicut joists --length 2600 --count 6 --stock 1820 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := c.resolveJob(cmd, &jf, !pf.direct(cmd))
			if err != nil {
				return err
			}
			framing := job.Framing()
			target, count := pf.pieces(cmd, job, framing)

			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)
			plan := engine.New(engine.Settings{Logger: logger}).Allocate(target, job.Joist.StockLength, count, job.Joist.EcoMode)
			if plan.IsEmpty() {
				return fmt.Errorf("no cutting plan for %d pieces of %g mm from %g mm stock", count, target, job.Joist.StockLength)
			}
			prog.done(fmt.Sprintf("Allocated %d pieces", count))

			doc := export.Document{
				Title:     job.Name,
				Plan:      plan,
				Layout:    engine.ProjectLayout(plan),
				CreatedAt: time.Now(),
			}
			if !pf.direct(cmd) {
				doc.Framing = framing
				doc.Sheets = model.CalculateSheetPlan(job.Room.Width, job.Room.Depth, job.Plywood.Width, job.Plywood.Length)
				doc.Insulation = model.CalculateInsulation(framing, job.Board())
			}

			out := cmd.OutOrStdout()
			if ef.json {
				if err := writeJSON(out, struct {
					Job     model.Job           `json:"job"`
					Framing model.FramingLayout `json:"framing"`
					Plan    model.CuttingPlan   `json:"plan"`
					Layout  model.Layout        `json:"layout"`
				}{job, doc.Framing, doc.Plan, doc.Layout}); err != nil {
					return err
				}
			} else {
				renderPlanReport(out, doc)
			}
			return c.writeExports(cmd, out, doc, ef)
		},
	}
	jf.register(cmd)
	pf.register(cmd)
	ef.register(cmd, true)
	return cmd
}

// writeExports writes the requested files. With --json the paths go to the log so
// stdout stays valid JSON.
func (c *CLI) writeExports(cmd *cobra.Command, out io.Writer, doc export.Document, ef exportFlags) error {
	logger := loggerFromContext(cmd.Context())
	written := func(path string) {
		if ef.json {
			logger.Info("wrote", "path", path)
			return
		}
		printFile(out, path)
	}

	if ef.pdf != "" {
		path := c.exportPath(ef.pdf)
		if err := export.ExportPDF(path, doc); err != nil {
			return fmt.Errorf("failed to export PDF: %w", err)
		}
		written(path)
	}
	if ef.labels != "" {
		path := c.exportPath(ef.labels)
		if err := export.ExportLabels(path, doc.Title, doc.Plan); err != nil {
			return fmt.Errorf("failed to export labels: %w", err)
		}
		written(path)
	}
	if ef.xlsx != "" {
		path := c.exportPath(ef.xlsx)
		if err := export.ExportWorkbook(path, doc); err != nil {
			return fmt.Errorf("failed to export workbook: %w", err)
		}
		written(path)
	}
	return nil
}

func (c *CLI) compareCommand() *cobra.Command {
	var (
		jf      jobFlags
		pf      pieceFlags
		asJSON  bool
		lengths []float64
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare stock lengths for the same joists",
		Long: `Plan the same joists against several stock lengths and show how many units
each needs, the total length bought and the waste.

Stock lengths come from --lengths, then the job file, then the inventory.`,
		Example: `  tatamicut compare -W 2730 -D 3640 --lengths 1820,3640,4000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := c.resolveJob(cmd, &jf, !pf.direct(cmd))
			if err != nil {
				return err
			}
			target, count := pf.pieces(cmd, job, job.Framing())

			if !cmd.Flags().Changed("lengths") {
				lengths = job.Joist.CompareLengths
			}
			if len(lengths) == 0 {
				inv, err := c.loadInventory()
				if err != nil {
					return err
				}
				lengths = inv.StockLengths()
			}
			if len(lengths) == 0 {
				lengths = engine.DefaultStockLengths
			}

			logger := loggerFromContext(cmd.Context())
			results := engine.CompareStockLengths(engine.Settings{Logger: logger}, target, count, lengths, job.Joist.EcoMode)
			if len(results) == 0 {
				return fmt.Errorf("no stock length gives a cutting plan for %d pieces of %g mm", count, target)
			}
			best, _ := engine.BestComparison(results)

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, comparisonJSON(results, best))
			}
			renderComparison(out, target, count, results, best)
			return nil
		},
	}
	jf.register(cmd)
	pf.register(cmd)
	cmd.Flags().Float64SliceVar(&lengths, "lengths", nil, "stock lengths to compare (mm)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of the report")
	return cmd
}

type comparisonRow struct {
	Name            string  `json:"name"`
	StockLength     float64 `json:"stock_length"`
	UnitsUsed       int     `json:"units_used"`
	PurchasedLength float64 `json:"purchased_length"`
	OffcutLength    float64 `json:"offcut_length"`
	WastePercent    float64 `json:"waste_percent"`
	ExtraPieces     int     `json:"extra_pieces"`
	Best            bool    `json:"best"`
}

func comparisonJSON(results []engine.ComparisonResult, best engine.ComparisonResult) []comparisonRow {
	rows := make([]comparisonRow, len(results))
	for i, r := range results {
		rows[i] = comparisonRow{
			Name:            r.Name,
			StockLength:     r.StockLength,
			UnitsUsed:       r.UnitsUsed,
			PurchasedLength: r.PurchasedLength,
			OffcutLength:    r.OffcutLength,
			WastePercent:    r.WastePercent,
			ExtraPieces:     r.Plan.ExtraTargetsFromOffcuts,
			Best:            model.SameLength(r.StockLength, best.StockLength),
		}
	}
	return rows
}
