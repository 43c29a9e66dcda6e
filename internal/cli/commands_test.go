package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/TatamiCut/internal/model"
	"github.com/piwi3910/TatamiCut/internal/project"
)

// testEnv points the config and inventory at a temporary directory.
type testEnv struct {
	dir           string
	configPath    string
	inventoryPath string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	return testEnv{
		dir:           dir,
		configPath:    filepath.Join(dir, "config.json"),
		inventoryPath: filepath.Join(dir, "inventory.json"),
	}
}

func (e testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", e.configPath, "--inventory", e.inventoryPath}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (e testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, out)
	return out
}

type joistsOutput struct {
	Job     model.Job           `json:"job"`
	Framing model.FramingLayout `json:"framing"`
	Plan    model.CuttingPlan   `json:"plan"`
	Layout  model.Layout        `json:"layout"`
}

func TestJoistsFromRoom(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "joists", "-W", "1820", "-D", "3640", "--stock", "4000", "--json")

	var got joistsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, 3640.0, got.Plan.TargetLength)
	assert.Equal(t, 4000.0, got.Plan.StockLength)
	assert.Equal(t, got.Framing.Columns, got.Plan.RequiredCount)
	assert.Positive(t, got.Plan.RequiredCount)
	assert.Positive(t, got.Plan.TotalStockUnits)
	assert.Equal(t, len(got.Plan.StockUnits), got.Layout.UnitCount()+len(got.Layout.ExcludedUnitIDs))
}

func TestJoistsDirectPiecesSkipRoom(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "joists", "--length", "1000", "--count", "4", "--stock", "1600", "--json")

	var got joistsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 4, got.Plan.RequiredCount)
	assert.Equal(t, 1000.0, got.Plan.TargetLength)
	assert.True(t, got.Framing.IsZero())
}

func TestJoistsReport(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "joists", "-W", "1820", "-D", "3640", "--name", "Six mat room")

	assert.Contains(t, out, "Six mat room")
	assert.Contains(t, out, "Cut patterns")
	assert.Contains(t, out, "Framing")
	assert.Contains(t, out, "Plywood")
	assert.Contains(t, out, "Insulation")
}

func TestJoistsReportOffcutsAndPieceShare(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "joists", "--length", "1000", "--count", "4", "--stock", "1600")

	assert.Contains(t, out, "Offcut pieces left")
	assert.Contains(t, out, "Cut into pieces")
	assert.Contains(t, out, "Offcuts left over")
}

func TestJoistsWritesExports(t *testing.T) {
	env := newTestEnv(t)
	pdfPath := filepath.Join(env.dir, "cutlist.pdf")
	labelPath := filepath.Join(env.dir, "labels.pdf")
	xlsxPath := filepath.Join(env.dir, "cutlist.xlsx")

	out := env.mustRun(t, "joists", "-W", "1820", "-D", "3640",
		"--pdf", pdfPath, "--labels", labelPath, "--xlsx", xlsxPath)

	for _, p := range []string{pdfPath, labelPath, xlsxPath} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
		assert.Contains(t, out, p)
	}
}

func TestJoistsInvalidJob(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "joists")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid job")
	assert.Contains(t, err.Error(), "room.width")
}

func TestCompare(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "compare", "--length", "1000", "--count", "4", "--lengths", "1600,2000", "--json")

	var rows []comparisonRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)

	best := 0
	for _, r := range rows {
		assert.Positive(t, r.UnitsUsed)
		if r.Best {
			best++
		}
	}
	assert.Equal(t, 1, best)
}

func TestCompareReportMarksBest(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "compare", "--length", "1000", "--count", "4", "--lengths", "1600,2000")
	assert.Contains(t, out, "Best:")
}

func TestPlywood(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "plywood", "-W", "1820", "-D", "3640",
		"--plywood-width", "910", "--plywood-length", "1820", "--json")

	var got model.SheetPlan
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 4, got.TotalSheets)
	assert.InDelta(t, 100.0, got.Utilization, 0.01)
}

func TestInsulation(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "insulation", "-W", "1820", "-D", "3640")
	assert.Contains(t, out, "Framing")
	assert.Contains(t, out, "Boards")
}

func TestHeights(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "heights", "--tatami", "55", "--flooring", "12", "--plywood", "12", "--json")

	var stacks []model.HeightStack
	require.NoError(t, json.Unmarshal([]byte(out), &stacks))
	require.Len(t, stacks, 2)
	for _, s := range stacks {
		assert.True(t, s.OnSide)
		assert.Equal(t, 54.0, s.Total)
	}
}

func TestHeightsNoMatch(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "heights", "--tatami", "500", "--flooring", "12")
	assert.Contains(t, out, "No joist and plywood combination")
}

func TestJobNewAndShow(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.dir, "six-mat")

	out := env.mustRun(t, "job", "new", path, "--name", "Six mat", "-W", "2730", "-D", "3640", "--stock", "4000")
	assert.Contains(t, out, "Created job")

	job, _, err := project.LoadJob(path+".toml", model.DefaultAppConfig())
	require.NoError(t, err)
	assert.Equal(t, "Six mat", job.Name)
	assert.Equal(t, 2730.0, job.Room.Width)
	assert.Equal(t, 4000.0, job.Joist.StockLength)

	cfg, err := project.LoadAppConfig(env.configPath)
	require.NoError(t, err)
	assert.Equal(t, []string{path + ".toml"}, cfg.RecentJobs)

	out = env.mustRun(t, "job", "show")
	assert.Contains(t, out, path+".toml")

	out = env.mustRun(t, "job", "show", path+".toml")
	assert.Contains(t, out, "Six mat")
	assert.Contains(t, out, "2730 mm")
}

func TestJobFileWithFlagOverride(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.dir, "room.toml")
	env.mustRun(t, "job", "new", path, "-W", "1820", "-D", "3640")

	out := env.mustRun(t, "joists", "--job", path, "-D", "2730", "--json")
	var got joistsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1820.0, got.Job.Room.Width)
	assert.Equal(t, 2730.0, got.Plan.TargetLength)
}

func TestConfigInit(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "config", "init")
	_, err := os.Stat(env.configPath)
	require.NoError(t, err)

	_, err = env.run(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	env.mustRun(t, "config", "init", "--force")

	out := env.mustRun(t, "config", "show")
	var cfg model.AppConfig
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, model.DefaultAppConfig().DefaultStockLength, cfg.DefaultStockLength)
}

func TestInventoryImportCSV(t *testing.T) {
	env := newTestEnv(t)
	csvPath := filepath.Join(env.dir, "lumber.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("name,width,height\nTaruki,27,40\nBad,x,40\n"), 0644))

	out := env.mustRun(t, "inventory", "import", csvPath, "--thicknesses", "9, 28")
	assert.Contains(t, out, "Added 1 of 1 joist sizes")
	assert.Contains(t, out, "Added 1 plywood thicknesses")

	inv, err := project.LoadInventory(env.inventoryPath)
	require.NoError(t, err)
	assert.NotNil(t, inv.FindJoistByName("Taruki"))
	assert.Contains(t, inv.PlywoodThicknesses, 28.0)

	out = env.mustRun(t, "inventory", "list")
	assert.Contains(t, out, "Taruki")
}

func TestInventoryImportNothing(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "inventory", "import")
	require.Error(t, err)
}

func TestBackupRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	backup := filepath.Join(env.dir, "backup.json")
	env.mustRun(t, "inventory", "import", "--thicknesses", "21")
	env.mustRun(t, "backup", "export", backup)

	other := newTestEnv(t)
	out := other.mustRun(t, "backup", "import", backup)
	assert.Contains(t, out, "Restored backup")

	inv, err := project.LoadInventory(other.inventoryPath)
	require.NoError(t, err)
	assert.Contains(t, inv.PlywoodThicknesses, 21.0)
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.0", "abc123", "2026-01-01")
	t.Cleanup(func() { SetVersion("dev", "none", "unknown") })

	env := newTestEnv(t)
	out := env.mustRun(t, "--version")
	assert.Contains(t, out, "1.2.0")
	assert.Contains(t, out, "abc123")
}
