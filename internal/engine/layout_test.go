package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/TatamiCut/internal/model"
)

func TestProjectLayout_GroupsIdenticalUnits(t *testing.T) {
	layout := ProjectLayout(allocate(2600, 1820, 2))

	require.Len(t, layout.Groups, 2)
	assert.Empty(t, layout.ExcludedUnitIDs)

	whole := layout.Groups[0]
	assert.Equal(t, model.PatternUnprocessed, whole.Kind)
	assert.Equal(t, 2, whole.UnitCount)
	assert.Equal(t, []string{"stock-1", "stock-3"}, whole.UnitIDs)
	assert.InDelta(t, 100, whole.Utilization(), 1e-9)

	cut := layout.Groups[1]
	assert.Equal(t, model.PatternFromOffcut, cut.Kind)
	require.Len(t, cut.Parts, 3)
	assert.Equal(t, model.DisplayTarget, cut.Parts[0].Type)
	assert.Equal(t, model.DisplayTargetFromOffcut, cut.Parts[1].Type)
	assert.Equal(t, model.DisplayOffcut, cut.Parts[2].Type)
	assert.InDelta(t, 780, cut.Parts[1].Offset, 1e-9)
	assert.InDelta(t, 1560, cut.Parts[2].Offset, 1e-9)
	assert.InDelta(t, 1560.0/1820.0*100, cut.Utilization(), 1e-9)
	assert.Equal(t, 2, cut.TargetCount())

	assert.Equal(t, 3, layout.UnitCount())
}

func TestProjectLayout_RecoveredOffcutsShownAsReused(t *testing.T) {
	layout := ProjectLayout(allocate(1000, 1600, 4))

	require.Len(t, layout.Groups, 2)
	reused := layout.Groups[0]
	assert.Equal(t, []string{"stock-1", "stock-2"}, reused.UnitIDs)
	assert.Equal(t, model.DisplayReusedOffcut, reused.Parts[1].Type)
	assert.InDelta(t, 100, reused.Utilization(), 1e-9)

	plain := layout.Groups[1]
	assert.Equal(t, model.PatternCombined, plain.Kind)
	assert.Equal(t, model.DisplayOffcut, plain.Parts[1].Type)
	assert.InDelta(t, 62.5, plain.Utilization(), 1e-9)

	assert.InDelta(t, 81.25, layout.Utilization(), 1e-9)
}

func TestProjectLayout_ExcludesCrossUnitSources(t *testing.T) {
	plan := model.EmptyPlan()
	plan.StockUnits = []model.StockUnit{
		{ID: "a", Length: 1820, Parts: []model.Part{
			{ID: "a/p1", Type: model.PartTarget, Length: 780, StockUnitID: "a"},
			{ID: "a/p2", Type: model.PartOffcut, Length: 1040, StockUnitID: "a"},
		}},
		{ID: "b", Length: 1820, Parts: []model.Part{
			{ID: "b/p1", Type: model.PartTarget, Length: 1040, StockUnitID: "b"},
			{ID: "b/p2", Type: model.PartTargetFromOffcut, Length: 780, StockUnitID: "b", SourcePartID: "a/p2"},
		}},
	}
	plan.TotalStockUnits = 2

	layout := ProjectLayout(plan)

	assert.Equal(t, []string{"a"}, layout.ExcludedUnitIDs)
	require.Len(t, layout.Groups, 1)
	assert.Equal(t, []string{"b"}, layout.Groups[0].UnitIDs)
	assert.Equal(t, model.PatternFromOffcut, layout.Groups[0].Kind)
}

func TestProjectLayout_SignatureUsesTenths(t *testing.T) {
	plan := model.EmptyPlan()
	for _, id := range []string{"x", "y"} {
		plan.StockUnits = append(plan.StockUnits, model.StockUnit{ID: id, Length: 1000, Parts: []model.Part{
			{ID: id + "/p1", Type: model.PartTarget, Length: 400, StockUnitID: id},
		}})
	}
	plan.StockUnits[1].Parts[0].Length = 400.01

	layout := ProjectLayout(plan)
	require.Len(t, layout.Groups, 1)
	assert.Equal(t, "target:4000", layout.Groups[0].Signature)
	assert.Equal(t, model.PatternNoCut, layout.Groups[0].Kind)
}

func TestProjectLayout_EmptyPlan(t *testing.T) {
	layout := ProjectLayout(model.EmptyPlan())
	assert.NotNil(t, layout.Groups)
	assert.Empty(t, layout.Groups)
	assert.Zero(t, layout.Utilization())
}
