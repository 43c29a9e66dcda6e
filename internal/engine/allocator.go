package engine

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/TatamiCut/internal/model"
)

// Settings configures an Allocator.
type Settings struct {
	// Logger receives debug traces of allocation decisions. Nil discards them.
	Logger *log.Logger
}

// Allocator cuts joists of a required length out of fixed-length stock.
type Allocator struct {
	Settings Settings
}

func New(settings Settings) *Allocator {
	return &Allocator{Settings: settings}
}

func (a *Allocator) logger() *log.Logger {
	if a.Settings.Logger != nil {
		return a.Settings.Logger
	}
	return log.New(io.Discard)
}

// Allocate plans how to produce count pieces of target length from stock of stockLength.
// Invalid input yields model.EmptyPlan(). The eco flag is recorded on the plan; both
// settings share one allocation strategy.
func (a *Allocator) Allocate(target, stockLength float64, count int, eco bool) model.CuttingPlan {
	logger := a.logger()
	if !validLength(target) || !validLength(stockLength) || count <= 0 {
		logger.Debug("invalid allocation input", "target", target, "stock", stockLength, "count", count)
		return model.EmptyPlan()
	}

	plan := model.EmptyPlan()
	plan.TargetLength = target
	plan.StockLength = stockLength
	plan.RequiredCount = count
	plan.EcoMode = eco

	b := resumeBuilder(&plan, target, logger)
	switch {
	case model.SameLength(stockLength, target):
		b.allocateEqual()
	case stockLength > target:
		b.allocateLonger()
	default:
		b.allocateShorter()
	}
	b.harvestLongOffcuts()
	plan.TotalStockUnits = len(plan.StockUnits)

	logger.Debug("allocation finished",
		"target", target, "stock", stockLength, "count", count, "eco", eco,
		"units", plan.TotalStockUnits, "extra", plan.ExtraTargetsFromOffcuts)
	return plan
}

func validLength(l float64) bool {
	return l > 0 && !math.IsNaN(l) && !math.IsInf(l, 0)
}

// planBuilder accumulates a cutting plan: stock units with their parts, offcut
// entries, composition groups and recovered pieces.
type planBuilder struct {
	plan   *model.CuttingPlan
	target float64
	log    *log.Logger

	comps     compositionIndex
	unitIndex map[string]int
	partSeq   map[string]int
	recovered int
}

// resumeBuilder wraps an existing plan so further steps continue its id sequences.
func resumeBuilder(plan *model.CuttingPlan, target float64, logger *log.Logger) *planBuilder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	b := &planBuilder{
		plan:      plan,
		target:    target,
		log:       logger,
		comps:     newCompositionIndex(plan.Compositions),
		unitIndex: make(map[string]int, len(plan.StockUnits)),
		partSeq:   make(map[string]int, len(plan.StockUnits)),
		recovered: len(plan.Recovered),
	}
	for i, u := range plan.StockUnits {
		b.unitIndex[u.ID] = i
		b.partSeq[u.ID] = len(u.Parts)
	}
	return b
}

// newUnit appends an empty stock unit and returns its id.
func (b *planBuilder) newUnit() string {
	id := fmt.Sprintf("stock-%d", len(b.plan.StockUnits)+1)
	b.plan.StockUnits = append(b.plan.StockUnits, model.StockUnit{
		ID:     id,
		Length: b.plan.StockLength,
		Parts:  []model.Part{},
	})
	b.unitIndex[id] = len(b.plan.StockUnits) - 1
	return id
}

func (b *planBuilder) nextPart(unitID string, t model.PartType, length float64, source string) model.Part {
	b.partSeq[unitID]++
	return model.Part{
		ID:           fmt.Sprintf("%s/p%d", unitID, b.partSeq[unitID]),
		Type:         t,
		Length:       length,
		StockUnitID:  unitID,
		SourcePartID: source,
	}
}

// addPart appends a part to the unit and returns the part id.
func (b *planBuilder) addPart(unitID string, t model.PartType, length float64) string {
	u := &b.plan.StockUnits[b.unitIndex[unitID]]
	p := b.nextPart(unitID, t, length, "")
	u.Parts = append(u.Parts, p)
	return p.ID
}

// cutFromOffcut places a piece taken from a pooled offcut on the unit owning it. The
// piece goes in front of the offcut part, which shrinks or disappears.
func (b *planBuilder) cutFromOffcut(c Consumption) {
	idx, ok := b.unitIndex[c.StockUnitID]
	if !ok {
		return
	}
	u := &b.plan.StockUnits[idx]
	at := -1
	for i, p := range u.Parts {
		if p.ID == c.PartID {
			at = i
			break
		}
	}
	if at < 0 {
		return
	}

	piece := b.nextPart(u.ID, model.PartTargetFromOffcut, c.UsedLength, c.PartID)
	parts := make([]model.Part, 0, len(u.Parts)+1)
	parts = append(parts, u.Parts[:at]...)
	parts = append(parts, piece)
	if c.Remaining > lengthEpsilon {
		offcut := u.Parts[at]
		offcut.Length = c.Remaining
		parts = append(parts, offcut)
	}
	parts = append(parts, u.Parts[at+1:]...)
	u.Parts = parts
}

func (b *planBuilder) record(kind model.PatternKind, lengths []float64, count int) {
	b.plan.Compositions = b.comps.record(b.plan.Compositions, kind, lengths, count)
}

func (b *planBuilder) addSecondary(length float64, count int) {
	b.plan.SecondaryOffcuts = addOffcut(b.plan.SecondaryOffcuts, length, count)
}

func (b *planBuilder) recover(kind model.PatternKind, inputs []float64, sourceIDs []string) {
	b.recoverPiece(kind, b.target, inputs, sourceIDs)
}

func (b *planBuilder) recoverPiece(kind model.PatternKind, length float64, inputs []float64, sourceIDs []string) {
	b.recovered++
	b.plan.Recovered = append(b.plan.Recovered, model.RecoveredPiece{
		ID:            fmt.Sprintf("recovered-%d", b.recovered),
		Kind:          kind,
		Length:        length,
		Inputs:        append([]float64(nil), inputs...),
		SourcePartIDs: append([]string(nil), sourceIDs...),
	})
}

// allocateEqual uses every stock unit whole as one target piece.
func (b *planBuilder) allocateEqual() {
	count := b.plan.RequiredCount
	for i := 0; i < count; i++ {
		id := b.newUnit()
		b.addPart(id, model.PartTarget, b.plan.StockLength)
	}
	b.plan.FullLengthPieces = count
	b.record(model.PatternNoCut, []float64{b.target}, count)
}

// allocateLonger cuts as many targets as fit from each unit. The remainder of each
// unit becomes a primary offcut.
func (b *planBuilder) allocateLonger() {
	count := b.plan.RequiredCount
	stock := b.plan.StockLength
	perStock := int(math.Floor(stock/b.target + lengthEpsilon))
	total := (count + perStock - 1) / perStock

	b.plan.FullLengthPieces = count
	b.record(model.PatternNoCut, []float64{b.target}, count)

	for i := 0; i < total; i++ {
		n := perStock
		if i == total-1 && count%perStock != 0 {
			n = count % perStock
		}
		id := b.newUnit()
		for j := 0; j < n; j++ {
			b.addPart(id, model.PartTarget, b.target)
		}
		if left := stock - b.target*float64(n); left > lengthEpsilon {
			partID := b.addPart(id, model.PartOffcut, left)
			b.plan.Offcuts = addOffcut(b.plan.Offcuts, left, 1, partID)
		}
	}
	b.log.Debug("cut longer stock", "per_stock", perStock, "units", total)

	b.harvestSamePairs()
}

// allocateShorter builds each target from whole stock units plus one shorter piece,
// preferring pooled offcuts for the shorter piece before cutting a new unit.
func (b *planBuilder) allocateShorter() {
	stock := b.plan.StockLength
	pool := &ScrapPool{}

	for i := 0; i < b.plan.RequiredCount; i++ {
		remaining := b.target
		constituents := []float64{}
		for remaining+lengthEpsilon >= stock {
			remaining -= stock
			constituents = append(constituents, stock)
			id := b.newUnit()
			b.addPart(id, model.PartUnprocessed, stock)
			b.plan.UnprocessedStockUnits++
		}
		if remaining <= lengthEpsilon {
			b.record(model.PatternNoCut, constituents, 1)
			continue
		}
		constituents = append(constituents, remaining)

		if c, ok := pool.TryConsume(remaining); ok {
			b.plan.ScrapsUsedCount++
			b.cutFromOffcut(c)
			b.record(model.PatternFromOffcut, constituents, 1)
			b.log.Debug("reused offcut", "unit", c.StockUnitID, "length", remaining, "left", c.Remaining)
			continue
		}

		id := b.newUnit()
		b.addPart(id, model.PartTarget, remaining)
		b.plan.CutStockUnits++
		if left := stock - remaining; left > lengthEpsilon {
			partID := b.addPart(id, model.PartOffcut, left)
			pool.Add(Scrap{Length: left, StockUnitID: id, PartID: partID})
		}
		b.record(model.PatternCombined, constituents, 1)
	}

	b.plan.Offcuts = pool.Entries()
	b.reconcilePairs()
}
