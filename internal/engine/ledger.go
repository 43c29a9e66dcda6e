package engine

import (
	"math"
	"sort"

	"github.com/piwi3910/TatamiCut/internal/model"
)

// lengthEpsilon absorbs floating point noise in length arithmetic.
const lengthEpsilon = 1e-9

// Scrap is a single in-flight offcut that can still be cut from.
type Scrap struct {
	Length      float64
	StockUnitID string
	PartID      string
}

// Consumption describes a successful take from the scrap pool.
type Consumption struct {
	UsedLength  float64
	Remaining   float64 // Length left on the scrap, 0 when it was used up
	StockUnitID string
	PartID      string
}

// ScrapPool holds the individual offcuts produced while cutting stock shorter
// than the target. It is only used within a single allocation.
type ScrapPool struct {
	scraps []Scrap
}

// Add puts an offcut into the pool. Non-positive lengths are ignored.
func (p *ScrapPool) Add(s Scrap) {
	if s.Length <= lengthEpsilon {
		return
	}
	p.scraps = append(p.scraps, s)
}

// Len returns the number of scraps in the pool.
func (p *ScrapPool) Len() int {
	return len(p.scraps)
}

// TryConsume takes required length from the longest-first scrap that can hold it.
// The scrap is shortened in place and dropped once nothing is left.
func (p *ScrapPool) TryConsume(required float64) (Consumption, bool) {
	if required <= 0 || math.IsNaN(required) {
		return Consumption{}, false
	}
	sort.SliceStable(p.scraps, func(i, j int) bool {
		return p.scraps[i].Length > p.scraps[j].Length
	})
	for i := range p.scraps {
		s := &p.scraps[i]
		if s.Length+lengthEpsilon < required {
			continue
		}
		s.Length -= required
		c := Consumption{
			UsedLength:  required,
			Remaining:   s.Length,
			StockUnitID: s.StockUnitID,
			PartID:      s.PartID,
		}
		if s.Length <= lengthEpsilon {
			c.Remaining = 0
			p.scraps = append(p.scraps[:i], p.scraps[i+1:]...)
		}
		return c, true
	}
	return Consumption{}, false
}

// Entries aggregates the remaining scraps into offcut entries, longest first.
func (p *ScrapPool) Entries() []model.OffcutEntry {
	sort.SliceStable(p.scraps, func(i, j int) bool {
		return p.scraps[i].Length > p.scraps[j].Length
	})
	entries := []model.OffcutEntry{}
	for _, s := range p.scraps {
		entries = addOffcut(entries, s.Length, 1, s.PartID)
	}
	return entries
}

// addOffcut merges count pieces of length into entries, matching within the tolerance.
func addOffcut(entries []model.OffcutEntry, length float64, count int, sourceIDs ...string) []model.OffcutEntry {
	if count <= 0 || length <= lengthEpsilon {
		return entries
	}
	for i := range entries {
		if model.SameLength(entries[i].Length, length) {
			entries[i].Count += count
			entries[i].SourcePartIDs = append(entries[i].SourcePartIDs, sourceIDs...)
			return entries
		}
	}
	return append(entries, model.OffcutEntry{
		Length:        length,
		Count:         count,
		SourcePartIDs: append([]string(nil), sourceIDs...),
	})
}

// pruneOffcuts drops entries whose count reached zero.
func pruneOffcuts(entries []model.OffcutEntry) []model.OffcutEntry {
	kept := entries[:0]
	for _, e := range entries {
		if e.Count > 0 {
			kept = append(kept, e)
		}
	}
	return kept
}

// takeSources pops up to n source part ids from the front of the entry.
func takeSources(e *model.OffcutEntry, n int) []string {
	if n > len(e.SourcePartIDs) {
		n = len(e.SourcePartIDs)
	}
	if n <= 0 {
		return nil
	}
	ids := append([]string(nil), e.SourcePartIDs[:n]...)
	e.SourcePartIDs = e.SourcePartIDs[n:]
	return ids
}

// ReconcilePairs joins primary offcuts of plan into extra target pieces. Equal-length
// pairs are tried first for each entry, then pairs with every shorter entry. Any
// excess over the target is kept as a secondary offcut. Returns the number of
// extra targets produced.
func ReconcilePairs(plan *model.CuttingPlan, target float64) int {
	if plan == nil || !validLength(target) {
		return 0
	}
	b := resumeBuilder(plan, target, nil)
	return b.reconcilePairs()
}

func (b *planBuilder) reconcilePairs() int {
	offcuts := b.plan.Offcuts
	sort.SliceStable(offcuts, func(i, j int) bool {
		return offcuts[i].Length > offcuts[j].Length
	})

	extra := 0
	for i := range offcuts {
		first := &offcuts[i]
		if first.Count <= 0 {
			continue
		}
		extra += b.harvestSamePair(first)

		for j := i + 1; j < len(offcuts); j++ {
			second := &offcuts[j]
			if first.Count <= 0 {
				break
			}
			if second.Count <= 0 || first.Length+second.Length+lengthEpsilon < b.target {
				continue
			}
			n := min(first.Count, second.Count)
			first.Count -= n
			second.Count -= n
			extra += n

			inputs := []float64{first.Length, second.Length}
			b.addSecondary(first.Length+second.Length-b.target, n)
			b.record(model.PatternDifferentOffcutPair, inputs, n)
			for k := 0; k < n; k++ {
				ids := append(takeSources(first, 1), takeSources(second, 1)...)
				b.recover(model.PatternDifferentOffcutPair, inputs, ids)
			}
			b.log.Debug("joined offcut pair", "first", first.Length, "second", second.Length, "count", n)
		}
	}

	b.plan.Offcuts = pruneOffcuts(offcuts)
	b.plan.ExtraTargetsFromOffcuts += extra
	return extra
}

// harvestSamePairs joins equal offcuts of each primary entry.
func (b *planBuilder) harvestSamePairs() int {
	extra := 0
	for i := range b.plan.Offcuts {
		extra += b.harvestSamePair(&b.plan.Offcuts[i])
	}
	b.plan.Offcuts = pruneOffcuts(b.plan.Offcuts)
	b.plan.ExtraTargetsFromOffcuts += extra
	return extra
}

// harvestSamePair joins pieces of a single entry two at a time. The caller adds the
// returned count to the plan total.
func (b *planBuilder) harvestSamePair(e *model.OffcutEntry) int {
	if e.Count < 2 || e.Length*2+lengthEpsilon < b.target {
		return 0
	}
	n := min(e.Count/2, int(math.Floor(e.Length*2/b.target+lengthEpsilon)))
	if n <= 0 {
		return 0
	}
	e.Count -= 2 * n

	inputs := []float64{e.Length, e.Length}
	b.addSecondary(e.Length*2-b.target, n)
	b.record(model.PatternSameOffcutPair, inputs, n)
	for k := 0; k < n; k++ {
		b.recover(model.PatternSameOffcutPair, inputs, takeSources(e, 2))
	}
	b.log.Debug("joined equal offcuts", "length", e.Length, "count", n)
	return n
}

// harvestLongOffcuts cuts whole targets out of primary offcuts at least as long as the
// target. Harvested entries leave the primary list; what is left of each piece is a
// secondary offcut.
func (b *planBuilder) harvestLongOffcuts() int {
	extra := 0
	for i := range b.plan.Offcuts {
		e := &b.plan.Offcuts[i]
		if e.Count <= 0 || e.Length+lengthEpsilon < b.target {
			continue
		}
		per := int(math.Floor(e.Length/b.target + lengthEpsilon))
		produced := per * e.Count
		extra += produced

		b.addSecondary(e.Length-float64(per)*b.target, e.Count)
		b.record(model.PatternFromOffcut, []float64{b.target}, produced)
		for k := 0; k < e.Count; k++ {
			ids := takeSources(e, 1)
			for n := 0; n < per; n++ {
				b.recoverPiece(model.PatternFromOffcut, b.target, []float64{e.Length}, ids)
			}
		}
		b.log.Debug("cut targets from long offcut", "length", e.Length, "count", e.Count, "per_offcut", per)
		e.Count = 0
	}
	b.plan.Offcuts = pruneOffcuts(b.plan.Offcuts)
	b.plan.ExtraTargetsFromOffcuts += extra
	return extra
}
