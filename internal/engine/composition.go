package engine

import (
	"math"
	"strconv"

	"github.com/piwi3910/TatamiCut/internal/model"
)

// compositionIndex deduplicates composition groups by pattern kind and ordered lengths.
// Lengths are keyed in whole tenths of a millimetre; a tolerant scan catches values
// that straddle a rounding boundary.
type compositionIndex struct {
	index map[string]int
}

func newCompositionIndex(groups []model.CompositionGroup) compositionIndex {
	ci := compositionIndex{index: make(map[string]int, len(groups))}
	for i, g := range groups {
		ci.index[compositionKey(g.Kind, g.Lengths)] = i
	}
	return ci
}

// compositionKey builds the structural key: kind, then each length in tenths.
func compositionKey(kind model.PatternKind, lengths []float64) string {
	buf := strconv.AppendInt(nil, int64(kind), 10)
	for _, l := range lengths {
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, int64(math.Round(l*10)), 10)
	}
	return string(buf)
}

// record adds count occurrences of a pattern, merging with an existing group when
// the kind matches and the lengths agree element-wise within the tolerance.
func (ci compositionIndex) record(groups []model.CompositionGroup, kind model.PatternKind, lengths []float64, count int) []model.CompositionGroup {
	if count <= 0 {
		return groups
	}
	key := compositionKey(kind, lengths)
	if i, ok := ci.index[key]; ok {
		groups[i].Count += count
		return groups
	}
	for i := range groups {
		if groups[i].Kind == kind && lengthsEqual(groups[i].Lengths, lengths) {
			groups[i].Count += count
			ci.index[key] = i
			return groups
		}
	}
	groups = append(groups, model.CompositionGroup{
		Kind:    kind,
		Lengths: append([]float64(nil), lengths...),
		Count:   count,
	})
	ci.index[key] = len(groups) - 1
	return groups
}

func lengthsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !model.SameLength(a[i], b[i]) {
			return false
		}
	}
	return true
}

// RecordComposition adds count occurrences of a pattern to the plan's composition groups.
func RecordComposition(plan *model.CuttingPlan, kind model.PatternKind, lengths []float64, count int) {
	ci := newCompositionIndex(plan.Compositions)
	plan.Compositions = ci.record(plan.Compositions, kind, lengths, count)
}
