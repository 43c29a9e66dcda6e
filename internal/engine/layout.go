package engine

import (
	"math"
	"strconv"
	"strings"

	"github.com/piwi3910/TatamiCut/internal/model"
)

// ProjectLayout groups the stock units of a plan into display-ready cut patterns.
//
// A unit whose offcut was later cut into a target for another unit is not shown on
// its own. Offcuts that went into a target elsewhere are shown as reused.
// The allocator places pieces cut from an offcut on the unit that owns the offcut, so
// exclusion only happens for hand-built or merged plans.
func ProjectLayout(plan model.CuttingPlan) model.Layout {
	layout := model.Layout{
		Groups:          []model.PatternGroup{},
		ExcludedUnitIDs: []string{},
	}

	owner := make(map[string]string) // part id -> stock unit id
	for _, u := range plan.StockUnits {
		for _, p := range u.Parts {
			owner[p.ID] = u.ID
		}
	}

	reused := make(map[string]bool)
	excluded := make(map[string]bool)
	for _, u := range plan.StockUnits {
		for _, p := range u.Parts {
			if p.Type != model.PartTargetFromOffcut || p.SourcePartID == "" {
				continue
			}
			src, ok := owner[p.SourcePartID]
			if ok && src != u.ID {
				reused[p.SourcePartID] = true
				excluded[src] = true
			}
		}
	}
	for _, r := range plan.Recovered {
		for _, id := range r.SourcePartIDs {
			reused[id] = true
		}
	}

	index := make(map[string]int)
	for _, u := range plan.StockUnits {
		if excluded[u.ID] {
			layout.ExcludedUnitIDs = append(layout.ExcludedUnitIDs, u.ID)
			continue
		}
		parts := diagramParts(u, reused)
		sig := signature(parts)
		if i, ok := index[sig]; ok {
			g := &layout.Groups[i]
			g.UnitCount++
			g.UnitIDs = append(g.UnitIDs, u.ID)
			continue
		}
		index[sig] = len(layout.Groups)
		layout.Groups = append(layout.Groups, model.PatternGroup{
			Signature:   sig,
			Kind:        unitKind(u),
			Parts:       parts,
			UnitCount:   1,
			UnitIDs:     []string{u.ID},
			StockLength: u.Length,
		})
	}
	return layout
}

func diagramParts(u model.StockUnit, reused map[string]bool) []model.DiagramPart {
	parts := make([]model.DiagramPart, 0, len(u.Parts))
	offset := 0.0
	for _, p := range u.Parts {
		parts = append(parts, model.DiagramPart{
			Type:   displayType(p, reused),
			Offset: offset,
			Length: p.Length,
		})
		offset += p.Length
	}
	return parts
}

func displayType(p model.Part, reused map[string]bool) model.DisplayType {
	switch p.Type {
	case model.PartUnprocessed:
		return model.DisplayUnprocessed
	case model.PartTarget:
		return model.DisplayTarget
	case model.PartTargetFromOffcut:
		return model.DisplayTargetFromOffcut
	default:
		if reused[p.ID] {
			return model.DisplayReusedOffcut
		}
		return model.DisplayOffcut
	}
}

// signature encodes the ordered (type, length in tenths) pairs of a diagram.
func signature(parts []model.DiagramPart) string {
	var sb strings.Builder
	for i, p := range parts {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(string(p.Type))
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatInt(int64(math.Round(p.Length*10)), 10))
	}
	return sb.String()
}

func unitKind(u model.StockUnit) model.PatternKind {
	unprocessed := len(u.Parts) > 0
	hasOffcut := false
	for _, p := range u.Parts {
		switch p.Type {
		case model.PartTargetFromOffcut:
			return model.PatternFromOffcut
		case model.PartOffcut:
			hasOffcut = true
		}
		if p.Type != model.PartUnprocessed {
			unprocessed = false
		}
	}
	switch {
	case unprocessed:
		return model.PatternUnprocessed
	case hasOffcut:
		return model.PatternCombined
	default:
		return model.PatternNoCut
	}
}
