package engine

import (
	"fmt"

	"github.com/piwi3910/TatamiCut/internal/model"
)

// ComparisonResult holds the cutting plan and computed statistics for one stock length.
type ComparisonResult struct {
	Name            string
	StockLength     float64
	Plan            model.CuttingPlan
	UnitsUsed       int
	PurchasedLength float64
	OffcutLength    float64
	WastePercent    float64
}

// CompareStockLengths allocates the same job against each stock length and returns
// the results in input order. This shows what-if alternatives such as buying
// 3640mm stock instead of 1820mm. Stock lengths that produce no plan are skipped.
func CompareStockLengths(settings Settings, target float64, count int, stockLengths []float64, eco bool) []ComparisonResult {
	alloc := New(settings)
	results := make([]ComparisonResult, 0, len(stockLengths))

	for _, stock := range stockLengths {
		plan := alloc.Allocate(target, stock, count, eco)
		if plan.IsEmpty() {
			continue
		}

		purchased := plan.TotalStockLength()
		offcut := plan.TotalOffcutLength()
		// Everything bought that does not end up in a target piece.
		used := target * float64(count+plan.ExtraTargetsFromOffcuts)
		wastePercent := 0.0
		if purchased > 0 {
			wastePercent = (purchased - used) / purchased * 100.0
			if wastePercent < 0 {
				wastePercent = 0
			}
		}

		results = append(results, ComparisonResult{
			Name:            fmt.Sprintf("%.0fmm stock", stock),
			StockLength:     stock,
			Plan:            plan,
			UnitsUsed:       plan.TotalStockUnits,
			PurchasedLength: purchased,
			OffcutLength:    offcut,
			WastePercent:    wastePercent,
		})
	}

	return results
}

// BestComparison returns the result that buys the least total length, preferring
// fewer units on a tie. The second return value is false when results is empty.
func BestComparison(results []ComparisonResult) (ComparisonResult, bool) {
	if len(results) == 0 {
		return ComparisonResult{}, false
	}
	best := results[0]
	for _, r := range results[1:] {
		switch {
		case r.PurchasedLength < best.PurchasedLength-model.LengthTolerance:
			best = r
		case model.SameLength(r.PurchasedLength, best.PurchasedLength) && r.UnitsUsed < best.UnitsUsed:
			best = r
		}
	}
	return best, true
}

// DefaultStockLengths are common joist stock lengths in millimetres.
var DefaultStockLengths = []float64{1820, 3000, 3640, 4000}
