package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// point is a 2D drawing coordinate in millimetres.
type point struct {
	X, Y float64
}

// outline is a closed polygon; the last point connects back to the first.
type outline []point

// segment represents a line segment between two 2D points, used for
// chaining disconnected LINE entities into closed outlines.
type segment struct {
	start point
	end   point
}

// RoomImport holds the room size read from a floor plan drawing.
type RoomImport struct {
	Width    float64 // Bounding box along X
	Depth    float64 // Bounding box along Y
	Outlines int     // Closed shapes found
	Errors   []string
	Warnings []string
}

// ImportRoomDXF reads a floor plan and takes the room size from the bounding box of
// the largest closed shape (LWPOLYLINE or chain of connected LINEs).
func ImportRoomDXF(path string) RoomImport {
	result := RoomImport{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines []outline
	var segments []segment
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			o := lwPolylineToOutline(e)
			if len(o) >= 3 {
				outlines = append(outlines, o)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}
		case *entity.Line:
			segments = append(segments, segment{
				start: point{X: e.Start[0], Y: e.Start[1]},
				end:   point{X: e.End[0], Y: e.End[1]},
			})
		default:
			// Dimensions, text and the like carry no room geometry
		}
	}

	outlines = append(outlines, chainSegments(segments, 0.01)...)
	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	sort.SliceStable(outlines, func(i, j int) bool {
		return outlineArea(outlines[i]) > outlineArea(outlines[j])
	})
	result.Outlines = len(outlines)
	if len(outlines) > 1 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Found %d closed shapes, using the largest", len(outlines)))
	}

	min, max := outlines[0].boundingBox()
	width := max.X - min.X
	depth := max.Y - min.Y
	if width < 0.01 || depth < 0.01 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Room outline is degenerate (%.2f x %.2f mm)", width, depth))
		return result
	}
	if outlineArea(outlines[0]) < width*depth-0.5 {
		result.Warnings = append(result.Warnings, "Room outline is not rectangular, using its bounding box")
	}

	result.Width = round1(width)
	result.Depth = round1(depth)
	return result
}

// lwPolylineToOutline converts a DXF LWPOLYLINE entity to an outline.
// Bulges are ignored; a room wall is taken as the straight chord.
func lwPolylineToOutline(lw *entity.LwPolyline) outline {
	o := make(outline, 0, len(lw.Vertices))
	for _, v := range lw.Vertices {
		o = append(o, point{X: v[0], Y: v[1]})
	}
	if len(o) > 3 && pointsClose(o[0], o[len(o)-1], 0.01) {
		o = o[:len(o)-1]
	}
	return o
}

func (o outline) boundingBox() (point, point) {
	min := point{X: math.Inf(1), Y: math.Inf(1)}
	max := point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range o {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// chainSegments connects individual segments into closed outlines.
// tolerance is the maximum distance between endpoints to consider them connected.
// Open chains are dropped.
func chainSegments(segs []segment, tolerance float64) []outline {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines []outline

	for {
		// Find the first unused segment
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []point{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		// Try to extend the chain
		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		if len(chain) < 4 || !pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			continue
		}
		// Remove the duplicate closing point
		outlines = append(outlines, outline(chain[:len(chain)-1]))
	}

	return outlines
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b point, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}

// outlineArea computes the absolute area of a polygon using the shoelace formula.
func outlineArea(o outline) float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += o[i].X * o[j].Y
		area -= o[j].X * o[i].Y
	}
	return math.Abs(area) / 2
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
