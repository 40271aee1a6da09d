package jigsaw

import (
	"fmt"
	"math/rand/v2"
)

// Axis selects the orientation of a grid line.
type Axis uint8

const (
	Vertical   Axis = iota // line of constant x, runs top to bottom
	Horizontal             // line of constant y, runs left to right
)

const (
	minControlPoints = 3
	maxControlPoints = 5

	// slotMargin keeps control points away from the ends of their slot so
	// neighbours never bunch together.
	slotMargin = 0.1

	// jitterSpan is the full cross-axis range as a fraction of the tile size;
	// offsets fall within ±jitterSpan/2.
	jitterSpan = 0.2
)

// SegmentKey identifies one edge of one grid cell. For vertical segments Line
// is the column of the grid line and Index the row of the cell it bounds; for
// horizontal segments Line is the row and Index the column.
type SegmentKey struct {
	Axis  Axis
	Line  int
	Index int
}

// String returns "v_{col}_{row}" or "h_{row}_{col}".
func (k SegmentKey) String() string {
	if k.Axis == Vertical {
		return fmt.Sprintf("v_%d_%d", k.Line, k.Index)
	}
	return fmt.Sprintf("h_%d_%d", k.Line, k.Index)
}

// GenerateSegment builds the control polyline for one cell edge from start to
// end. Border edges are returned straight as [start, end]. Interior edges get
// three to five control points, one per evenly sized slot along the main
// axis, each displaced on the cross axis by up to ±10% of tileSize.
//
// The result is random; a puzzle generates its segments once and reuses them.
func GenerateSegment(rng *rand.Rand, start, end Vec2, vertical, border bool, tileSize float64) Path {
	if border {
		return Path{start, end}
	}

	length := end.X - start.X
	if vertical {
		length = end.Y - start.Y
	}
	count := minControlPoints + rng.IntN(maxControlPoints-minControlPoints+1)
	slot := length / float64(count)

	pts := make(Path, 0, count+2)
	pts = append(pts, start)
	for k := 0; k < count; k++ {
		lo := slot*float64(k) + slot*slotMargin
		hi := slot*float64(k+1) - slot*slotMargin
		main := lo + rng.Float64()*(hi-lo)
		cross := (rng.Float64() - 0.5) * tileSize * jitterSpan

		if vertical {
			pts = append(pts, Vec2{X: start.X + cross, Y: start.Y + main})
		} else {
			pts = append(pts, Vec2{X: start.X + main, Y: start.Y + cross})
		}
	}
	return append(pts, end)
}

// generateGrid fills the vertical and horizontal segment tables for a
// rows x cols grid. Vertical lines are generated before horizontal ones.
func generateGrid(rng *rand.Rand, rows, cols int, tileSize float64) (vertical, horizontal [][]Path) {
	vertical = make([][]Path, cols+1)
	for i := 0; i <= cols; i++ {
		vertical[i] = make([]Path, rows)
		border := i == 0 || i == cols
		for j := 0; j < rows; j++ {
			start := Vec2{X: float64(i) * tileSize, Y: float64(j) * tileSize}
			end := Vec2{X: float64(i) * tileSize, Y: float64(j+1) * tileSize}
			vertical[i][j] = GenerateSegment(rng, start, end, true, border, tileSize)
		}
	}

	horizontal = make([][]Path, rows+1)
	for j := 0; j <= rows; j++ {
		horizontal[j] = make([]Path, cols)
		border := j == 0 || j == rows
		for i := 0; i < cols; i++ {
			start := Vec2{X: float64(i) * tileSize, Y: float64(j) * tileSize}
			end := Vec2{X: float64(i+1) * tileSize, Y: float64(j) * tileSize}
			horizontal[j][i] = GenerateSegment(rng, start, end, false, border, tileSize)
		}
	}
	return vertical, horizontal
}
