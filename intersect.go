package jigsaw

import (
	"fmt"
	"math"
)

const (
	parallelEpsilon = 1e-10
	dedupeRadius    = 1.0
)

// VertexKey identifies a grid vertex. Rows run 0..rows, columns 0..cols.
type VertexKey struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String returns "{row}_{col}".
func (k VertexKey) String() string {
	return fmt.Sprintf("%d_%d", k.Row, k.Col)
}

// SegmentIntersection returns the point where segment p1-p2 crosses segment
// p3-p4. Parallel or near-parallel pairs and crossings outside either segment
// report false. End points count as part of the segment.
func SegmentIntersection(p1, p2, p3, p4 Vec2) (Vec2, bool) {
	den := (p1.X-p2.X)*(p3.Y-p4.Y) - (p1.Y-p2.Y)*(p3.X-p4.X)
	if math.Abs(den) < parallelEpsilon {
		return Vec2{}, false
	}
	t := ((p1.X-p3.X)*(p3.Y-p4.Y) - (p1.Y-p3.Y)*(p3.X-p4.X)) / den
	u := -((p1.X-p2.X)*(p1.Y-p3.Y) - (p1.Y-p2.Y)*(p1.X-p3.X)) / den
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Vec2{}, false
	}
	return Vec2{X: p1.X + t*(p2.X-p1.X), Y: p1.Y + t*(p2.Y-p1.Y)}, true
}

// PolylineIntersections returns every crossing between the consecutive-point
// segments of a and b, in order of discovery. Segment pairs whose bounding
// boxes are disjoint are skipped before the exact test.
func PolylineIntersections(a, b Path) []Vec2 {
	var out []Vec2
	for i := 0; i+1 < len(a); i++ {
		a0, a1 := a[i], a[i+1]
		for j := 0; j+1 < len(b); j++ {
			b0, b1 := b[j], b[j+1]
			if !boxesOverlap(a0, a1, b0, b1) {
				continue
			}
			if p, ok := SegmentIntersection(a0, a1, b0, b1); ok {
				out = append(out, p)
			}
		}
	}
	return out
}

func boxesOverlap(a0, a1, b0, b1 Vec2) bool {
	return math.Max(a0.X, a1.X) >= math.Min(b0.X, b1.X) &&
		math.Max(b0.X, b1.X) >= math.Min(a0.X, a1.X) &&
		math.Max(a0.Y, a1.Y) >= math.Min(b0.Y, b1.Y) &&
		math.Max(b0.Y, b1.Y) >= math.Min(a0.Y, a1.Y)
}

// dedupePoints drops points lying within radius of an earlier kept point.
func dedupePoints(pts []Vec2, radius float64) []Vec2 {
	out := pts[:0:0]
	for _, p := range pts {
		dup := false
		for _, q := range out {
			if p.Dist(q) < radius {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

// nearestTo returns the candidate closest to target.
func nearestTo(candidates []Vec2, target Vec2) (Vec2, bool) {
	if len(candidates) == 0 {
		return Vec2{}, false
	}
	best := candidates[0]
	bestDist := best.Dist(target)
	for _, c := range candidates[1:] {
		if d := c.Dist(target); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, true
}

// incidentSegments lists the keys of the up to four segments that meet at
// vertex (row, col): the vertical edges above and below it and the
// horizontal edges to its left and right.
func (g *Geometry) incidentSegments(row, col int) []SegmentKey {
	keys := make([]SegmentKey, 0, 4)
	if row > 0 {
		keys = append(keys, SegmentKey{Vertical, col, row - 1})
	}
	if row < g.rows {
		keys = append(keys, SegmentKey{Vertical, col, row})
	}
	if col > 0 {
		keys = append(keys, SegmentKey{Horizontal, row, col - 1})
	}
	if col < g.cols {
		keys = append(keys, SegmentKey{Horizontal, row, col})
	}
	return keys
}

// resolveVertex finds where the sampled curves meeting at (row, col) cross,
// preferring the crossing nearest the straight-grid point. The second result
// is false when no crossing exists and the grid point was used instead.
func (g *Geometry) resolveVertex(row, col int) (Vec2, bool) {
	theoretical := Vec2{X: float64(col) * g.tileSize, Y: float64(row) * g.tileSize}

	keys := g.incidentSegments(row, col)
	paths := make([]Path, len(keys))
	for i, k := range keys {
		paths[i] = g.Sampled(k)
	}

	var candidates []Vec2
	for i := 0; i < len(paths); i++ {
		for j := i + 1; j < len(paths); j++ {
			candidates = append(candidates, PolylineIntersections(paths[i], paths[j])...)
		}
	}
	candidates = dedupePoints(candidates, dedupeRadius)

	if p, ok := nearestTo(candidates, theoretical); ok {
		return p.Round(), true
	}
	return theoretical.Round(), false
}

// FindAllIntersections resolves every grid vertex and returns the result
// keyed by vertex. The table is computed once per grid; later calls return a
// copy of the cached table.
func (g *Geometry) FindAllIntersections() map[VertexKey]Vec2 {
	g.resolveAll()
	out := make(map[VertexKey]Vec2, len(g.intersections))
	for k, v := range g.intersections {
		out[k] = v
	}
	return out
}

func (g *Geometry) resolveAll() {
	if g.resolved {
		return
	}
	if g.intersections == nil {
		g.intersections = make(map[VertexKey]Vec2, (g.rows+1)*(g.cols+1))
	}
	g.fallbacks = g.fallbacks[:0]
	for row := 0; row <= g.rows; row++ {
		for col := 0; col <= g.cols; col++ {
			p, found := g.resolveVertex(row, col)
			key := VertexKey{row, col}
			g.intersections[key] = p
			if !found {
				g.fallbacks = append(g.fallbacks, key)
				g.logger.Warn("jigsaw: no curve crossing at vertex, using grid point",
					"vertex", key.String(), "x", p.X, "y", p.Y, "step", g.step)
			}
		}
	}
	g.resolved = true
}

// Intersection returns the resolved vertex at (row, col), resolving the whole
// grid first if needed.
func (g *Geometry) Intersection(row, col int) Vec2 {
	if row < 0 || row > g.rows || col < 0 || col > g.cols {
		panic(fmt.Sprintf("jigsaw: vertex (%d, %d) outside %dx%d grid", row, col, g.rows, g.cols))
	}
	g.resolveAll()
	return g.intersections[VertexKey{row, col}]
}

// Fallbacks lists the vertices where no curve crossing was found and the
// straight grid point was used. Frequent fallbacks mean the sampling step is
// too coarse for the jitter amplitude.
func (g *Geometry) Fallbacks() []VertexKey {
	g.resolveAll()
	return append([]VertexKey(nil), g.fallbacks...)
}
