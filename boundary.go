package jigsaw

import "fmt"

// cornerClearance is the distance within which sampled points next to a
// resolved corner are dropped, so the corner itself is the only point there.
const cornerClearance = 1.5

// pieceKey identifies a piece outline by its four bounding segments.
type pieceKey struct {
	top, right, bottom, left SegmentKey
}

// PieceShape packages a piece outline for rendering and hit testing.
type PieceShape struct {
	Row, Col int

	// Path is the closed outline in board coordinates.
	Path Path

	// Bounds is the integer bounding box of Path.
	Bounds Bounds

	// Local is Path translated so Bounds' minimum is the origin; use it as a
	// clip path on a surface of Bounds.Width() x Bounds.Height().
	Local Path

	// Cell is the straight grid cell the piece was cut from.
	Cell Rect
}

// Target returns the board position of the piece surface when the piece is
// placed correctly.
func (s PieceShape) Target() Vec2 {
	return s.Bounds.Min()
}

// CellOffset returns the offset from the piece surface origin to the top-left
// corner of its grid cell.
func (s PieceShape) CellOffset() Vec2 {
	return Vec2{s.Cell.X, s.Cell.Y}.Sub(s.Target())
}

// Index returns row*cols+col.
func (s PieceShape) Index(cols int) int {
	return s.Row*cols + s.Col
}

// PieceBoundary returns the closed outline of piece (row, col): its top edge
// left to right, right edge top to bottom, bottom edge right to left and left
// edge bottom to top, each cut at the resolved corners. Adjacent pieces share
// exactly the same points along their common edge. The returned path must
// not be modified.
//
// The outline is not always a simple polygon: curves that leave a corner at
// steep angles can cross each other within a few pixels of it. Fill it with
// the even-odd or non-zero rule (as Path.Contains, CutPiece and PieceMesh do),
// never by assuming a simple polygon.
func (g *Geometry) PieceBoundary(row, col int) Path {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		panic(fmt.Sprintf("jigsaw: piece (%d, %d) outside %dx%d grid", row, col, g.rows, g.cols))
	}
	key := pieceKey{
		top:    SegmentKey{Horizontal, row, col},
		right:  SegmentKey{Vertical, col + 1, row},
		bottom: SegmentKey{Horizontal, row + 1, col},
		left:   SegmentKey{Vertical, col, row},
	}
	if p, ok := g.boundaries[key]; ok {
		return p
	}
	g.resolveAll()

	tl := g.intersections[VertexKey{row, col}]
	tr := g.intersections[VertexKey{row, col + 1}]
	br := g.intersections[VertexKey{row + 1, col + 1}]
	bl := g.intersections[VertexKey{row + 1, col}]

	top := g.edge(key.top, tl, tr)
	right := g.edge(key.right, tr, br)
	bottom := g.edge(key.bottom, bl, br).Reverse()
	left := g.edge(key.left, tl, bl).Reverse()

	out := make(Path, 0, len(top)+len(right)+len(bottom)+len(left))
	out = append(out, top[:len(top)-1]...)
	out = append(out, right[:len(right)-1]...)
	out = append(out, bottom[:len(bottom)-1]...)
	out = append(out, left[:len(left)-1]...)
	out = append(out, top[0])

	g.boundaries[key] = out
	return out
}

// edge extracts the part of a sampled segment between corners from and to,
// where from lies toward the segment's start. The result begins at from and
// ends at to exactly.
func (g *Geometry) edge(key SegmentKey, from, to Vec2) Path {
	path := g.Sampled(key)
	i0 := nearestIndex(path, from)
	i1 := nearestIndex(path, to)

	out := Path{from}
	dir := 1
	if i1 < i0 {
		dir = -1
	}
	for i := i0; ; i += dir {
		p := path[i]
		if p.Dist(from) > cornerClearance && p.Dist(to) > cornerClearance {
			out = append(out, p)
		}
		if i == i1 {
			break
		}
	}
	return append(out, to)
}

func nearestIndex(path Path, p Vec2) int {
	best := 0
	bestDist := path[0].Dist(p)
	for i := 1; i < len(path); i++ {
		if d := path[i].Dist(p); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Piece returns the packaged outline of piece (row, col).
func (g *Geometry) Piece(row, col int) PieceShape {
	path := g.PieceBoundary(row, col)
	b := path.Bounds()
	return PieceShape{
		Row:    row,
		Col:    col,
		Path:   path,
		Bounds: b,
		Local:  path.Translate(b.Min().Scale(-1)),
		Cell:   g.Cell(row, col),
	}
}

// Pieces returns every piece in row-major order.
func (g *Geometry) Pieces() []PieceShape {
	out := make([]PieceShape, 0, g.rows*g.cols)
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			out = append(out, g.Piece(row, col))
		}
	}
	return out
}
