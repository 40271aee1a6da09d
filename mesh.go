package jigsaw

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Triangulate returns fan indices over the polygon described by path, three
// per triangle, all sharing the first point. The closing point of a closed
// path is ignored, so indices always address the first len(path)-1 points of
// a closed path.
//
// The fan alone overdraws concave outlines. Drawn with
// ebiten.FillRuleEvenOdd it covers exactly the points for which
// Path.Contains is true, including outlines that touch or cross themselves
// near a corner.
func Triangulate(path Path) []uint32 {
	pts := path
	if path.Closed() {
		pts = path[:len(path)-1]
	}
	n := len(pts)
	if n < 3 {
		return nil
	}
	inds := make([]uint32, 0, (n-2)*3)
	for k := 1; k+1 < n; k++ {
		inds = append(inds, 0, uint32(k), uint32(k+1))
	}
	return inds
}

// PieceMesh builds a textured triangle fan of the piece outline. Vertex
// positions are in piece-local space (the piece bounds origin at 0,0) and
// texture coordinates address a board-sized source image, so drawing the mesh
// with the full picture and the even-odd fill rule cuts the piece out of it.
func PieceMesh(shape PieceShape) ([]ebiten.Vertex, []uint32) {
	inds := Triangulate(shape.Local)
	if len(inds) == 0 {
		return nil, nil
	}
	n := len(shape.Local)
	if shape.Local.Closed() {
		n--
	}

	verts := make([]ebiten.Vertex, n)
	for i := 0; i < n; i++ {
		l := shape.Local[i]
		b := shape.Path[i]
		v := &verts[i]
		v.DstX = float32(l.X)
		v.DstY = float32(l.Y)
		v.SrcX = float32(b.X)
		v.SrcY = float32(b.Y)
		v.ColorR = 1
		v.ColorG = 1
		v.ColorB = 1
		v.ColorA = 1
	}
	return verts, inds
}
