package jigsaw

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// NewPieceImage cuts one piece out of a board-sized picture on the GPU. The
// result is the size of the piece bounds with everything outside the outline
// transparent. The fan mesh is filled with the even-odd rule, so the covered
// pixels match Path.Contains and CutPiece.
func NewPieceImage(src *ebiten.Image, shape PieceShape) *ebiten.Image {
	w, h := shape.Bounds.Width(), shape.Bounds.Height()
	img := ebiten.NewImage(max(w, 1), max(h, 1))
	verts, inds := PieceMesh(shape)
	if len(inds) == 0 {
		return img
	}
	if o := src.Bounds().Min; o.X != 0 || o.Y != 0 {
		for i := range verts {
			verts[i].SrcX += float32(o.X)
			verts[i].SrcY += float32(o.Y)
		}
	}
	img.DrawTriangles32(verts, inds, src, &ebiten.DrawTrianglesOptions{
		FillRule:  ebiten.FillRuleEvenOdd,
		AntiAlias: true,
	})
	return img
}

// DrawOutline strokes path onto dst, shifted by offset.
func DrawOutline(dst *ebiten.Image, path Path, offset Vec2, width float32, clr color.Color) {
	for i := 0; i+1 < len(path); i++ {
		a := path[i].Add(offset)
		b := path[i+1].Add(offset)
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, clr, true)
	}
}

// PieceSprites holds one cut image per piece of a board.
type PieceSprites struct {
	images  []*ebiten.Image
	Outline color.Color // nil disables outlines
}

// NewPieceSprites cuts every piece of g out of src.
func NewPieceSprites(src *ebiten.Image, g *Geometry) *PieceSprites {
	shapes := g.Pieces()
	s := &PieceSprites{
		images:  make([]*ebiten.Image, len(shapes)),
		Outline: color.NRGBA{0x33, 0x33, 0x33, 0xff},
	}
	for i, shape := range shapes {
		s.images[i] = NewPieceImage(src, shape)
	}
	return s
}

// Image returns the cut image of piece i.
func (s *PieceSprites) Image(i int) *ebiten.Image {
	return s.images[i]
}

// Draw renders every piece of b at its display position in draw order,
// shifted by origin.
func (s *PieceSprites) Draw(dst *ebiten.Image, b *Board, origin Vec2) {
	for _, i := range b.Order() {
		p := b.Piece(i)
		at := p.Display.Add(origin)
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(at.X, at.Y)
		dst.DrawImage(s.images[i], &op)
		if s.Outline != nil {
			DrawOutline(dst, p.Shape.Local, at, 1.5, s.Outline)
		}
	}
}

// Dispose releases every piece image.
func (s *PieceSprites) Dispose() {
	for _, img := range s.images {
		img.Deallocate()
	}
	s.images = nil
}
