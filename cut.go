package jigsaw

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"
)

// RasterizeMask fills the piece outline into an alpha mask the size of the
// piece bounds. Edge pixels carry anti-aliased partial coverage, so the masks
// of neighbouring pieces add up along their shared edge.
func RasterizeMask(shape PieceShape) *image.Alpha {
	w, h := shape.Bounds.Width(), shape.Bounds.Height()
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return mask
	}
	z := rasterizer(shape.Local, w, h)
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// CutPiece copies the part of src under the piece outline into a new image
// the size of the piece bounds. src is addressed in board coordinates
// relative to its own bounds origin, so a board-sized picture lines up
// across all pieces.
func CutPiece(src image.Image, shape PieceShape) *image.RGBA {
	w, h := shape.Bounds.Width(), shape.Bounds.Height()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return dst
	}
	z := rasterizer(shape.Local, w, h)
	z.DrawOp = draw.Src
	sp := src.Bounds().Min.Add(image.Pt(shape.Bounds.MinX, shape.Bounds.MinY))
	z.Draw(dst, dst.Bounds(), src, sp)
	return dst
}

func rasterizer(local Path, w, h int) *vector.Rasterizer {
	z := vector.NewRasterizer(w, h)
	if len(local) == 0 {
		return z
	}
	z.MoveTo(float32(local[0].X), float32(local[0].Y))
	for _, p := range local[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
	return z
}
