package jigsaw

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"
)

func TestRasterizeMaskCoverage(t *testing.T) {
	g := newTestGeometry(t, 2, 2, 50, 4)
	var total float64
	for _, s := range g.Pieces() {
		mask := RasterizeMask(s)
		if mask.Bounds().Dx() != s.Bounds.Width() || mask.Bounds().Dy() != s.Bounds.Height() {
			t.Fatalf("piece (%d,%d): mask %v, want %dx%d",
				s.Row, s.Col, mask.Bounds(), s.Bounds.Width(), s.Bounds.Height())
		}
		for _, a := range mask.Pix {
			total += float64(a) / 255
		}
	}
	// Neighbouring masks share anti-aliased edges, so coverage adds up to the
	// board area.
	if math.Abs(total-100*100) > 100*100*0.01 {
		t.Errorf("total coverage = %v, want ~10000", total)
	}
}

func TestRasterizeMaskInterior(t *testing.T) {
	g := newTestGeometry(t, 1, 1, 40, 1)
	mask := RasterizeMask(g.Piece(0, 0))
	if mask.AlphaAt(20, 20).A != 0xff {
		t.Errorf("centre alpha = %d, want 255", mask.AlphaAt(20, 20).A)
	}
	if mask.Bounds() != image.Rect(0, 0, 40, 40) {
		t.Errorf("mask bounds = %v", mask.Bounds())
	}
}

func TestCutPieceCopiesSource(t *testing.T) {
	g := newTestGeometry(t, 2, 2, 50, 4)
	red := color.RGBA{200, 10, 10, 255}
	src := image.NewRGBA(image.Rect(0, 0, 100, 100))
	draw.Draw(src, src.Bounds(), image.NewUniform(red), image.Point{}, draw.Src)

	for _, s := range g.Pieces() {
		img := CutPiece(src, s)
		if img.Bounds().Dx() != s.Bounds.Width() || img.Bounds().Dy() != s.Bounds.Height() {
			t.Fatalf("piece (%d,%d) image %v", s.Row, s.Col, img.Bounds())
		}
		// The straight cell centre is always well inside the outline.
		c := s.Cell.Center().Sub(s.Target())
		if got := img.RGBAAt(int(c.X), int(c.Y)); got != red {
			t.Errorf("piece (%d,%d) centre = %v, want %v", s.Row, s.Col, got, red)
		}
	}
}

func TestCutPieceOutsideTransparent(t *testing.T) {
	g := scenarioGeometry(t)
	src := image.NewRGBA(image.Rect(0, 0, 200, 200))
	draw.Draw(src, src.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	// Piece (0,1) starts left of x=100 because the seam bulges left near
	// y=33; its bounding box corner at the bottom left lies outside it.
	s := g.Piece(0, 1)
	if s.Bounds.MinX >= 100 {
		t.Fatalf("piece (0,1) bounds %+v do not include the bulge", s.Bounds)
	}
	img := CutPiece(src, s)
	if got := img.RGBAAt(0, s.Bounds.Height()-1); got.A != 0 {
		t.Errorf("pixel outside the outline has alpha %d", got.A)
	}
}

func TestCutPieceSourceOffset(t *testing.T) {
	g := newTestGeometry(t, 1, 1, 20, 1)
	src := image.NewRGBA(image.Rect(50, 50, 70, 70))
	blue := color.RGBA{0, 0, 255, 255}
	draw.Draw(src, src.Bounds(), image.NewUniform(blue), image.Point{}, draw.Src)
	img := CutPiece(src, g.Piece(0, 0))
	if got := img.RGBAAt(10, 10); got != blue {
		t.Errorf("centre = %v, want %v", got, blue)
	}
}
