// Package paper generates a hand-made paper texture: an ivory base with
// per-pixel grain, short curved fibers, and a slowly drifting light map built
// from fractal Perlin noise. It is used as the table surface behind a puzzle.
package paper

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"math/rand/v2"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// LightMapSize is the side length of the low resolution light map.
const LightMapSize = 64

// Options configures a Generator.
type Options struct {
	BaseColor  color.RGBA
	FiberColor color.RGBA

	// Roughness is the peak-to-peak grain amplitude added to each channel.
	Roughness float64

	// FiberDensity scales the fiber count; 1 draws one fiber per 4000 px².
	FiberDensity float64

	// LightColor tints the light map overlay.
	LightColor color.RGBA

	// Seed drives grain, fibers and noise. Zero picks a random seed.
	Seed uint64
}

// DefaultOptions returns a warm ivory paper with brown fibers.
func DefaultOptions() Options {
	return Options{
		BaseColor:    color.RGBA{240, 234, 224, 255},
		FiberColor:   color.RGBA{160, 140, 120, 255},
		Roughness:    20,
		FiberDensity: 1,
		LightColor:   color.RGBA{255, 250, 240, 255},
	}
}

// Generator renders paper textures. It is not safe for concurrent use.
type Generator struct {
	opts  Options
	rng   *rand.Rand
	noise *noise
}

// New creates a Generator.
func New(opts Options) *Generator {
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, ^seed))
	return &Generator{opts: opts, rng: rng, noise: newNoise(rng)}
}

// Texture renders a w x h base texture: base colour, grain and fibers.
func (g *Generator) Texture(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	base := g.opts.BaseColor
	for i := 0; i < len(img.Pix); i += 4 {
		grain := (g.rng.Float64() - 0.5) * g.opts.Roughness
		img.Pix[i] = clamp8(float64(base.R) + grain)
		img.Pix[i+1] = clamp8(float64(base.G) + grain)
		img.Pix[i+2] = clamp8(float64(base.B) + grain)
		img.Pix[i+3] = 255
	}

	fc := g.opts.FiberColor
	fiber := image.NewUniform(color.NRGBA{fc.R, fc.G, fc.B, 77})
	count := int(float64(w*h) / 4000 * g.opts.FiberDensity)
	var z vector.Rasterizer
	for i := 0; i < count; i++ {
		g.drawFiber(img, &z, fiber)
	}
	return img
}

// drawFiber strokes one short quadratic curve, 1px wide, at a random spot.
func (g *Generator) drawFiber(dst *image.RGBA, z *vector.Rasterizer, src image.Image) {
	b := dst.Bounds()
	x := g.rng.Float64() * float64(b.Dx())
	y := g.rng.Float64() * float64(b.Dy())
	length := g.rng.Float64()*20 + 5
	angle := g.rng.Float64() * 2 * math.Pi
	cx := x + math.Cos(angle)*length*0.5 + (g.rng.Float64()-0.5)*5
	cy := y + math.Sin(angle)*length*0.5 + (g.rng.Float64()-0.5)*5
	ex := x + math.Cos(angle)*length
	ey := y + math.Sin(angle)*length

	const segments = 8
	var pts [segments + 1][2]float64
	for i := 0; i <= segments; i++ {
		t := float64(i) / segments
		u := 1 - t
		pts[i] = [2]float64{
			u*u*x + 2*u*t*cx + t*t*ex,
			u*u*y + 2*u*t*cy + t*t*ey,
		}
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	r := image.Rect(int(minX)-1, int(minY)-1, int(maxX)+2, int(maxY)+2)
	clipped := r.Intersect(b)
	if clipped.Empty() {
		return
	}

	// Ribbon of half width 0.5 around the curve, in r-local coordinates.
	z.Reset(r.Dx(), r.Dy())
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	left := make([][2]float32, 0, segments+1)
	right := make([][2]float32, 0, segments+1)
	for i, p := range pts {
		a, c := pts[max(i-1, 0)], pts[min(i+1, segments)]
		dx, dy := c[0]-a[0], c[1]-a[1]
		ln := math.Hypot(dx, dy)
		if ln < 1e-9 {
			ln = 1
		}
		nx, ny := -dy/ln*0.5, dx/ln*0.5
		left = append(left, [2]float32{float32(p[0] - ox + nx), float32(p[1] - oy + ny)})
		right = append(right, [2]float32{float32(p[0] - ox - nx), float32(p[1] - oy - ny)})
	}
	z.MoveTo(left[0][0], left[0][1])
	for _, p := range left[1:] {
		z.LineTo(p[0], p[1])
	}
	for i := len(right) - 1; i >= 0; i-- {
		z.LineTo(right[i][0], right[i][1])
	}
	z.ClosePath()
	z.DrawOp = draw.Over

	if clipped == r {
		z.Draw(dst, r, src, image.Point{})
		return
	}
	// Rasterizer.Draw needs the full rectangle; render aside and composite
	// the visible part.
	tmp := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	z.Draw(tmp, tmp.Bounds(), src, image.Point{})
	draw.Draw(dst, clipped, tmp, clipped.Min.Sub(r.Min), draw.Over)
}

// LightMap renders one LightMapSize² frame of the drifting light at time t.
// Alpha is (n+1)/2 cubed and scaled to 150, where n is the fractal noise.
func (g *Generator) LightMap(t float64) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, LightMapSize, LightMapSize))
	for ly := 0; ly < LightMapSize; ly++ {
		for lx := 0; lx < LightMapSize; lx++ {
			n := g.noise.fbm(float64(lx)*0.05, float64(ly)*0.05, t*0.5)
			a := math.Pow((n+1)*0.5, 3) * 150
			img.Pix[ly*img.Stride+lx] = clamp8(a)
		}
	}
	return img
}

// Overlay scales light up to dst's size and blends the light colour onto dst
// with the overlay blend mode, weighted by the light's alpha.
func (g *Generator) Overlay(dst *image.RGBA, light *image.Alpha) {
	b := dst.Bounds()
	scaled := image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.BiLinear.Scale(scaled, scaled.Bounds(), light, light.Bounds(), xdraw.Src, nil)

	lc := [3]float64{
		float64(g.opts.LightColor.R) / 255,
		float64(g.opts.LightColor.G) / 255,
		float64(g.opts.LightColor.B) / 255,
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			a := float64(scaled.Pix[y*scaled.Stride+x]) / 255
			if a == 0 {
				continue
			}
			i := dst.PixOffset(b.Min.X+x, b.Min.Y+y)
			for c := 0; c < 3; c++ {
				base := float64(dst.Pix[i+c]) / 255
				dst.Pix[i+c] = clamp8((base + (overlay(base, lc[c])-base)*a) * 255)
			}
		}
	}
}

// Render is Texture with one light map frame at time t blended on top.
func (g *Generator) Render(w, h int, t float64) *image.RGBA {
	img := g.Texture(w, h)
	g.Overlay(img, g.LightMap(t))
	return img
}

func overlay(base, blend float64) float64 {
	if base < 0.5 {
		return 2 * base * blend
	}
	return 1 - 2*(1-base)*(1-blend)
}

func clamp8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}
