package jigsaw

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates a pair of float64 fields simultaneously. Create one via
// TweenPosition and call Update(dt) each frame; the group writes values into
// the bound fields and lands exactly on the end values when finished.
//
// There is no global animation manager; the board owns its tweens.
type TweenGroup struct {
	tweens [2]*gween.Tween
	ends   [2]float64
	count  int
	fields [2]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		if finished {
			*g.fields[i] = g.ends[i]
			continue
		}
		*g.fields[i] = float64(val)
		allDone = false
	}
	g.Done = allDone
}

// Finish jumps every field to its end value.
func (g *TweenGroup) Finish() {
	for i := 0; i < g.count; i++ {
		*g.fields[i] = g.ends[i]
	}
	g.Done = true
}

// TweenPosition creates a TweenGroup that animates pos to the given target
// over the specified duration using the easing function.
func TweenPosition(pos *Vec2, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(pos.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(pos.Y), float32(to.Y), duration, fn)
	g.ends[0], g.ends[1] = to.X, to.Y
	g.fields[0] = &pos.X
	g.fields[1] = &pos.Y
	return g
}
