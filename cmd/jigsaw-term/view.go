package main

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/jigsaw"
)

const boardTile = 100.0

var (
	curveStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	vertexStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	fallbackStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	statusStyle   = tcell.StyleDefault.Reverse(true)
)

// viewer draws the cut lines of a puzzle grid into a terminal.
type viewer struct {
	screen tcell.Screen
	geom   *jigsaw.Geometry
	logger *slog.Logger
}

func newViewer(screen tcell.Screen, cfg jigsaw.Config) (*viewer, error) {
	cfg.TileSize = boardTile
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	g, err := jigsaw.NewGeometry(cfg)
	if err != nil {
		return nil, err
	}
	return &viewer{screen: screen, geom: g, logger: cfg.Logger}, nil
}

// project maps board coordinates to a terminal cell. Cells are about twice
// as tall as wide, so x is stretched by two.
func (v *viewer) project(p jigsaw.Vec2) (int, int) {
	w, h := v.screen.Size()
	bw := float64(v.geom.Cols()) * boardTile
	bh := float64(v.geom.Rows()) * boardTile
	scale := math.Min(float64(w-1)/(bw*2), float64(h-2)/bh)
	return int(math.Round(p.X * scale * 2)), int(math.Round(p.Y * scale))
}

func (v *viewer) draw() {
	v.screen.Clear()
	g := v.geom
	g.Prepare()

	for i := 0; i <= g.Cols(); i++ {
		for j := 0; j < g.Rows(); j++ {
			v.plot(g.Sampled(jigsaw.SegmentKey{Axis: jigsaw.Vertical, Line: i, Index: j}), '│')
		}
	}
	for j := 0; j <= g.Rows(); j++ {
		for i := 0; i < g.Cols(); i++ {
			v.plot(g.Sampled(jigsaw.SegmentKey{Axis: jigsaw.Horizontal, Line: j, Index: i}), '─')
		}
	}

	fallbacks := g.Fallbacks()
	for _, p := range g.FindAllIntersections() {
		x, y := v.project(p)
		v.screen.SetContent(x, y, '┼', nil, vertexStyle)
	}
	for _, k := range fallbacks {
		x, y := v.project(g.Intersection(k.Row, k.Col))
		v.screen.SetContent(x, y, 'x', nil, fallbackStyle)
	}

	v.status(fmt.Sprintf(" %dx%d  seed %d  fallbacks %d  r:regenerate +/-:size q:quit ",
		g.Rows(), g.Cols(), g.Seed(), len(fallbacks)))
	v.screen.Show()
}

func (v *viewer) plot(path jigsaw.Path, r rune) {
	for _, p := range path {
		x, y := v.project(p)
		v.screen.SetContent(x, y, r, nil, curveStyle)
	}
}

func (v *viewer) status(text string) {
	w, h := v.screen.Size()
	x := 0
	for _, r := range text {
		if x >= w {
			break
		}
		v.screen.SetContent(x, h-1, r, nil, statusStyle)
		x++
	}
}

// handleKey applies one key press and reports whether the viewer should keep
// running.
func (v *viewer) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	g := v.geom
	switch r {
	case 'q':
		return false
	case 'r':
		v.resize(g.Rows(), g.Cols())
	case '+', '=':
		v.resize(g.Rows()+1, g.Cols()+1)
	case '-':
		v.resize(g.Rows()-1, g.Cols()-1)
	}
	return true
}

func (v *viewer) resize(rows, cols int) {
	rows = min(max(rows, 1), jigsaw.MaxGridSize)
	cols = min(max(cols, 1), jigsaw.MaxGridSize)
	if err := v.geom.Regenerate(rows, cols, boardTile); err != nil {
		v.logger.Error("jigsaw-term: regenerate failed", "error", err)
		return
	}
	v.logger.Debug("jigsaw-term: regenerated", "rows", rows, "cols", cols)
}
