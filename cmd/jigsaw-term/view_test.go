package main

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/jigsaw"
)

func newTestViewer(t *testing.T, rows, cols int) (*viewer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	v, err := newViewer(screen, jigsaw.Config{Rows: rows, Cols: cols, Seed: 4})
	if err != nil {
		t.Fatal(err)
	}
	return v, screen
}

func rowText(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestViewerDraw(t *testing.T) {
	v, screen := newTestViewer(t, 2, 3)
	v.draw()

	status := rowText(screen, 23)
	if !strings.Contains(status, "2x3") || !strings.Contains(status, "seed 4") {
		t.Errorf("status line = %q", status)
	}

	// The top-left corner is always a resolved vertex.
	if r, _, style, _ := screen.GetContent(0, 0); r != '┼' || style != vertexStyle {
		t.Errorf("cell (0,0) = %q, want vertex marker", r)
	}

	var curves int
	for y := 0; y < 23; y++ {
		curves += strings.Count(rowText(screen, y), "│")
	}
	if curves == 0 {
		t.Error("no vertical cut lines drawn")
	}
}

func TestViewerProjectFits(t *testing.T) {
	v, _ := newTestViewer(t, 4, 4)
	x, y := v.project(jigsaw.Vec2{X: 400, Y: 400})
	if x >= 80 || y >= 23 {
		t.Errorf("board corner projected to (%d,%d), outside the drawing area", x, y)
	}
	if x, y := v.project(jigsaw.Vec2{}); x != 0 || y != 0 {
		t.Errorf("origin projected to (%d,%d)", x, y)
	}
}

func TestViewerHandleKey(t *testing.T) {
	v, _ := newTestViewer(t, 2, 2)

	if !v.handleKey(tcell.KeyRune, '+') {
		t.Fatal("+ stopped the viewer")
	}
	if v.geom.Rows() != 3 || v.geom.Cols() != 3 {
		t.Errorf("grid after + = %dx%d, want 3x3", v.geom.Rows(), v.geom.Cols())
	}

	before := v.geom.PieceBoundary(0, 0)
	v.handleKey(tcell.KeyRune, 'r')
	if v.geom.Rows() != 3 {
		t.Errorf("r changed the grid size to %d", v.geom.Rows())
	}
	after := v.geom.PieceBoundary(0, 0)
	if &before[0] == &after[0] {
		t.Error("r kept the cached outline")
	}

	for i := 0; i < 5; i++ {
		v.handleKey(tcell.KeyRune, '-')
	}
	if v.geom.Rows() != 1 || v.geom.Cols() != 1 {
		t.Errorf("grid after repeated - = %dx%d, want 1x1", v.geom.Rows(), v.geom.Cols())
	}

	if !v.handleKey(tcell.KeyUp, 0) {
		t.Error("arrow key stopped the viewer")
	}
	if v.handleKey(tcell.KeyRune, 'q') {
		t.Error("q did not stop the viewer")
	}
	if v.handleKey(tcell.KeyEscape, 0) {
		t.Error("Esc did not stop the viewer")
	}
}
