package jigsaw

import (
	"testing"
)

type recordingSink struct {
	events []BoardEvent
}

func (s *recordingSink) EmitEvent(e BoardEvent) {
	s.events = append(s.events, e)
}

func (s *recordingSink) count(typ EventType) int {
	n := 0
	for _, e := range s.events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func newTestBoard(t *testing.T, rows, cols int, tile float64) (*Board, *recordingSink) {
	t.Helper()
	g := newTestGeometry(t, rows, cols, tile, 21)
	b := NewBoard(g, Config{})
	sink := &recordingSink{}
	b.SetEventSink(sink)
	return b, sink
}

func TestNewBoardStartsSolved(t *testing.T) {
	b, _ := newTestBoard(t, 2, 3, 100)
	if b.Len() != 6 {
		t.Fatalf("Len = %d, want 6", b.Len())
	}
	for i := 0; i < b.Len(); i++ {
		p := b.Piece(i)
		if p.Pos != p.Shape.Target() || p.Zone != i {
			t.Errorf("piece %d at %v zone %d, want target %v zone %d", i, p.Pos, p.Zone, p.Shape.Target(), i)
		}
		if p.Shape.Index(3) != i {
			t.Errorf("piece %d has index %d", i, p.Shape.Index(3))
		}
	}
	if !b.Solved() {
		t.Error("fresh board should be solved")
	}
}

func TestScatterUnsolves(t *testing.T) {
	b, _ := newTestBoard(t, 2, 2, 100)
	area := Rect{1000, 1000, 500, 400}
	b.Scatter(area)
	for i := 0; i < b.Len(); i++ {
		p := b.Piece(i)
		if !area.Contains(p.Pos.X, p.Pos.Y) {
			t.Errorf("piece %d at %v outside scatter area", i, p.Pos)
		}
		if p.Zone != -1 {
			t.Errorf("piece %d still in zone %d", i, p.Zone)
		}
		if b.Correct(i) {
			t.Errorf("piece %d still correct after scatter", i)
		}
	}
	if b.Solved() {
		t.Error("board solved after scatter")
	}
}

func TestDropSnapsToOwnZone(t *testing.T) {
	b, sink := newTestBoard(t, 2, 2, 100)
	b.Scatter(Rect{1000, 1000, 500, 500})

	target := b.Piece(3).Shape.Target()
	res := b.Drop(3, target.Add(Vec2{5, 5}))
	if !res.Snapped || res.Zone != 3 {
		t.Fatalf("result = %+v, want snap to zone 3", res)
	}
	if res.Pos != target || b.Piece(3).Pos != target {
		t.Errorf("snapped to %v, want %v", res.Pos, target)
	}
	if !res.Correct || !b.Correct(3) {
		t.Error("piece on its own zone should be correct")
	}
	if res.Solved {
		t.Error("board solved with scattered pieces left")
	}
	if sink.count(EventPieceSnapped) != 1 {
		t.Errorf("events = %+v, want one snap", sink.events)
	}
}

func TestDropSnapsToWrongZone(t *testing.T) {
	b, sink := newTestBoard(t, 2, 2, 100)
	p := b.Piece(0)
	zone := b.Zone(1)
	pos := Vec2{zone.X, zone.Y}.Sub(p.Shape.CellOffset())

	res := b.Drop(0, pos.Add(Vec2{-3, 4}))
	if !res.Snapped || res.Zone != 1 {
		t.Fatalf("result = %+v, want snap to zone 1", res)
	}
	if res.Pos != pos {
		t.Errorf("snapped to %v, want %v", res.Pos, pos)
	}
	if res.Correct || res.Solved || b.Solved() {
		t.Errorf("piece on a foreign zone counted as correct: %+v", res)
	}
	if len(sink.events) != 1 || sink.events[0].Correct {
		t.Errorf("events = %+v", sink.events)
	}
}

func TestDropAwayFromZones(t *testing.T) {
	b, sink := newTestBoard(t, 2, 2, 100)
	res := b.Drop(2, Vec2{900, 900})
	if res.Snapped || res.Zone != -1 || b.Piece(2).Zone != -1 {
		t.Fatalf("result = %+v, want no snap", res)
	}
	if res.Pos != (Vec2{900, 900}) {
		t.Errorf("Pos = %v, want drop point", res.Pos)
	}
	if sink.count(EventPieceDropped) != 1 {
		t.Errorf("events = %+v, want one drop", sink.events)
	}
}

func TestDropRespectsExplicitThreshold(t *testing.T) {
	g := newTestGeometry(t, 2, 2, 100, 21)
	b := NewBoard(g, Config{SnapThreshold: 10})
	target := b.Piece(0).Shape.Target()
	if res := b.Drop(0, target.Add(Vec2{8, 8})); res.Snapped {
		t.Errorf("snapped beyond explicit threshold: %+v", res)
	}
	if res := b.Drop(0, target.Add(Vec2{3, 3})); !res.Snapped {
		t.Errorf("did not snap within threshold: %+v", res)
	}
}

func TestWinTolerance(t *testing.T) {
	b, _ := newTestBoard(t, 1, 2, 100)
	target := b.Piece(0).Shape.Target()
	b.Move(0, target.Add(Vec2{1.5, -1.5}))
	if !b.Correct(0) {
		t.Error("1.5px off should be within the default tolerance")
	}
	b.Move(0, target.Add(Vec2{2, 0}))
	if b.Correct(0) {
		t.Error("2px off should be outside the default tolerance")
	}
}

func TestSolvedEventOnce(t *testing.T) {
	b, sink := newTestBoard(t, 2, 2, 100)
	b.Scatter(Rect{1000, 1000, 500, 500})

	var last DropResult
	for i := 0; i < b.Len(); i++ {
		last = b.Drop(i, b.Piece(i).Shape.Target())
	}
	if !last.Solved || !b.Solved() {
		t.Fatal("board not solved after placing every piece")
	}
	if n := sink.count(EventSolved); n != 1 {
		t.Errorf("solved events = %d, want 1", n)
	}
	b.Drop(0, b.Piece(0).Shape.Target())
	if n := sink.count(EventSolved); n != 1 {
		t.Errorf("solved events after redrop = %d, want 1", n)
	}
}

func TestSolvedEventAfterMoveAndDropBack(t *testing.T) {
	b, sink := newTestBoard(t, 2, 2, 100)
	target := b.Piece(0).Shape.Target()

	b.Move(0, Vec2{500, 500})
	if b.Solved() {
		t.Fatal("board still solved after dragging a piece away")
	}
	res := b.Drop(0, target)
	if !res.Solved {
		t.Fatal("drop back onto the target did not solve the board")
	}
	if n := sink.count(EventSolved); n != 1 {
		t.Errorf("solved events = %d, want 1", n)
	}

	// Dragging over the target and releasing there is not a new win.
	b.Move(0, target)
	b.Drop(0, target)
	if n := sink.count(EventSolved); n != 1 {
		t.Errorf("solved events after a drag in place = %d, want 1", n)
	}
}

func TestSnapAnimation(t *testing.T) {
	b, _ := newTestBoard(t, 2, 2, 100)
	target := b.Piece(1).Shape.Target()
	drop := target.Add(Vec2{10, -6})
	b.Drop(1, drop)

	p := b.Piece(1)
	if p.Display != drop {
		t.Errorf("Display = %v right after drop, want %v", p.Display, drop)
	}
	if !b.Animating() {
		t.Fatal("expected a running snap animation")
	}
	b.Update(0.125)
	b.Update(0.125)
	if b.Animating() {
		t.Error("animation still running after its duration")
	}
	if p.Display != target {
		t.Errorf("Display = %v after animation, want %v", p.Display, target)
	}
}

func TestPieceAt(t *testing.T) {
	b, _ := newTestBoard(t, 2, 2, 100)
	if got := b.PieceAt(150, 150); got != 3 {
		t.Errorf("PieceAt(150,150) = %d, want 3", got)
	}
	if got := b.PieceAt(50, 50); got != 0 {
		t.Errorf("PieceAt(50,50) = %d, want 0", got)
	}
	if got := b.PieceAt(500, 500); got != -1 {
		t.Errorf("PieceAt outside board = %d, want -1", got)
	}

	// Stack piece 3 over piece 0; the topmost wins.
	b.Move(3, b.Piece(0).Display)
	if got := b.PieceAt(50, 50); got != 3 {
		t.Errorf("PieceAt over stack = %d, want 3", got)
	}
	b.BringToFront(0)
	if got := b.PieceAt(50, 50); got != 0 {
		t.Errorf("PieceAt after BringToFront = %d, want 0", got)
	}
	order := b.Order()
	if order[len(order)-1] != 0 {
		t.Errorf("Order = %v, want 0 last", order)
	}
}

func TestBringToFrontOutOfRangePanics(t *testing.T) {
	b, _ := newTestBoard(t, 1, 1, 100)
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	b.BringToFront(5)
}

func TestBoardReset(t *testing.T) {
	b, _ := newTestBoard(t, 2, 2, 100)
	if err := b.Reset(3, 3, 50); err != nil {
		t.Fatal(err)
	}
	if b.Len() != 9 || !b.Solved() {
		t.Fatalf("Len = %d solved = %v after reset", b.Len(), b.Solved())
	}
	if b.Geometry().Rows() != 3 {
		t.Errorf("geometry rows = %d", b.Geometry().Rows())
	}
	// Snap threshold follows the new tile size.
	target := b.Piece(4).Shape.Target()
	if res := b.Drop(4, target.Add(Vec2{30, 30})); res.Snapped {
		t.Errorf("snapped 42px away with a 25px threshold: %+v", res)
	}
	if err := b.Reset(0, 3, 50); err == nil {
		t.Error("Reset accepted an empty grid")
	}
}
