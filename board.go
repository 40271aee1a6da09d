package jigsaw

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/tanema/gween/ease"
)

// EventType identifies a kind of board event.
type EventType uint8

const (
	EventPieceDropped EventType = iota // piece released away from every zone
	EventPieceSnapped                  // piece released near a zone and snapped to it
	EventSolved                        // every piece sits on its own zone
)

// BoardEvent carries one board state change to an EventSink.
type BoardEvent struct {
	Type    EventType
	Piece   int  // piece index, row*cols+col; -1 for EventSolved
	Zone    int  // zone index the piece snapped to, -1 if none
	X, Y    float64
	Correct bool // piece now sits on its own zone
}

// EventSink receives board events, for example to forward them to an ECS.
type EventSink interface {
	EmitEvent(event BoardEvent)
}

// PieceState is the placement of one piece on the board.
type PieceState struct {
	Shape PieceShape

	// Pos is the board position of the piece surface's top-left corner.
	Pos Vec2

	// Display is where the piece should be drawn. It trails Pos while a snap
	// animation runs.
	Display Vec2

	// Zone is the zone index the piece is snapped to, or -1.
	Zone int

	snap *TweenGroup
}

// DropResult describes the outcome of Board.Drop.
type DropResult struct {
	Zone    int // -1 when the piece did not snap
	Pos     Vec2
	Snapped bool
	Correct bool
	Solved  bool
}

// Board holds the pieces of one puzzle session and implements drop zones,
// snapping and the win check on top of a Geometry.
type Board struct {
	geom     *Geometry
	cfg      Config
	autoSnap bool // SnapThreshold follows the tile size
	pieces   []*PieceState
	order    []int // draw order, last is topmost
	rng      *rand.Rand
	sink     EventSink
	logger   *slog.Logger
	solved   bool
}

// NewBoard builds one piece per grid cell of g, each placed on its own zone.
// Thresholds and durations come from cfg; its grid fields are taken from g.
func NewBoard(g *Geometry, cfg Config) *Board {
	autoSnap := cfg.SnapThreshold == 0
	cfg.Rows, cfg.Cols, cfg.TileSize = g.Rows(), g.Cols(), g.TileSize()
	cfg = cfg.withDefaults()
	b := &Board{
		geom:     g,
		cfg:      cfg,
		autoSnap: autoSnap,
		rng:      rand.New(rand.NewPCG(g.Seed(), 0x5ca77e125ca77e12)),
		logger:   cfg.Logger,
	}
	b.build()
	return b
}

func (b *Board) build() {
	shapes := b.geom.Pieces()
	b.pieces = make([]*PieceState, len(shapes))
	b.order = make([]int, len(shapes))
	for i, s := range shapes {
		t := s.Target()
		b.pieces[i] = &PieceState{Shape: s, Pos: t, Display: t, Zone: i}
		b.order[i] = i
	}
	b.solved = true
}

// Reset regenerates the geometry at a new size and rebuilds every piece in
// its solved position.
func (b *Board) Reset(rows, cols int, tileSize float64) error {
	if err := b.geom.Regenerate(rows, cols, tileSize); err != nil {
		return err
	}
	b.cfg.Rows, b.cfg.Cols, b.cfg.TileSize = rows, cols, tileSize
	if b.autoSnap {
		b.cfg.SnapThreshold = tileSize / 2
	}
	b.build()
	return nil
}

// SetEventSink sets the receiver of board events. Nil disables events.
func (b *Board) SetEventSink(sink EventSink) {
	b.sink = sink
}

// Geometry returns the board's geometry.
func (b *Board) Geometry() *Geometry { return b.geom }

// Len returns the number of pieces.
func (b *Board) Len() int { return len(b.pieces) }

// Piece returns the state of piece i. The returned value is live; callers
// should move pieces through Move and Drop.
func (b *Board) Piece(i int) *PieceState {
	return b.pieces[i]
}

// Order returns piece indices in draw order, bottom first.
func (b *Board) Order() []int {
	return append([]int(nil), b.order...)
}

// Zone returns the straight grid cell of zone z.
func (b *Board) Zone(z int) Rect {
	cols := b.geom.Cols()
	return b.geom.Cell(z/cols, z%cols)
}

// Scatter places every piece at a random position inside area, keeping each
// piece surface fully inside when it fits.
func (b *Board) Scatter(area Rect) {
	for _, p := range b.pieces {
		maxX := math.Max(0, area.Width-float64(p.Shape.Bounds.Width()))
		maxY := math.Max(0, area.Height-float64(p.Shape.Bounds.Height()))
		p.Pos = Vec2{X: area.X + b.rng.Float64()*maxX, Y: area.Y + b.rng.Float64()*maxY}
		p.Display = p.Pos
		p.Zone = -1
		p.snap = nil
	}
	b.solved = false
	b.logger.Debug("jigsaw: scattered pieces", "pieces", len(b.pieces))
}

// Move places piece i at pos without snapping, as during a drag. Moving a
// piece off its target leaves the solved state, so a later drop back onto it
// reports the win again.
func (b *Board) Move(i int, pos Vec2) {
	p := b.pieces[i]
	p.Pos = pos
	p.Display = pos
	p.Zone = -1
	p.snap = nil
	if b.solved && !b.Correct(i) {
		b.solved = false
	}
}

// Drop releases piece i at pos. If the piece's cell centre lies within the
// snap threshold of a zone centre, the nearest such zone wins and the piece
// snaps onto it, keeping its own offset between outline and cell. Snapping is
// animated on Display; Pos is updated immediately.
func (b *Board) Drop(i int, pos Vec2) DropResult {
	p := b.pieces[i]
	p.Pos = pos
	p.Display = pos
	p.snap = nil

	offset := p.Shape.CellOffset()
	half := b.geom.TileSize() / 2
	center := pos.Add(offset).Add(Vec2{half, half})

	zone := -1
	best := math.Inf(1)
	for z := range b.pieces {
		d := center.Dist(b.Zone(z).Center())
		if d < b.cfg.SnapThreshold && d < best {
			best, zone = d, z
		}
	}

	res := DropResult{Zone: zone}
	p.Zone = zone
	if zone >= 0 {
		cell := b.Zone(zone)
		p.Pos = Vec2{cell.X, cell.Y}.Sub(offset)
		p.snap = TweenPosition(&p.Display, p.Pos, b.cfg.SnapDuration, ease.OutQuad)
		res.Snapped = true
	}
	res.Pos = p.Pos
	res.Correct = b.Correct(i)

	evt := BoardEvent{Type: EventPieceDropped, Piece: i, Zone: zone, X: p.Pos.X, Y: p.Pos.Y, Correct: res.Correct}
	if res.Snapped {
		evt.Type = EventPieceSnapped
	}
	b.emit(evt)

	res.Solved = b.checkSolved()
	return res
}

// Correct reports whether piece i lies within the win tolerance of its target
// position on both axes.
func (b *Board) Correct(i int) bool {
	p := b.pieces[i]
	t := p.Shape.Target()
	return math.Abs(p.Pos.X-t.X) < b.cfg.WinTolerance &&
		math.Abs(p.Pos.Y-t.Y) < b.cfg.WinTolerance
}

// Solved reports whether every piece is correctly placed.
func (b *Board) Solved() bool {
	for i := range b.pieces {
		if !b.Correct(i) {
			return false
		}
	}
	return true
}

// checkSolved emits EventSolved on the transition into the solved state.
func (b *Board) checkSolved() bool {
	solved := b.Solved()
	if solved && !b.solved {
		b.logger.Info("jigsaw: puzzle solved", "pieces", len(b.pieces))
		b.emit(BoardEvent{Type: EventSolved, Piece: -1, Zone: -1, Correct: true})
	}
	b.solved = solved
	return solved
}

// PieceAt returns the topmost piece whose outline contains the board point
// (x, y), or -1.
func (b *Board) PieceAt(x, y float64) int {
	for k := len(b.order) - 1; k >= 0; k-- {
		i := b.order[k]
		p := b.pieces[i]
		lx := x - p.Display.X
		ly := y - p.Display.Y
		if lx < 0 || ly < 0 || lx > float64(p.Shape.Bounds.Width()) || ly > float64(p.Shape.Bounds.Height()) {
			continue
		}
		if p.Shape.Local.Contains(lx, ly) {
			return i
		}
	}
	return -1
}

// BringToFront moves piece i to the top of the draw order.
func (b *Board) BringToFront(i int) {
	if i < 0 || i >= len(b.pieces) {
		panic(fmt.Sprintf("jigsaw: piece %d out of range [0, %d)", i, len(b.pieces)))
	}
	for k, j := range b.order {
		if j == i {
			copy(b.order[k:], b.order[k+1:])
			b.order[len(b.order)-1] = i
			return
		}
	}
}

// Update advances running snap animations by dt seconds.
func (b *Board) Update(dt float32) {
	for _, p := range b.pieces {
		if p.snap == nil {
			continue
		}
		p.snap.Update(dt)
		if p.snap.Done {
			p.snap = nil
		}
	}
}

// Animating reports whether any snap animation is still running.
func (b *Board) Animating() bool {
	for _, p := range b.pieces {
		if p.snap != nil {
			return true
		}
	}
	return false
}

func (b *Board) emit(evt BoardEvent) {
	if b.sink != nil {
		b.sink.EmitEvent(evt)
	}
}
