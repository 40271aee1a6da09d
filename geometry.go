package jigsaw

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
)

// ErrSegmentLayout reports segment tables that do not match the grid.
var ErrSegmentLayout = errors.New("segment tables do not match grid")

// Geometry is the boundary geometry of one puzzle session. It owns the
// control segments of every grid edge and the caches derived from them:
// sampled curves, resolved vertices and piece outlines.
//
// Segments are generated once per grid. Regenerate replaces them and drops
// every cache, so a Geometry never mixes data from two grid sizes. A Geometry
// is not safe for concurrent use.
type Geometry struct {
	rows, cols int
	tileSize   float64
	step       float64
	seed       uint64
	rng        *rand.Rand
	logger     *slog.Logger

	vertical   [][]Path // [col][row], col in 0..cols
	horizontal [][]Path // [row][col], row in 0..rows

	sampled       map[SegmentKey]Path
	intersections map[VertexKey]Vec2
	resolved      bool
	fallbacks     []VertexKey
	boundaries    map[pieceKey]Path
}

// NewGeometry validates cfg and generates a fresh random grid.
func NewGeometry(cfg Config) (*Geometry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	g := &Geometry{
		step:   cfg.Step,
		seed:   seed,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		logger: cfg.Logger,
	}
	g.reset(cfg.Rows, cfg.Cols, cfg.TileSize)
	g.vertical, g.horizontal = generateGrid(g.rng, g.rows, g.cols, g.tileSize)
	g.logger.Debug("jigsaw: generated grid",
		"rows", g.rows, "cols", g.cols, "tile", g.tileSize, "seed", g.seed)
	return g, nil
}

// NewGeometryFromSegments restores a grid from previously generated segment
// tables, laid out as returned by Segments. Rows, Cols, tile size, Step and
// Logger come from cfg; Seed is ignored.
func NewGeometryFromSegments(cfg Config, vertical, horizontal [][]Path) (*Geometry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	if err := checkLayout(cfg.Rows, cfg.Cols, vertical, horizontal); err != nil {
		return nil, err
	}
	g := &Geometry{
		step:   cfg.Step,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger: cfg.Logger,
	}
	g.reset(cfg.Rows, cfg.Cols, cfg.TileSize)
	g.vertical = clonePaths(vertical)
	g.horizontal = clonePaths(horizontal)
	return g, nil
}

func checkLayout(rows, cols int, vertical, horizontal [][]Path) error {
	if len(vertical) != cols+1 || len(horizontal) != rows+1 {
		return fmt.Errorf("jigsaw: %d vertical lines, %d horizontal lines for %dx%d: %w",
			len(vertical), len(horizontal), rows, cols, ErrSegmentLayout)
	}
	for i, line := range vertical {
		if len(line) != rows {
			return fmt.Errorf("jigsaw: vertical line %d has %d segments: %w", i, len(line), ErrSegmentLayout)
		}
		for j, seg := range line {
			if len(seg) < 2 {
				return fmt.Errorf("jigsaw: segment %v has %d points: %w",
					SegmentKey{Vertical, i, j}, len(seg), ErrSegmentLayout)
			}
		}
	}
	for j, line := range horizontal {
		if len(line) != cols {
			return fmt.Errorf("jigsaw: horizontal line %d has %d segments: %w", j, len(line), ErrSegmentLayout)
		}
		for i, seg := range line {
			if len(seg) < 2 {
				return fmt.Errorf("jigsaw: segment %v has %d points: %w",
					SegmentKey{Horizontal, j, i}, len(seg), ErrSegmentLayout)
			}
		}
	}
	return nil
}

// Regenerate discards the current grid and every derived cache, then
// generates a new grid of the given size from the session's random stream.
func (g *Geometry) Regenerate(rows, cols int, tileSize float64) error {
	cfg := Config{Rows: rows, Cols: cols, TileSize: tileSize, Step: g.step}
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.reset(rows, cols, tileSize)
	g.vertical, g.horizontal = generateGrid(g.rng, rows, cols, tileSize)
	g.logger.Debug("jigsaw: regenerated grid", "rows", rows, "cols", cols, "tile", tileSize)
	return nil
}

func (g *Geometry) reset(rows, cols int, tileSize float64) {
	g.rows, g.cols, g.tileSize = rows, cols, tileSize
	g.sampled = make(map[SegmentKey]Path)
	g.intersections = make(map[VertexKey]Vec2)
	g.resolved = false
	g.fallbacks = nil
	g.boundaries = make(map[pieceKey]Path)
}

// Rows returns the number of piece rows.
func (g *Geometry) Rows() int { return g.rows }

// Cols returns the number of piece columns.
func (g *Geometry) Cols() int { return g.cols }

// TileSize returns the grid spacing in pixels.
func (g *Geometry) TileSize() float64 { return g.tileSize }

// Step returns the sampling step in pixels.
func (g *Geometry) Step() float64 { return g.step }

// Seed returns the seed the grid was generated from. Zero for restored grids.
func (g *Geometry) Seed() uint64 { return g.seed }

// Cell returns the straight grid cell of piece (row, col).
func (g *Geometry) Cell(row, col int) Rect {
	return Rect{
		X:      float64(col) * g.tileSize,
		Y:      float64(row) * g.tileSize,
		Width:  g.tileSize,
		Height: g.tileSize,
	}
}

// Segment returns the control polyline for key. The returned path must not
// be modified.
func (g *Geometry) Segment(key SegmentKey) Path {
	switch key.Axis {
	case Vertical:
		if key.Line < 0 || key.Line > g.cols || key.Index < 0 || key.Index >= g.rows {
			break
		}
		return g.vertical[key.Line][key.Index]
	case Horizontal:
		if key.Line < 0 || key.Line > g.rows || key.Index < 0 || key.Index >= g.cols {
			break
		}
		return g.horizontal[key.Line][key.Index]
	}
	panic(fmt.Sprintf("jigsaw: segment %v outside %dx%d grid", key, g.rows, g.cols))
}

// Sampled returns the dense sampled curve for key, computing and caching it
// on first use. The returned path must not be modified.
func (g *Geometry) Sampled(key SegmentKey) Path {
	if p, ok := g.sampled[key]; ok {
		return p
	}
	p := SamplePathSegment(g.Segment(key), g.step)
	g.sampled[key] = p
	return p
}

// Prepare samples every segment and resolves every vertex up front, so later
// boundary lookups only read caches.
func (g *Geometry) Prepare() {
	for i := 0; i <= g.cols; i++ {
		for j := 0; j < g.rows; j++ {
			g.Sampled(SegmentKey{Vertical, i, j})
		}
	}
	for j := 0; j <= g.rows; j++ {
		for i := 0; i < g.cols; i++ {
			g.Sampled(SegmentKey{Horizontal, j, i})
		}
	}
	g.resolveAll()
	g.logger.Debug("jigsaw: prepared grid",
		"segments", len(g.sampled), "vertices", len(g.intersections), "fallbacks", len(g.fallbacks))
}

// Segments returns copies of the vertical ([col][row]) and horizontal
// ([row][col]) segment tables, suitable for NewGeometryFromSegments.
func (g *Geometry) Segments() (vertical, horizontal [][]Path) {
	return clonePaths(g.vertical), clonePaths(g.horizontal)
}

func clonePaths(src [][]Path) [][]Path {
	out := make([][]Path, len(src))
	for i, line := range src {
		out[i] = make([]Path, len(line))
		for j, seg := range line {
			out[i][j] = append(Path(nil), seg...)
		}
	}
	return out
}
