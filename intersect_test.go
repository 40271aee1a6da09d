package jigsaw

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSegmentIntersection(t *testing.T) {
	tests := []struct {
		name           string
		p1, p2, p3, p4 Vec2
		want           Vec2
		ok             bool
	}{
		{"crossing", Vec2{0, 0}, Vec2{10, 10}, Vec2{0, 10}, Vec2{10, 0}, Vec2{5, 5}, true},
		{"shared end point", Vec2{0, 0}, Vec2{10, 0}, Vec2{10, 0}, Vec2{10, 10}, Vec2{10, 0}, true},
		{"T junction", Vec2{0, 5}, Vec2{10, 5}, Vec2{4, 0}, Vec2{4, 5}, Vec2{4, 5}, true},
		{"parallel", Vec2{0, 0}, Vec2{10, 0}, Vec2{0, 1}, Vec2{10, 1}, Vec2{}, false},
		{"collinear overlap", Vec2{0, 0}, Vec2{10, 0}, Vec2{5, 0}, Vec2{15, 0}, Vec2{}, false},
		{"lines cross beyond segment", Vec2{0, 0}, Vec2{1, 1}, Vec2{3, 0}, Vec2{3, 5}, Vec2{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SegmentIntersection(tt.p1, tt.p2, tt.p3, tt.p4)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && (!approxEqual(got.X, tt.want.X, 1e-9) || !approxEqual(got.Y, tt.want.Y, 1e-9)) {
				t.Errorf("point = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPolylineIntersections(t *testing.T) {
	zigzag := Path{{0, -5}, {10, 5}, {20, -5}, {30, 5}}
	line := Path{{-5, 0}, {35, 0}}
	got := PolylineIntersections(zigzag, line)
	want := []Vec2{{5, 0}, {15, 0}, {25, 0}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if !approxEqual(got[i].X, want[i].X, 1e-9) || !approxEqual(got[i].Y, want[i].Y, 1e-9) {
			t.Errorf("crossing %d = %v, want %v", i, got[i], want[i])
		}
	}
	if got := PolylineIntersections(zigzag, Path{{0, 100}, {30, 100}}); len(got) != 0 {
		t.Errorf("disjoint polylines crossed at %v", got)
	}
}

func TestDedupePoints(t *testing.T) {
	got := dedupePoints([]Vec2{{0, 0}, {0.5, 0}, {2, 0}, {2, 0.9}}, 1)
	if len(got) != 2 || got[0] != (Vec2{0, 0}) || got[1] != (Vec2{2, 0}) {
		t.Errorf("dedupePoints = %v, want [{0 0} {2 0}]", got)
	}
}

func TestNearestTo(t *testing.T) {
	got, ok := nearestTo([]Vec2{{10, 10}, {1, 2}, {-3, 0}}, Vec2{0, 0})
	if !ok || got != (Vec2{1, 2}) {
		t.Errorf("nearestTo = %v, %v, want {1 2}, true", got, ok)
	}
	if _, ok := nearestTo(nil, Vec2{}); ok {
		t.Error("nearestTo(nil) reported a candidate")
	}
}

func TestFindAllIntersectionsSingleCell(t *testing.T) {
	g, err := NewGeometry(Config{Rows: 1, Cols: 1, TileSize: 100})
	if err != nil {
		t.Fatal(err)
	}
	got := g.FindAllIntersections()
	want := map[VertexKey]Vec2{
		{0, 0}: {0, 0},
		{0, 1}: {100, 0},
		{1, 0}: {0, 100},
		{1, 1}: {100, 100},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d vertices, want %d", len(got), len(want))
	}
	for k, w := range want {
		if got[k] != w {
			t.Errorf("vertex %v = %v, want %v", k, got[k], w)
		}
	}
	if fb := g.Fallbacks(); len(fb) != 0 {
		t.Errorf("fallbacks = %v, want none", fb)
	}
}

func TestFindAllIntersectionsReturnsCopy(t *testing.T) {
	g, err := NewGeometry(Config{Rows: 2, Cols: 2, TileSize: 50, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	a := g.FindAllIntersections()
	a[VertexKey{1, 1}] = Vec2{-1, -1}
	if got := g.Intersection(1, 1); got == (Vec2{-1, -1}) {
		t.Error("mutating the returned map changed the cache")
	}
}

func TestFindAllIntersectionsNearGridPoints(t *testing.T) {
	const tile = 90.0
	for seed := uint64(1); seed <= 10; seed++ {
		g, err := NewGeometry(Config{Rows: 3, Cols: 3, TileSize: tile, Seed: seed})
		if err != nil {
			t.Fatal(err)
		}
		got := g.FindAllIntersections()
		if len(got) != 16 {
			t.Fatalf("seed %d: %d vertices, want 16", seed, len(got))
		}
		for k, p := range got {
			theoretical := Vec2{float64(k.Col) * tile, float64(k.Row) * tile}
			if d := p.Dist(theoretical); d > 0.1*tile {
				t.Errorf("seed %d: vertex %v at %v, %v from grid point", seed, k, p, d)
			}
			if !isIntegral(p) {
				t.Errorf("seed %d: vertex %v at %v not on the pixel grid", seed, k, p)
			}
		}
	}
}

func TestFindAllIntersectionsFallback(t *testing.T) {
	// The left and top borders stop short of the corner, so nothing meets at
	// vertex (0, 0) and the grid point is used.
	vertical := [][]Path{
		{{{0, 5}, {0, 100}}},
		{{{100, 0}, {100, 100}}},
	}
	horizontal := [][]Path{
		{{{5, 0}, {100, 0}}},
		{{{0, 100}, {100, 100}}},
	}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	g, err := NewGeometryFromSegments(Config{Rows: 1, Cols: 1, TileSize: 100, Logger: logger}, vertical, horizontal)
	if err != nil {
		t.Fatal(err)
	}

	if got := g.Intersection(0, 0); got != (Vec2{0, 0}) {
		t.Errorf("fallback vertex = %v, want {0 0}", got)
	}
	if got := g.Intersection(0, 1); got != (Vec2{100, 0}) {
		t.Errorf("vertex (0,1) = %v, want {100 0}", got)
	}
	fb := g.Fallbacks()
	if len(fb) != 1 || fb[0] != (VertexKey{0, 0}) {
		t.Errorf("fallbacks = %v, want [0_0]", fb)
	}
	if !strings.Contains(buf.String(), "no curve crossing") {
		t.Errorf("expected a fallback warning, log was %q", buf.String())
	}
}

func TestIntersectionOutOfRangePanics(t *testing.T) {
	g, err := NewGeometry(Config{Rows: 1, Cols: 1, TileSize: 10})
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic for vertex outside the grid")
		}
	}()
	g.Intersection(2, 0)
}

func TestVertexKeyString(t *testing.T) {
	if got := (VertexKey{3, 4}).String(); got != "3_4" {
		t.Errorf("String = %q, want 3_4", got)
	}
}
