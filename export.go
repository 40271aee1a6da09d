package jigsaw

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// ManifestPiece describes one exported piece image.
type ManifestPiece struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	File   string `json:"file"`
	Bounds Bounds `json:"bounds"`
	Target Vec2   `json:"target"`
}

// Manifest records an exported puzzle: grid parameters, the control
// segments needed to rebuild the exact same outlines, and one entry per
// piece image.
type Manifest struct {
	Rows       int             `json:"rows"`
	Cols       int             `json:"cols"`
	TileSize   float64         `json:"tileSize"`
	Step       float64         `json:"step"`
	Seed       uint64          `json:"seed"`
	Fallbacks  []VertexKey     `json:"fallbacks,omitempty"`
	Vertical   [][]Path        `json:"vertical"`
	Horizontal [][]Path        `json:"horizontal"`
	Pieces     []ManifestPiece `json:"pieces"`
}

// NewManifest describes g without writing any files. Piece file names are
// filled in but not created.
func NewManifest(g *Geometry, label string) *Manifest {
	v, h := g.Segments()
	m := &Manifest{
		Rows:       g.Rows(),
		Cols:       g.Cols(),
		TileSize:   g.TileSize(),
		Step:       g.Step(),
		Seed:       g.Seed(),
		Fallbacks:  g.Fallbacks(),
		Vertical:   v,
		Horizontal: h,
	}
	prefix := sanitizeLabel(label)
	for _, s := range g.Pieces() {
		m.Pieces = append(m.Pieces, ManifestPiece{
			Row:    s.Row,
			Col:    s.Col,
			File:   fmt.Sprintf("%s_%d_%d.png", prefix, s.Row, s.Col),
			Bounds: s.Bounds,
			Target: s.Target(),
		})
	}
	return m
}

// LoadManifest parses manifest JSON.
func LoadManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("jigsaw: failed to parse manifest: %w", err)
	}
	return &m, nil
}

// Geometry rebuilds the geometry recorded in the manifest. cfg supplies the
// logger; its grid fields are replaced by the manifest's.
func (m *Manifest) Geometry(cfg Config) (*Geometry, error) {
	cfg.Rows, cfg.Cols = m.Rows, m.Cols
	cfg.TileSize, cfg.Step = m.TileSize, m.Step
	g, err := NewGeometryFromSegments(cfg, m.Vertical, m.Horizontal)
	if err != nil {
		return nil, err
	}
	g.seed = m.Seed
	return g, nil
}

// WritePieces cuts every piece of g out of src and writes them as PNG files
// into dir, together with manifest.json. label prefixes the piece file names.
func WritePieces(dir, label string, src image.Image, g *Geometry) (*Manifest, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	g.Prepare()
	m := NewManifest(g, label)
	for _, p := range m.Pieces {
		img := CutPiece(src, g.Piece(p.Row, p.Col))
		if err := writePNG(filepath.Join(dir, p.File), img); err != nil {
			return nil, err
		}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("jigsaw: encode manifest: %w", err)
	}
	path := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return m, nil
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "piece" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "piece"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
