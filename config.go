package jigsaw

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// MaxGridSize bounds Rows and Cols.
const MaxGridSize = 32

var (
	// ErrInvalidGrid reports a row or column count outside 1..MaxGridSize.
	ErrInvalidGrid = errors.New("invalid grid size")
	// ErrInvalidTileSize reports a non-positive tile or board size.
	ErrInvalidTileSize = errors.New("invalid tile size")
	// ErrInvalidStep reports a non-positive sampling step.
	ErrInvalidStep = errors.New("invalid sampling step")
)

// Config describes one puzzle session: grid dimensions, sizing, sampling and
// board behaviour. Zero-valued optional fields take their defaults when the
// config passes through LoadConfig or withDefaults.
type Config struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`

	// BoardSize is the side length of the rendered board in pixels. The tile
	// size is BoardSize/Cols unless TileSize is set explicitly.
	BoardSize float64 `json:"boardSize"`
	TileSize  float64 `json:"tileSize,omitempty"`

	// Step is the curve sampling step in pixels (default 3).
	Step float64 `json:"step,omitempty"`

	// Seed drives segment generation. Zero picks a random seed.
	Seed uint64 `json:"seed,omitempty"`

	// SnapThreshold is the maximum distance between a dropped piece's cell
	// centre and a zone centre for the piece to snap (default tile/2).
	SnapThreshold float64 `json:"snapThreshold,omitempty"`

	// WinTolerance is the per-axis distance under which a piece counts as
	// correctly placed (default 2).
	WinTolerance float64 `json:"winTolerance,omitempty"`

	// SnapDuration is the snap animation length in seconds (default 0.25).
	SnapDuration float32 `json:"snapDuration,omitempty"`

	// Logger receives diagnostics. Nil uses slog.Default().
	Logger *slog.Logger `json:"-"`
}

// DefaultConfig returns a 4x4 puzzle on a 400 pixel board.
func DefaultConfig() Config {
	return Config{
		Rows:         4,
		Cols:         4,
		BoardSize:    400,
		Step:         DefaultStep,
		WinTolerance: 2,
		SnapDuration: 0.25,
	}
}

// LoadConfig parses JSON config data over DefaultConfig and validates it.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("jigsaw: failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg.withDefaults(), nil
}

// Validate reports the first problem with the config, if any.
func (c Config) Validate() error {
	if c.Rows < 1 || c.Rows > MaxGridSize || c.Cols < 1 || c.Cols > MaxGridSize {
		return fmt.Errorf("jigsaw: %dx%d: %w", c.Rows, c.Cols, ErrInvalidGrid)
	}
	if c.TileSize < 0 || (c.TileSize == 0 && c.BoardSize <= 0) {
		return fmt.Errorf("jigsaw: board %v, tile %v: %w", c.BoardSize, c.TileSize, ErrInvalidTileSize)
	}
	if c.Step < 0 {
		return fmt.Errorf("jigsaw: step %v: %w", c.Step, ErrInvalidStep)
	}
	return nil
}

// Tile returns the tile size implied by the config.
func (c Config) Tile() float64 {
	if c.TileSize > 0 {
		return c.TileSize
	}
	if c.Cols <= 0 {
		return 0
	}
	return c.BoardSize / float64(c.Cols)
}

// withDefaults fills zero optional fields.
func (c Config) withDefaults() Config {
	if c.TileSize == 0 {
		c.TileSize = c.Tile()
	}
	if c.Step == 0 {
		c.Step = DefaultStep
	}
	if c.SnapThreshold == 0 {
		c.SnapThreshold = c.TileSize / 2
	}
	if c.WinTolerance == 0 {
		c.WinTolerance = 2
	}
	if c.SnapDuration == 0 {
		c.SnapDuration = 0.25
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
