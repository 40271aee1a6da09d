package jigsaw

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoSteps reports a drop script without steps.
var ErrNoSteps = errors.New("no steps")

// dropStep represents a single action in a drop script.
type dropStep struct {
	Action string  `json:"action"`
	Piece  int     `json:"piece,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// dropScript is the top-level JSON structure for a drop script.
type dropScript struct {
	Steps []dropStep `json:"steps"`
}

// DropScript replays board actions one per frame: "move" and "drop" a piece
// to (x, y), "scatter" inside (x, y, width, height), "solve" every piece onto
// its target, and "wait" a number of frames. Used for demos and automated
// checks of the snapping rules.
type DropScript struct {
	steps     []dropStep
	cursor    int
	waitCount int
	done      bool
	results   []DropResult
}

// LoadDropScript parses a JSON drop script.
func LoadDropScript(jsonData []byte) (*DropScript, error) {
	var script dropScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("jigsaw: parse drop script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("jigsaw: parse drop script: %w", ErrNoSteps)
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "move", "drop", "scatter", "solve", "wait":
		default:
			return nil, fmt.Errorf("jigsaw: parse drop script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &DropScript{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *DropScript) Done() bool {
	return r.done
}

// Results returns the outcome of every "drop" step executed so far.
func (r *DropScript) Results() []DropResult {
	return append([]DropResult(nil), r.results...)
}

// Step advances the script by one frame against b. Steps naming a piece
// outside the board are skipped.
func (r *DropScript) Step(b *Board) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "move":
		if st.Piece >= 0 && st.Piece < b.Len() {
			b.Move(st.Piece, Vec2{st.X, st.Y})
		}
	case "drop":
		if st.Piece >= 0 && st.Piece < b.Len() {
			r.results = append(r.results, b.Drop(st.Piece, Vec2{st.X, st.Y}))
		}
	case "scatter":
		b.Scatter(Rect{st.X, st.Y, st.Width, st.Height})
	case "solve":
		for i := 0; i < b.Len(); i++ {
			r.results = append(r.results, b.Drop(i, b.Piece(i).Shape.Target()))
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
