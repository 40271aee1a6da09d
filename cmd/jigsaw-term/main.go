// Command jigsaw-term previews puzzle cut lines in a terminal. Resolved
// vertices are marked in yellow; vertices where the curves did not cross
// and the straight grid point was used are marked with a red x.
//
// Keys: r regenerates, + and - change the grid size, q quits.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/jigsaw"
	"github.com/phanxgames/jigsaw/cmd/internal/logging"
)

func main() {
	var (
		rows, cols int
		step       float64
		seed       uint64
		logPath    string
	)
	flag.IntVar(&rows, "rows", 4, "Piece rows")
	flag.IntVar(&cols, "cols", 4, "Piece columns")
	flag.Float64Var(&step, "step", jigsaw.DefaultStep, "Curve sampling step in pixels")
	flag.Uint64Var(&seed, "seed", 0, "Random seed (0 = random)")
	flag.StringVar(&logPath, "log", "", "Debug log file (rotated)")
	flag.Parse()

	// The terminal owns stdout while running; only the log file sees records.
	logger, cleanup, err := logging.New(logging.Options{File: logPath, Console: io.Discard, ConsoleLevel: slog.LevelError})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := run(jigsaw.Config{Rows: rows, Cols: cols, Step: step, Seed: seed, Logger: logger}); err != nil {
		cleanup()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg jigsaw.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	v, err := newViewer(screen, cfg)
	if err != nil {
		return err
	}
	for {
		v.draw()
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if !v.handleKey(ev.Key(), ev.Rune()) {
				return nil
			}
		case nil:
			return nil
		}
	}
}
