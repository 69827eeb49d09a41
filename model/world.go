package model

import (
	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-world/rules"
)

// BoundaryMode controls how neighbours beyond the grid edge are read
type BoundaryMode int

const (
	// Bounded treats every cell outside the grid as permanently dead
	Bounded BoundaryMode = iota
	// Wrapped joins opposite edges so the grid forms a torus
	Wrapped
)

func (m BoundaryMode) String() string {
	switch m {
	case Bounded:
		return "bounded"
	case Wrapped:
		return "wrapped"
	default:
		return "unknown"
	}
}

// World owns a fixed-size grid and advances it one generation at a time.
//
// Cells live in two dense row-major buffers: cur holds the current generation
// and next receives the following one, then the two are swapped. A World is not
// safe for concurrent use.
type World struct {
	rows       int
	cols       int
	mode       BoundaryMode
	generation int

	cur  []uint8
	next []uint8
}

// NewWorld validates initial and copies it into a new World. With wrap set the
// grid edges wrap around, otherwise the grid has a dead border.
func NewWorld(initial Grid, wrap bool) (*World, error) {
	if err := initial.Validate(); err != nil {
		return nil, errors.Wrap(err, "[NewWorld] rejected initial state")
	}

	w := &World{
		rows: initial.Rows(),
		cols: initial.Cols(),
		mode: Bounded,
	}
	if wrap {
		w.mode = Wrapped
	}

	w.cur = make([]uint8, w.rows*w.cols)
	w.next = make([]uint8, w.rows*w.cols)
	for r, row := range initial {
		for c, cell := range row {
			w.cur[r*w.cols+c] = uint8(cell)
		}
	}
	return w, nil
}

// Rows returns the number of rows
func (w *World) Rows() int {
	return w.rows
}

// Cols returns the number of columns
func (w *World) Cols() int {
	return w.cols
}

// Mode returns the boundary mode fixed at construction
func (w *World) Mode() BoundaryMode {
	return w.mode
}

// Generation returns how many generations have been applied since construction
func (w *World) Generation() int {
	return w.generation
}

// State returns a copy of the current generation
func (w *World) State() Grid {
	g := NewGrid(w.rows, w.cols)
	for r := range w.rows {
		for c := range w.cols {
			g[r][c] = int(w.cur[r*w.cols+c])
		}
	}
	return g
}

// Evolve advances the world by one generation and returns the new state
func (w *World) Evolve() Grid {
	w.step()
	return w.State()
}

// Simulate evolves the world n times and returns the final state.
// A negative n is rejected before anything changes.
func (w *World) Simulate(n int) (Grid, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidStepCount, "[Simulate] cannot evolve %d times", n)
	}
	for range n {
		w.step()
	}
	return w.State(), nil
}

// CountNeighbours returns the number of living cells among the 8 neighbours of (r, c)
func (w *World) CountNeighbours(r, c int) int {
	count := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			count += int(w.cell(r+dr, c+dc))
		}
	}
	return count
}

// cell reads (r, c) from the current generation under the boundary mode.
// Rows and columns wrap independently.
func (w *World) cell(r, c int) uint8 {
	if w.mode == Wrapped {
		r = ((r % w.rows) + w.rows) % w.rows
		c = ((c % w.cols) + w.cols) % w.cols
	} else if r < 0 || r >= w.rows || c < 0 || c >= w.cols {
		return 0
	}
	return w.cur[r*w.cols+c]
}

// step writes the next generation into w.next, reading only w.cur, then swaps them
func (w *World) step() {
	for r := range w.rows {
		for c := range w.cols {
			idx := r*w.cols + c
			w.next[idx] = rules.ApplyConwayRules(w.CountNeighbours(r, c), w.cur[idx])
		}
	}
	w.cur, w.next = w.next, w.cur
	w.generation++
}
