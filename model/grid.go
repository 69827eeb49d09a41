package model

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

// Grid is a rectangular matrix of cells, each 0 (dead) or 1 (alive), indexed [row][col]
type Grid [][]int

// NewGrid creates an all-dead grid with the specified dimensions
func NewGrid(rows, cols int) Grid {
	g := make(Grid, rows)
	for i := range g {
		g[i] = make([]int, cols)
	}
	return g
}

// Rows returns the number of rows
func (g Grid) Rows() int {
	return len(g)
}

// Cols returns the number of columns, taken from the first row
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Validate checks the grid is non-empty, rectangular and holds only 0 and 1
func (g Grid) Validate() error {
	if g.Rows() == 0 || g.Cols() == 0 {
		return errors.Wrapf(ErrInvalidShape, "[Validate] grid is empty: %dx%d", g.Rows(), g.Cols())
	}

	cols := g.Cols()
	for r, row := range g {
		if len(row) != cols {
			return errors.Wrapf(ErrInvalidShape, "[Validate] row %d has %d cells, want %d", r, len(row), cols)
		}
		for c, cell := range row {
			if cell != 0 && cell != 1 {
				return errors.Wrapf(ErrInvalidCell, "[Validate] cell (%d, %d) = %d", r, c, cell)
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the grid
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// Equal reports whether both grids have the same dimensions and identical cells
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for r := range g {
		if len(g[r]) != len(other[r]) {
			return false
		}
		for c := range g[r] {
			if g[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

// Set sets a cell to alive or dead, ignoring positions outside the grid
func (g Grid) Set(r, c int, alive bool) {
	if r < 0 || r >= len(g) || c < 0 || c >= len(g[r]) {
		return
	}
	if alive {
		g[r][c] = 1
	} else {
		g[r][c] = 0
	}
}

// Stamp copies pattern p into the grid with its top-left corner at (top, left).
// Cells falling outside the grid are dropped.
func (g Grid) Stamp(p Grid, top, left int) {
	for r, row := range p {
		for c, cell := range row {
			g.Set(top+r, left+c, cell != 0)
		}
	}
}

// Population returns the total number of living cells
func (g Grid) Population() (count int) {
	for _, row := range g {
		for _, cell := range row {
			if cell != 0 {
				count++
			}
		}
	}
	return
}

// Density returns the fraction of living cells, 0 for an empty grid
func (g Grid) Density() float64 {
	size := g.Rows() * g.Cols()
	if size == 0 {
		return 0
	}
	return float64(g.Population()) / float64(size)
}

// Hash returns an MD5 digest of the grid shape and cells
func (g Grid) Hash() string {
	h := md5.New()

	var shape [16]byte
	binary.LittleEndian.PutUint64(shape[:8], uint64(g.Rows()))
	binary.LittleEndian.PutUint64(shape[8:], uint64(g.Cols()))
	h.Write(shape[:])

	for _, row := range g {
		for _, cell := range row {
			if cell != 0 {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
