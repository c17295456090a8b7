package game

import (
	"fmt"
	"strings"

	"github.com/samuelfneumann/badicecream/utils/intutils"
)

// Position is a (row, column) coordinate on the grid
type Position struct {
	Row, Col int
}

// Add returns p displaced by (dRow, dCol)
func (p Position) Add(dRow, dCol int) Position {
	return Position{p.Row + dRow, p.Col + dCol}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Grid is a rows x cols board of cells. The zero value is an empty
// 0 x 0 grid.
type Grid struct {
	rows, cols int
	cells      []Cell
}

// NewGrid returns a new empty grid
func NewGrid(rows, cols int) Grid {
	return Grid{rows: rows, cols: cols, cells: make([]Cell, rows*cols)}
}

// Dims returns the number of rows and columns in the grid
func (g Grid) Dims() (rows, cols int) {
	return g.rows, g.cols
}

// Contains returns whether p lies on the grid
func (g Grid) Contains(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// Clamp returns the position on the grid closest to p
func (g Grid) Clamp(p Position) Position {
	return Position{
		Row: intutils.Clip(p.Row, 0, g.rows-1),
		Col: intutils.Clip(p.Col, 0, g.cols-1),
	}
}

// At returns the cell at position p. It panics if p is off the grid.
func (g Grid) At(p Position) Cell {
	if !g.Contains(p) {
		panic(fmt.Sprintf("at: position %v out of bounds for %dx%d grid",
			p, g.rows, g.cols))
	}
	return g.cells[p.Row*g.cols+p.Col]
}

func (g Grid) set(p Position, c Cell) {
	g.cells[p.Row*g.cols+p.Col] = c
}

func (g Grid) clear() {
	for i := range g.cells {
		g.cells[i] = Empty
	}
}

// Clone returns a deep copy of the grid
func (g Grid) Clone() Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return Grid{rows: g.rows, cols: g.cols, cells: cells}
}

// Count returns the number of cells holding c
func (g Grid) Count(c Cell) int {
	n := 0
	for _, cell := range g.cells {
		if cell == c {
			n++
		}
	}
	return n
}

// Values returns the grid as a rows x cols array of cell values
func (g Grid) Values() [][]int {
	values := make([][]int, g.rows)
	for r := range values {
		values[r] = make([]int, g.cols)
		for c := range values[r] {
			values[r][c] = int(g.cells[r*g.cols+c])
		}
	}
	return values
}

// Flat returns the cell values in row-major order
func (g Grid) Flat() []float64 {
	flat := make([]float64, len(g.cells))
	for i, cell := range g.cells {
		flat[i] = float64(cell)
	}
	return flat
}

func (g Grid) String() string {
	var b strings.Builder
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			b.WriteRune(g.cells[r*g.cols+c].Rune())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
