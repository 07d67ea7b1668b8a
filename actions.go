package geworld

import (
	"fmt"

	"github.com/unixpickle/anyvec"
)

// An ActionTable maps discrete action indices to fixed
// continuous control tuples.
//
// The table enumerates the Cartesian product of
// {-scale, 0, +scale} across every control dimension. The
// enumeration is deterministic: the outermost dimension
// varies slowest. When dropZero is set, the all-zero tuple
// is left out of the table.
type ActionTable struct {
	rows [][]float64
}

// NewActionTable builds the table for dims control
// dimensions at the given scale.
func NewActionTable(scale float64, dims int, dropZero bool) *ActionTable {
	levels := []float64{-scale, 0, scale}
	total := 1
	for i := 0; i < dims; i++ {
		total *= len(levels)
	}
	rows := make([][]float64, 0, total)
	for i := 0; i < total; i++ {
		row := make([]float64, dims)
		zero := true
		rem := i
		for d := dims - 1; d >= 0; d-- {
			row[d] = levels[rem%len(levels)]
			rem /= len(levels)
			if row[d] != 0 {
				zero = false
			}
		}
		if zero && dropZero {
			continue
		}
		rows = append(rows, row)
	}
	return &ActionTable{rows: rows}
}

// Len returns the number of discrete actions.
func (a *ActionTable) Len() int {
	return len(a.rows)
}

// Action returns a copy of the control tuple at index i.
// An out-of-range index is a caller bug and panics.
func (a *ActionTable) Action(i int) []float64 {
	if i < 0 || i >= len(a.rows) {
		panic(fmt.Sprintf("action index out of range: %d (table size %d)",
			i, len(a.rows)))
	}
	return append([]float64{}, a.rows[i]...)
}

// Decode picks the control tuple selected by a one-hot (or
// argmax) action vector. The vector length must equal the
// table size.
func (a *ActionTable) Decode(vec anyvec.Vector) []float64 {
	if vec.Len() != len(a.rows) {
		panic(fmt.Sprintf("action vector length %d does not match table size %d",
			vec.Len(), len(a.rows)))
	}
	return a.Action(anyvec.MaxIndex(vec))
}

// Space returns the Discrete space matching the table.
func (a *ActionTable) Space() *Discrete {
	return &Discrete{N: len(a.rows)}
}
