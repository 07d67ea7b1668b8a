package geworld

// A Space describes the set of values an action or
// observation component can take.
type Space interface {
	// Contains reports whether the flattened value lies in
	// the space.
	Contains(value []float64) bool
}

// Box is a bounded continuous space.
type Box struct {
	Low  []float64
	High []float64
}

// NewBox creates a box with uniform bounds in every one of
// the dim dimensions.
func NewBox(low, high float64, dim int) *Box {
	lows := make([]float64, dim)
	highs := make([]float64, dim)
	for i := range lows {
		lows[i] = low
		highs[i] = high
	}
	return &Box{Low: lows, High: highs}
}

// Len returns the dimensionality of the box.
func (b *Box) Len() int {
	return len(b.Low)
}

// Contains checks the value against the per-dimension
// bounds.
func (b *Box) Contains(value []float64) bool {
	if len(value) != len(b.Low) {
		return false
	}
	for i, x := range value {
		if x < b.Low[i] || x > b.High[i] {
			return false
		}
	}
	return true
}

// Discrete is a finite space of N choices, represented as
// one-hot vectors of length N.
type Discrete struct {
	N int
}

// Contains reports whether value is a one-hot vector over
// the N choices.
func (d *Discrete) Contains(value []float64) bool {
	if len(value) != d.N {
		return false
	}
	ones := 0
	for _, x := range value {
		switch x {
		case 0:
		case 1:
			ones++
		default:
			return false
		}
	}
	return ones == 1
}

// Dict declares the space of each component of a keyed
// observation.
type Dict map[ObsKey]Space
