package simulate

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

// Grid describes the uniform simulation window.
type Grid struct {
	// Starting time
	Start float64
	// Ending time
	End float64
	// Number of samples
	N int
}

// NewGrid creates a simulation window with N samples spanning start to end
// inclusive.
func NewGrid(start, end float64, n int) (Grid, error) {
	if n < 2 {
		return Grid{}, errors.New("simulate: a grid needs at least two samples")
	}
	if end <= start {
		return Grid{}, errors.New("simulate: grid end must lie after its start")
	}
	return Grid{Start: start, End: end, N: n}, nil
}

// DefaultGrid returns the window used by the lessons, 3000 samples over
// thirty seconds.
func DefaultGrid() Grid {
	return Grid{Start: 0, End: 30, N: 3000}
}

// Times returns the sample instants, both endpoints included.
func (g Grid) Times() []float64 {
	return floats.Span(make([]float64, g.N), g.Start, g.End)
}

// Dt returns the sample period.
func (g Grid) Dt() float64 {
	return (g.End - g.Start) / float64(g.N-1)
}
