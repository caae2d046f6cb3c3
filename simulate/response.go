package simulate

import (
	"gonum.org/v1/gonum/mat"
)

// Response holds a simulated trajectory. T, U and Y are aligned sample for
// sample; X stores the state trajectory with one column per sample.
type Response struct {
	// Sample instants
	T []float64
	// Input sequence
	U []float64
	// Output sequence
	Y []float64
	// State trajectory
	X *mat.Dense
}

// Len returns the number of samples.
func (r *Response) Len() int {
	return len(r.T)
}

// Final returns the last output sample.
func (r *Response) Final() float64 {
	return r.Y[len(r.Y)-1]
}
