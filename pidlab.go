// Package pidlab bundles transfer functions, PID controllers, reference
// signals and time-domain simulation behind a single import. The
// subpackages carry the full APIs; the functions here re-export the small
// surface that quick experiments need, so a scratch program can build a
// loop and simulate it without touching anything below.
package pidlab

import (
	"gonum.org/v1/gonum/floats"

	"github.com/lambert-ike-1232/pidlab/control"
	"github.com/lambert-ike-1232/pidlab/simulate"
	"github.com/lambert-ike-1232/pidlab/tf"
)

// TF builds a transfer function from numerator and denominator
// coefficients in descending powers of s, so
//
//	TF([]float64{1}, []float64{1, 1, 0})
//
// is 1/(s^2 + s).
func TF(num, den []float64) (tf.TransferFunction, error) {
	return tf.New(num, den)
}

// PID builds a controller with the given gains.
func PID(kp, ki, kd float64) (control.PID, error) {
	return control.NewPID(kp, ki, kd)
}

// Feedback closes a negative feedback loop with g in the forward path and
// h in the return path, giving g/(1+gh).
func Feedback(g, h tf.TransferFunction) (tf.TransferFunction, error) {
	return g.Feedback(h)
}

// Unity closes a negative feedback loop around g with unit return path.
func Unity(g tf.TransferFunction) (tf.TransferFunction, error) {
	return g.FeedbackUnity()
}

// ForcedResponse realizes g in state space and simulates it driven by the
// input samples u on the time grid t.
func ForcedResponse(g tf.TransferFunction, t, u []float64) (*simulate.Response, error) {
	sys, err := g.Realize()
	if err != nil {
		return nil, err
	}
	return simulate.ForcedResponse(sys, t, u)
}

// Linspace returns n evenly spaced samples from start to end inclusive.
// It panics if n < 2, matching floats.Span.
func Linspace(start, end float64, n int) []float64 {
	return floats.Span(make([]float64, n), start, end)
}
