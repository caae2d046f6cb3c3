// Package signal provides the scalar reference signals that drive the
// control loop simulations: constants, steps, ramps, sinusoids and the
// piecewise constant setpoint profile.
package signal

import (
	"fmt"
	"math"
)

// Source is a scalar signal, the reference r(t) fed to a control loop.
type Source interface {
	// At returns the signal value at time t.
	At(t float64) float64
	// String names the signal for legends and logs.
	String() string
}

// Constant is the signal r(t) = value.
type Constant float64

// At returns the constant level.
func (c Constant) At(t float64) float64 { return float64(c) }

func (c Constant) String() string { return fmt.Sprintf("constant %g", float64(c)) }

// Step is the signal r(t) = amplitude for t >= onset, 0 before.
type Step struct {
	Amplitude float64
	Onset     float64
}

// At returns the step value.
func (s Step) At(t float64) float64 {
	if t < s.Onset {
		return 0
	}
	return s.Amplitude
}

func (s Step) String() string { return fmt.Sprintf("step %g", s.Amplitude) }

// Ramp is the signal r(t) = slope * t.
type Ramp struct {
	Slope float64
}

// At returns the ramp value.
func (r Ramp) At(t float64) float64 { return r.Slope * t }

func (r Ramp) String() string { return "ramp" }

// Sine is the signal r(t) = amplitude * sin(omega t + phase).
type Sine struct {
	Amplitude float64
	Omega     float64
	Phase     float64
}

// At returns the sinusoid value.
func (s Sine) At(t float64) float64 {
	return s.Amplitude * math.Sin(s.Omega*t+s.Phase)
}

func (s Sine) String() string {
	return fmt.Sprintf("%g sin(%g t)", s.Amplitude, s.Omega)
}

// Samples materializes a source over a time grid, the input vector handed
// to the forced response simulation.
func Samples(src Source, t []float64) []float64 {
	out := make([]float64, len(t))
	for i, ti := range t {
		out[i] = src.At(ti)
	}
	return out
}
