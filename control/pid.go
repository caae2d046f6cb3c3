// Package control implements the PID controller and its closed loop
// around a plant,
//
//	          Kd s^2 + Kp s + Ki
//	C(s)  =  --------------------
//	                  s
//
// together with a gain sweep for comparing tunings side by side.
package control

import (
	"errors"
	"fmt"
	"math"

	"github.com/lambert-ike-1232/pidlab/simulate"
	"github.com/lambert-ike-1232/pidlab/tf"
)

// Default gains, chosen so the double integrator style plants of the
// lessons settle with a visible but modest overshoot.
const (
	DefaultKp = 5
	DefaultKi = 2
	DefaultKd = 0.5
)

// PID holds the three controller gains.
type PID struct {
	Kp float64
	Ki float64
	Kd float64
}

// Default returns the controller the lessons start from.
func Default() PID {
	return PID{Kp: DefaultKp, Ki: DefaultKi, Kd: DefaultKd}
}

// NewPID creates a controller after checking that every gain is finite and
// non negative.
func NewPID(kp, ki, kd float64) (PID, error) {
	for _, gain := range []float64{kp, ki, kd} {
		if math.IsNaN(gain) || math.IsInf(gain, 0) {
			return PID{}, errors.New("control: gains must be finite")
		}
		if gain < 0 {
			return PID{}, errors.New("control: gains must be non negative")
		}
	}
	return PID{Kp: kp, Ki: ki, Kd: kd}, nil
}

// TransferFunction returns the controller as a transfer function,
// (Kd s^2 + Kp s + Ki) / s. With a non zero derivative gain this is
// improper on its own; it becomes proper once the loop around a strictly
// proper plant is closed.
func (c PID) TransferFunction() tf.TransferFunction {
	return tf.MustNew([]float64{c.Kd, c.Kp, c.Ki}, []float64{1, 0})
}

// ClosedLoop returns the unity feedback loop around the cascade of the
// controller and the plant,
//
//	T(s) = C G / (1 + C G)
//
// the transfer function from reference to output.
func (c PID) ClosedLoop(plant tf.TransferFunction) (tf.TransferFunction, error) {
	return c.TransferFunction().Mul(plant).FeedbackUnity()
}

// String renders the gains the way the lessons print them.
func (c PID) String() string {
	return fmt.Sprintf("PID(kp=%g, ki=%g, kd=%g)", c.Kp, c.Ki, c.Kd)
}

// Gain names one of the three controller gains.
type Gain int

const (
	Proportional Gain = iota
	Integral
	Derivative
)

// ParseGain accepts the flag spellings kp, ki and kd.
func ParseGain(s string) (Gain, error) {
	switch s {
	case "kp":
		return Proportional, nil
	case "ki":
		return Integral, nil
	case "kd":
		return Derivative, nil
	}
	return 0, fmt.Errorf("control: unknown gain %q, want kp, ki or kd", s)
}

func (g Gain) String() string {
	switch g {
	case Proportional:
		return "kp"
	case Integral:
		return "ki"
	case Derivative:
		return "kd"
	}
	return fmt.Sprintf("Gain(%d)", int(g))
}

// Value returns the named gain.
func (c PID) Value(g Gain) float64 {
	switch g {
	case Proportional:
		return c.Kp
	case Integral:
		return c.Ki
	}
	return c.Kd
}

// With returns a copy of the controller with one gain replaced.
func (c PID) With(g Gain, value float64) PID {
	switch g {
	case Proportional:
		c.Kp = value
	case Integral:
		c.Ki = value
	case Derivative:
		c.Kd = value
	}
	return c
}

// Sweep simulates the closed loop step response once per candidate value
// of the swept gain, all other gains held at their base values. The
// results come back in candidate order, named gain=value.
func Sweep(base PID, g Gain, values []float64, plant tf.TransferFunction, grid simulate.Grid) ([]simulate.Result, error) {
	times := grid.Times()
	step := make([]float64, len(times))
	for i := range step {
		step[i] = 1
	}

	jobs := make([]simulate.Job, 0, len(values))
	for _, value := range values {
		pid := base.With(g, value)
		loop, err := pid.ClosedLoop(plant)
		if err != nil {
			return nil, fmt.Errorf("control: %s: %w", pid, err)
		}
		sys, err := loop.Realize()
		if err != nil {
			return nil, fmt.Errorf("control: %s: %w", pid, err)
		}
		jobs = append(jobs, simulate.Job{
			Name:   fmt.Sprintf("%s=%g", g, value),
			System: sys,
			T:      times,
			U:      step,
		})
	}
	return simulate.Batch(jobs), nil
}
