// Package ssm provides linear state space models for single-input
// single-output systems,
//
// x'(t) = A x(t) + B u(t)
//
// y(t) = C x(t) + D u(t)
//
// together with the series and feedback interconnections used to build
// closed loops out of plant and controller blocks.
package ssm

import (
	"gonum.org/v1/gonum/mat"
)

// System interface has three parts:
//
// 1) The derivative function which returns the differential state evaluated
// at time t, state(t) and input u(t).
//
// 2) The output map y(t) evaluated at the same point.
//
// 3) The state space order.
type System interface {
	// This is the derivative of the state space model
	Derivative(t float64, state mat.Vector, input float64) mat.Vector
	// This is the observed output
	Output(t float64, state mat.Vector, input float64) float64
	// Returns the state space order
	Order() int
}
