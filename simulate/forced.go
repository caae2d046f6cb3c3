// Package simulate computes time domain responses of linear state space
// models. Uniform time grids are propagated with a first order hold
// discretization, one matrix exponential of the augmented system per run;
// non uniform grids fall back to adaptive Runge-Kutta integration with the
// input interpolated linearly between samples.
package simulate

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/lambert-ike-1232/pidlab/gonumExtensions"
	"github.com/lambert-ike-1232/pidlab/ode"
	"github.com/lambert-ike-1232/pidlab/ssm"
	"gonum.org/v1/gonum/mat"
)

// ForcedResponse simulates the output of a linear system driven by the
// input sequence u over the time vector t, starting from the zero state.
// The returned response shares t and u and aligns Y with them sample for
// sample.
func ForcedResponse(sys *ssm.LinearSystem, t, u []float64) (*Response, error) {
	return ForcedResponseFrom(sys, nil, t, u)
}

// ForcedResponseFrom is ForcedResponse with an explicit initial state. A
// nil initial state means the zero state.
func ForcedResponseFrom(sys *ssm.LinearSystem, x0 mat.Vector, t, u []float64) (*Response, error) {
	if len(t) != len(u) {
		return nil, fmt.Errorf("simulate: time and input vectors differ in length, %v versus %v",
			len(t), len(u))
	}
	if len(t) < 2 {
		return nil, errors.New("simulate: at least two samples are needed")
	}
	for i := 1; i < len(t); i++ {
		if t[i] <= t[i-1] {
			return nil, errors.New("simulate: time vector must be strictly increasing")
		}
	}
	n := sys.Order()
	if x0 != nil && x0.Len() != n {
		return nil, errors.New("simulate: initial state doesn't match the system order")
	}

	state := mat.NewVecDense(n, nil)
	if x0 != nil {
		state.CopyVec(x0)
	}

	if uniformSpacing(t) {
		return firstOrderHold(sys, state, t, u)
	}
	return adaptiveResponse(sys, state, t, u)
}

// StepResponse simulates the response to a unit step applied at the start
// of the grid.
func StepResponse(sys *ssm.LinearSystem, grid Grid) (*Response, error) {
	t := grid.Times()
	u := make([]float64, len(t))
	for i := range u {
		u[i] = 1
	}
	return ForcedResponse(sys, t, u)
}

// ImpulseResponse simulates the response to a unit impulse by starting the
// unforced system from the state B.
func ImpulseResponse(sys *ssm.LinearSystem, grid Grid) (*Response, error) {
	t := grid.Times()
	u := make([]float64, len(t))
	return ForcedResponseFrom(sys, sys.B, t, u)
}

func uniformSpacing(t []float64) bool {
	dt := t[1] - t[0]
	for i := 1; i < len(t); i++ {
		if math.Abs(t[i]-t[i-1]-dt) > 1e-8*dt {
			return false
		}
	}
	return true
}

// firstOrderHold propagates the state with the discretization
//
//	x[i] = Ad x[i-1] + Bd0 u[i-1] + Bd1 u[i]
//
// where Ad, Bd0 and Bd1 come from one matrix exponential of the augmented
// system
//
//	M = | A dt  B dt  0 |
//	    | 0     0     1 |
//	    | 0     0     0 |
//
// This propagation is exact whenever the input is linear between samples.
func firstOrderHold(sys *ssm.LinearSystem, state *mat.VecDense, t, u []float64) (*Response, error) {
	n := sys.Order()
	dt := t[1] - t[0]

	M := mat.NewDense(n+2, n+2, nil)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			M.Set(row, col, sys.A.At(row, col)*dt)
		}
		M.Set(row, n, sys.B.AtVec(row)*dt)
	}
	M.Set(n, n+1, 1)

	var expM mat.Dense
	expM.Exp(M)

	Ad := mat.NewDense(n, n, nil)
	Ad.Copy(expM.Slice(0, n, 0, n))
	Bd0 := mat.NewVecDense(n, nil)
	Bd1 := mat.NewVecDense(n, nil)
	for row := 0; row < n; row++ {
		b1 := expM.At(row, n+1)
		Bd1.SetVec(row, b1)
		Bd0.SetVec(row, expM.At(row, n)-b1)
	}

	X := mat.NewDense(n, len(t), nil)
	Y := make([]float64, len(t))
	for row := 0; row < n; row++ {
		X.Set(row, 0, state.AtVec(row))
	}
	Y[0] = sys.Output(t[0], state, u[0])

	var next mat.VecDense
	for i := 1; i < len(t); i++ {
		next.MulVec(Ad, state)
		next.AddScaledVec(&next, u[i-1], Bd0)
		next.AddScaledVec(&next, u[i], Bd1)
		state.CopyVec(&next)
		for row := 0; row < n; row++ {
			X.Set(row, i, state.AtVec(row))
		}
		Y[i] = sys.Output(t[i], state, u[i])
		if math.IsNaN(Y[i]) || math.IsInf(Y[i], 0) {
			return nil, fmt.Errorf("simulate: the response diverged at t = %g", t[i])
		}
	}
	if gonumExtensions.NANORINF(X) {
		return nil, errors.New("simulate: the state trajectory diverged")
	}
	return &Response{T: t, U: u, Y: Y, X: X}, nil
}

// forcedSystem adapts a linear system and a sampled input to the
// ode.DifferentiableSystem interface, interpolating the input linearly
// between samples.
type forcedSystem struct {
	sys *ssm.LinearSystem
	t   []float64
	u   []float64
}

func (f forcedSystem) input(time float64) float64 {
	if time <= f.t[0] {
		return f.u[0]
	}
	last := len(f.t) - 1
	if time >= f.t[last] {
		return f.u[last]
	}
	i := sort.SearchFloat64s(f.t, time)
	if f.t[i] == time {
		return f.u[i]
	}
	w := (time - f.t[i-1]) / (f.t[i] - f.t[i-1])
	return f.u[i-1] + w*(f.u[i]-f.u[i-1])
}

func (f forcedSystem) Derivative(time float64, state mat.Vector) mat.Vector {
	return f.sys.Derivative(time, state, f.input(time))
}

// adaptiveResponse integrates interval by interval with the embedded pair
// method, used when the grid spacing is not uniform.
func adaptiveResponse(sys *ssm.LinearSystem, state *mat.VecDense, t, u []float64) (*Response, error) {
	const tol = 1e-9
	rk := ode.NewFehlberg45()
	f := forcedSystem{sys: sys, t: t, u: u}
	n := sys.Order()

	X := mat.NewDense(n, len(t), nil)
	Y := make([]float64, len(t))
	for row := 0; row < n; row++ {
		X.Set(row, 0, state.AtVec(row))
	}
	Y[0] = sys.Output(t[0], state, u[0])

	for i := 1; i < len(t); i++ {
		if err := rk.AdaptiveCompute(t[i-1], t[i], tol, state, f); err != nil {
			return nil, fmt.Errorf("simulate: adaptive integration failed at t = %g: %w", t[i], err)
		}
		for row := 0; row < n; row++ {
			X.Set(row, i, state.AtVec(row))
		}
		Y[i] = sys.Output(t[i], state, u[i])
		if math.IsNaN(Y[i]) || math.IsInf(Y[i], 0) {
			return nil, fmt.Errorf("simulate: the response diverged at t = %g", t[i])
		}
	}
	if gonumExtensions.NANORINF(X) {
		return nil, errors.New("simulate: the state trajectory diverged")
	}
	return &Response{T: t, U: u, Y: Y, X: X}, nil
}
