package ssm

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// LinearSystem struct represents the system
//
// x'(t) = A x(t) + B u(t)
//
// y(t) = C x(t) + D u(t)
//
// where u is a scalar input and y a scalar output.
type LinearSystem struct {
	// State dynamics
	A *mat.Dense
	// Input vector
	B *mat.VecDense
	// Observation matrix
	C *mat.Dense
	// Direct term
	D float64
}

// NewLinearSystem creates a new linear state space model. The matrices are
// copied, so the caller keeps ownership of its arguments.
func NewLinearSystem(A mat.Matrix, B mat.Vector, C mat.Matrix, D float64) *LinearSystem {
	// Check that system parameters match
	m, n := A.Dims()
	mC, nC := C.Dims()
	if m != n || mC != 1 || nC != m || B.Len() != m {
		panic(errors.New("system parameters don't match"))
	}
	a := mat.NewDense(m, m, nil)
	a.Copy(A)
	b := mat.NewVecDense(m, nil)
	b.CopyVec(B)
	c := mat.NewDense(1, m, nil)
	c.Copy(C)
	return &LinearSystem{a, b, c, D}
}

// NewIntegratorChain returns a linear state space model of an integrator
// chain of size N, each stage amplified by stageGain, observing the last
// state. Its transfer function is stageGain^N / s^N.
func NewIntegratorChain(N int, stageGain float64) *LinearSystem {
	if N < 1 {
		panic(errors.New("integrator chain needs at least one stage"))
	}
	a := mat.NewDense(N, N, nil)
	for row := 1; row < N; row++ {
		a.Set(row, row-1, stageGain)
	}
	b := mat.NewVecDense(N, nil)
	b.SetVec(0, stageGain)
	c := mat.NewDense(1, N, nil)
	c.Set(0, N-1, 1)
	return &LinearSystem{a, b, c, 0}
}

// Order returns the state space order.
func (sys LinearSystem) Order() int {
	m, _ := sys.A.Dims()
	return m
}

// Derivative returns the state derivative
//
// x'(t) = A x(t) + B u(t)
//
// where state = x(t) at an arbitrary time t.
func (sys LinearSystem) Derivative(t float64, state mat.Vector, input float64) mat.Vector {
	if state.Len() != sys.Order() {
		panic(errors.New("state vector doesn't match state transition matrix"))
	}
	res := mat.NewVecDense(sys.Order(), nil)
	res.MulVec(sys.A, state)
	res.AddScaledVec(res, input, sys.B)
	return res
}

// Output returns the observed output
//
// y(t) = C x(t) + D u(t)
//
// where state = x(t) and t is an arbitrary time.
func (sys LinearSystem) Output(t float64, state mat.Vector, input float64) float64 {
	if state.Len() != sys.Order() {
		panic(errors.New("state vector doesn't match state transition matrix"))
	}
	var res mat.VecDense
	res.MulVec(sys.C, state)
	return res.AtVec(0) + sys.D*input
}

// Poles returns the eigenvalues of the state dynamics matrix.
func (sys LinearSystem) Poles() []complex128 {
	var eig mat.Eigen
	if ok := eig.Factorize(sys.A, mat.EigenNone); !ok {
		panic(errors.New("eigendecomposition of the state dynamics failed"))
	}
	return eig.Values(nil)
}

// IsStable reports whether all poles have strictly negative real part.
func (sys LinearSystem) IsStable() bool {
	for _, p := range sys.Poles() {
		if real(p) >= 0 {
			return false
		}
	}
	return true
}
