// Package ode is an ordinary differential equation library that implements
// explicit Runge-Kutta methods,
// https://en.wikipedia.org/wiki/Runge–Kutta_methods.
package ode

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DifferentiableSystem is anything that can report its state derivative at
// a given time and state.
type DifferentiableSystem interface {
	Derivative(t float64, state mat.Vector) mat.Vector
}

// butcherTableau describes the approximate solution, see
// https://en.wikipedia.org/wiki/Runge–Kutta_methods.
type butcherTableau struct {
	stages           int
	weights          [][]float64
	nodes            []float64
	rungeKuttaMatrix [][]float64
}

// RungeKutta holds the butcherTableau which describes the Runge-Kutta
// method.
type RungeKutta struct {
	Description butcherTableau
}

// Compute advances value in place from t = from to t = to with a single
// step of the method. It returns the embedded error estimate, the zero
// vector for tableaus without an embedded pair.
func (rk RungeKutta) Compute(from, to float64, value *mat.VecDense, system DifferentiableSystem) mat.Vector {
	M := value.Len()
	// The precomputed derivative points
	K := make([]mat.Vector, rk.Description.stages)
	// Step length
	h := to - from

	var tempV mat.VecDense
	for index := range K {
		tempV.CloneFromVec(value)
		// Combine previously computed derivative points according to the
		// Butcher tableau.
		for index2, a := range rk.Description.rungeKuttaMatrix[index] {
			if a != 0 {
				tempV.AddScaledVec(&tempV, h*a, K[index2])
			}
		}
		// Insert the new derivative point
		K[index] = system.Derivative(from+h*rk.Description.nodes[index], &tempV)
	}

	// Initialize the error vector
	err := mat.NewVecDense(M, nil)
	// Sum up the different contributions with relevant weights.
	for index, k := range K {
		value.AddScaledVec(value, h*rk.Description.weights[0][index], k)
		// If the Butcher tableau allows for adaptive error computation
		if len(rk.Description.weights) == 2 {
			err.AddScaledVec(err, h*(rk.Description.weights[0][index]-rk.Description.weights[1][index]), k)
		}
	}
	return err
}

// AdaptiveCompute integrates value in place from t = from to t = to such
// that the local error estimate never exceeds tol. It makes recursive
// interval halvings and gives up after a maximum number of trials.
func (rk RungeKutta) AdaptiveCompute(from, to, tol float64, value *mat.VecDense, system DifferentiableSystem) error {
	var (
		currentError float64
		tnow, tnext  float64
		count        int
	)
	if len(rk.Description.weights) != 2 {
		return errors.New("the method carries no embedded error estimate")
	}
	// Set max number of iterations
	const maxNumberOfIterations int = 10000

	// Initialize current time
	tnow = from

	M := value.Len()
	tmpState1 := mat.NewVecDense(M, nil)
	tmpState2 := mat.NewVecDense(M, nil)
	tmpState1.CloneFromVec(value)

	// Repeat until time to is reached
	for tnow < to {
		// Set target time
		tnext = to
		// Repeat until target error is reached
		for {
			// Copy the current state into tmpState
			tmpState2.CopyVec(tmpState1)
			// Execute the Runge-Kutta computation
			currentErrorVector := rk.Compute(tnow, tnext, tmpState2, system)
			// Reset and compute error
			currentError = 0.
			for index := 0; index < tmpState2.Len(); index++ {
				currentError += math.Abs(currentErrorVector.AtVec(index))
			}
			// Has the target error been achieved?
			if currentError < tol {
				break
			}
			// Halve the next integration interval and try again
			tnext = (tnext-tnow)/2. + tnow

			// Increment counter and check if we are allowed more trials
			count++
			if count >= maxNumberOfIterations {
				return errors.New("maximum number of iterations reached, adaptive Runge-Kutta doesn't converge")
			}
		}
		// Save this state and update tnow
		tmpState1.CopyVec(tmpState2)
		tnow = tnext
	}
	value.CopyVec(tmpState1)

	// Successful integration! Return nil error
	return nil
}

// NewRK4 function returns a fourth order Runge-Kutta object
func NewRK4() *RungeKutta {
	var temp butcherTableau
	temp.stages = 4
	temp.nodes = []float64{0, 1. / 2., 1. / 2., 1}
	temp.weights = [][]float64{{1. / 6., 1. / 3., 1. / 3., 1. / 6.}}
	temp.rungeKuttaMatrix = [][]float64{
		nil,
		{1. / 2.},
		{0, 1. / 2.},
		{0, 0, 1.},
	}
	rk := RungeKutta{temp}
	return &rk
}

// NewEulerMethod returns a pointer to a Runge-Kutta that does the Euler
// method.
func NewEulerMethod() *RungeKutta {
	var temp butcherTableau
	temp.stages = 1
	temp.nodes = []float64{0}
	temp.weights = [][]float64{{1}}
	temp.rungeKuttaMatrix = [][]float64{nil}
	rk := RungeKutta{temp}
	return &rk
}

// NewFehlberg45 implements
// https://en.wikipedia.org/wiki/Runge%E2%80%93Kutta%E2%80%93Fehlberg_method
func NewFehlberg45() *RungeKutta {
	var temp butcherTableau
	temp.stages = 6
	temp.nodes = []float64{0, 1. / 4., 3. / 8., 12. / 13., 1., 1. / 2.}
	temp.weights = [][]float64{
		{16. / 135., 0, 6656. / 12825., 28561. / 56430., -9. / 50., 2. / 55.},
		{25. / 216., 0, 1408. / 2565., 2197. / 4104., -1. / 5., 0},
	}
	temp.rungeKuttaMatrix = [][]float64{
		nil,
		{1. / 4.},
		{3. / 32., 9. / 32.},
		{1932. / 2197., -7200. / 2197., 7296. / 2197.},
		{439. / 216., -8., 3680. / 513., -845. / 4104.},
		{-8. / 27., 2, -3544. / 2565., 1859. / 4104., -11. / 40.},
	}
	rk := RungeKutta{temp}
	return &rk
}
