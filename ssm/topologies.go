package ssm

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Here we present shorthand functions to generate the common block diagram
// interconnections at the state space level.

// Series returns the series interconnection
//
// u -> sys1 -> sys2 -> y
//
// where the output of sys1 drives the input of sys2.
func Series(sys1, sys2 *LinearSystem) *LinearSystem {
	order1 := sys1.Order()
	order2 := sys2.Order()

	// New A matrix
	var tmpU, tmpL, A, BC mat.Dense
	tmpU.Augment(sys1.A, mat.NewDense(order1, order2, nil))
	BC.Mul(sys2.B, sys1.C)
	tmpL.Augment(&BC, sys2.A)
	A.Stack(&tmpU, &tmpL)

	// New B vector
	B := mat.NewVecDense(order1+order2, nil)
	for row := 0; row < order1; row++ {
		B.SetVec(row, sys1.B.AtVec(row))
	}
	for row := 0; row < order2; row++ {
		B.SetVec(order1+row, sys1.D*sys2.B.AtVec(row))
	}

	// New C matrix
	var C, DC mat.Dense
	DC.Scale(sys2.D, sys1.C)
	C.Augment(&DC, sys2.C)

	return NewLinearSystem(&A, B, &C, sys1.D*sys2.D)
}

// Feedback returns the negative feedback interconnection
//
// y = fwd(u - back(y))
//
// of a forward path and a feedback path. It panics when the loop is ill
// posed, that is when 1 + fwd.D * back.D = 0.
func Feedback(fwd, back *LinearSystem) *LinearSystem {
	k := 1 + fwd.D*back.D
	if k == 0 {
		panic(errors.New("feedback loop is ill posed, the direct terms cancel"))
	}
	order1 := fwd.Order()
	order2 := back.Order()

	// New A matrix
	var tmpU, tmpL, A, upperL, upperR, lowerL, lowerR mat.Dense
	upperL.Mul(fwd.B, fwd.C)
	upperL.Scale(-back.D/k, &upperL)
	upperL.Add(fwd.A, &upperL)
	upperR.Mul(fwd.B, back.C)
	upperR.Scale(-1/k, &upperR)
	lowerL.Mul(back.B, fwd.C)
	lowerL.Scale(1/k, &lowerL)
	lowerR.Mul(back.B, back.C)
	lowerR.Scale(-fwd.D/k, &lowerR)
	lowerR.Add(back.A, &lowerR)
	tmpU.Augment(&upperL, &upperR)
	tmpL.Augment(&lowerL, &lowerR)
	A.Stack(&tmpU, &tmpL)

	// New B vector
	B := mat.NewVecDense(order1+order2, nil)
	for row := 0; row < order1; row++ {
		B.SetVec(row, fwd.B.AtVec(row)/k)
	}
	for row := 0; row < order2; row++ {
		B.SetVec(order1+row, fwd.D*back.B.AtVec(row)/k)
	}

	// New C matrix
	var C, left, right mat.Dense
	left.Scale(1/k, fwd.C)
	right.Scale(-fwd.D/k, back.C)
	C.Augment(&left, &right)

	return NewLinearSystem(&A, B, &C, fwd.D/k)
}

// UnityFeedback returns the negative feedback interconnection with a unit
// feedback path,
//
// y = fwd(u - y)
//
// the closed loop used throughout the PID lessons. It panics when
// 1 + fwd.D = 0.
func UnityFeedback(fwd *LinearSystem) *LinearSystem {
	k := 1 + fwd.D
	if k == 0 {
		panic(errors.New("feedback loop is ill posed, the direct terms cancel"))
	}
	order := fwd.Order()

	// New A matrix
	var A, BC mat.Dense
	BC.Mul(fwd.B, fwd.C)
	BC.Scale(-1/k, &BC)
	A.Add(fwd.A, &BC)

	// New B vector
	B := mat.NewVecDense(order, nil)
	for row := 0; row < order; row++ {
		B.SetVec(row, fwd.B.AtVec(row)/k)
	}

	// New C matrix
	var C mat.Dense
	C.Scale(1/k, fwd.C)

	return NewLinearSystem(&A, B, &C, fwd.D/k)
}
