package gonumExtensions

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Companion returns the companion matrix of a monic polynomial
// s^n + c[n-1] s^(n-1) + ... + c[1] s + c[0], where c holds the
// n lower coefficients in ascending order. Its eigenvalues are the
// polynomial roots.
//
// See https://en.wikipedia.org/wiki/Companion_matrix
func Companion(c []float64) *mat.Dense {
	n := len(c)
	if n == 0 {
		panic("gonumExtensions: companion matrix needs at least one coefficient")
	}
	tmp := mat.NewDense(n, n, nil)
	for row := 1; row < n; row++ {
		tmp.Set(row, row-1, 1)
	}
	for row := 0; row < n; row++ {
		tmp.Set(row, n-1, -c[row])
	}
	return tmp
}

// NANORINF checks if there are any NAN or INF in matrix
func NANORINF(matrix mat.Matrix) bool {
	m, n := matrix.Dims()
	for row := 0; row < m; row++ {
		for col := 0; col < n; col++ {
			if math.IsNaN(matrix.At(row, col)) || math.IsInf(matrix.At(row, col), 0) {
				return true
			}
		}
	}
	return false
}
