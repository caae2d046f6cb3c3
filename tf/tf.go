// Package tf implements single-input single-output transfer functions as
// ratios of polynomials in the Laplace variable s,
//
//	G(s) = num(s) / den(s)
//
// with the series, parallel and feedback interconnections needed to build
// closed control loops, and a controllable canonical state space
// realization for simulation.
package tf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lambert-ike-1232/pidlab/gonumExtensions"
	"github.com/lambert-ike-1232/pidlab/poly"
	"github.com/lambert-ike-1232/pidlab/ssm"
	"gonum.org/v1/gonum/mat"
)

// TransferFunction is a ratio of two polynomials in s. The zero value is
// not useful, construct values with New or MustNew.
type TransferFunction struct {
	num poly.Poly
	den poly.Poly
}

// New creates a transfer function from numerator and denominator
// coefficients in descending powers of s, the order control texts write
// them in. New([]float64{1}, []float64{1, 1, 0}) is 1 / (s^2 + s).
func New(num, den []float64) (TransferFunction, error) {
	n := poly.FromDescending(num)
	d := poly.FromDescending(den)
	if d.IsZero() {
		return TransferFunction{}, errors.New("tf: denominator polynomial is zero")
	}
	return TransferFunction{num: n, den: d}, nil
}

// MustNew is like New but panics on error. It simplifies literals in
// examples and tests.
func MustNew(num, den []float64) TransferFunction {
	sys, err := New(num, den)
	if err != nil {
		panic(err)
	}
	return sys
}

// FromPoly creates a transfer function from polynomial numerator and
// denominator.
func FromPoly(num, den poly.Poly) (TransferFunction, error) {
	if den.IsZero() {
		return TransferFunction{}, errors.New("tf: denominator polynomial is zero")
	}
	return TransferFunction{num: num, den: den}, nil
}

// Num returns the numerator polynomial.
func (g TransferFunction) Num() poly.Poly { return g.num.Clone() }

// Den returns the denominator polynomial.
func (g TransferFunction) Den() poly.Poly { return g.den.Clone() }

// Degree returns the numerator and denominator degrees.
func (g TransferFunction) Degree() (num, den int) {
	return g.num.Degree(), g.den.Degree()
}

// IsProper reports whether the numerator degree does not exceed the
// denominator degree, the condition for a state space realization.
func (g TransferFunction) IsProper() bool {
	return g.num.Degree() <= g.den.Degree()
}

// Mul returns the series interconnection g * h, the transfer function of
// the cascade u -> h -> g -> y.
func (g TransferFunction) Mul(h TransferFunction) TransferFunction {
	return TransferFunction{
		num: poly.Mul(g.num, h.num),
		den: poly.Mul(g.den, h.den),
	}
}

// Add returns the parallel interconnection g + h.
func (g TransferFunction) Add(h TransferFunction) TransferFunction {
	return TransferFunction{
		num: poly.Add(poly.Mul(g.num, h.den), poly.Mul(h.num, g.den)),
		den: poly.Mul(g.den, h.den),
	}
}

// Scale returns k * g.
func (g TransferFunction) Scale(k float64) TransferFunction {
	return TransferFunction{num: g.num.Scale(k), den: g.den}
}

// Feedback closes a negative feedback loop with h in the feedback path,
//
//	g.Feedback(h) = g / (1 + g h)
//
// the loop that turns an open loop controller times plant cascade into the
// closed loop response.
func (g TransferFunction) Feedback(h TransferFunction) (TransferFunction, error) {
	den := poly.Add(poly.Mul(g.den, h.den), poly.Mul(g.num, h.num))
	if den.IsZero() {
		return TransferFunction{}, errors.New("tf: feedback loop is ill posed, 1 + g h vanishes")
	}
	return TransferFunction{
		num: poly.Mul(g.num, h.den),
		den: den,
	}, nil
}

// FeedbackUnity closes a negative feedback loop with a unit feedback path,
//
//	g.FeedbackUnity() = g / (1 + g)
func (g TransferFunction) FeedbackUnity() (TransferFunction, error) {
	den := poly.Add(g.den, g.num)
	if den.IsZero() {
		return TransferFunction{}, errors.New("tf: feedback loop is ill posed, 1 + g vanishes")
	}
	return TransferFunction{num: g.num, den: den}, nil
}

// Eval evaluates g at the complex frequency point s.
func (g TransferFunction) Eval(s complex128) complex128 {
	return g.num.EvalC(s) / g.den.EvalC(s)
}

// DCGain returns the steady state gain g(0). The second return value is
// false when the gain is unbounded, as for integrating systems.
func (g TransferFunction) DCGain() (float64, bool) {
	d := g.den.Eval(0)
	if d == 0 {
		return 0, false
	}
	return g.num.Eval(0) / d, true
}

// Poles returns the roots of the denominator polynomial, computed as the
// eigenvalues of its companion matrix.
func (g TransferFunction) Poles() []complex128 {
	return roots(g.den)
}

// Zeros returns the roots of the numerator polynomial.
func (g TransferFunction) Zeros() []complex128 {
	return roots(g.num)
}

func roots(p poly.Poly) []complex128 {
	n := p.Degree()
	if n < 1 {
		return nil
	}
	lead := p.Coeff(n)
	c := make([]float64, n)
	for i := 0; i < n; i++ {
		c[i] = p.Coeff(i) / lead
	}
	var eig mat.Eigen
	if ok := eig.Factorize(gonumExtensions.Companion(c), mat.EigenNone); !ok {
		panic(errors.New("tf: eigendecomposition of the companion matrix failed"))
	}
	return eig.Values(nil)
}

// Realize returns the controllable canonical state space realization of a
// proper transfer function,
//
//	A is the transposed companion matrix of the monic denominator,
//	B = (0, ..., 0, 1),
//	C row i = b_i - b_n a_i,
//	D = b_n,
//
// so that C (sI - A)^-1 B + D = num(s) / den(s). It returns an error for
// improper systems and for static gains, which carry no state.
//
// See https://en.wikipedia.org/wiki/State-space_representation#Canonical_realizations
func (g TransferFunction) Realize() (*ssm.LinearSystem, error) {
	n := g.den.Degree()
	if g.num.Degree() > n {
		return nil, fmt.Errorf("tf: %v is improper and has no state space realization", g)
	}
	if n < 1 {
		return nil, errors.New("tf: a static gain has no state space realization")
	}
	lead := g.den.Coeff(n)

	a := make([]float64, n)
	for i := 0; i < n; i++ {
		a[i] = g.den.Coeff(i) / lead
	}
	b := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		b[i] = g.num.Coeff(i) / lead
	}

	A := mat.NewDense(n, n, nil)
	A.Copy(gonumExtensions.Companion(a).T())
	B := mat.NewVecDense(n, nil)
	B.SetVec(n-1, 1)
	C := mat.NewDense(1, n, nil)
	for i := 0; i < n; i++ {
		C.Set(0, i, b[i]-b[n]*a[i])
	}
	return ssm.NewLinearSystem(A, B, C, b[n]), nil
}

// String renders the transfer function as a centered fraction,
//
//	     1
//	  -------
//	  s^2 + s
func (g TransferFunction) String() string {
	num := g.num.String()
	den := g.den.String()
	width := len(num)
	if len(den) > width {
		width = len(den)
	}
	center := func(s string) string {
		pad := width + 2 - len(s)
		left := pad / 2
		return strings.Repeat(" ", left) + s
	}
	return "\n" + center(num) + "\n" +
		strings.Repeat("-", width+2) + "\n" +
		center(den) + "\n"
}
