// Package poly implements dense univariate polynomials with float64
// coefficients. Coefficients are stored in ascending powers:
// p(s) = c0 + c1*s + c2*s^2 + ...
package poly

import (
	"strconv"
	"strings"
)

// Poly is a univariate polynomial. The zero value is the zero polynomial.
type Poly struct {
	coeffs []float64
}

// New returns the polynomial with the given coefficients in ascending
// powers, New(c0, c1, c2) = c0 + c1*s + c2*s^2.
func New(coeffs ...float64) Poly {
	out := make([]float64, len(coeffs))
	copy(out, coeffs)
	return Poly{coeffs: out}.trim()
}

// FromDescending returns the polynomial with the given coefficients in
// descending powers, the order control texts write them in:
// FromDescending([]float64{1, 1, 0}) = s^2 + s.
func FromDescending(coeffs []float64) Poly {
	out := make([]float64, len(coeffs))
	for i, c := range coeffs {
		out[len(coeffs)-1-i] = c
	}
	return Poly{coeffs: out}.trim()
}

func (p Poly) trim() Poly {
	i := len(p.coeffs)
	for i > 0 && p.coeffs[i-1] == 0 {
		i--
	}
	return Poly{coeffs: p.coeffs[:i]}
}

// Degree returns the polynomial degree, -1 for the zero polynomial.
func (p Poly) Degree() int {
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		if p.coeffs[i] != 0 {
			return i
		}
	}
	return -1
}

// IsZero reports whether p is the zero polynomial.
func (p Poly) IsZero() bool {
	return p.Degree() < 0
}

// Coeff returns the coefficient of s^i, 0 for i outside the stored range.
func (p Poly) Coeff(i int) float64 {
	if i < 0 || i >= len(p.coeffs) {
		return 0
	}
	return p.coeffs[i]
}

// Clone returns a copy of p that shares no storage with it.
func (p Poly) Clone() Poly {
	out := make([]float64, len(p.coeffs))
	copy(out, p.coeffs)
	return Poly{coeffs: out}
}

// Coeffs returns the coefficients in ascending powers. The slice is a copy.
func (p Poly) Coeffs() []float64 {
	return p.Clone().coeffs
}

// Descending returns the coefficients in descending powers. The zero
// polynomial yields []float64{0}.
func (p Poly) Descending() []float64 {
	if len(p.coeffs) == 0 {
		return []float64{0}
	}
	out := make([]float64, len(p.coeffs))
	for i, c := range p.coeffs {
		out[len(p.coeffs)-1-i] = c
	}
	return out
}

// Add returns p + q.
func Add(p, q Poly) Poly {
	n := len(p.coeffs)
	if len(q.coeffs) > n {
		n = len(q.coeffs)
	}
	out := make([]float64, n)
	for i := range out {
		if i < len(p.coeffs) {
			out[i] += p.coeffs[i]
		}
		if i < len(q.coeffs) {
			out[i] += q.coeffs[i]
		}
	}
	return Poly{coeffs: out}.trim()
}

// Sub returns p - q.
func Sub(p, q Poly) Poly {
	return Add(p, q.Scale(-1))
}

// Mul returns the product p * q.
func Mul(p, q Poly) Poly {
	if len(p.coeffs) == 0 || len(q.coeffs) == 0 {
		return Poly{}
	}
	out := make([]float64, len(p.coeffs)+len(q.coeffs)-1)
	for i, cp := range p.coeffs {
		if cp == 0 {
			continue
		}
		for j, cq := range q.coeffs {
			out[i+j] += cp * cq
		}
	}
	return Poly{coeffs: out}.trim()
}

// Scale returns k * p.
func (p Poly) Scale(k float64) Poly {
	out := make([]float64, len(p.coeffs))
	for i, c := range p.coeffs {
		out[i] = k * c
	}
	return Poly{coeffs: out}.trim()
}

// Pow returns p^n by binary exponentiation. Pow(p, 0) is the constant 1.
func Pow(p Poly, n int) Poly {
	if n < 0 {
		panic("poly: negative exponent")
	}
	out := New(1)
	base := p.trim()
	for n > 0 {
		if n&1 == 1 {
			out = Mul(out, base)
		}
		n >>= 1
		if n == 0 {
			break
		}
		base = Mul(base, base)
	}
	return out
}

// Eval evaluates p at x by Horner's rule.
func (p Poly) Eval(x float64) float64 {
	if len(p.coeffs) == 0 {
		return 0
	}
	v := p.coeffs[len(p.coeffs)-1]
	for i := len(p.coeffs) - 2; i >= 0; i-- {
		v = v*x + p.coeffs[i]
	}
	return v
}

// EvalC evaluates p at the complex point s by Horner's rule.
func (p Poly) EvalC(s complex128) complex128 {
	if len(p.coeffs) == 0 {
		return 0
	}
	v := complex(p.coeffs[len(p.coeffs)-1], 0)
	for i := len(p.coeffs) - 2; i >= 0; i-- {
		v = v*s + complex(p.coeffs[i], 0)
	}
	return v
}

// Deriv returns the formal derivative dp/ds.
func (p Poly) Deriv() Poly {
	if len(p.coeffs) <= 1 {
		return Poly{}
	}
	out := make([]float64, len(p.coeffs)-1)
	for i := 1; i < len(p.coeffs); i++ {
		out[i-1] = float64(i) * p.coeffs[i]
	}
	return Poly{coeffs: out}.trim()
}

// String renders p in descending powers of s, for example "s^2 + s" or
// "0.5s^2 + 5s + 2". The zero polynomial renders as "0".
func (p Poly) String() string {
	if p.IsZero() {
		return "0"
	}
	var b strings.Builder
	first := true
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		c := p.coeffs[i]
		if c == 0 {
			continue
		}
		if first {
			if c < 0 {
				b.WriteString("-")
			}
			first = false
		} else {
			if c < 0 {
				b.WriteString(" - ")
			} else {
				b.WriteString(" + ")
			}
		}
		abs := c
		if abs < 0 {
			abs = -abs
		}
		if abs != 1 || i == 0 {
			b.WriteString(strconv.FormatFloat(abs, 'g', -1, 64))
		}
		switch {
		case i == 1:
			b.WriteString("s")
		case i > 1:
			b.WriteString("s^" + strconv.Itoa(i))
		}
	}
	return b.String()
}
