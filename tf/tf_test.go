package tf

import (
	"fmt"
	"math"
	"testing"

	"github.com/lambert-ike-1232/pidlab/poly"
	"gonum.org/v1/gonum/mat"
)

func TestNewUsesDescendingCoefficients(t *testing.T) {
	// {1} over {1, 1, 0} is the motor position plant 1 / (s^2 + s).
	plant, err := New([]float64{1}, []float64{1, 1, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	numDeg, denDeg := plant.Degree()
	if numDeg != 0 || denDeg != 2 {
		t.Errorf("expected degrees 0 and 2, got %v and %v", numDeg, denDeg)
	}
	// G(1) = 1 / (1 + 1).
	if g := plant.Eval(1); g != complex(0.5, 0) {
		t.Errorf("expected G(1) = 0.5, got %v", g)
	}
}

func TestNewRejectsZeroDenominator(t *testing.T) {
	if _, err := New([]float64{1}, []float64{0, 0}); err == nil {
		t.Error("expected an error for a zero denominator")
	}
	if _, err := New([]float64{1}, nil); err == nil {
		t.Error("expected an error for an empty denominator")
	}
}

func TestMulIsSeriesInterconnection(t *testing.T) {
	pidNum := []float64{0.5, 5, 2} // Kd s^2 + Kp s + Ki
	controller := MustNew(pidNum, []float64{1, 0})
	plant := MustNew([]float64{1}, []float64{1, 1, 0})

	loop := controller.Mul(plant)
	num := loop.Num().Descending()
	den := loop.Den().Descending()

	expectedNum := []float64{0.5, 5, 2}
	expectedDen := []float64{1, 1, 0, 0}
	for i := range expectedNum {
		if num[i] != expectedNum[i] {
			t.Errorf("numerator coefficient %v: expected %v, got %v", i, expectedNum[i], num[i])
		}
	}
	for i := range expectedDen {
		if den[i] != expectedDen[i] {
			t.Errorf("denominator coefficient %v: expected %v, got %v", i, expectedDen[i], den[i])
		}
	}
}

func TestAddAndScaleCombineInParallel(t *testing.T) {
	// 1/s + 1/(s+1) = (2s + 1) / (s^2 + s).
	g := MustNew([]float64{1}, []float64{1, 0})
	h := MustNew([]float64{1}, []float64{1, 1})

	sum := g.Add(h)
	num := sum.Num().Descending()
	den := sum.Den().Descending()
	if len(num) != 2 || num[0] != 2 || num[1] != 1 {
		t.Errorf("expected numerator 2s + 1, got %v", num)
	}
	if len(den) != 3 || den[0] != 1 || den[1] != 1 || den[2] != 0 {
		t.Errorf("expected denominator s^2 + s, got %v", den)
	}

	half := g.Scale(0.5)
	if got := half.Eval(2); got != complex(0.25, 0) {
		t.Errorf("expected 0.5 * 1/s at s = 2 to be 0.25, got %v", got)
	}
}

func TestIsProper(t *testing.T) {
	if !MustNew([]float64{1}, []float64{1, 1, 0}).IsProper() {
		t.Error("1/(s^2 + s) is strictly proper")
	}
	if !MustNew([]float64{2, 1}, []float64{1, 1}).IsProper() {
		t.Error("a biproper system is proper")
	}
	if MustNew([]float64{0.5, 5, 2}, []float64{1, 0}).IsProper() {
		t.Error("the ideal PID transfer function is improper")
	}
}

func TestFromPolyRejectsZeroDenominator(t *testing.T) {
	g, err := FromPoly(poly.New(1), poly.New(0, 1, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := g.Eval(1); got != complex(0.5, 0) {
		t.Errorf("expected 1/(s + s^2) at s = 1 to be 0.5, got %v", got)
	}
	if _, err := FromPoly(poly.New(1), poly.Poly{}); err == nil {
		t.Error("expected an error for a zero denominator polynomial")
	}
}

func TestFeedbackUnityClosesThePIDLoop(t *testing.T) {
	// C(s) = (0.5 s^2 + 5 s + 2) / s around G(s) = 1 / (s^2 + s) gives
	//
	//	T(s) = (0.5 s^2 + 5 s + 2) / (s^3 + 1.5 s^2 + 5 s + 2)
	controller := MustNew([]float64{0.5, 5, 2}, []float64{1, 0})
	plant := MustNew([]float64{1}, []float64{1, 1, 0})

	closed, err := controller.Mul(plant).FeedbackUnity()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fmt.Println(closed)

	num := closed.Num().Descending()
	den := closed.Den().Descending()
	expectedNum := []float64{0.5, 5, 2}
	expectedDen := []float64{1, 1.5, 5, 2}
	if len(num) != len(expectedNum) || len(den) != len(expectedDen) {
		t.Fatalf("unexpected closed loop shape: num %v, den %v", num, den)
	}
	for i := range expectedNum {
		if math.Abs(num[i]-expectedNum[i]) > 1e-12 {
			t.Errorf("numerator coefficient %v: expected %v, got %v", i, expectedNum[i], num[i])
		}
	}
	for i := range expectedDen {
		if math.Abs(den[i]-expectedDen[i]) > 1e-12 {
			t.Errorf("denominator coefficient %v: expected %v, got %v", i, expectedDen[i], den[i])
		}
	}

	// Integral action drives the steady state gain to one.
	gain, ok := closed.DCGain()
	if !ok || math.Abs(gain-1) > 1e-12 {
		t.Errorf("expected closed loop DC gain 1, got %v (ok = %v)", gain, ok)
	}
}

func TestFeedbackAgainstHandComputedLoop(t *testing.T) {
	// G = 1/s with H = 1/(s+1) in the feedback path:
	// T = G / (1 + G H) = (s + 1) / (s^2 + s + 1).
	g := MustNew([]float64{1}, []float64{1, 0})
	h := MustNew([]float64{1}, []float64{1, 1})
	closed, err := g.Feedback(h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	num := closed.Num().Descending()
	den := closed.Den().Descending()
	if len(num) != 2 || num[0] != 1 || num[1] != 1 {
		t.Errorf("expected numerator s + 1, got %v", num)
	}
	if len(den) != 3 || den[0] != 1 || den[1] != 1 || den[2] != 1 {
		t.Errorf("expected denominator s^2 + s + 1, got %v", den)
	}
}

func TestFeedbackIllPosed(t *testing.T) {
	// G = 1 and H = -1 makes 1 + G H vanish identically.
	g := MustNew([]float64{1}, []float64{1})
	h := MustNew([]float64{-1}, []float64{1})
	if _, err := g.Feedback(h); err == nil {
		t.Error("expected an error for a vanishing loop polynomial")
	}
}

func TestDCGainUnboundedForIntegrator(t *testing.T) {
	plant := MustNew([]float64{1}, []float64{1, 1, 0})
	if _, ok := plant.DCGain(); ok {
		t.Error("expected an unbounded DC gain for an integrating plant")
	}
}

func TestPolesAndZeros(t *testing.T) {
	// (s + 1) / ((s + 1)(s + 2)) = (s + 1) / (s^2 + 3 s + 2).
	sys := MustNew([]float64{1, 1}, []float64{1, 3, 2})

	poles := sys.Poles()
	if len(poles) != 2 {
		t.Fatalf("expected 2 poles, got %v", len(poles))
	}
	found := map[float64]bool{}
	for _, p := range poles {
		if math.Abs(imag(p)) > 1e-9 {
			t.Errorf("expected real poles, got %v", p)
		}
		found[math.Round(real(p))] = true
	}
	if !found[-1] || !found[-2] {
		t.Errorf("expected poles at -1 and -2, got %v", poles)
	}

	zeros := sys.Zeros()
	if len(zeros) != 1 || math.Abs(real(zeros[0])+1) > 1e-9 {
		t.Errorf("expected a single zero at -1, got %v", zeros)
	}

	if gotZeros := MustNew([]float64{5}, []float64{1, 1}).Zeros(); len(gotZeros) != 0 {
		t.Errorf("expected no zeros for a constant numerator, got %v", gotZeros)
	}
}

func TestRealizeControllableCanonicalForm(t *testing.T) {
	plant := MustNew([]float64{1}, []float64{1, 1, 0})
	sys, err := plant.Realize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fmt.Printf("A = \n%v\nB = \n%v\nC = \n%v\nD = %v\n",
		mat.Formatted(sys.A), mat.Formatted(sys.B), mat.Formatted(sys.C), sys.D)

	expectedA := mat.NewDense(2, 2, []float64{0, 1, 0, -1})
	if !mat.EqualApprox(sys.A, expectedA, 1e-12) {
		t.Error("expected the transposed companion dynamics of s^2 + s")
	}
	if sys.B.AtVec(0) != 0 || sys.B.AtVec(1) != 1 {
		t.Errorf("expected B = (0, 1), got (%v, %v)", sys.B.AtVec(0), sys.B.AtVec(1))
	}
	if sys.C.At(0, 0) != 1 || sys.C.At(0, 1) != 0 {
		t.Errorf("expected C = (1, 0), got (%v, %v)", sys.C.At(0, 0), sys.C.At(0, 1))
	}
	if sys.D != 0 {
		t.Errorf("expected no direct term, got %v", sys.D)
	}
}

func TestRealizeMatchesDCGain(t *testing.T) {
	// (s + 2) / (s^2 + 3 s + 2) has DC gain 1; the realization must agree,
	// gain = -C A^-1 B + D.
	sys, err := MustNew([]float64{1, 2}, []float64{1, 3, 2}).Realize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var x mat.VecDense
	if err := x.SolveVec(sys.A, sys.B); err != nil {
		t.Fatalf("solving A x = B failed: %v", err)
	}
	var y mat.VecDense
	y.MulVec(sys.C, &x)
	gain := -y.AtVec(0) + sys.D
	if math.Abs(gain-1) > 1e-12 {
		t.Errorf("expected realization DC gain 1, got %v", gain)
	}
}

func TestRealizeRejectsImproperAndStaticSystems(t *testing.T) {
	pid := MustNew([]float64{0.5, 5, 2}, []float64{1, 0})
	if _, err := pid.Realize(); err == nil {
		t.Error("expected an error for the improper ideal PID transfer function")
	}
	static := MustNew([]float64{5}, []float64{1})
	if _, err := static.Realize(); err == nil {
		t.Error("expected an error for a static gain")
	}
}

func TestStringRendersAFraction(t *testing.T) {
	plant := MustNew([]float64{1}, []float64{1, 1, 0})
	expected := "\n    1\n---------\n s^2 + s\n"
	if got := plant.String(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}
