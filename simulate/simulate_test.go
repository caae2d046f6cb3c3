package simulate

import (
	"math"
	"testing"

	"github.com/lambert-ike-1232/pidlab/ssm"
	"gonum.org/v1/gonum/mat"
)

// firstOrderLag returns 1/(s+1).
func firstOrderLag() *ssm.LinearSystem {
	A := mat.NewDense(1, 1, []float64{-1})
	B := mat.NewVecDense(1, []float64{1})
	C := mat.NewDense(1, 1, []float64{1})
	return ssm.NewLinearSystem(A, B, C, 0)
}

// underdamped returns 4/(s^2+2s+4), natural frequency 2 and damping 0.5.
func underdamped() *ssm.LinearSystem {
	A := mat.NewDense(2, 2, []float64{
		0, 1,
		-4, -2,
	})
	B := mat.NewVecDense(2, []float64{0, 1})
	C := mat.NewDense(1, 2, []float64{4, 0})
	return ssm.NewLinearSystem(A, B, C, 0)
}

func TestDefaultGridSpansThirtySeconds(t *testing.T) {
	grid := DefaultGrid()
	times := grid.Times()
	if len(times) != 3000 {
		t.Errorf("expected 3000 samples, got %v", len(times))
	}
	if times[0] != 0 || math.Abs(times[len(times)-1]-30) > 1e-12 {
		t.Errorf("grid should span 0 to 30, got %v to %v", times[0], times[len(times)-1])
	}
	if math.Abs(grid.Dt()-(times[1]-times[0])) > 1e-12 {
		t.Errorf("Dt %v doesn't match the sample spacing %v", grid.Dt(), times[1]-times[0])
	}
}

func TestNewGridRejectsBadWindows(t *testing.T) {
	if _, err := NewGrid(0, 10, 1); err == nil {
		t.Error("a single sample grid should be rejected")
	}
	if _, err := NewGrid(5, 5, 100); err == nil {
		t.Error("an empty window should be rejected")
	}
	if _, err := NewGrid(5, 1, 100); err == nil {
		t.Error("a reversed window should be rejected")
	}
}

// The hold discretization is exact for piecewise linear inputs, so a step
// into 1/(s+1) must reproduce 1-exp(-t) to numerical precision.
func TestStepResponseFirstOrder(t *testing.T) {
	grid, err := NewGrid(0, 10, 1001)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := StepResponse(firstOrderLag(), grid)
	if err != nil {
		t.Fatal(err)
	}
	for i, time := range resp.T {
		want := 1 - math.Exp(-time)
		if math.Abs(resp.Y[i]-want) > 1e-9 {
			t.Fatalf("at t = %v got %v, want %v", time, resp.Y[i], want)
		}
	}
}

// An integrator driven by u = t yields t^2/2, exactly, even on a coarse
// grid, because the input is linear between samples.
func TestForcedResponseExactOnRampInput(t *testing.T) {
	A := mat.NewDense(1, 1, nil)
	B := mat.NewVecDense(1, []float64{1})
	C := mat.NewDense(1, 1, []float64{1})
	integrator := ssm.NewLinearSystem(A, B, C, 0)

	grid, err := NewGrid(0, 5, 11)
	if err != nil {
		t.Fatal(err)
	}
	times := grid.Times()
	u := make([]float64, len(times))
	copy(u, times)

	resp, err := ForcedResponse(integrator, times, u)
	if err != nil {
		t.Fatal(err)
	}
	for i, time := range resp.T {
		want := time * time / 2
		if math.Abs(resp.Y[i]-want) > 1e-9 {
			t.Fatalf("at t = %v got %v, want %v", time, resp.Y[i], want)
		}
	}
}

// A grid with uneven spacing routes through the adaptive integrator, which
// must still track the closed form solution.
func TestAdaptiveFallbackOnJitteredGrid(t *testing.T) {
	const n = 501
	dt := 5.0 / float64(n-1)
	times := make([]float64, n)
	u := make([]float64, n)
	for i := range times {
		times[i] = float64(i)*dt + 0.3*dt*math.Sin(float64(i))
		u[i] = 1
	}

	resp, err := ForcedResponse(firstOrderLag(), times, u)
	if err != nil {
		t.Fatal(err)
	}
	for i, time := range resp.T {
		want := 1 - math.Exp(-time)
		if math.Abs(resp.Y[i]-want) > 1e-5 {
			t.Fatalf("at t = %v got %v, want %v", time, resp.Y[i], want)
		}
	}
}

// Textbook values for damping 0.5 and natural frequency 2: overshoot
// 100 exp(-pi 0.5/sqrt(0.75)) = 16.3 percent at t = pi/sqrt(3) = 1.814.
func TestStepResponseSecondOrderMetrics(t *testing.T) {
	grid, err := NewGrid(0, 10, 2001)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := StepResponse(underdamped(), grid)
	if err != nil {
		t.Fatal(err)
	}
	info := Analyze(resp, 1)

	if math.Abs(info.Overshoot-16.303) > 0.1 {
		t.Errorf("overshoot %v, want about 16.303", info.Overshoot)
	}
	if math.Abs(info.PeakTime-1.8138) > 0.01 {
		t.Errorf("peak time %v, want about 1.8138", info.PeakTime)
	}
	if math.Abs(info.RiseTime-0.818) > 0.03 {
		t.Errorf("rise time %v, want about 0.818", info.RiseTime)
	}
	if info.SettlingTime < 3.5 || info.SettlingTime > 4.5 {
		t.Errorf("settling time %v, want about 4", info.SettlingTime)
	}
	if math.Abs(info.Final-1) > 1e-3 {
		t.Errorf("final value %v, want about 1", info.Final)
	}
	if math.Abs(info.SteadyStateError) > 1e-3 {
		t.Errorf("steady state error %v, want about 0", info.SteadyStateError)
	}
}

func TestAnalyzeFirstOrderMetrics(t *testing.T) {
	grid, err := NewGrid(0, 10, 2001)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := StepResponse(firstOrderLag(), grid)
	if err != nil {
		t.Fatal(err)
	}
	info := Analyze(resp, 1)

	if info.Overshoot != 0 {
		t.Errorf("a first order lag doesn't overshoot, got %v", info.Overshoot)
	}
	// 10 to 90 percent of 1-exp(-t) takes ln(10)-ln(10/9) = ln 9.
	if math.Abs(info.RiseTime-math.Log(9)) > 0.02 {
		t.Errorf("rise time %v, want about %v", info.RiseTime, math.Log(9))
	}
	// The two percent band is left for good at t = ln 50.
	if math.Abs(info.SettlingTime-math.Log(50)) > 0.02 {
		t.Errorf("settling time %v, want about %v", info.SettlingTime, math.Log(50))
	}
}

// The impulse response of 1/(s+1) is exp(-t); starting the unforced system
// from the state B makes the hold propagation exact.
func TestImpulseResponseFirstOrder(t *testing.T) {
	grid, err := NewGrid(0, 5, 501)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := ImpulseResponse(firstOrderLag(), grid)
	if err != nil {
		t.Fatal(err)
	}
	for i, time := range resp.T {
		want := math.Exp(-time)
		if math.Abs(resp.Y[i]-want) > 1e-9 {
			t.Fatalf("at t = %v got %v, want %v", time, resp.Y[i], want)
		}
	}
}

func TestForcedResponseValidation(t *testing.T) {
	sys := firstOrderLag()
	if _, err := ForcedResponse(sys, []float64{0, 1, 2}, []float64{0, 1}); err == nil {
		t.Error("mismatched lengths should be rejected")
	}
	if _, err := ForcedResponse(sys, []float64{0}, []float64{0}); err == nil {
		t.Error("a single sample should be rejected")
	}
	if _, err := ForcedResponse(sys, []float64{0, 2, 1}, []float64{0, 0, 0}); err == nil {
		t.Error("a non increasing time vector should be rejected")
	}
	x0 := mat.NewVecDense(2, nil)
	if _, err := ForcedResponseFrom(sys, x0, []float64{0, 1}, []float64{0, 0}); err == nil {
		t.Error("an initial state of the wrong order should be rejected")
	}
}

func TestForcedResponseReportsDivergence(t *testing.T) {
	A := mat.NewDense(1, 1, []float64{30})
	B := mat.NewVecDense(1, []float64{1})
	C := mat.NewDense(1, 1, []float64{1})
	unstable := ssm.NewLinearSystem(A, B, C, 0)

	resp, err := StepResponse(unstable, DefaultGrid())
	if err == nil {
		t.Fatalf("expected a divergence error, got final value %v", resp.Final())
	}
}

func TestBatchRunsJobsInOrder(t *testing.T) {
	grid, err := NewGrid(0, 20, 501)
	if err != nil {
		t.Fatal(err)
	}
	times := grid.Times()
	step := make([]float64, len(times))
	for i := range step {
		step[i] = 1
	}

	results := Batch([]Job{
		{Name: "lag", System: firstOrderLag(), T: times, U: step},
		{Name: "broken", System: firstOrderLag(), T: []float64{0}, U: []float64{1}},
		{Name: "second", System: underdamped(), T: times, U: step},
	})

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %v", len(results))
	}
	if results[0].Name != "lag" || results[1].Name != "broken" || results[2].Name != "second" {
		t.Errorf("results out of order: %v, %v, %v", results[0].Name, results[1].Name, results[2].Name)
	}
	if results[0].Err != nil || results[0].Response == nil {
		t.Errorf("the lag job should succeed, got %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Error("the broken job should fail")
	}
	if results[2].Err != nil {
		t.Errorf("the second order job should succeed, got %v", results[2].Err)
	}
	if math.Abs(results[0].Response.Final()-1) > 1e-6 {
		t.Errorf("the lag should settle at 1, got %v", results[0].Response.Final())
	}
}
