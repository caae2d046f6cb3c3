package pidlab

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambert-ike-1232/pidlab/signal"
)

// lastIndexBefore returns the largest i with t[i] < x.
func lastIndexBefore(t []float64, x float64) int {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i] < x {
			return i
		}
	}
	return -1
}

// TestDefaultLoopTracksTheStepSchedule walks the whole surface end to end:
// plant, controller, closed loop, reference schedule, simulation. The loop
// settles within half a unit of every plateau before the schedule moves on.
func TestDefaultLoopTracksTheStepSchedule(t *testing.T) {
	g, err := TF([]float64{1}, []float64{1, 1, 0})
	require.NoError(t, err)

	c, err := PID(5, 2, 0.5)
	require.NoError(t, err)

	loop, err := Unity(c.TransferFunction().Mul(g))
	require.NoError(t, err)

	gain, ok := loop.DCGain()
	require.True(t, ok)
	assert.InDelta(t, 1, gain, 1e-12)

	tt := Linspace(0, 30, 3000)
	r := signal.Samples(signal.KindStep.Source(), tt)

	resp, err := ForcedResponse(loop, tt, r)
	require.NoError(t, err)
	require.Equal(t, len(tt), resp.Len())

	for _, y := range resp.Y {
		require.False(t, math.IsNaN(y))
		require.Less(t, math.Abs(y), 6.0)
	}

	plateaus := []struct {
		until float64
		level float64
	}{
		{3, 1}, {6, 0.5}, {10, 1.5}, {15, -0.5}, {20, 2}, {25, -3},
	}
	for _, p := range plateaus {
		i := lastIndexBefore(tt, p.until)
		require.GreaterOrEqual(t, i, 0)
		assert.InDeltaf(t, p.level, resp.Y[i], 0.5,
			"y(%.2f) should sit near %g", tt[i], p.level)
	}
	// The schedule ends at zero and the loop follows it down.
	assert.InDelta(t, 0, resp.Final(), 0.5)
}

func TestUnityMatchesFeedbackAgainstOne(t *testing.T) {
	g, err := TF([]float64{2, 1}, []float64{1, 3, 2, 0})
	require.NoError(t, err)
	one, err := TF([]float64{1}, []float64{1})
	require.NoError(t, err)

	viaUnity, err := Unity(g)
	require.NoError(t, err)
	viaFeedback, err := Feedback(g, one)
	require.NoError(t, err)

	for _, s := range []complex128{0.5i, 2, 1 + 1i} {
		assert.InDelta(t, 0, cmplx.Abs(viaUnity.Eval(s)-viaFeedback.Eval(s)), 1e-12)
	}
}

func TestForcedResponseTracksAConstantReference(t *testing.T) {
	g, err := TF([]float64{1}, []float64{1, 1, 0})
	require.NoError(t, err)
	c, err := PID(5, 2, 0.5)
	require.NoError(t, err)
	loop, err := Unity(c.TransferFunction().Mul(g))
	require.NoError(t, err)

	tt := Linspace(0, 30, 3000)
	r := make([]float64, len(tt))
	for i := range r {
		r[i] = 1
	}

	resp, err := ForcedResponse(loop, tt, r)
	require.NoError(t, err)
	assert.InDelta(t, 1, resp.Final(), 1e-3)
}

func TestForcedResponseRejectsStaticSystems(t *testing.T) {
	g, err := TF([]float64{2}, []float64{1})
	require.NoError(t, err)

	_, err = ForcedResponse(g, []float64{0, 1}, []float64{1, 1})
	assert.Error(t, err)
}

func TestLinspace(t *testing.T) {
	tt := Linspace(0, 3, 7)
	require.Len(t, tt, 7)
	assert.Equal(t, 0.0, tt[0])
	assert.Equal(t, 3.0, tt[6])
	assert.InDelta(t, 1.5, tt[3], 1e-15)
}
