package simulate

import (
	"math"
)

// Thresholds follow the usual control text conventions: rise time between
// the 10 and 90 percent levels, settling inside a two percent band.
const (
	riseLow           = 0.1
	riseHigh          = 0.9
	settlingThreshold = 0.02
)

// StepInfo summarizes a step like response. Quantities that do not exist
// for the trajectory, such as the rise time of a flat response, are NaN.
type StepInfo struct {
	// RiseTime is the time from the 10 to the 90 percent level.
	RiseTime float64
	// SettlingTime is the time after which the output stays within the
	// settling band around its final value.
	SettlingTime float64
	// Overshoot is the peak excess over the final value in percent.
	Overshoot float64
	// Peak is the largest output magnitude.
	Peak float64
	// PeakTime is the instant of the largest output magnitude.
	PeakTime float64
	// Final is the last output sample.
	Final float64
	// SteadyStateError is the reference level minus the final value.
	SteadyStateError float64
}

// Analyze computes step response metrics for a trajectory against the
// reference level it was meant to reach.
func Analyze(resp *Response, ref float64) StepInfo {
	y := resp.Y
	t := resp.T
	yFinal := resp.Final()
	y0 := y[0]
	span := yFinal - y0

	info := StepInfo{
		RiseTime:         math.NaN(),
		SettlingTime:     math.NaN(),
		Overshoot:        math.NaN(),
		Final:            yFinal,
		SteadyStateError: ref - yFinal,
	}

	// Peak magnitude and its instant.
	peakIndex := 0
	for i := range y {
		if math.Abs(y[i]) > math.Abs(y[peakIndex]) {
			peakIndex = i
		}
	}
	info.Peak = math.Abs(y[peakIndex])
	info.PeakTime = t[peakIndex]

	// Rise time between the fractional levels of the travelled span.
	if span != 0 {
		lowIndex := firstCrossing(y, y0+riseLow*span, span > 0)
		highIndex := firstCrossing(y, y0+riseHigh*span, span > 0)
		if lowIndex >= 0 && highIndex >= 0 {
			info.RiseTime = t[highIndex] - t[lowIndex]
		}
	}

	// Settling time against a band around the final value.
	band := settlingThreshold * math.Abs(yFinal)
	if band == 0 {
		band = settlingThreshold * info.Peak
	}
	if band > 0 {
		last := -1
		for i := len(y) - 1; i >= 0; i-- {
			if math.Abs(y[i]-yFinal) > band {
				last = i
				break
			}
		}
		switch {
		case last < 0:
			info.SettlingTime = t[0]
		case last < len(y)-1:
			info.SettlingTime = t[last+1]
		}
	}

	// Overshoot relative to the final value.
	if yFinal != 0 {
		sgn := 1.
		if yFinal < 0 {
			sgn = -1
		}
		most := sgn * y[0]
		for _, v := range y {
			if sgn*v > most {
				most = sgn * v
			}
		}
		over := 100 * (most - sgn*yFinal) / math.Abs(yFinal)
		if over < 0 {
			over = 0
		}
		info.Overshoot = over
	}

	return info
}

// firstCrossing returns the first index at which y reaches the target from
// the given direction, -1 when it never does.
func firstCrossing(y []float64, target float64, rising bool) int {
	for i, v := range y {
		if rising && v >= target {
			return i
		}
		if !rising && v <= target {
			return i
		}
	}
	return -1
}
