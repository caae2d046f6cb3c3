package signal

import (
	"fmt"
	"strings"
)

// Kind selects one of the built in reference signals offered by the
// simulator front ends.
type Kind int

const (
	// KindStep is the scheduled setpoint profile.
	KindStep Kind = iota
	// KindRamp is the unit slope ramp r(t) = t.
	KindRamp
	// KindSine is the sinusoid r(t) = 0.5 sin(0.8 t).
	KindSine
)

// Kinds returns all selectable reference kinds in menu order.
func Kinds() []Kind {
	return []Kind{KindStep, KindRamp, KindSine}
}

// ParseKind maps a user facing name to a reference kind. It accepts
// "step", "ramp", "sine" and "sinusoidal", ignoring case.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "step":
		return KindStep, nil
	case "ramp":
		return KindRamp, nil
	case "sine", "sinusoidal":
		return KindSine, nil
	}
	return 0, fmt.Errorf("signal: unknown reference kind %q", name)
}

// Source returns the reference signal for the kind.
func (k Kind) Source() Source {
	switch k {
	case KindRamp:
		return Ramp{Slope: 1}
	case KindSine:
		return Sine{Amplitude: 0.5, Omega: 0.8}
	default:
		return DefaultProfile()
	}
}

func (k Kind) String() string {
	switch k {
	case KindRamp:
		return "Ramp"
	case KindSine:
		return "Sinusoidal"
	default:
		return "Step"
	}
}
