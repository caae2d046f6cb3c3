package signal

import (
	"errors"
	"sort"
)

// Breakpoint is one (time, level) pair of a setpoint schedule.
type Breakpoint struct {
	Time  float64
	Level float64
}

// Profile is a piecewise constant setpoint schedule. At time t it holds the
// level of the latest breakpoint strictly before t; up to and including the
// first breakpoint it holds the first level.
type Profile struct {
	breakpoints []Breakpoint
}

// NewProfile creates a profile from breakpoints, which are sorted by time.
// At least one breakpoint is required and times must not repeat.
func NewProfile(breakpoints []Breakpoint) (*Profile, error) {
	if len(breakpoints) == 0 {
		return nil, errors.New("signal: a profile needs at least one breakpoint")
	}
	sorted := make([]Breakpoint, len(breakpoints))
	copy(sorted, breakpoints)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Time == sorted[i-1].Time {
			return nil, errors.New("signal: profile breakpoint times must not repeat")
		}
	}
	return &Profile{breakpoints: sorted}, nil
}

// DefaultProfile returns the demo setpoint schedule used by the lessons,
//
//	1.0 from the start, 0.5 after 3 s, 1.5 after 6 s, -0.5 after 10 s,
//	2.0 after 15 s, -3.0 after 20 s and 0.0 after 25 s.
func DefaultProfile() *Profile {
	profile, err := NewProfile([]Breakpoint{
		{0, 1.0},
		{3, 0.5},
		{6, 1.5},
		{10, -0.5},
		{15, 2.0},
		{20, -3.0},
		{25, 0.0},
	})
	if err != nil {
		panic(err)
	}
	return profile
}

// At returns the scheduled level at time t.
func (p *Profile) At(t float64) float64 {
	level := p.breakpoints[0].Level
	for _, bp := range p.breakpoints {
		if t > bp.Time {
			level = bp.Level
		}
	}
	return level
}

// Breakpoints returns a copy of the schedule in time order.
func (p *Profile) Breakpoints() []Breakpoint {
	out := make([]Breakpoint, len(p.breakpoints))
	copy(out, p.breakpoints)
	return out
}

func (p *Profile) String() string { return "step profile" }
