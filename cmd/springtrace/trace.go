package main

import (
	"math"

	"github.com/milk9111/springs/spring"
)

const restTolerance = 1e-3

type Params struct {
	Omega   float64
	Zeta    float64
	Target  float64
	Dt      float64
	Seconds float64
}

// Trace is the step response of a scalar spring released at 0.
type Trace struct {
	Params
	Regime  spring.Regime
	Samples []float64

	// Settle is the first time from which the spring stays within
	// restTolerance of rest, or -1 if it never does.
	Settle float64
	// Overshoot is how far the spring travelled past its target.
	Overshoot float64
}

func Run(p Params) Trace {
	if p.Dt <= 0 {
		p.Dt = 1.0 / 60
	}
	steps := 0
	if p.Seconds > 0 {
		steps = int(math.Round(p.Seconds / p.Dt))
	}

	s := spring.NewScalar(p.Target, p.Omega, p.Zeta)
	tr := Trace{
		Params:  p,
		Regime:  s.Regime(),
		Samples: make([]float64, 0, steps),
		Settle:  -1,
	}

	lastMoving := -1
	for i := 0; i < steps; i++ {
		s.Advance(p.Dt)
		pos := s.Position().Float()
		tr.Samples = append(tr.Samples, pos)

		past := pos - p.Target
		if p.Target < 0 {
			past = -past
		}
		tr.Overshoot = max(tr.Overshoot, past)

		if !s.AtRest(restTolerance) {
			lastMoving = i
		}
	}
	if steps > 0 && lastMoving < steps-1 {
		tr.Settle = float64(lastMoving+2) * p.Dt
	}
	return tr
}

// OvershootPercent is Overshoot relative to the distance travelled.
func (t Trace) OvershootPercent() float64 {
	if t.Target == 0 {
		return 0
	}
	return 100 * t.Overshoot / math.Abs(t.Target)
}

// Bounds returns the value range a plot of t needs to show.
func (t Trace) Bounds() (lo, hi float64) {
	lo = min(0, t.Target)
	hi = max(0, t.Target)
	for _, v := range t.Samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}

// Column returns the sample shown in column c of a plot width columns wide.
func (t Trace) Column(c, width int) (float64, bool) {
	if width <= 0 || c < 0 || c >= width || len(t.Samples) == 0 {
		return 0, false
	}
	i := c * len(t.Samples) / width
	return t.Samples[i], true
}
