package spring

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

const tick = 1.0 / 60

func TestNewClampsParameters(t *testing.T) {
	cases := []struct {
		name      string
		omega     float64
		zeta      float64
		wantOmega float64
		wantZeta  float64
	}{
		{"positive", 25, 8, 25, 8},
		{"negative_frequency", -3, 0.5, 0, 0.5},
		{"negative_damping", 3, -0.5, 3, 0},
		{"both_negative", -1, -1, 0, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewScalar(10, c.omega, c.zeta)
			if s.AngularFrequency() != c.wantOmega || s.DampingRatio() != c.wantZeta {
				t.Fatalf("got (%v, %v), want (%v, %v)", s.AngularFrequency(), s.DampingRatio(), c.wantOmega, c.wantZeta)
			}
			if s.Position() != 0 || s.Velocity() != 0 || s.Target() != 10 {
				t.Fatalf("unexpected initial state pos=%v vel=%v target=%v", s.Position(), s.Velocity(), s.Target())
			}
		})
	}
}

func TestSettersClamp(t *testing.T) {
	s := NewVector(cp.Vector{X: 1, Y: 2}, 5, 1)
	s.SetAngularFrequency(-7)
	s.SetDampingRatio(-0.1)
	if s.AngularFrequency() != 0 || s.DampingRatio() != 0 {
		t.Fatalf("negative parameters not clamped: (%v, %v)", s.AngularFrequency(), s.DampingRatio())
	}
	s.SetAngularFrequency(3)
	s.SetDampingRatio(0.25)
	if s.AngularFrequency() != 3 || s.DampingRatio() != 0.25 {
		t.Fatalf("setters did not store: (%v, %v)", s.AngularFrequency(), s.DampingRatio())
	}
}

func TestDegenerateAdvanceLeavesStateUntouched(t *testing.T) {
	for _, zeta := range []float64{0, 0.5, 1, 9} {
		for _, dt := range []float64{0, tick, 3, 1e9} {
			s := NewVector(cp.Vector{X: 100, Y: -40}, Epsilon/3, zeta)
			s.Shove(cp.Vector{X: 0.1, Y: 0.7})
			before := s

			s.Advance(dt)

			if s.Position() != before.Position() || s.Velocity() != before.Velocity() {
				t.Fatalf("zeta=%v dt=%v: state moved from %v/%v to %v/%v",
					zeta, dt, before.Position(), before.Velocity(), s.Position(), s.Velocity())
			}
		}
	}
}

func TestConvergence(t *testing.T) {
	cases := []struct {
		name  string
		omega float64
		zeta  float64
	}{
		{"underdamped", 10, 0.5},
		{"critical", 10, 1},
		{"overdamped", 10, 2},
		{"camera", 25, 8},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewScalar(7, c.omega, c.zeta)
			for i := 0; i < 600; i++ {
				s.Advance(tick)
			}
			if d := math.Abs(float64(s.Position() - s.Target())); d >= 1e-3 {
				t.Fatalf("|position-target| = %v after 10s", d)
			}
			if v := math.Abs(float64(s.Velocity())); v >= 1e-3 {
				t.Fatalf("|velocity| = %v after 10s", v)
			}
			if !s.AtRest(1e-3) {
				t.Fatalf("spring not at rest")
			}
		})
	}
}

func TestNoOvershootWhenNotUnderdamped(t *testing.T) {
	for _, zeta := range []float64{1, 1 + Epsilon/2, 1.5, 4, 40} {
		for _, dt := range []float64{0, 1e-3, tick, 0.1, 1, 10} {
			s := NewScalar(10, 5, zeta)
			prev := s.Position()
			for i := 0; i < 400; i++ {
				s.Advance(dt)
				p := s.Position()
				if p > 10+1e-9 {
					t.Fatalf("zeta=%v dt=%v: overshoot to %v at step %d", zeta, dt, p, i)
				}
				if p < prev-1e-9 {
					t.Fatalf("zeta=%v dt=%v: moved away from target %v -> %v", zeta, dt, prev, p)
				}
				prev = p
			}
		}
	}
}

func TestUnderdampedOvershoots(t *testing.T) {
	s := NewScalar(10, 5, 0.2)
	peak := Scalar(0)
	for i := 0; i < 120; i++ {
		s.Advance(tick)
		if s.Position() > peak {
			peak = s.Position()
		}
	}
	if peak <= 10 {
		t.Fatalf("expected overshoot past 10, peak %v", peak)
	}
}

func TestContinuityAcrossCriticalSeam(t *testing.T) {
	run := func(zeta float64) (Scalar, Scalar) {
		s := NewScalar(10, 5, zeta)
		for i := 0; i < 30; i++ {
			s.Advance(tick)
		}
		return s.Position(), s.Velocity()
	}

	refPos, refVel := run(1)
	for _, zeta := range []float64{1 - 1e-5, 1 + 1e-5, 1 - 2*Epsilon, 1 + 2*Epsilon, 1 - 1e-3, 1 + 1e-3} {
		pos, vel := run(zeta)
		if d := math.Abs(float64(pos - refPos)); d >= 1e-2 {
			t.Fatalf("zeta=%v: position jumps by %v at the seam", zeta, d)
		}
		if d := math.Abs(float64(vel - refVel)); d >= 1e-1 {
			t.Fatalf("zeta=%v: velocity jumps by %v at the seam", zeta, d)
		}
	}
}

func TestZeroIntervalIsIdentity(t *testing.T) {
	for _, zeta := range []float64{0, 0.5, 1, 3} {
		s := NewVector(cp.Vector{X: 3, Y: -4}, 8, zeta)
		s.Shove(cp.Vector{X: 1, Y: 1})
		s.Advance(tick)
		pos, vel := s.Position(), s.Velocity()

		s.Advance(0)

		if s.Position().Distance(pos) > 1e-12 || s.Velocity().Distance(vel) > 1e-12 {
			t.Fatalf("zeta=%v: Advance(0) moved %v/%v to %v/%v", zeta, pos, vel, s.Position(), s.Velocity())
		}
	}
}

func TestShoveThenSetTarget(t *testing.T) {
	s := NewVector(cp.Vector{X: 500, Y: -375}, 25, 8)
	s.Advance(tick)
	vel := s.Velocity()
	pos := s.Position()

	s.Shove(cp.Vector{X: 10, Y: -5})
	if want := pos.Add(cp.Vector{X: 10, Y: -5}); s.Position() != want {
		t.Fatalf("shove: position %v, want %v", s.Position(), want)
	}
	if s.Velocity() != vel {
		t.Fatalf("shove changed velocity %v -> %v", vel, s.Velocity())
	}
	if s.Target() != (cp.Vector{X: 500, Y: -375}) {
		t.Fatalf("shove changed target to %v", s.Target())
	}

	shoved := s.Position()
	s.SetTarget(cp.Vector{X: -20, Y: 30})
	if s.Position() != shoved {
		t.Fatalf("SetTarget repositioned %v -> %v", shoved, s.Position())
	}
	if s.Target() != (cp.Vector{X: -20, Y: 30}) {
		t.Fatalf("target = %v", s.Target())
	}
}

func TestScalarVectorParity(t *testing.T) {
	steps := []struct {
		dt    float64
		omega float64
		zeta  float64
	}{
		{tick, 10, 0.5},
		{tick, 10, 0.5},
		{0.25, 10, 1},
		{tick, 3, 2.5},
		{0, 3, 2.5},
		{tick, -1, 0.4}, // clamped to the degenerate case
		{0.5, 6, 0},
		{tick, 6, 1 + Epsilon/2},
	}

	v := NewVector(cp.Vector{X: 12, Y: -7}, 1, 1)
	x := NewScalar(12, 1, 1)
	y := NewScalar(-7, 1, 1)
	v.Shove(cp.Vector{X: 2, Y: 3})
	x.Shove(2)
	y.Shove(3)

	for i, st := range steps {
		for _, s := range []interface {
			SetAngularFrequency(float64)
			SetDampingRatio(float64)
			Advance(float64)
		}{&v, &x, &y} {
			s.SetAngularFrequency(st.omega)
			s.SetDampingRatio(st.zeta)
			s.Advance(st.dt)
		}

		if !near(v.Position().X, float64(x.Position())) || !near(v.Position().Y, float64(y.Position())) {
			t.Fatalf("step %d: vector position %v, scalars (%v, %v)", i, v.Position(), x.Position(), y.Position())
		}
		if !near(v.Velocity().X, float64(x.Velocity())) || !near(v.Velocity().Y, float64(y.Velocity())) {
			t.Fatalf("step %d: vector velocity %v, scalars (%v, %v)", i, v.Velocity(), x.Velocity(), y.Velocity())
		}
	}
}

func TestRegimeFollowsParameters(t *testing.T) {
	s := NewScalar(1, 5, 0.3)
	if s.Regime() != UnderDamped {
		t.Fatalf("regime = %v", s.Regime())
	}
	s.SetDampingRatio(1)
	if s.Regime() != CriticallyDamped {
		t.Fatalf("regime = %v", s.Regime())
	}
	s.SetDampingRatio(3)
	if s.Regime() != OverDamped {
		t.Fatalf("regime = %v", s.Regime())
	}
	s.SetAngularFrequency(0)
	if s.Regime() != Degenerate {
		t.Fatalf("regime = %v", s.Regime())
	}
}

func TestNonFiniteInputsPropagate(t *testing.T) {
	s := NewScalar(math.NaN(), 5, 0.5)
	s.Advance(tick)
	if !math.IsNaN(float64(s.Position())) {
		t.Fatalf("NaN target should propagate, got %v", s.Position())
	}

	s = NewScalar(1, 5, 0.5)
	s.Advance(math.Inf(1))
	// garbage is allowed, a panic is not
	_ = s.Position()
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-12*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}
