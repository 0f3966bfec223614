// Package spring animates values toward a moving target with a damped
// harmonic oscillator solved in closed form. Advance is exact for any dt >= 0,
// so there is no accumulated integration error and no step-size instability.
package spring

import "github.com/jakecoffman/cp"

// Spring pulls a value of type V toward a target.
//
// A Spring has no locks. Any number of springs may be advanced in parallel as
// long as each one has a single writer per tick.
type Spring[V Value[V]] struct {
	angularFrequency float64
	dampingRatio     float64

	target   V
	position V
	velocity V
}

// ScalarSpring drives a single float.
type ScalarSpring = Spring[Scalar]

// VectorSpring drives a 2D point. Both axes share one coefficient set.
type VectorSpring = Spring[cp.Vector]

// New returns a spring at rest at the zero value of V, pulled toward target.
// Negative parameters are clamped to zero.
func New[V Value[V]](target V, angularFrequency, dampingRatio float64) Spring[V] {
	s := Spring[V]{target: target}
	s.SetAngularFrequency(angularFrequency)
	s.SetDampingRatio(dampingRatio)
	return s
}

func NewScalar(target, angularFrequency, dampingRatio float64) ScalarSpring {
	return New(Scalar(target), angularFrequency, dampingRatio)
}

func NewVector(target cp.Vector, angularFrequency, dampingRatio float64) VectorSpring {
	return New(target, angularFrequency, dampingRatio)
}

func (s *Spring[V]) AngularFrequency() float64 { return s.angularFrequency }
func (s *Spring[V]) DampingRatio() float64     { return s.dampingRatio }
func (s *Spring[V]) Target() V                 { return s.target }
func (s *Spring[V]) Position() V               { return s.position }
func (s *Spring[V]) Velocity() V               { return s.velocity }

// SetAngularFrequency stores max(value, 0). Callers often feed derived
// frequencies that dip below zero for a frame; that is clamped, not rejected.
func (s *Spring[V]) SetAngularFrequency(value float64) {
	s.angularFrequency = clampNonNegative(value)
}

// SetDampingRatio stores max(value, 0).
func (s *Spring[V]) SetDampingRatio(value float64) {
	s.dampingRatio = clampNonNegative(value)
}

// SetTarget replaces the target without moving the current position.
func (s *Spring[V]) SetTarget(target V) {
	s.target = target
}

// Shove offsets the position. Velocity and target are left alone.
func (s *Spring[V]) Shove(offset V) {
	s.position = s.position.Add(offset)
}

// Regime reports the solution form the next Advance will use.
func (s *Spring[V]) Regime() Regime {
	return RegimeOf(s.angularFrequency, s.dampingRatio)
}

// AtRest reports whether both the distance to the target and the speed are
// within tolerance.
func (s *Spring[V]) AtRest(tolerance float64) bool {
	return s.position.Sub(s.target).Length() <= tolerance && s.velocity.Length() <= tolerance
}

// Advance moves the spring forward by dt seconds.
//
// The regime is chosen again on every call from the current parameters, so a
// spring whose parameters change between ticks may switch regimes with no
// smoothing across the switch. NaN or Inf inputs propagate into the state.
func (s *Spring[V]) Advance(dt float64) {
	c, regime := Derive(dt, s.angularFrequency, s.dampingRatio)
	if regime == Degenerate {
		// no restoring force: the state is left exactly as it was
		return
	}
	s.position, s.velocity = apply(c, s.position, s.velocity, s.target)
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
