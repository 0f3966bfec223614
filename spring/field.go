package spring

// Field is a batch of springs that share one angular frequency and damping
// ratio. Advance derives the coefficients once per call and applies them to
// every element, which gives the same result as advancing each element as its
// own Spring.
type Field[V Value[V]] struct {
	angularFrequency float64
	dampingRatio     float64

	targets    []V
	positions  []V
	velocities []V
}

// NewField returns a field of n springs at rest at the zero value of V.
func NewField[V Value[V]](n int, angularFrequency, dampingRatio float64) *Field[V] {
	f := &Field[V]{}
	f.SetAngularFrequency(angularFrequency)
	f.SetDampingRatio(dampingRatio)
	f.Resize(n)
	return f
}

// Resize grows or shrinks the field. Existing elements keep their state and
// new ones start at rest at zero.
func (f *Field[V]) Resize(n int) {
	if n < 0 {
		n = 0
	}
	if n == len(f.positions) {
		return
	}
	f.targets = resize(f.targets, n)
	f.positions = resize(f.positions, n)
	f.velocities = resize(f.velocities, n)
}

func resize[V any](s []V, n int) []V {
	if n <= len(s) {
		var zero V
		for i := n; i < len(s); i++ {
			s[i] = zero
		}
		return s[:n]
	}
	out := make([]V, n)
	copy(out, s)
	return out
}

func (f *Field[V]) Len() int { return len(f.positions) }

func (f *Field[V]) AngularFrequency() float64 { return f.angularFrequency }
func (f *Field[V]) DampingRatio() float64     { return f.dampingRatio }

func (f *Field[V]) SetAngularFrequency(value float64) {
	f.angularFrequency = clampNonNegative(value)
}

func (f *Field[V]) SetDampingRatio(value float64) {
	f.dampingRatio = clampNonNegative(value)
}

func (f *Field[V]) Target(i int) V   { return f.targets[i] }
func (f *Field[V]) Position(i int) V { return f.positions[i] }
func (f *Field[V]) Velocity(i int) V { return f.velocities[i] }

func (f *Field[V]) SetTarget(i int, target V) {
	f.targets[i] = target
}

func (f *Field[V]) Shove(i int, offset V) {
	f.positions[i] = f.positions[i].Add(offset)
}

// Advance moves every element forward by dt seconds.
func (f *Field[V]) Advance(dt float64) {
	c, regime := Derive(dt, f.angularFrequency, f.dampingRatio)
	if regime == Degenerate {
		return
	}
	for i := range f.positions {
		f.positions[i], f.velocities[i] = apply(c, f.positions[i], f.velocities[i], f.targets[i])
	}
}
