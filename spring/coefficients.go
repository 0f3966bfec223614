package spring

import "math"

// Epsilon is the tolerance band around critical damping and the floor below
// which the angular frequency counts as zero.
const Epsilon = 1e-4

// Regime is the solution form picked for a (ω, ζ) pair.
type Regime uint8

const (
	Degenerate Regime = iota
	OverDamped
	UnderDamped
	CriticallyDamped
)

func (r Regime) String() string {
	switch r {
	case Degenerate:
		return "degenerate"
	case OverDamped:
		return "over-damped"
	case UnderDamped:
		return "under-damped"
	case CriticallyDamped:
		return "critically-damped"
	}
	return "unknown"
}

// RegimeOf selects the regime for the given angular frequency and damping ratio.
func RegimeOf(angularFrequency, dampingRatio float64) Regime {
	switch {
	case angularFrequency < Epsilon:
		return Degenerate
	case dampingRatio > 1+Epsilon:
		return OverDamped
	case dampingRatio < 1-Epsilon:
		return UnderDamped
	default:
		return CriticallyDamped
	}
}

// Coefficients is the 2x2 state transition over one interval. It maps
// (position-target, velocity) at t to the same pair at t+dt.
type Coefficients struct {
	PosPos float64
	PosVel float64
	VelPos float64
	VelVel float64
}

// Identity leaves the state unchanged.
var Identity = Coefficients{PosPos: 1, VelVel: 1}

// Derive computes the transition coefficients for an interval dt.
// The regime bands keep every live branch away from a zero denominator.
// See https://www.ryanjuckett.com/damped-springs/ for the derivation.
func Derive(dt, angularFrequency, dampingRatio float64) (Coefficients, Regime) {
	regime := RegimeOf(angularFrequency, dampingRatio)
	switch regime {
	case OverDamped:
		return overDamped(dt, angularFrequency, dampingRatio), regime
	case UnderDamped:
		return underDamped(dt, angularFrequency, dampingRatio), regime
	case CriticallyDamped:
		return criticallyDamped(dt, angularFrequency), regime
	}
	return Identity, regime
}

func overDamped(dt, omega, zeta float64) Coefficients {
	za := -omega * zeta
	zb := omega * math.Sqrt(zeta*zeta-1)
	z1 := za - zb
	z2 := za + zb

	e1 := math.Exp(z1 * dt)
	e2 := math.Exp(z2 * dt)

	invTwoZb := 1 / (2 * zb)

	e1OverTwoZb := e1 * invTwoZb
	e2OverTwoZb := e2 * invTwoZb

	z1e1OverTwoZb := z1 * e1OverTwoZb
	z2e2OverTwoZb := z2 * e2OverTwoZb

	return Coefficients{
		PosPos: e1OverTwoZb*z2 - z2e2OverTwoZb + e2,
		PosVel: -e1OverTwoZb + e2OverTwoZb,
		VelPos: (z1e1OverTwoZb - z2e2OverTwoZb + e2) * z2,
		VelVel: -z1e1OverTwoZb + z2e2OverTwoZb,
	}
}

func underDamped(dt, omega, zeta float64) Coefficients {
	omegaZeta := omega * zeta
	alpha := omega * math.Sqrt(1-zeta*zeta)

	expTerm := math.Exp(-omegaZeta * dt)
	cosTerm := math.Cos(alpha * dt)
	sinTerm := math.Sin(alpha * dt)

	invAlpha := 1 / alpha

	expSin := expTerm * sinTerm
	expCos := expTerm * cosTerm
	expOmegaZetaSinOverAlpha := expTerm * omegaZeta * sinTerm * invAlpha

	return Coefficients{
		PosPos: expCos + expOmegaZetaSinOverAlpha,
		PosVel: expSin * invAlpha,
		VelPos: -expSin*alpha - omegaZeta*expOmegaZetaSinOverAlpha,
		VelVel: expCos - expOmegaZetaSinOverAlpha,
	}
}

func criticallyDamped(dt, omega float64) Coefficients {
	expTerm := math.Exp(-omega * dt)
	timeExp := dt * expTerm
	timeExpFreq := timeExp * omega

	return Coefficients{
		PosPos: timeExpFreq + expTerm,
		PosVel: timeExp,
		VelPos: -omega * timeExpFreq,
		VelVel: -timeExpFreq + expTerm,
	}
}

// apply runs the transition on one (position, velocity) pair.
// Every value type goes through the same operation order, so a vector axis
// matches a scalar spring bit for bit.
func apply[V Value[V]](c Coefficients, position, velocity, target V) (V, V) {
	old := position.Sub(target)
	newPos := old.Mult(c.PosPos).Add(velocity.Mult(c.PosVel)).Add(target)
	newVel := old.Mult(c.VelPos).Add(velocity.Mult(c.VelVel))
	return newPos, newVel
}
