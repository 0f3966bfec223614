package spring

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Value is anything a spring can carry: a vector space over float64.
type Value[V any] interface {
	Add(V) V
	Sub(V) V
	Mult(float64) V
	Length() float64
}

// Scalar is a float64 that satisfies Value.
type Scalar float64

func (s Scalar) Add(o Scalar) Scalar   { return s + o }
func (s Scalar) Sub(o Scalar) Scalar   { return s - o }
func (s Scalar) Mult(f float64) Scalar { return Scalar(float64(s) * f) }
func (s Scalar) Length() float64       { return math.Abs(float64(s)) }
func (s Scalar) Float() float64        { return float64(s) }

var _ Value[Scalar] = Scalar(0)
var _ Value[cp.Vector] = cp.Vector{}
