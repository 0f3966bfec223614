package component

import "github.com/milk9111/springs/spring"

// Spring is a scalar spring. Its output only reaches a transform through a
// SpringBinding on the same entity.
type Spring = spring.ScalarSpring

var SpringComponent = NewComponent[Spring]()

// SpringVec is a 2D spring. Its position is copied into the entity's
// Transform every tick.
type SpringVec = spring.VectorSpring

var SpringVecComponent = NewComponent[SpringVec]()

// TransformField names the transform value a scalar spring drives.
type TransformField string

const (
	FieldX        TransformField = "x"
	FieldY        TransformField = "y"
	FieldRotation TransformField = "rotation"
	FieldScale    TransformField = "scale"
)

func (f TransformField) Valid() bool {
	switch f {
	case FieldX, FieldY, FieldRotation, FieldScale:
		return true
	}
	return false
}

type SpringBinding struct {
	Field TransformField
}

var SpringBindingComponent = NewComponent[SpringBinding]()
