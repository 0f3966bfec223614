package component

import "image/color"

// Marker is a filled circle drawn at the entity's transform.
type Marker struct {
	Radius float32
	Color  color.RGBA
	Layer  int
}

var MarkerComponent = NewComponent[Marker]()
