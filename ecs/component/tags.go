package component

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// SpringIgnoreTag opts an entity's springs out of automatic advancement.
type SpringIgnoreTag struct{}

var SpringIgnoreTagComponent = NewComponent[SpringIgnoreTag]()
