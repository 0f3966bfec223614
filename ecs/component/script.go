package component

// SpringScript drives an entity's spring parameters from a tengo script.
type SpringScript struct {
	Path    string
	Elapsed float64
}

var SpringScriptComponent = NewComponent[SpringScript]()
