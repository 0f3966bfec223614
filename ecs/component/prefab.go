package component

// Prefab records which prefab file built the entity, for hot reload.
type Prefab struct {
	Path string
}

var PrefabComponent = NewComponent[Prefab]()
