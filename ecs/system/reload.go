package system

import (
	"log"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/springs/ecs"
	"github.com/milk9111/springs/ecs/component"
	"github.com/milk9111/springs/prefabs"
	"github.com/milk9111/springs/spring"
)

// ReloadSystem applies prefab and script edits to live entities. Paths is
// usually a prefabs.Watcher's Events channel; it is drained without blocking.
type ReloadSystem struct {
	Paths   <-chan string
	Scripts *ScriptSystem

	// LoadSpec defaults to prefabs.LoadEntityBuildSpec.
	LoadSpec func(path string) (prefabs.EntityBuildSpec, error)
}

func NewReloadSystem(paths <-chan string, scripts *ScriptSystem) *ReloadSystem {
	return &ReloadSystem{
		Paths:    paths,
		Scripts:  scripts,
		LoadSpec: prefabs.LoadEntityBuildSpec,
	}
}

func (s *ReloadSystem) Update(w *ecs.World, _ float64) {
	if w == nil || s.Paths == nil {
		return
	}

	for {
		select {
		case path, ok := <-s.Paths:
			if !ok {
				s.Paths = nil
				return
			}
			s.reload(w, path)
		default:
			return
		}
	}
}

func (s *ReloadSystem) reload(w *ecs.World, path string) {
	name := prefabs.Name(path)
	if strings.HasSuffix(strings.ToLower(name), ".tengo") {
		s.reloadScript(w, name)
		return
	}
	s.reloadPrefab(w, name)
}

func (s *ReloadSystem) reloadScript(w *ecs.World, name string) {
	if s.Scripts != nil {
		s.Scripts.Invalidate(name)
	}
	ecs.ForEach(w, component.SpringScriptComponent.Kind(), func(e ecs.Entity, sc *component.SpringScript) {
		if prefabs.Name(sc.Path) == name {
			w.Events().Push(ecs.Event{Type: ecs.EventPrefabReloaded, Entity: e, Data: name})
		}
	})
}

// reloadPrefab retunes the springs of every entity built from name. Position
// and velocity are kept so the new parameters animate in.
func (s *ReloadSystem) reloadPrefab(w *ecs.World, name string) {
	load := s.LoadSpec
	if load == nil {
		load = prefabs.LoadEntityBuildSpec
	}
	spec, err := load(name)
	if err != nil {
		log.Printf("reload: %s: %v", name, err)
		return
	}

	var scalar *prefabs.SpringComponentSpec
	if raw, ok := spec.Components["spring"]; ok {
		decoded, err := prefabs.DecodeComponentSpec[prefabs.SpringComponentSpec](raw)
		if err != nil {
			log.Printf("reload: %s: decode spring: %v", name, err)
			return
		}
		scalar = &decoded
	}

	var vec *prefabs.SpringVecComponentSpec
	if raw, ok := spec.Components["spring_vec"]; ok {
		decoded, err := prefabs.DecodeComponentSpec[prefabs.SpringVecComponentSpec](raw)
		if err != nil {
			log.Printf("reload: %s: decode spring_vec: %v", name, err)
			return
		}
		vec = &decoded
	}

	ecs.ForEach(w, component.PrefabComponent.Kind(), func(e ecs.Entity, p *component.Prefab) {
		if prefabs.Name(p.Path) != name {
			return
		}

		applied := false
		if sp, ok := ecs.Get(w, e, component.SpringComponent.Kind()); ok && scalar != nil {
			sp.SetAngularFrequency(scalar.AngularFrequency)
			sp.SetDampingRatio(scalar.DampingRatio)
			sp.SetTarget(spring.Scalar(scalar.Target))
			applied = true
		}
		if sp, ok := ecs.Get(w, e, component.SpringVecComponent.Kind()); ok && vec != nil {
			sp.SetAngularFrequency(vec.AngularFrequency)
			sp.SetDampingRatio(vec.DampingRatio)
			sp.SetTarget(cp.Vector{X: vec.Target.X, Y: vec.Target.Y})
			applied = true
		}

		if applied {
			w.Events().Push(ecs.Event{Type: ecs.EventPrefabReloaded, Entity: e, Data: name})
		}
	})
}
