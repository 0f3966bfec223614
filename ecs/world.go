package ecs

import "github.com/milk9111/springs/ecs/component"

// World owns entities and their components.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*sparseSet
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*sparseSet)}
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) store(id component.ComponentID, create bool) *sparseSet {
	if w.stores == nil {
		if !create {
			return nil
		}
		w.stores = make(map[component.ComponentID]*sparseSet)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = &sparseSet{}
		w.stores[id] = s
	}
	return s
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes e and all of its components. It reports false for a
// dead or stale handle.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.alive)
	w.entities.each(func(e Entity) {
		out = append(out, e)
	})
	return out
}
