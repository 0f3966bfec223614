package ecs

import "github.com/milk9111/springs/ecs/component"

// Add attaches value to e, replacing any existing component of the same kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	w.store(kind.ID(), true).set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil {
		return false
	}
	s := w.store(kind.ID(), false)
	if s == nil {
		return false
	}
	return s.remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil {
		return false
	}
	s := w.store(kind.ID(), false)
	return s != nil && s.has(e)
}

// Get returns the stored pointer, so callers may mutate the component in place.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil {
		return nil, false
	}
	s := w.store(kind.ID(), false)
	if s == nil {
		return nil, false
	}
	v, ok := s.get(e)
	if !ok {
		return nil, false
	}
	cast, ok := v.(*T)
	return cast, ok
}

// ForEach calls fn for every entity with a component of the given kind. fn
// may destroy the entity it was called with; other structural changes to the
// same kind during iteration are not safe.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	s := w.store(kind.ID(), false)
	if s == nil {
		return
	}
	// walk backwards so removing the current element only moves visited ones
	for i := s.len() - 1; i >= 0; i-- {
		if i >= s.len() {
			continue
		}
		v, ok := s.values[i].(*T)
		if !ok {
			continue
		}
		fn(s.entities[i], v)
	}
}

// First returns any entity carrying the given component kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s := w.store(kind.ID(), false)
	if s == nil || s.len() == 0 {
		return 0, false
	}
	return s.entities[0], true
}

func Count[T any](w *World, kind component.ComponentKind[T]) int {
	if w == nil {
		return 0
	}
	s := w.store(kind.ID(), false)
	if s == nil {
		return 0
	}
	return s.len()
}
