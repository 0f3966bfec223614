package system

import (
	"sync"

	"github.com/milk9111/springs/ecs"
	"github.com/milk9111/springs/ecs/component"
)

// SpringSystem advances every spring once per tick and copies the results
// into transforms. Entities tagged SpringIgnoreTag are skipped.
type SpringSystem struct {
	// Workers > 1 advances springs on that many goroutines. Each spring is
	// owned by exactly one worker per tick.
	Workers int

	scalars []scalarEntry
	vectors []vectorEntry
}

type scalarEntry struct {
	e ecs.Entity
	s *component.Spring
}

type vectorEntry struct {
	e ecs.Entity
	s *component.SpringVec
}

func NewSpringSystem() *SpringSystem {
	return &SpringSystem{}
}

func (s *SpringSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	s.collect(w)

	advance(s.scalars, s.Workers, func(entry scalarEntry) { entry.s.Advance(dt) })
	advance(s.vectors, s.Workers, func(entry vectorEntry) { entry.s.Advance(dt) })

	for _, entry := range s.scalars {
		binding, ok := ecs.Get(w, entry.e, component.SpringBindingComponent.Kind())
		if !ok {
			continue
		}
		if t, ok := ecs.Get(w, entry.e, component.TransformComponent.Kind()); ok {
			applyBinding(t, binding.Field, entry.s.Position().Float())
		}
	}

	for _, entry := range s.vectors {
		if t, ok := ecs.Get(w, entry.e, component.TransformComponent.Kind()); ok {
			pos := entry.s.Position()
			t.X = pos.X
			t.Y = pos.Y
		}
	}
}

func (s *SpringSystem) collect(w *ecs.World) {
	s.scalars = s.scalars[:0]
	s.vectors = s.vectors[:0]

	ignored := func(e ecs.Entity) bool {
		return ecs.Has(w, e, component.SpringIgnoreTagComponent.Kind())
	}

	ecs.ForEach(w, component.SpringComponent.Kind(), func(e ecs.Entity, sp *component.Spring) {
		if !ignored(e) {
			s.scalars = append(s.scalars, scalarEntry{e: e, s: sp})
		}
	})
	ecs.ForEach(w, component.SpringVecComponent.Kind(), func(e ecs.Entity, sp *component.SpringVec) {
		if !ignored(e) {
			s.vectors = append(s.vectors, vectorEntry{e: e, s: sp})
		}
	})
}

// advance runs fn over items, split into contiguous chunks when workers > 1.
func advance[T any](items []T, workers int, fn func(T)) {
	if workers <= 1 || len(items) < 2 {
		for _, item := range items {
			fn(item)
		}
		return
	}
	if workers > len(items) {
		workers = len(items)
	}

	chunk := (len(items) + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < len(items); start += chunk {
		end := min(start+chunk, len(items))
		wg.Add(1)
		go func(part []T) {
			defer wg.Done()
			for _, item := range part {
				fn(item)
			}
		}(items[start:end])
	}
	wg.Wait()
}

func applyBinding(t *component.Transform, field component.TransformField, v float64) {
	switch field {
	case component.FieldX:
		t.X = v
	case component.FieldY:
		t.Y = v
	case component.FieldRotation:
		t.Rotation = v
	case component.FieldScale:
		t.ScaleX = v
		t.ScaleY = v
	}
}
