package system

import (
	"github.com/milk9111/springs/ecs"
	"github.com/milk9111/springs/ecs/component"
)

// LifetimeSystem counts Lifetime components down by dt and destroys each
// entity on the tick its time runs out.
type LifetimeSystem struct{}

func NewLifetimeSystem() *LifetimeSystem {
	return &LifetimeSystem{}
}

func (s *LifetimeSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.LifetimeComponent.Kind(), func(e ecs.Entity, lt *component.Lifetime) {
		lt.Remaining -= dt
		if lt.Remaining > 0 {
			return
		}
		ecs.DestroyEntity(w, e)
		w.Events().Push(ecs.Event{Type: ecs.EventLifetimeExpired, Entity: e})
	})
}
