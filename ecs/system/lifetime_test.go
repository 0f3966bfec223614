package system

import (
	"testing"

	"github.com/milk9111/springs/ecs"
	"github.com/milk9111/springs/ecs/component"
)

func TestLifetimeSystemDestroysOnExpiry(t *testing.T) {
	w := ecs.NewWorld()
	short := ecs.CreateEntity(w)
	_ = ecs.Add(w, short, component.LifetimeComponent.Kind(), &component.Lifetime{Remaining: 1})
	long := ecs.CreateEntity(w)
	_ = ecs.Add(w, long, component.LifetimeComponent.Kind(), &component.Lifetime{Remaining: 5})
	keep := ecs.CreateEntity(w)

	sched := ecs.NewScheduler(NewLifetimeSystem())
	for i := 0; i < 3; i++ {
		sched.Update(w, 0.25)
		if !ecs.IsAlive(w, short) {
			t.Fatalf("entity destroyed early on tick %d", i)
		}
		if n := w.Events().Len(); n != 0 {
			t.Fatalf("unexpected events on tick %d: %d", i, n)
		}
	}

	sched.Update(w, 0.25)
	if ecs.IsAlive(w, short) {
		t.Fatalf("entity should be destroyed once its lifetime runs out")
	}
	if !ecs.IsAlive(w, long) || !ecs.IsAlive(w, keep) {
		t.Fatalf("other entities should survive")
	}

	events := w.Events().Drain()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != ecs.EventLifetimeExpired || events[0].Entity != short {
		t.Fatalf("unexpected event %+v", events[0])
	}

	lt, _ := ecs.Get(w, long, component.LifetimeComponent.Kind())
	if lt.Remaining != 4 {
		t.Fatalf("expected 4s remaining, got %v", lt.Remaining)
	}
}

func TestLifetimeSystemNonPositiveStartExpiresImmediately(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.LifetimeComponent.Kind(), &component.Lifetime{Remaining: 0})

	NewLifetimeSystem().Update(w, 0)
	if ecs.IsAlive(w, e) {
		t.Fatalf("zero lifetime should expire on the first tick")
	}
}
