package ecs

// System updates a world once per tick. dt is the elapsed time in seconds.
type System interface {
	Update(w *World, dt float64)
}

// Scheduler runs systems in the order they were added.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update runs one tick. Events left over from the previous tick are dropped
// first, so anything pushed during this tick stays readable until the next.
func (s *Scheduler) Update(w *World, dt float64) {
	if w == nil {
		return
	}
	w.events.flush()
	for _, system := range s.systems {
		system.Update(w, dt)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
