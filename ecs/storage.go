package ecs

// entityStore hands out entity slots and recycles freed ones. Slot ids start
// at 1 so the zero Entity is never valid.
type entityStore struct {
	gens  []generation
	free  []entityID
	alive int
}

func (s *entityStore) create() Entity {
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gens = append(s.gens, 0)
		id = entityID(len(s.gens))
	}
	s.alive++
	return makeEntity(id, s.gens[id-1])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	s.gens[e.id()-1]++
	s.free = append(s.free, e.id())
	s.alive--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gens) {
		return false
	}
	return s.gens[id-1] == e.generation()
}

// each calls fn for every live entity in slot order.
func (s *entityStore) each(fn func(Entity)) {
	free := make(map[entityID]struct{}, len(s.free))
	for _, id := range s.free {
		free[id] = struct{}{}
	}
	for i, gen := range s.gens {
		id := entityID(i + 1)
		if _, ok := free[id]; ok {
			continue
		}
		fn(makeEntity(id, gen))
	}
}
