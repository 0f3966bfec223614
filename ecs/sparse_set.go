package ecs

// sparseSet stores one component kind keyed by entity slot. Values are kept
// densely packed for iteration and boxed as any so one World can hold sets of
// every component type.
type sparseSet struct {
	// sparse[id-1] is the dense index plus one; zero means absent
	sparse   []int
	entities []Entity
	values   []any
}

func (s *sparseSet) index(e Entity) (int, bool) {
	id := int(e.id())
	if id == 0 || id > len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id-1] - 1
	if idx < 0 || s.entities[idx] != e {
		return 0, false
	}
	return idx, true
}

func (s *sparseSet) has(e Entity) bool {
	_, ok := s.index(e)
	return ok
}

func (s *sparseSet) get(e Entity) (any, bool) {
	idx, ok := s.index(e)
	if !ok {
		return nil, false
	}
	return s.values[idx], true
}

func (s *sparseSet) set(e Entity, v any) {
	if idx, ok := s.index(e); ok {
		s.values[idx] = v
		return
	}
	id := int(e.id())
	if id > len(s.sparse) {
		s.sparse = append(s.sparse, make([]int, id-len(s.sparse))...)
	}
	// a stale handle for the same slot is replaced outright
	if old := s.sparse[id-1] - 1; old >= 0 {
		s.entities[old] = e
		s.values[old] = v
		return
	}
	s.entities = append(s.entities, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.entities)
}

func (s *sparseSet) remove(e Entity) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	last := len(s.entities) - 1
	moved := s.entities[last]

	s.entities[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()-1] = idx + 1

	s.entities[last] = 0
	s.values[last] = nil
	s.entities = s.entities[:last]
	s.values = s.values[:last]
	s.sparse[e.id()-1] = 0
	return true
}

func (s *sparseSet) len() int {
	return len(s.entities)
}
