package compiler

import "sync"

// stateSet is a sparse set of states with O(1) insert, membership and clear.
type stateSet struct {
	dense  []State
	sparse []int
}

func newStateSet(size int) *stateSet {
	return &stateSet{
		dense:  make([]State, 0, size),
		sparse: make([]int, size),
	}
}

func (s *stateSet) has(st State) bool {
	i := s.sparse[st]
	return i < len(s.dense) && s.dense[i] == st
}

func (s *stateSet) add(st State) {
	if !s.has(st) {
		s.sparse[st] = len(s.dense)
		s.dense = append(s.dense, st)
	}
}

func (s *stateSet) clear() {
	s.dense = s.dense[:0]
}

// setPool hands out pairs of state sets sized for one automaton.
type setPool struct {
	size int
	pool sync.Pool
}

func newSetPool(size int) *setPool {
	p := &setPool{size: size}
	p.pool.New = func() interface{} {
		return &[2]*stateSet{newStateSet(size), newStateSet(size)}
	}
	return p
}

func (p *setPool) get() *[2]*stateSet {
	sets := p.pool.Get().(*[2]*stateSet)
	sets[0].clear()
	sets[1].clear()
	return sets
}

func (p *setPool) put(sets *[2]*stateSet) {
	p.pool.Put(sets)
}
