package fft

import (
	"sync"

	"todsim/ports"
)

// Store caches transform plans by length. It is process-local; the noise
// operator clears it between observations to bound peak memory. The mutex
// makes Plan and Clear safe for callers that parallelize across detectors,
// though the reference usage is sequential.
type Store struct {
	mu    sync.Mutex
	plans map[int]*Plan
}

// NewStore creates an empty plan store.
func NewStore() *Store {
	return &Store{plans: make(map[int]*Plan)}
}

// Plan returns the cached plan for length n, creating it on first use.
func (s *Store) Plan(n int) ports.RealPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.plans[n]; ok {
		return p
	}
	p := newPlan(n)
	s.plans[n] = p
	return p
}

// Clear drops every cached plan.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans = make(map[int]*Plan)
}

// Size returns the number of cached plans.
func (s *Store) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.plans)
}
