// Package identity tracks the slave id assigned by the coordinating master.
//
// The id starts at Unregistered and transitions exactly once when master
// registration completes. Reads are lock-free; the registration subsystem is
// the only writer.
package identity

import "sync/atomic"

// Unregistered is the sentinel id of a slave that has not yet completed
// registration with the master.
const Unregistered int64 = -1

// Store holds the current slave id behind an atomic read-through accessor.
type Store struct {
	id atomic.Int64
}

// NewStore returns a store in the unregistered state.
func NewStore() *Store {
	s := &Store{}
	s.id.Store(Unregistered)
	return s
}

// Current returns the assigned slave id, or Unregistered.
func (s *Store) Current() int64 {
	return s.id.Load()
}

// Registered reports whether master registration has completed.
func (s *Store) Registered() bool {
	return s.id.Load() != Unregistered
}

// Assign records the id handed out by the master. It succeeds only for the
// first non-negative id; later calls and negative ids are rejected.
func (s *Store) Assign(id int64) bool {
	if id < 0 {
		return false
	}
	return s.id.CompareAndSwap(Unregistered, id)
}
