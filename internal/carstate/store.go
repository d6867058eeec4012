package carstate

import (
	"context"
	"sync"
	"time"
)

// Store guards a Record behind a mutex and lets waiters block for the next
// change, standing in for the process-shared mutex and condition variable
// of the original shared-memory layout.
type Store struct {
	mu      sync.Mutex
	rec     Record
	changed chan struct{}
}

// NewStore returns a store initialised for a car parked at its lowest
// floor with the doors closed and every flag clear.
func NewStore(lowest string) *Store {
	return &Store{
		rec: Record{
			CurrentFloor:     lowest,
			DestinationFloor: lowest,
			Status:           StatusClosed,
		},
		changed: make(chan struct{}),
	}
}

func (s *Store) Snapshot() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec
}

// Update applies fn under the lock and wakes every waiter if the record
// changed. The updated record is returned.
func (s *Store) Update(fn func(*Record)) Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.rec
	fn(&s.rec)
	if s.rec != before {
		s.broadcastLocked()
	}
	return s.rec
}

// Apply writes raw field values, all under one lock acquisition. The write
// is all-or-nothing: an unknown field or unparseable value leaves the
// record untouched.
func (s *Store) Apply(pairs [][2]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.rec
	for _, kv := range pairs {
		if err := setField(&s.rec, kv[0], kv[1]); err != nil {
			s.rec = before
			return err
		}
	}
	if s.rec != before {
		s.broadcastLocked()
	}
	return nil
}

func (s *Store) broadcastLocked() {
	close(s.changed)
	s.changed = make(chan struct{})
}

// Wait blocks until the record changes, the timeout elapses or ctx is
// cancelled, then returns the record as it stands.
func (s *Store) Wait(ctx context.Context, timeout time.Duration) Record {
	s.mu.Lock()
	ch := s.changed
	s.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ch:
	case <-timer.C:
	case <-ctx.Done():
	}
	return s.Snapshot()
}
