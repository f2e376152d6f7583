package ingest

import (
	"sync"

	"github.com/vorpalengineering/logupload/types"
)

// EventStore keeps the most recent events in memory. Once full, the oldest
// event is dropped for each new one.
type EventStore struct {
	mu        sync.RWMutex
	events    []types.LogEvent
	maxEvents int
}

func NewEventStore(maxEvents int) *EventStore {
	return &EventStore{maxEvents: maxEvents}
}

func (s *EventStore) Add(event types.LogEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.events) >= s.maxEvents {
		copy(s.events, s.events[1:])
		s.events = s.events[:len(s.events)-1]
	}
	s.events = append(s.events, event)
}

// Recent returns up to limit events, newest first.
func (s *EventStore) Recent(limit int) []types.LogEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.events) {
		limit = len(s.events)
	}
	out := make([]types.LogEvent, 0, limit)
	for i := len(s.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.events[i])
	}
	return out
}

func (s *EventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
