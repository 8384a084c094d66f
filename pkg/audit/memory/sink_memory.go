package memory

import (
	"context"
	"sync"

	"idcheck/pkg/audit"
)

// Sink keeps emitted events in memory. Tests use it to assert on the
// observability boundary without a broker.
type Sink struct {
	mu     sync.RWMutex
	events []audit.Event
}

func NewSink() *Sink {
	return &Sink{}
}

func (s *Sink) Emit(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a copy of everything emitted so far.
func (s *Sink) Events() []audit.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]audit.Event, len(s.events))
	copy(out, s.events)
	return out
}

// ByAction filters emitted events by action name.
func (s *Sink) ByAction(action string) []audit.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Event
	for _, e := range s.events {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}
