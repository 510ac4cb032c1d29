package catalog

import "sync"

// Store holds the working set of events for the process lifetime: the seed
// catalog plus any discovered events merged at runtime. It also keeps the
// grounding sources from the most recent discovery call, replaced wholesale
// on every merge.
type Store struct {
	mu      sync.RWMutex
	events  []Event
	sources []GroundingSource
}

// NewStore sets up a Store with the given initial events.
func NewStore(initial []Event) *Store {
	events := make([]Event, len(initial))
	copy(events, initial)
	return &Store{events: events}
}

// Snapshot returns a copy of the current working set.
func (s *Store) Snapshot() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]Event, len(s.events))
	copy(events, s.events)
	return events
}

// Merge prepends discovered events (most-recent-first) and replaces the
// grounding sources in one step, so readers never observe events without
// their sources. Duplicates by title or city are not collapsed.
func (s *Store) Merge(discovered []Event, sources []GroundingSource) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := make([]Event, 0, len(discovered)+len(s.events))
	merged = append(merged, discovered...)
	merged = append(merged, s.events...)
	s.events = merged

	s.sources = make([]GroundingSource, len(sources))
	copy(s.sources, sources)
}

// Sources returns the citations from the most recent discovery call.
func (s *Store) Sources() []GroundingSource {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sources := make([]GroundingSource, len(s.sources))
	copy(sources, s.sources)
	return sources
}

// Discovered returns the events that came from the discovery adapter, in
// working-set order. Used to persist them across restarts.
func (s *Store) Discovered() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var discovered []Event
	for _, ev := range s.events {
		if ev.Discovered() {
			discovered = append(discovered, ev)
		}
	}
	return discovered
}
