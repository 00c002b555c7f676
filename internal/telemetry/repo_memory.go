package telemetry

import (
	"sync"
	"time"
)

// Repository stores telemetry events
type Repository interface {
	Reporter
	GetEvents(since time.Time, eventTypes []EventType) ([]Event, error)
	Clear() error
}

var _ Repository = (*MemoryRepository)(nil)

// MemoryRepository keeps every event of a run in arrival order.
type MemoryRepository struct {
	mu     sync.RWMutex
	clock  Clock
	events []Event
	nextID int
}

func NewMemoryRepository(clock Clock) *MemoryRepository {
	if clock == nil {
		clock = RealClock{}
	}
	return &MemoryRepository{
		clock:  clock,
		events: make([]Event, 0),
		nextID: 1,
	}
}

func (r *MemoryRepository) Report(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.ID = r.nextID
	if e.Timestamp.IsZero() {
		e.Timestamp = r.clock.Now()
	}
	r.events = append(r.events, e)
	r.nextID++
}

func (r *MemoryRepository) GetEvents(since time.Time, eventTypes []EventType) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typeFilter := make(map[EventType]bool)
	for _, t := range eventTypes {
		typeFilter[t] = true
	}

	result := make([]Event, 0)
	for _, event := range r.events {
		if event.Timestamp.Before(since) {
			continue
		}
		if len(eventTypes) > 0 && !typeFilter[event.Type] {
			continue
		}
		result = append(result, event)
	}

	return result, nil
}

// All returns a copy of every recorded event.
func (r *MemoryRepository) All() []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// OfType is GetEvents without the time filter.
func (r *MemoryRepository) OfType(eventTypes ...EventType) []Event {
	events, _ := r.GetEvents(time.Time{}, eventTypes)
	return events
}

func (r *MemoryRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = make([]Event, 0)
	r.nextID = 1

	return nil
}
