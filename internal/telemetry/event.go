package telemetry

import "time"

type EventType string

const (
	EventSimulationStarted EventType = "simulation_started"
	EventDayStarted        EventType = "day_started"
	EventHuntersDispatched EventType = "hunters_dispatched"
	EventHuntSucceeded     EventType = "hunt_succeeded"
	EventHuntFailed        EventType = "hunt_failed"
	EventHuntersReturned   EventType = "hunters_returned"
	EventCookAte           EventType = "cook_ate"
	EventCookHungry        EventType = "cook_hungry"
	EventDinnerServed      EventType = "dinner_served"
	EventStarvation        EventType = "starvation"
	EventHunterEliminated  EventType = "hunter_eliminated"
	EventDayEnded          EventType = "day_ended"
	EventHunterFed         EventType = "hunter_fed"
	EventHunterHungry      EventType = "hunter_hungry"
	EventHunterExited      EventType = "hunter_exited"
	EventExtinction        EventType = "extinction"
	EventSimulationEnded   EventType = "simulation_ended"
)

// NoHunter marks events that belong to the cook or the whole tribe.
const NoHunter = -1

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Day       int       `json:"day"`
	Hunter    int       `json:"hunter"`
	Pot       int       `json:"pot"`
	Alive     int       `json:"alive"`
	Count     int       `json:"count,omitempty"`
	Reason    string    `json:"reason,omitempty"`
}

// Reporter receives every state transition of a run. Implementations must be
// safe for concurrent use; the simulation never reads anything back.
type Reporter interface {
	Report(e Event)
}

// Discard drops every event.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Report(Event) {}

type multi []Reporter

func (m multi) Report(e Event) {
	for _, r := range m {
		r.Report(e)
	}
}

// Multi fans each event out to all non-nil reporters in order.
func Multi(reporters ...Reporter) Reporter {
	out := make(multi, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			out = append(out, r)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}
