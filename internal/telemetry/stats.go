package telemetry

type Stats struct {
	EventCounts     map[EventType]int `json:"event_counts"`
	Days            int               `json:"days"`
	Successes       int               `json:"successes"`
	Failures        int               `json:"failures"`
	SuccessRate     float64           `json:"success_rate"`
	Eliminations    int               `json:"eliminations"`
	EliminatedByDay map[int][]int     `json:"eliminated_by_day"`
	StarvingDays    int               `json:"starving_days"`
	CookHungryDays  int               `json:"cook_hungry_days"`
	MeatPerDay      float64           `json:"meat_per_day"`
	FinalAlive      int               `json:"final_alive"`
	Extinct         bool              `json:"extinct"`
}

// CalculateStats folds a run's event stream into summary numbers.
func CalculateStats(events []Event) Stats {
	stats := Stats{
		EventCounts:     make(map[EventType]int),
		EliminatedByDay: make(map[int][]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		switch event.Type {
		case EventDayStarted:
			stats.Days++
		case EventHuntSucceeded:
			stats.Successes++
		case EventHuntFailed:
			stats.Failures++
		case EventHunterEliminated:
			stats.Eliminations++
			stats.EliminatedByDay[event.Day] = append(stats.EliminatedByDay[event.Day], event.Hunter)
		case EventStarvation:
			stats.StarvingDays++
		case EventCookHungry:
			stats.CookHungryDays++
		case EventExtinction:
			stats.Extinct = true
		case EventSimulationEnded:
			stats.FinalAlive = event.Alive
		}
	}

	if hunts := stats.Successes + stats.Failures; hunts > 0 {
		stats.SuccessRate = float64(stats.Successes) / float64(hunts)
	}
	if stats.Days > 0 {
		stats.MeatPerDay = float64(stats.Successes) / float64(stats.Days)
	}

	return stats
}
