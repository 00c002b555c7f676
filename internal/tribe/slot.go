package tribe

// Slot is one hunter's record in the camp. A dead slot is a tombstone: it
// keeps its index and its last flags so tie-breaking stays stable.
type Slot struct {
	Alive          bool `json:"alive"`
	SucceededToday bool `json:"succeeded_today"`
	AteToday       bool `json:"ate_today"`
	ForcedFailure  bool `json:"forced_failure"`
}

func (s *Slot) ResetDay() {
	s.SucceededToday = false
	s.AteToday = false
}

func countAlive(slots []Slot) int {
	n := 0
	for _, s := range slots {
		if s.Alive {
			n++
		}
	}
	return n
}
