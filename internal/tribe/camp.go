package tribe

import (
	"fmt"
	"sync"

	"hunters/internal/sema"
)

// Camp is the state shared by the cook and every hunter for a whole run,
// together with the primitives that order access to it. All fields below mu
// are read and written only while holding mu.
type Camp struct {
	hunters int
	days    int

	mu          sync.Mutex
	day         int
	aliveCount  int
	pot         int
	huntersBack int
	settledBack int
	quota       int // living hunters captured at the start of the current day
	terminated  bool
	slots       []Slot

	startHunt  *sema.Semaphore // cook -> hunters: go hunt
	allBack    *sema.Semaphore // last hunter -> cook: everyone reported
	dinnerDone *sema.Semaphore // cook -> hunters: verdict is in
	settled    *sema.Semaphore // last hunter -> cook: everyone read the verdict
}

func NewCamp(hunters, days int) (*Camp, error) {
	if hunters <= 0 {
		return nil, fmt.Errorf("%w: hunters must be positive, got %d", ErrInvalidCamp, hunters)
	}
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive, got %d", ErrInvalidCamp, days)
	}

	c := &Camp{
		hunters:    hunters,
		days:       days,
		aliveCount: hunters,
		slots:      make([]Slot, hunters),
		startHunt:  sema.New("start_hunt", 0),
		allBack:    sema.New("all_hunters_back", 0),
		dinnerDone: sema.New("dinner_done", 0),
		settled:    sema.New("settled", 0),
	}
	for i := range c.slots {
		c.slots[i].Alive = true
	}
	return c, nil
}

// Close releases the camp's primitives. Anyone still parked on one of them
// wakes with sema.ErrClosed.
func (c *Camp) Close() {
	c.startHunt.Close()
	c.allBack.Close()
	c.dinnerDone.Close()
	c.settled.Close()
}

// Snapshot is a consistent copy of the shared state.
type Snapshot struct {
	Hunters     int    `json:"hunters"`
	Days        int    `json:"days"`
	Day         int    `json:"day"`
	Alive       int    `json:"alive"`
	Pot         int    `json:"pot"`
	HuntersBack int    `json:"hunters_back"`
	Terminated  bool   `json:"terminated"`
	Slots       []Slot `json:"slots"`
}

func (c *Camp) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	slots := make([]Slot, len(c.slots))
	copy(slots, c.slots)
	return Snapshot{
		Hunters:     c.hunters,
		Days:        c.days,
		Day:         c.day,
		Alive:       c.aliveCount,
		Pot:         c.pot,
		HuntersBack: c.huntersBack,
		Terminated:  c.terminated,
		Slots:       slots,
	}
}

// checkIn is the hunter's view right after being woken for work. Only living
// hunters wait for work; a culled one leaves as soon as it reads its verdict.
func (c *Camp) checkIn(slot int) (day int, forced, stop bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.terminated {
		return c.day, false, true
	}
	return c.day, c.slots[slot].ForcedFailure, false
}

type arrival struct {
	day   int
	pot   int
	alive int
	last  bool
}

// reportBack records a hunt. last is true for exactly one hunter per day: the
// one whose arrival brings the count up to the living population.
func (c *Camp) reportBack(slot int, success bool) (arrival, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.slots[slot].SucceededToday = success
	if success {
		c.pot++
	}
	c.huntersBack++
	if c.huntersBack > c.aliveCount {
		return arrival{}, invariantf(c.day, "%d hunters reported back but only %d are alive", c.huntersBack, c.aliveCount)
	}
	return arrival{
		day:   c.day,
		pot:   c.pot,
		alive: c.aliveCount,
		last:  c.huntersBack == c.aliveCount,
	}, nil
}

type verdict struct {
	day   int
	alive bool
	ate   bool
}

// resolve reads the hunter's own outcome for the day just served.
func (c *Camp) resolve(slot int) verdict {
	c.mu.Lock()
	defer c.mu.Unlock()

	return verdict{
		day:   c.day,
		alive: c.slots[slot].Alive,
		ate:   c.slots[slot].AteToday,
	}
}

// settle counts one hunter as done with the day. It returns true for exactly
// one hunter per day: the one that completes the quota captured at dawn.
func (c *Camp) settle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.settledBack++
	return c.settledBack == c.quota
}
