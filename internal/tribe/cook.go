package tribe

import (
	"context"
	"fmt"

	"hunters/internal/telemetry"
)

type Outcome string

const (
	OutcomeDayLimit Outcome = "day limit reached"
	OutcomeExtinct  Outcome = "extinct"
)

// DayReport is what the cook decided at the end of one day.
type DayReport struct {
	Day         int   `json:"day"`
	AliveAtDawn int   `json:"alive_at_dawn"`
	Pot         int   `json:"pot"`
	CookAte     bool  `json:"cook_ate"`
	Successful  []int `json:"successful"`
	Fed         []int `json:"fed"`
	Hungry      []int `json:"hungry"`
	Eliminated  []int `json:"eliminated"`
	Leftover    int   `json:"leftover"`
	AliveAtDusk int   `json:"alive_at_dusk"`
}

// Cook drives the day cycle. There is exactly one per camp.
type Cook struct {
	camp     *Camp
	reporter telemetry.Reporter
	surplus  int
}

func NewCook(camp *Camp, reporter telemetry.Reporter, surplus int) *Cook {
	if reporter == nil {
		reporter = telemetry.Discard
	}
	if surplus <= 0 {
		surplus = 4
	}
	return &Cook{camp: camp, reporter: reporter, surplus: surplus}
}

// Run executes days until the tribe dies out or the day limit is reached,
// then flushes every parked hunter. Any primitive failure aborts the run.
func (k *Cook) Run(ctx context.Context) (Result, error) {
	res := Result{}

	for {
		day, quota, outcome, done := k.dawn()
		if done {
			res.Outcome = outcome
			break
		}

		if err := k.camp.startHunt.ReleaseN(quota); err != nil {
			return res, fmt.Errorf("dispatch day %d: %w", day, err)
		}
		k.report(telemetry.EventHuntersDispatched, day, telemetry.NoHunter, 0, quota, quota)

		if err := k.camp.allBack.Acquire(ctx); err != nil {
			return res, fmt.Errorf("await hunters on day %d: %w", day, err)
		}

		rep, err := k.supper(day, quota)
		if err != nil {
			return res, err
		}
		k.announce(rep)

		if err := k.camp.dinnerDone.ReleaseN(quota); err != nil {
			return res, fmt.Errorf("release dinner on day %d: %w", day, err)
		}
		if err := k.camp.settled.Acquire(ctx); err != nil {
			return res, fmt.Errorf("await settle on day %d: %w", day, err)
		}
		res.Reports = append(res.Reports, rep)
	}

	if err := k.terminate(); err != nil {
		return res, err
	}

	snap := k.camp.Snapshot()
	res.Days = snap.Day
	res.Alive = snap.Alive
	res.Survivors = []int{}
	for i, s := range snap.Slots {
		if s.Alive {
			res.Survivors = append(res.Survivors, i)
		}
	}
	k.reporter.Report(telemetry.Event{
		Type:   telemetry.EventSimulationEnded,
		Day:    res.Days,
		Hunter: telemetry.NoHunter,
		Alive:  res.Alive,
		Reason: string(res.Outcome),
	})
	return res, nil
}

// dawn opens a new day, or reports why there is none.
func (k *Cook) dawn() (day, quota int, outcome Outcome, done bool) {
	c := k.camp
	c.mu.Lock()

	if c.aliveCount == 0 {
		c.terminated = true
		day = c.day + 1
		c.mu.Unlock()
		k.report(telemetry.EventExtinction, day, telemetry.NoHunter, 0, 0, 0)
		return day, 0, OutcomeExtinct, true
	}
	if c.day >= c.days {
		day = c.day
		c.mu.Unlock()
		return day, 0, OutcomeDayLimit, true
	}

	c.day++
	c.pot = 0
	c.huntersBack = 0
	c.settledBack = 0
	for i := range c.slots {
		c.slots[i].ResetDay()
	}
	c.quota = c.aliveCount
	day, quota = c.day, c.quota
	c.mu.Unlock()

	k.report(telemetry.EventDayStarted, day, telemetry.NoHunter, 0, quota, 0)
	return day, quota, "", false
}

// supper serves the pot, culls, and prepares tomorrow's hunts, all under the
// lock so hunters only ever see a fully decided day.
func (k *Cook) supper(day, quota int) (DayReport, error) {
	c := k.camp
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.huntersBack != quota || c.aliveCount != quota {
		return DayReport{}, invariantf(day, "barrier fired with %d of %d hunters back (%d alive)", c.huntersBack, quota, c.aliveCount)
	}

	rep := DayReport{Day: day, AliveAtDawn: quota, Pot: c.pot, Successful: []int{}}
	for i, s := range c.slots {
		if s.Alive && s.SucceededToday {
			rep.Successful = append(rep.Successful, i)
		}
	}

	dinner := Serve(c.pot, c.slots)
	c.pot = dinner.Leftover
	rep.CookAte = dinner.CookAte
	rep.Fed = dinner.Fed
	rep.Hungry = dinner.Hungry
	rep.Leftover = dinner.Leftover

	rep.Eliminated = Cull(c.slots, dinner.Hungry)
	c.aliveCount -= len(rep.Eliminated)

	PrepareNextHunt(c.slots)

	if n := countAlive(c.slots); n != c.aliveCount {
		return DayReport{}, invariantf(day, "alive count %d disagrees with %d living slots", c.aliveCount, n)
	}
	rep.AliveAtDusk = c.aliveCount
	return rep, nil
}

func (k *Cook) announce(rep DayReport) {
	day := rep.Day
	k.report(telemetry.EventHuntersReturned, day, telemetry.NoHunter, rep.Pot, rep.AliveAtDawn, 0)
	if rep.CookAte {
		k.report(telemetry.EventCookAte, day, telemetry.NoHunter, rep.Pot-1, rep.AliveAtDawn, 0)
	} else {
		k.report(telemetry.EventCookHungry, day, telemetry.NoHunter, 0, rep.AliveAtDawn, 0)
	}
	k.report(telemetry.EventDinnerServed, day, telemetry.NoHunter, rep.Leftover, rep.AliveAtDawn, len(rep.Fed))
	if len(rep.Hungry) > 0 {
		k.report(telemetry.EventStarvation, day, telemetry.NoHunter, rep.Leftover, rep.AliveAtDawn, len(rep.Hungry))
	}
	alive := rep.AliveAtDawn
	for _, v := range rep.Eliminated {
		alive--
		k.report(telemetry.EventHunterEliminated, day, v, rep.Leftover, alive, 0)
	}
	k.report(telemetry.EventDayEnded, day, telemetry.NoHunter, rep.Leftover, rep.AliveAtDusk, 0)
}

// terminate marks the run over and releases both hunter-facing signals far
// more often than anyone could still be waiting on them.
func (k *Cook) terminate() error {
	c := k.camp
	c.mu.Lock()
	c.terminated = true
	c.mu.Unlock()

	flush := c.hunters + k.surplus
	if err := c.startHunt.ReleaseN(flush); err != nil {
		return fmt.Errorf("flush start_hunt: %w", err)
	}
	if err := c.dinnerDone.ReleaseN(flush); err != nil {
		return fmt.Errorf("flush dinner_done: %w", err)
	}
	return nil
}

func (k *Cook) report(t telemetry.EventType, day, hunter, pot, alive, count int) {
	k.reporter.Report(telemetry.Event{
		Type:   t,
		Day:    day,
		Hunter: hunter,
		Pot:    pot,
		Alive:  alive,
		Count:  count,
	})
}
