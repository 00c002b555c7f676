package tribe

import (
	"context"
	"fmt"

	"hunters/internal/telemetry"
)

// Fate is how a hunter's run ended.
type Fate string

const (
	FateEliminated Fate = "eliminated"
	FateDismissed  Fate = "dismissed"
)

// Hunter owns one slot of the camp for its whole life.
type Hunter struct {
	slot     int
	camp     *Camp
	luck     Luck
	reporter telemetry.Reporter
}

func NewHunter(slot int, camp *Camp, luck Luck, reporter telemetry.Reporter) *Hunter {
	if reporter == nil {
		reporter = telemetry.Discard
	}
	return &Hunter{slot: slot, camp: camp, luck: luck, reporter: reporter}
}

func (h *Hunter) Slot() int { return h.slot }

// Run hunts one day per work permit until the hunter is eliminated or the
// cook ends the simulation.
func (h *Hunter) Run(ctx context.Context) (Fate, error) {
	c := h.camp
	for {
		if err := c.startHunt.Acquire(ctx); err != nil {
			return "", fmt.Errorf("hunter %d awaiting work: %w", h.slot, err)
		}

		day, forced, stop := c.checkIn(h.slot)
		if stop {
			h.report(telemetry.EventHunterExited, day, 0, 0, "simulation over")
			return FateDismissed, nil
		}

		success := !forced && h.luck.Hunt(h.slot, day)

		back, err := c.reportBack(h.slot, success)
		if err != nil {
			return "", err
		}
		switch {
		case success:
			h.report(telemetry.EventHuntSucceeded, back.day, back.pot, back.alive, "")
		case forced:
			h.report(telemetry.EventHuntFailed, back.day, back.pot, back.alive, "forced")
		default:
			h.report(telemetry.EventHuntFailed, back.day, back.pot, back.alive, "")
		}
		if back.last {
			if err := c.allBack.Release(); err != nil {
				return "", fmt.Errorf("hunter %d closing the barrier: %w", h.slot, err)
			}
		}

		if err := c.dinnerDone.Acquire(ctx); err != nil {
			return "", fmt.Errorf("hunter %d awaiting dinner: %w", h.slot, err)
		}

		// Verdict events precede settle; the next dawn waits on settle.
		v := c.resolve(h.slot)
		switch {
		case !v.alive:
			h.report(telemetry.EventHunterExited, v.day, 0, 0, "eliminated")
		case v.ate:
			h.report(telemetry.EventHunterFed, v.day, 0, 0, "")
		default:
			h.report(telemetry.EventHunterHungry, v.day, 0, 0, "")
		}
		if c.settle() {
			if err := c.settled.Release(); err != nil {
				return "", fmt.Errorf("hunter %d settling day %d: %w", h.slot, v.day, err)
			}
		}
		if !v.alive {
			return FateEliminated, nil
		}
	}
}

func (h *Hunter) report(t telemetry.EventType, day, pot, alive int, reason string) {
	h.reporter.Report(telemetry.Event{
		Type:   t,
		Day:    day,
		Hunter: h.slot,
		Pot:    pot,
		Alive:  alive,
		Reason: reason,
	})
}
