package tribe

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"hunters/internal/telemetry"
)

type Options struct {
	Hunters         int
	Days            int
	Luck            Luck
	Reporter        telemetry.Reporter
	SurplusReleases int
	Logger          *log.Logger
}

// Result summarises a finished run.
type Result struct {
	Outcome   Outcome     `json:"outcome"`
	Days      int         `json:"days"`
	Alive     int         `json:"alive"`
	Survivors []int       `json:"survivors"`
	Reports   []DayReport `json:"reports"`
	Fates     []Fate      `json:"fates"`
}

// Run builds a camp, spawns the hunters and the cook, and waits for all of
// them. If any participant fails, every other one is unblocked and the first
// error is returned.
func Run(ctx context.Context, opts Options) (Result, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	camp, err := NewCamp(opts.Hunters, opts.Days)
	if err != nil {
		return Result{}, err
	}
	defer camp.Close()

	return runCamp(ctx, camp, opts)
}

func runCamp(ctx context.Context, camp *Camp, opts Options) (Result, error) {
	if opts.Reporter == nil {
		opts.Reporter = telemetry.Discard
	}
	if opts.Luck == nil {
		opts.Luck = NewRandomLuck(time.Now().UnixNano(), 0.5)
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	opts.Reporter.Report(telemetry.Event{
		Type:   telemetry.EventSimulationStarted,
		Hunter: telemetry.NoHunter,
		Alive:  camp.hunters,
		Count:  camp.days,
	})

	g, gctx := errgroup.WithContext(ctx)

	fates := make([]Fate, camp.hunters)
	for i := 0; i < camp.hunters; i++ {
		h := NewHunter(i, camp, opts.Luck, opts.Reporter)
		g.Go(func() error {
			fate, err := h.Run(gctx)
			fates[h.Slot()] = fate
			return err
		})
	}

	var res Result
	cook := NewCook(camp, opts.Reporter, opts.SurplusReleases)
	g.Go(func() error {
		r, err := cook.Run(gctx)
		res = r
		return err
	})

	if err := g.Wait(); err != nil {
		opts.Logger.Printf("tribe: run aborted: %v", err)
		return res, err
	}
	res.Fates = fates
	return res, nil
}
