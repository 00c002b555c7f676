package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"hunters/internal/config"
	"hunters/internal/telemetry"
	"hunters/internal/tribe"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}
	if err := config.LoadDotEnv(""); err != nil {
		fmt.Fprintln(os.Stderr, "reading .env:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "run":
		err = cmdRun(ctx, os.Args[2:], os.Stdout, os.Stderr)
	case "stats":
		err = cmdStats(ctx, os.Args[2:], os.Stdout, os.Stderr)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		var uerr *usageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, os.Args[1]+":", err)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, os.Args[1], "failed:", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage:
  tribe run   [-config tribe.yml] [-hunters N] [-days M] [-seed S] [-format text|json] [-summary] [N M]
  tribe stats [-config tribe.yml] [-hunters N] [-days M] [-seed S]

Environment (TRIBE_HUNTERS, TRIBE_DAYS, TRIBE_SEED, ...) and a .env file are
read before flags; flags win.`)
}

// usageError marks bad arguments, which exit with status 2.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

type runFlags struct {
	configPath string
	hunters    int
	days       int
	seed       int64
	format     string
	summary    bool
	set        map[string]bool
	positional []string
}

func parseFlags(name string, args []string, stderr io.Writer) (runFlags, error) {
	var rf runFlags
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&rf.configPath, "config", "", "path to a tribe.yml")
	fs.IntVar(&rf.hunters, "hunters", 0, "number of hunters (1-32)")
	fs.IntVar(&rf.days, "days", 0, "maximum number of days")
	fs.Int64Var(&rf.seed, "seed", 0, "seed for reproducible hunts")
	fs.StringVar(&rf.format, "format", "", "chronicle format: text or json")
	fs.BoolVar(&rf.summary, "summary", false, "print a statistics summary at the end")
	if err := fs.Parse(args); err != nil {
		return rf, &usageError{err: err}
	}

	rf.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { rf.set[f.Name] = true })
	rf.positional = fs.Args()
	return rf, nil
}

// resolveConfig layers the file (or environment), positional arguments and
// flags, in that order, and validates the result.
func resolveConfig(rf runFlags) (*config.Config, error) {
	var cfg *config.Config
	if rf.configPath != "" {
		loaded, err := config.Load(rf.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		config.ApplyEnv(loaded)
		cfg = loaded
	} else {
		env := config.FromEnv()
		cfg = &env
	}

	switch len(rf.positional) {
	case 0:
	case 2:
		hunters, err := strconv.Atoi(rf.positional[0])
		if err != nil {
			return nil, usagef("hunters must be a number, got %q", rf.positional[0])
		}
		days, err := strconv.Atoi(rf.positional[1])
		if err != nil {
			return nil, usagef("days must be a number, got %q", rf.positional[1])
		}
		cfg.Tribe.Hunters, cfg.Tribe.Days = hunters, days
	default:
		return nil, usagef("expected <hunters> <days>, got %d arguments", len(rf.positional))
	}

	if rf.set["hunters"] {
		cfg.Tribe.Hunters = rf.hunters
	}
	if rf.set["days"] {
		cfg.Tribe.Days = rf.days
	}
	if rf.set["seed"] {
		cfg.SeededRNG.Enabled = true
		cfg.SeededRNG.Seed = rf.seed
	}
	if rf.set["format"] {
		cfg.Log.Format = rf.format
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, &usageError{err: err}
	}
	return cfg, nil
}

func luckFor(cfg *config.Config) tribe.Luck {
	seed := time.Now().UnixNano()
	if cfg.SeededRNG.Enabled {
		seed = cfg.SeededRNG.Seed
	}
	return tribe.NewRandomLuck(seed, cfg.Luck.Chance())
}

func cmdRun(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	rf, err := parseFlags("run", args, stderr)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(rf)
	if err != nil {
		return err
	}

	chronicle := telemetry.NewLogReporter(log.New(stdout, cfg.Log.Prefix, 0), cfg.Log.Format)
	events := telemetry.NewMemoryRepository(telemetry.RealClock{})

	res, err := tribe.Run(ctx, tribe.Options{
		Hunters:         cfg.Tribe.Hunters,
		Days:            cfg.Tribe.Days,
		Luck:            luckFor(cfg),
		Reporter:        telemetry.Multi(chronicle, events),
		SurplusReleases: cfg.Termination.SurplusReleases,
		Logger:          log.New(stderr, "", log.LstdFlags),
	})
	if err != nil {
		return err
	}

	if rf.summary {
		printSummary(stdout, res, telemetry.CalculateStats(events.All()))
	}
	return nil
}

func printSummary(w io.Writer, res tribe.Result, stats telemetry.Stats) {
	fmt.Fprintln(w, "outcome:", res.Outcome)
	fmt.Fprintln(w, "days:", res.Days)
	fmt.Fprintln(w, "survivors:", res.Survivors)
	fmt.Fprintf(w, "hunts: %d ok / %d failed (%.0f%%)\n", stats.Successes, stats.Failures, stats.SuccessRate*100)
	fmt.Fprintf(w, "meat per day: %.2f\n", stats.MeatPerDay)
	fmt.Fprintln(w, "eliminated:", stats.Eliminations)
	fmt.Fprintln(w, "days with starvation:", stats.StarvingDays)
	fmt.Fprintln(w, "days the cook went hungry:", stats.CookHungryDays)
}

type statsOutput struct {
	Config config.Config   `json:"config"`
	Result tribe.Result    `json:"result"`
	Stats  telemetry.Stats `json:"stats"`
}

func cmdStats(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	rf, err := parseFlags("stats", args, stderr)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(rf)
	if err != nil {
		return err
	}

	events := telemetry.NewMemoryRepository(telemetry.RealClock{})
	res, err := tribe.Run(ctx, tribe.Options{
		Hunters:         cfg.Tribe.Hunters,
		Days:            cfg.Tribe.Days,
		Luck:            luckFor(cfg),
		Reporter:        events,
		SurplusReleases: cfg.Termination.SurplusReleases,
		Logger:          log.New(stderr, "", log.LstdFlags),
	})
	if err != nil {
		return err
	}

	out := statsOutput{Config: *cfg, Result: res, Stats: telemetry.CalculateStats(events.All())}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, string(b))
	return err
}
