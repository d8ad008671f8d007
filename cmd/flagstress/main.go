// Command flagstress races goroutines on a flag and checks every trial.
//
// Usage:
//
//	go run ./cmd/flagstress -workers 100 -trials 1000
//	go run ./cmd/flagstress -workers 8 -clearers 8 -ops 10000 -impl mutex
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/randomizedcoder/go-atomic-flag/internal/atomicflag"
	"github.com/randomizedcoder/go-atomic-flag/internal/stress"
)

func main() {
	def := stress.DefaultConfig()
	workers := flag.Int("workers", def.Workers, "goroutines calling TrySet")
	clearers := flag.Int("clearers", def.Clearers, "goroutines calling TryClear")
	trials := flag.Int("trials", def.Trials, "number of trials")
	ops := flag.Int("ops", def.OpsPerWorker, "calls per goroutine per trial")
	impl := flag.String("impl", "atomic", "flag implementation: atomic or mutex")
	flag.Parse()

	var factory stress.Factory
	switch *impl {
	case "atomic":
		factory = func() atomicflag.Flagger { return atomicflag.New() }
	case "mutex":
		factory = func() atomicflag.Flagger { return atomicflag.NewMutex() }
	default:
		fmt.Fprintf(os.Stderr, "unknown -impl %q (want atomic or mutex)\n", *impl)
		os.Exit(2)
	}

	cfg := stress.Config{
		Workers:      *workers,
		Clearers:     *clearers,
		Trials:       *trials,
		OpsPerWorker: *ops,
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Stress testing %s flag (%d setters, %d clearers, %d ops, %d trials)\n",
		*impl, cfg.Workers, cfg.Clearers, cfg.OpsPerWorker, cfg.Trials)
	fmt.Println("─────────────────────────────────────────────────")

	start := time.Now()
	rep, err := stress.Run(ctx, cfg, factory)
	dur := time.Since(start)

	fmt.Printf("\nResults:\n")
	fmt.Printf("  Trials:      %d (%v)\n", rep.Trials, dur)
	fmt.Printf("  Set wins:    %d\n", rep.SetWins)
	fmt.Printf("  Set losses:  %d\n", rep.SetLosses)
	fmt.Printf("  Clear wins:  %d\n", rep.ClearWins)
	fmt.Printf("  Violations:  %d\n", rep.Violations)

	if err != nil {
		fmt.Fprintf(os.Stderr, "\nstopped early: %v\n", err)
		os.Exit(1)
	}
	if rep.Failed() {
		fmt.Fprintf(os.Stderr, "\nFAIL: %v\n", rep.FirstViolation)
		os.Exit(1)
	}
	fmt.Println("\nPASS")
}
