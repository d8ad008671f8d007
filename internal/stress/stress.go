package stress

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/randomizedcoder/go-atomic-flag/internal/atomicflag"
	"github.com/randomizedcoder/go-atomic-flag/internal/history"
)

// Factory creates a fresh Clear flag for each trial.
type Factory func() atomicflag.Flagger

// recorderCapacity is the ring size used per trial.
const recorderCapacity = 4096

// Result summarises one trial.
type Result struct {
	Tally history.Tally
	Final atomicflag.State
}

// Report summarises a run.
type Report struct {
	Trials     int
	SetWins    int
	SetLosses  int
	ClearWins  int
	Violations int

	// FirstViolation is the error from the first failing trial, if any.
	FirstViolation error
}

// Failed reports whether any trial violated the flag contract.
func (r Report) Failed() bool {
	return r.Violations > 0
}

// RunTrial releases all workers against one fresh flag and checks the
// result.
//
// A returned error wrapping history.ErrViolation means the flag broke its
// contract. The Result is valid in that case too.
func RunTrial(cfg Config, newFlag Factory) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	total := cfg.Workers + cfg.Clearers
	rec, err := history.NewRecorder(recorderCapacity, total)
	if err != nil {
		return Result{}, err
	}

	f := newFlag()
	initial := stateOf(f)

	var ready, done sync.WaitGroup
	start := make(chan struct{})

	spawn := func(id uint64, op history.Op, try func() bool) {
		ready.Add(1)
		done.Add(1)
		go func() {
			defer done.Done()
			ready.Done()
			<-start
			for j := 0; j < cfg.OpsPerWorker; j++ {
				rec.Record(history.Event{Worker: id, Op: op, Result: try()})
			}
		}()
	}

	for i := 0; i < cfg.Workers; i++ {
		spawn(uint64(i), history.OpTrySet, f.TrySet)
	}
	for i := 0; i < cfg.Clearers; i++ {
		spawn(uint64(cfg.Workers+i), history.OpTryClear, f.TryClear)
	}

	finished := make(chan struct{})
	go func() {
		done.Wait()
		close(finished)
	}()

	ready.Wait()
	close(start)

	// Consumer (single goroutine - the caller's)
	var res Result
	for drained := false; !drained; {
		select {
		case <-finished:
			rec.Drain(res.Tally.Add)
			drained = true
		default:
			rec.Drain(res.Tally.Add)
		}
	}

	res.Final = stateOf(f)

	if err := res.Tally.Check(initial, res.Final); err != nil {
		return res, err
	}
	if cfg.oneShot() && res.Tally.Wins[history.OpTrySet] != 1 {
		return res, fmt.Errorf("%w: %d of %d concurrent TrySet calls won",
			history.ErrViolation, res.Tally.Wins[history.OpTrySet], cfg.Workers)
	}
	return res, nil
}

// Run executes cfg.Trials trials, checking ctx between them.
//
// Violations are counted in the Report, not returned as errors. The
// error is non-nil only when a trial could not run or ctx is done.
func Run(ctx context.Context, cfg Config, newFlag Factory) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}

	var rep Report
	for trial := 0; trial < cfg.Trials; trial++ {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		res, err := RunTrial(cfg, newFlag)
		if err != nil && !errors.Is(err, history.ErrViolation) {
			return rep, err
		}
		rep.Trials++
		rep.SetWins += res.Tally.Wins[history.OpTrySet]
		rep.SetLosses += res.Tally.Losses[history.OpTrySet]
		rep.ClearWins += res.Tally.Wins[history.OpTryClear]

		if err != nil {
			rep.Violations++
			if rep.FirstViolation == nil {
				rep.FirstViolation = fmt.Errorf("trial %d: %w", trial, err)
			}
		}
	}
	return rep, nil
}

// stateOf reads a Flagger's state. AtomicFlag answers from one load;
// other implementations are asked IsSet().
func stateOf(f atomicflag.Flagger) atomicflag.State {
	if af, ok := f.(*atomicflag.AtomicFlag); ok {
		return af.State()
	}
	if f.IsSet() {
		return atomicflag.Set
	}
	return atomicflag.Clear
}
