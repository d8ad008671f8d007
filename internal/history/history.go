// Package history records the outcomes of concurrent flag operations and
// checks them for consistency.
//
// Events from many workers are funnelled through a sharded MPSC ring
// (github.com/randomizedcoder/go-lock-free-ring) into a single consumer
// that keeps a Tally. Because every successful transition flips the
// flag, a linearizable history must contain strictly alternating wins:
// starting from Clear, successful TrySet calls can outnumber successful
// TryClear calls by at most one, and never the other way round.
package history

import (
	"errors"
	"fmt"

	"github.com/randomizedcoder/go-atomic-flag/internal/atomicflag"
)

var (
	// ErrInvalidConfig is returned for unusable recorder parameters.
	ErrInvalidConfig = errors.New("history: invalid config")

	// ErrViolation is returned when a tally cannot come from a
	// linearizable history.
	ErrViolation = errors.New("history: linearizability violation")
)

// Op identifies a flag operation.
type Op uint8

const (
	OpIsClear Op = iota
	OpIsSet
	OpTrySet
	OpTryClear

	numOps
)

var opNames = [numOps]string{"IsClear", "IsSet", "TrySet", "TryClear"}

func (o Op) String() string {
	if o >= numOps {
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
	return opNames[o]
}

// Event is one completed operation.
type Event struct {
	Worker uint64
	Op     Op
	Result bool
}

// Tally counts results per operation.
//
// For observers a true result counts as a win; for transitions a win
// means the caller performed the transition.
type Tally struct {
	Wins   [numOps]int
	Losses [numOps]int
}

// Add counts one event. Events with an unknown Op are ignored.
func (t *Tally) Add(ev Event) {
	if ev.Op >= numOps {
		return
	}
	if ev.Result {
		t.Wins[ev.Op]++
	} else {
		t.Losses[ev.Op]++
	}
}

// Merge adds the counts of other into t.
func (t *Tally) Merge(other Tally) {
	for i := range t.Wins {
		t.Wins[i] += other.Wins[i]
		t.Losses[i] += other.Losses[i]
	}
}

// Events returns the total number of events counted.
func (t *Tally) Events() int {
	n := 0
	for i := range t.Wins {
		n += t.Wins[i] + t.Losses[i]
	}
	return n
}

// Check verifies the tally against the flag's initial and final states.
func (t *Tally) Check(initial, final atomicflag.State) error {
	if !validState(initial) || !validState(final) {
		return fmt.Errorf("%w: undefined state (initial=%d final=%d)",
			ErrViolation, uint32(initial), uint32(final))
	}

	sets := t.Wins[OpTrySet]
	clears := t.Wins[OpTryClear]

	// Net Set transitions; alternation bounds it to one step either way.
	net := sets - clears
	lo, hi := 0, 1
	if initial == atomicflag.Set {
		lo, hi = -1, 0
	}
	if net < lo || net > hi {
		return fmt.Errorf("%w: %d successful TrySet vs %d successful TryClear from %v",
			ErrViolation, sets, clears, initial)
	}

	want := initial
	if net != 0 {
		want = flip(initial)
	}
	if final != want {
		return fmt.Errorf("%w: final state %v, expected %v after %d sets and %d clears",
			ErrViolation, final, want, sets, clears)
	}

	return nil
}

func validState(s atomicflag.State) bool {
	return s == atomicflag.Clear || s == atomicflag.Set
}

func flip(s atomicflag.State) atomicflag.State {
	if s == atomicflag.Set {
		return atomicflag.Clear
	}
	return atomicflag.Set
}
